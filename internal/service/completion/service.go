// Package completion implements the word-practice log and the practice
// statistics built on top of it.
package completion

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lingosteps/backend/internal/domain"
)

type completionRepo interface {
	Create(ctx context.Context, c domain.Completion) error
	DayCounts(ctx context.Context, userID uuid.UUID, timezone string, lastNDays int) ([]domain.DayCompletionCount, error)
	Total(ctx context.Context, userID uuid.UUID) (int, error)
}

type wordRepo interface {
	GetByID(ctx context.Context, userID, wordID uuid.UUID) (domain.Word, error)
}

// Service implements the completion business logic.
type Service struct {
	log         *slog.Logger
	completions completionRepo
	words       wordRepo
}

// NewService creates a new Completion service.
func NewService(logger *slog.Logger, completions completionRepo, words wordRepo) *Service {
	return &Service{
		log:         logger.With("service", "completion"),
		completions: completions,
		words:       words,
	}
}
