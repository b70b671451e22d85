// Package vocabulary implements the cross-text vocabulary ledger reads.
package vocabulary

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lingosteps/backend/internal/domain"
	"github.com/lingosteps/backend/pkg/ctxutil"
)

type wordRepo interface {
	ListStats(ctx context.Context, userID uuid.UUID) ([]domain.WordStats, error)
	GetByID(ctx context.Context, userID, wordID uuid.UUID) (domain.Word, error)
}

// Service implements the vocabulary business logic.
type Service struct {
	log   *slog.Logger
	words wordRepo
}

// NewService creates a new Vocabulary service.
func NewService(logger *slog.Logger, words wordRepo) *Service {
	return &Service{
		log:   logger.With("service", "vocabulary"),
		words: words,
	}
}

// List returns the user's vocabulary keyed by source language. Within
// each language the words come most used first, with a stable
// alphabetical tie-break.
func (s *Service) List(ctx context.Context) (map[string][]domain.WordStats, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	stats, err := s.words.ListStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("vocabulary.List: %w", err)
	}

	grouped := make(map[string][]domain.WordStats)
	for _, ws := range stats {
		grouped[ws.SourceLanguage] = append(grouped[ws.SourceLanguage], ws)
	}
	return grouped, nil
}

// Get returns one vocabulary word owned by the user.
func (s *Service) Get(ctx context.Context, wordID uuid.UUID) (domain.Word, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Word{}, domain.ErrUnauthorized
	}

	word, err := s.words.GetByID(ctx, userID, wordID)
	if err != nil {
		return domain.Word{}, fmt.Errorf("vocabulary.Get: %w", err)
	}

	return word, nil
}
