// Package auth implements registration, login and session issuance.
package auth

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lingosteps/backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type userRepo interface {
	Create(ctx context.Context, email, passwordHash string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}

type tokenIssuer interface {
	GenerateSessionToken(userID uuid.UUID) (string, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the authentication business logic.
type Service struct {
	log    *slog.Logger
	users  userRepo
	tokens tokenIssuer
}

// NewService creates a new Auth service.
func NewService(logger *slog.Logger, users userRepo, tokens tokenIssuer) *Service {
	return &Service{
		log:    logger.With("service", "auth"),
		users:  users,
		tokens: tokens,
	}
}
