package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/lingosteps/backend/internal/auth"
	"github.com/lingosteps/backend/internal/domain"
)

// Login authenticates a user by email and password.
// A wrong email and a wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, input LoginInput) (*SessionResult, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("auth.Login: %w", domain.ErrUnauthorized)
		}
		return nil, fmt.Errorf("auth.Login: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, input.Password) {
		return nil, fmt.Errorf("auth.Login: %w", domain.ErrUnauthorized)
	}

	token, err := s.tokens.GenerateSessionToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth.Login issue token: %w", err)
	}

	s.log.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID.String()))

	return &SessionResult{User: user, Token: token}, nil
}

// Me returns the user for an authenticated session.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// The session outlived the account.
			return domain.User{}, fmt.Errorf("auth.Me: %w", domain.ErrUnauthorized)
		}
		return domain.User{}, fmt.Errorf("auth.Me: %w", err)
	}
	return user, nil
}
