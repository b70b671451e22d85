package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/lingosteps/backend/internal/domain"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	CreateFunc     func(ctx context.Context, email, passwordHash string) (domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (domain.User, error)
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (domain.User, error)
}

func (m *userRepoMock) Create(ctx context.Context, email, passwordHash string) (domain.User, error) {
	if m.CreateFunc == nil {
		panic("userRepoMock.CreateFunc: method is nil but userRepo.Create was just called")
	}
	return m.CreateFunc(ctx, email, passwordHash)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	if m.GetByEmailFunc == nil {
		panic("userRepoMock.GetByEmailFunc: method is nil but userRepo.GetByEmail was just called")
	}
	return m.GetByEmailFunc(ctx, email)
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	if m.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

var _ tokenIssuer = &tokenIssuerMock{}

type tokenIssuerMock struct {
	GenerateSessionTokenFunc func(userID uuid.UUID) (string, error)
}

func (m *tokenIssuerMock) GenerateSessionToken(userID uuid.UUID) (string, error) {
	if m.GenerateSessionTokenFunc == nil {
		panic("tokenIssuerMock.GenerateSessionTokenFunc: method is nil but tokenIssuer.GenerateSessionToken was just called")
	}
	return m.GenerateSessionTokenFunc(userID)
}
