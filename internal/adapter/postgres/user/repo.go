// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/lingosteps/backend/internal/adapter/postgres"
	"github.com/lingosteps/backend/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createSQL = `
INSERT INTO users (id, email, password_hash, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id, email, password_hash, created_at`

const getByEmailSQL = `
SELECT id, email, password_hash, created_at
FROM users
WHERE lower(email) = lower($1)`

const getByIDSQL = `
SELECT id, email, password_hash, created_at
FROM users
WHERE id = $1`

// Create inserts a new user. A duplicate email (case-insensitive) results
// in domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, email, passwordHash string) (domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	id := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)

	row := q.QueryRow(ctx, createSQL, id, strings.TrimSpace(email), passwordHash, now)

	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, postgres.MapError(err, "user", id)
	}

	return u, nil
}

// GetByEmail returns a user by email, matched case-insensitively.
func (r *Repo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(q.QueryRow(ctx, getByEmailSQL, strings.TrimSpace(email)))
	if err != nil {
		return domain.User{}, postgres.MapError(err, "user", uuid.Nil)
	}

	return u, nil
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return domain.User{}, postgres.MapError(err, "user", id)
	}

	return u, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return domain.User{}, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}
