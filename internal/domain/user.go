package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account. Email uniqueness is case-insensitive.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
