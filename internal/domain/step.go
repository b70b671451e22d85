package domain

import (
	"time"

	"github.com/google/uuid"
)

// Step bounds for the six-stage curriculum: read, listen, dual-view,
// read-source, cloze practice, speaking practice.
const (
	MinStep = 1
	MaxStep = 6
)

// IsValidStep reports whether n is a valid step number.
func IsValidStep(n int) bool {
	return n >= MinStep && n <= MaxStep
}

// StepCompletion marks one step of one text as done by one user.
// Unique per (text, step, user); re-marking is idempotent.
type StepCompletion struct {
	TextID      uuid.UUID
	StepNumber  int
	UserID      uuid.UUID
	CompletedAt time.Time
}
