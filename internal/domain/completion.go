package domain

import (
	"time"

	"github.com/google/uuid"
)

// CompletionMethod is how a word was practiced.
type CompletionMethod string

const (
	MethodWriting  CompletionMethod = "writing"
	MethodSpeaking CompletionMethod = "speaking"
)

// IsValid reports whether the method is one of the known values.
func (m CompletionMethod) IsValid() bool {
	return m == MethodWriting || m == MethodSpeaking
}

// Completion is one word-practice event. The log is append-only: repeated
// practice of the same word produces one row per event.
type Completion struct {
	ID          uuid.UUID
	WordID      uuid.UUID
	Method      CompletionMethod
	CompletedAt time.Time
}

// DayCompletionCount is the number of completions on one local calendar day.
type DayCompletionCount struct {
	Date  time.Time
	Count int
}
