package domain

import (
	"time"

	"github.com/google/uuid"
)

// Word is a per-user vocabulary entry, unique per
// (source_word, source_language, target_language, user). Words are shared
// across all of a user's texts and survive text deletion.
type Word struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	SourceWord     string
	TargetWord     string
	SourceLanguage string
	TargetLanguage string
	AudioURL       *string
	CreatedAt      time.Time
}

// WordStats is a word annotated with its cross-text usage for the
// vocabulary listing.
type WordStats struct {
	Word
	OccurrenceCount int
	CompletionCount int
}
