package domain

import (
	"time"

	"github.com/google/uuid"
)

// AudioStatus tracks the state of background audio synthesis for a text.
type AudioStatus string

const (
	AudioStatusPending    AudioStatus = "pending"
	AudioStatusProcessing AudioStatus = "processing"
	AudioStatusCompleted  AudioStatus = "completed"
	AudioStatusFailed     AudioStatus = "failed"
)

// IsValid reports whether the status is one of the known values.
func (s AudioStatus) IsValid() bool {
	switch s {
	case AudioStatusPending, AudioStatusProcessing, AudioStatusCompleted, AudioStatusFailed:
		return true
	}
	return false
}

// TokenUsage is the translator's reported token consumption for a text.
type TokenUsage struct {
	Prompt     int
	Completion int
	Total      int
}

// Text is a user-submitted text with its translation metadata.
// Sentences and word links live in their own tables; see Sentence and
// SentenceWord.
type Text struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Body           string
	SourceLanguage string
	TargetLanguage string
	Usage          TokenUsage
	AudioStatus    AudioStatus
	CreatedAt      time.Time
}

// Sentence is one aligned sentence of a text, ordered 1-based within it.
type Sentence struct {
	ID             uuid.UUID
	TextID         uuid.UUID
	OrderInText    int
	SourceSentence string
	TargetSentence string
	AudioURL       *string
}

// SentenceWord links one occurrence of a word to a sentence at a 1-based
// position. The same word may appear in many sentences across many texts;
// each occurrence is a separate link row.
type SentenceWord struct {
	ID              uuid.UUID
	SentenceID      uuid.UUID
	WordID          uuid.UUID
	OrderInSentence int
}

// AlignedWord is one word occurrence inside a sentence, joined with its
// vocabulary row and corpus-wide occurrence count for the read path.
type AlignedWord struct {
	SentenceID      uuid.UUID
	OrderInSentence int
	WordID          uuid.UUID
	SourceWord      string
	TargetWord      string
	AudioURL        *string
	OccurrenceCount int
}
