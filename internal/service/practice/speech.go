package practice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lingosteps/backend/internal/align"
	"github.com/lingosteps/backend/internal/domain"
	"github.com/lingosteps/backend/pkg/ctxutil"
)

// SpeechInput holds parameters for grading one spoken attempt.
type SpeechInput struct {
	SentenceID uuid.UUID
	Transcript string
}

// Validate validates the speech input.
func (i SpeechInput) Validate() error {
	var errs []domain.FieldError

	if i.SentenceID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "sentence_id", Message: "required"})
	}
	if i.Transcript == "" {
		errs = append(errs, domain.FieldError{Field: "transcript", Message: "required"})
	} else if len(i.Transcript) > 2000 {
		errs = append(errs, domain.FieldError{Field: "transcript", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SpeechResult grades one spoken attempt word by word.
type SpeechResult struct {
	Words         []align.Result
	CreditedWords []uuid.UUID
}

// CheckSpeech grades a transcript against a sentence and logs a
// speaking completion for every newly credited word. Retrying the same
// sentence only credits words that were not credited before.
func (s *Service) CheckSpeech(ctx context.Context, input SpeechInput) (SpeechResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return SpeechResult{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return SpeechResult{}, err
	}

	sentence, err := s.sentences.GetByID(ctx, userID, input.SentenceID)
	if err != nil {
		return SpeechResult{}, fmt.Errorf("practice.CheckSpeech: %w", err)
	}

	aligned, err := s.sentences.ListAlignmentBySentence(ctx, sentence.ID)
	if err != nil {
		return SpeechResult{}, fmt.Errorf("practice.CheckSpeech list words: %w", err)
	}

	// Punctuation tokens are linked for reconstruction but never spoken,
	// so they must not take part in the alignment.
	expected := make([]align.Expected, 0, len(aligned))
	for _, w := range aligned {
		if domain.IsPunctuation(w.SourceWord) {
			continue
		}
		expected = append(expected, align.Expected{WordID: w.WordID, Word: w.SourceWord})
	}

	results := align.Compare(align.Tokenize(input.Transcript), expected)
	credited := s.session(userID).Filter(sentence.ID, results)

	if len(credited) > 0 {
		if err := s.completions.RecordBatch(ctx, credited, domain.MethodSpeaking); err != nil {
			return SpeechResult{}, fmt.Errorf("practice.CheckSpeech record completions: %w", err)
		}
	}

	s.log.InfoContext(ctx, "speech checked",
		slog.String("sentence_id", sentence.ID.String()),
		slog.Int("words", len(results)),
		slog.Int("credited", len(credited)))

	return SpeechResult{Words: results, CreditedWords: credited}, nil
}
