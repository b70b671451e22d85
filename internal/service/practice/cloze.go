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

// ClozeInput holds parameters for checking one typed fill-in answer.
type ClozeInput struct {
	WordID uuid.UUID
	Answer string
}

// Validate validates the cloze input.
func (i ClozeInput) Validate() error {
	var errs []domain.FieldError

	if i.WordID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "word_id", Message: "required"})
	}
	if i.Answer == "" {
		errs = append(errs, domain.FieldError{Field: "answer", Message: "required"})
	} else if len(i.Answer) > 200 {
		errs = append(errs, domain.FieldError{Field: "answer", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ClozeResult grades one typed answer.
type ClozeResult struct {
	Status   align.Status
	Expected string
	Credited bool
}

// CheckCloze grades a typed answer against the hidden word's remainder
// and logs a writing completion when it matches.
func (s *Service) CheckCloze(ctx context.Context, input ClozeInput) (ClozeResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return ClozeResult{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return ClozeResult{}, err
	}

	word, err := s.words.GetByID(ctx, userID, input.WordID)
	if err != nil {
		return ClozeResult{}, fmt.Errorf("practice.CheckCloze: %w", err)
	}

	status := align.CheckCloze(input.Answer, word.SourceWord)

	credited := status != align.StatusWrong
	if credited {
		if err := s.completions.RecordBatch(ctx, []uuid.UUID{word.ID}, domain.MethodWriting); err != nil {
			return ClozeResult{}, fmt.Errorf("practice.CheckCloze record completion: %w", err)
		}
	}

	s.log.InfoContext(ctx, "cloze checked",
		slog.String("word_id", word.ID.String()),
		slog.String("status", string(status)))

	return ClozeResult{Status: status, Expected: word.SourceWord, Credited: credited}, nil
}
