package completion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lingosteps/backend/internal/domain"
	"github.com/lingosteps/backend/pkg/ctxutil"
)

// RecordInput holds parameters for logging one practice event.
type RecordInput struct {
	WordID uuid.UUID
	Method domain.CompletionMethod
}

// Validate validates the record input.
func (i RecordInput) Validate() error {
	var errs []domain.FieldError

	if i.WordID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "word_id", Message: "required"})
	}
	if !i.Method.IsValid() {
		errs = append(errs, domain.FieldError{Field: "method", Message: "must be writing or speaking"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Record appends one practice event for a word the user owns. The log
// is append-only: practicing the same word again adds another row.
func (s *Service) Record(ctx context.Context, input RecordInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	// Ownership check; completions reference words directly.
	if _, err := s.words.GetByID(ctx, userID, input.WordID); err != nil {
		return fmt.Errorf("completion.Record: %w", err)
	}

	err := s.completions.Create(ctx, domain.Completion{
		WordID: input.WordID,
		Method: input.Method,
	})
	if err != nil {
		return fmt.Errorf("completion.Record: %w", err)
	}

	s.log.InfoContext(ctx, "completion recorded",
		slog.String("word_id", input.WordID.String()),
		slog.String("method", string(input.Method)))

	return nil
}

// RecordBatch appends one practice event per word id. Used by the
// speaking flow where one attempt can credit several words at once.
func (s *Service) RecordBatch(ctx context.Context, wordIDs []uuid.UUID, method domain.CompletionMethod) error {
	for _, id := range wordIDs {
		if err := s.Record(ctx, RecordInput{WordID: id, Method: method}); err != nil {
			return err
		}
	}
	return nil
}
