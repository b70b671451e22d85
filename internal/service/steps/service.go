// Package steps implements the six-step curriculum progress per text.
package steps

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lingosteps/backend/internal/domain"
	"github.com/lingosteps/backend/pkg/ctxutil"
)

type stepRepo interface {
	Upsert(ctx context.Context, textID uuid.UUID, stepNumber int, userID uuid.UUID) error
	ListSteps(ctx context.Context, textID, userID uuid.UUID) ([]int, error)
	Reset(ctx context.Context, textID, userID uuid.UUID) error
}

type textRepo interface {
	GetByID(ctx context.Context, userID, textID uuid.UUID) (domain.Text, error)
}

// Service implements the step progress business logic.
type Service struct {
	log   *slog.Logger
	steps stepRepo
	texts textRepo
}

// NewService creates a new Steps service.
func NewService(logger *slog.Logger, steps stepRepo, texts textRepo) *Service {
	return &Service{
		log:   logger.With("service", "steps"),
		steps: steps,
		texts: texts,
	}
}

// MarkInput holds parameters for marking a step done.
type MarkInput struct {
	TextID     uuid.UUID
	StepNumber int
}

// Validate validates the mark input.
func (i MarkInput) Validate() error {
	var errs []domain.FieldError

	if i.TextID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "text_id", Message: "required"})
	}
	if !domain.IsValidStep(i.StepNumber) {
		errs = append(errs, domain.FieldError{
			Field:   "step_number",
			Message: fmt.Sprintf("must be between %d and %d", domain.MinStep, domain.MaxStep),
		})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Mark records that the user finished a step of a text. Marking the
// same step again is a no-op, and steps can be completed in any order.
func (s *Service) Mark(ctx context.Context, input MarkInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	// Ownership check; a foreign text must look absent.
	if _, err := s.texts.GetByID(ctx, userID, input.TextID); err != nil {
		return fmt.Errorf("steps.Mark: %w", err)
	}

	if err := s.steps.Upsert(ctx, input.TextID, input.StepNumber, userID); err != nil {
		return fmt.Errorf("steps.Mark: %w", err)
	}

	s.log.InfoContext(ctx, "step completed",
		slog.String("text_id", input.TextID.String()),
		slog.Int("step", input.StepNumber))

	return nil
}

// Get returns the completed step numbers of a text, ascending.
func (s *Service) Get(ctx context.Context, textID uuid.UUID) ([]int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if _, err := s.texts.GetByID(ctx, userID, textID); err != nil {
		return nil, fmt.Errorf("steps.Get: %w", err)
	}

	completed, err := s.steps.ListSteps(ctx, textID, userID)
	if err != nil {
		return nil, fmt.Errorf("steps.Get: %w", err)
	}

	return completed, nil
}

// Reset clears all step progress of a text. Resetting a text with no
// progress succeeds.
func (s *Service) Reset(ctx context.Context, textID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if _, err := s.texts.GetByID(ctx, userID, textID); err != nil {
		return fmt.Errorf("steps.Reset: %w", err)
	}

	if err := s.steps.Reset(ctx, textID, userID); err != nil {
		return fmt.Errorf("steps.Reset: %w", err)
	}

	s.log.InfoContext(ctx, "steps reset",
		slog.String("text_id", textID.String()))

	return nil
}
