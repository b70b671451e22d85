package text

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lingosteps/backend/internal/domain"
	"github.com/lingosteps/backend/pkg/ctxutil"
)

// Generate produces a practice text from the user's known vocabulary
// and runs it through the same decomposition pipeline as a submitted
// text.
func (s *Service) Generate(ctx context.Context, input GenerateInput) (domain.Text, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Text{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return domain.Text{}, err
	}

	known, err := s.words.ListKnown(ctx, userID, input.SourceLanguage, s.genCfg.KnownWordsLimit)
	if err != nil {
		return domain.Text{}, fmt.Errorf("text.Generate list known words: %w", err)
	}
	if len(known) == 0 && input.NewWordsPercentage < 100 {
		return domain.Text{}, &domain.ValidationError{Errors: []domain.FieldError{
			{Field: "new_words_percentage", Message: "no known words yet, must be 100"},
		}}
	}

	body, err := s.generator.Generate(ctx, known, input.NewWordsPercentage, input.SourceLanguage, input.SentenceCount)
	if err != nil {
		return domain.Text{}, fmt.Errorf("text.Generate: %w", err)
	}

	translation, err := s.translator.Translate(ctx, body, input.SourceLanguage, input.TargetLanguage)
	if err != nil {
		return domain.Text{}, fmt.Errorf("text.Generate translate: %w", err)
	}

	created, err := s.store(ctx, userID, CreateInput{
		Body:           body,
		SourceLanguage: input.SourceLanguage,
		TargetLanguage: input.TargetLanguage,
	}, translation)
	if err != nil {
		return domain.Text{}, fmt.Errorf("text.Generate: %w", err)
	}

	created.AudioStatus = s.enqueueAudio(ctx, created.ID)

	s.log.InfoContext(ctx, "text generated",
		slog.String("text_id", created.ID.String()),
		slog.String("user_id", userID.String()),
		slog.Int("known_words", len(known)))

	return created, nil
}
