package text

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/lingosteps/backend/internal/domain"
	"github.com/lingosteps/backend/internal/provider"
	"github.com/lingosteps/backend/pkg/ctxutil"
)

// Create translates a submitted text and decomposes it into sentences
// and per-user vocabulary words inside one transaction. Audio rendering
// is enqueued after the commit.
func (s *Service) Create(ctx context.Context, input CreateInput) (domain.Text, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Text{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return domain.Text{}, err
	}

	translation, err := s.translator.Translate(ctx, input.Body, input.SourceLanguage, input.TargetLanguage)
	if err != nil {
		return domain.Text{}, fmt.Errorf("text.Create translate: %w", err)
	}

	created, err := s.store(ctx, userID, input, translation)
	if err != nil {
		return domain.Text{}, fmt.Errorf("text.Create: %w", err)
	}

	created.AudioStatus = s.enqueueAudio(ctx, created.ID)

	s.log.InfoContext(ctx, "text created",
		slog.String("text_id", created.ID.String()),
		slog.String("user_id", userID.String()),
		slog.Int("sentences", len(translation.Sentences)))

	return created, nil
}

// store persists the text, its sentences and word links atomically.
// Words are deduplicated against the user's existing vocabulary by the
// GetOrCreate upsert.
func (s *Service) store(ctx context.Context, userID uuid.UUID, input CreateInput, translation provider.TranslationResult) (domain.Text, error) {
	var created domain.Text

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		text, err := s.texts.Create(txCtx, domain.Text{
			UserID:         userID,
			Body:           input.Body,
			SourceLanguage: input.SourceLanguage,
			TargetLanguage: input.TargetLanguage,
			Usage: domain.TokenUsage{
				Prompt:     translation.Usage.PromptTokens,
				Completion: translation.Usage.CompletionTokens,
				Total:      translation.Usage.TotalTokens,
			},
		})
		if err != nil {
			return fmt.Errorf("create text: %w", err)
		}

		for _, sent := range translation.Sentences {
			links, err := s.linkWords(txCtx, userID, input, sent)
			if err != nil {
				return err
			}

			_, err = s.sentences.CreateBatch(txCtx, domain.Sentence{
				TextID:         text.ID,
				OrderInText:    sent.Order,
				SourceSentence: sent.SourceSentence,
				TargetSentence: sent.TargetSentence,
			}, links)
			if err != nil {
				return fmt.Errorf("create sentence %d: %w", sent.Order, err)
			}
		}

		created = text
		return nil
	})
	if err != nil {
		return domain.Text{}, err
	}

	return created, nil
}

// linkWords upserts every word of one sentence and builds the ordered
// link rows. Punctuation-only tokens are stored too, so the sentence can
// be reconstructed token by token; the vocabulary reads filter them out.
// Items are taken in the translator's reported order, renumbered gap-free
// after empty tokens are dropped.
func (s *Service) linkWords(ctx context.Context, userID uuid.UUID, input CreateInput, sent provider.SentenceResult) ([]domain.SentenceWord, error) {
	items := make([]provider.ItemResult, len(sent.Items))
	copy(items, sent.Items)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Order < items[j].Order })

	links := make([]domain.SentenceWord, 0, len(items))
	order := 0

	for _, item := range items {
		source := domain.NormalizeToken(item.Source)
		if source == "" {
			continue
		}

		wordID, err := s.words.GetOrCreate(ctx, domain.Word{
			UserID:         userID,
			SourceWord:     source,
			TargetWord:     domain.NormalizeToken(item.Target),
			SourceLanguage: input.SourceLanguage,
			TargetLanguage: input.TargetLanguage,
		})
		if err != nil {
			return nil, fmt.Errorf("upsert word %q: %w", source, err)
		}

		order++
		links = append(links, domain.SentenceWord{
			WordID:          wordID,
			OrderInSentence: order,
		})
	}

	return links, nil
}
