package text

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lingosteps/backend/internal/domain"
	"github.com/lingosteps/backend/pkg/ctxutil"
)

// SentenceView is one sentence reconstructed with its ordered words.
type SentenceView struct {
	Sentence domain.Sentence
	Words    []domain.AlignedWord
}

// Detail is a text reconstructed for the reading views.
type Detail struct {
	Text      domain.Text
	Sentences []SentenceView
}

// Summary is a text row for the listing, annotated with curriculum
// progress.
type Summary struct {
	Text           domain.Text
	CompletedSteps int
}

// Get reconstructs a text: sentences in order, each with its words in
// order and their cross-text occurrence counts.
func (s *Service) Get(ctx context.Context, textID uuid.UUID) (Detail, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return Detail{}, domain.ErrUnauthorized
	}

	text, err := s.texts.GetByID(ctx, userID, textID)
	if err != nil {
		return Detail{}, fmt.Errorf("text.Get: %w", err)
	}

	sentences, err := s.sentences.ListByText(ctx, textID)
	if err != nil {
		return Detail{}, fmt.Errorf("text.Get list sentences: %w", err)
	}

	aligned, err := s.sentences.ListAlignment(ctx, textID)
	if err != nil {
		return Detail{}, fmt.Errorf("text.Get list alignment: %w", err)
	}

	bySentence := make(map[uuid.UUID][]domain.AlignedWord, len(sentences))
	for _, w := range aligned {
		bySentence[w.SentenceID] = append(bySentence[w.SentenceID], w)
	}

	views := make([]SentenceView, 0, len(sentences))
	for _, sent := range sentences {
		words := bySentence[sent.ID]
		if words == nil {
			words = []domain.AlignedWord{}
		}
		views = append(views, SentenceView{Sentence: sent, Words: words})
	}

	return Detail{Text: text, Sentences: views}, nil
}

// List returns the user's texts, newest first, each with the number of
// completed curriculum steps.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	texts, err := s.texts.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("text.List: %w", err)
	}

	ids := make([]uuid.UUID, len(texts))
	for i, t := range texts {
		ids[i] = t.ID
	}

	counts, err := s.steps.CountByTexts(ctx, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("text.List count steps: %w", err)
	}

	summaries := make([]Summary, len(texts))
	for i, t := range texts {
		summaries[i] = Summary{Text: t, CompletedSteps: counts[t.ID]}
	}

	return summaries, nil
}

// Delete removes a text with its sentences and links. Vocabulary words
// and their completion history always survive.
func (s *Service) Delete(ctx context.Context, textID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.texts.Delete(ctx, userID, textID); err != nil {
		return fmt.Errorf("text.Delete: %w", err)
	}

	return nil
}
