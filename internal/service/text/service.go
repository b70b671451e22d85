// Package text implements text intake, decomposition into sentences and
// words, and reconstruction for the reading views.
package text

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lingosteps/backend/internal/audio"
	"github.com/lingosteps/backend/internal/config"
	"github.com/lingosteps/backend/internal/domain"
	"github.com/lingosteps/backend/internal/provider"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type textRepo interface {
	Create(ctx context.Context, t domain.Text) (domain.Text, error)
	GetByID(ctx context.Context, userID, textID uuid.UUID) (domain.Text, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Text, error)
	Delete(ctx context.Context, userID, textID uuid.UUID) error
	UpdateAudioStatus(ctx context.Context, textID uuid.UUID, status domain.AudioStatus) error
}

type sentenceRepo interface {
	CreateBatch(ctx context.Context, s domain.Sentence, links []domain.SentenceWord) (domain.Sentence, error)
	ListByText(ctx context.Context, textID uuid.UUID) ([]domain.Sentence, error)
	ListAlignment(ctx context.Context, textID uuid.UUID) ([]domain.AlignedWord, error)
}

type wordRepo interface {
	GetOrCreate(ctx context.Context, w domain.Word) (uuid.UUID, error)
	ListKnown(ctx context.Context, userID uuid.UUID, sourceLanguage string, limit int) ([]string, error)
}

type stepRepo interface {
	CountByTexts(ctx context.Context, userID uuid.UUID, textIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (provider.TranslationResult, error)
}

type generator interface {
	Generate(ctx context.Context, knownWords []string, newWordsPercentage int, sourceLang string, sentenceCount int) (string, error)
}

type audioEnqueuer interface {
	Enqueue(ctx context.Context, job audio.Job) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the text business logic.
type Service struct {
	log        *slog.Logger
	texts      textRepo
	sentences  sentenceRepo
	words      wordRepo
	steps      stepRepo
	tx         txManager
	translator translator
	generator  generator
	queue      audioEnqueuer
	genCfg     config.GeneratorConfig
}

// NewService creates a new Text service. queue may be nil when the audio
// pipeline is disabled.
func NewService(
	logger *slog.Logger,
	texts textRepo,
	sentences sentenceRepo,
	words wordRepo,
	steps stepRepo,
	tx txManager,
	translator translator,
	generator generator,
	queue audioEnqueuer,
	genCfg config.GeneratorConfig,
) *Service {
	return &Service{
		log:        logger.With("service", "text"),
		texts:      texts,
		sentences:  sentences,
		words:      words,
		steps:      steps,
		tx:         tx,
		translator: translator,
		generator:  generator,
		queue:      queue,
		genCfg:     genCfg,
	}
}

// enqueueAudio hands the text to the background audio pipeline and
// returns the audio status the caller should report. A successfully
// enqueued text is processing right away; the request never waits for
// the worker.
func (s *Service) enqueueAudio(ctx context.Context, textID uuid.UUID) domain.AudioStatus {
	if s.queue == nil {
		return domain.AudioStatusPending
	}
	// Best effort: a failed enqueue leaves the text pending, the user
	// can retry from the reading view.
	if err := s.queue.Enqueue(ctx, audio.Job{TextID: textID, EnqueuedAt: time.Now().UTC()}); err != nil {
		s.log.ErrorContext(ctx, "enqueue audio job",
			slog.String("text_id", textID.String()),
			slog.Any("error", err))
		return domain.AudioStatusPending
	}
	if err := s.texts.UpdateAudioStatus(ctx, textID, domain.AudioStatusProcessing); err != nil {
		s.log.ErrorContext(ctx, "mark text processing",
			slog.String("text_id", textID.String()),
			slog.Any("error", err))
		return domain.AudioStatusPending
	}
	return domain.AudioStatusProcessing
}
