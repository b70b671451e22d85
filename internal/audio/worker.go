package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lingosteps/backend/internal/domain"
)

type textRepo interface {
	Get(ctx context.Context, textID uuid.UUID) (domain.Text, error)
	UpdateAudioStatus(ctx context.Context, textID uuid.UUID, status domain.AudioStatus) error
}

type sentenceRepo interface {
	ListWithoutAudio(ctx context.Context, textID uuid.UUID) ([]domain.Sentence, error)
	SetAudioURL(ctx context.Context, sentenceID uuid.UUID, url string) error
}

type wordRepo interface {
	ListByTextWithoutAudio(ctx context.Context, textID uuid.UUID) ([]domain.Word, error)
	SetAudioURL(ctx context.Context, wordID uuid.UUID, url string) error
}

type objectStore interface {
	Put(ctx context.Context, key string, data []byte) (string, error)
}

// Worker drains the audio queue and renders speech for every sentence
// and word of a text that does not have audio yet. Renders are
// idempotent: a re-enqueued text only fills in what is missing.
type Worker struct {
	queue       *Queue
	texts       textRepo
	sentences   sentenceRepo
	words       wordRepo
	store       objectStore
	synthesizer Synthesizer
	voice       string
	pollTimeout time.Duration
	log         *slog.Logger
}

type WorkerDeps struct {
	Queue       *Queue
	Texts       textRepo
	Sentences   sentenceRepo
	Words       wordRepo
	Store       objectStore
	Synthesizer Synthesizer
	Voice       string
	PollTimeout time.Duration
	Logger      *slog.Logger
}

func NewWorker(deps WorkerDeps) *Worker {
	if deps.PollTimeout <= 0 {
		deps.PollTimeout = 5 * time.Second
	}
	return &Worker{
		queue:       deps.Queue,
		texts:       deps.Texts,
		sentences:   deps.Sentences,
		words:       deps.Words,
		store:       deps.Store,
		synthesizer: deps.Synthesizer,
		voice:       deps.Voice,
		pollTimeout: deps.PollTimeout,
		log:         deps.Logger,
	}
}

// Run blocks, processing jobs until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	w.log.Info("audio worker started")
	for {
		if ctx.Err() != nil {
			w.log.Info("audio worker stopped")
			return
		}

		job, err := w.queue.Dequeue(ctx, w.pollTimeout)
		if err != nil {
			if errors.Is(err, ErrQueueEmpty) || errors.Is(err, context.Canceled) {
				continue
			}
			w.log.Error("dequeue audio job", "error", err)
			continue
		}

		if err := w.Process(ctx, job); err != nil {
			w.log.Error("process audio job", "text_id", job.TextID, "error", err)
		}
	}
}

// Process renders audio for one text and moves its status to completed,
// or failed if anything went wrong.
func (w *Worker) Process(ctx context.Context, job Job) error {
	text, err := w.texts.Get(ctx, job.TextID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Text was deleted between enqueue and processing.
			w.log.Info("skipping audio job for deleted text", "text_id", job.TextID)
			return nil
		}
		return fmt.Errorf("load text: %w", err)
	}

	if err := w.texts.UpdateAudioStatus(ctx, text.ID, domain.AudioStatusProcessing); err != nil {
		return fmt.Errorf("mark processing: %w", err)
	}

	if err := w.render(ctx, text); err != nil {
		if statusErr := w.texts.UpdateAudioStatus(ctx, text.ID, domain.AudioStatusFailed); statusErr != nil {
			w.log.Error("mark audio failed", "text_id", text.ID, "error", statusErr)
		}
		return err
	}

	if err := w.texts.UpdateAudioStatus(ctx, text.ID, domain.AudioStatusCompleted); err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}

	w.log.Info("audio rendered", "text_id", text.ID)
	return nil
}

func (w *Worker) render(ctx context.Context, text domain.Text) error {
	sentences, err := w.sentences.ListWithoutAudio(ctx, text.ID)
	if err != nil {
		return fmt.Errorf("list sentences without audio: %w", err)
	}
	for _, s := range sentences {
		url, err := w.renderUtterance(ctx, s.SourceSentence, text.SourceLanguage)
		if err != nil {
			return fmt.Errorf("render sentence %s: %w", s.ID, err)
		}
		if err := w.sentences.SetAudioURL(ctx, s.ID, url); err != nil {
			return fmt.Errorf("store sentence audio url: %w", err)
		}
	}

	words, err := w.words.ListByTextWithoutAudio(ctx, text.ID)
	if err != nil {
		return fmt.Errorf("list words without audio: %w", err)
	}
	for _, word := range words {
		url, err := w.renderUtterance(ctx, word.SourceWord, text.SourceLanguage)
		if err != nil {
			return fmt.Errorf("render word %s: %w", word.ID, err)
		}
		if err := w.words.SetAudioURL(ctx, word.ID, url); err != nil {
			return fmt.Errorf("store word audio url: %w", err)
		}
	}

	return nil
}

func (w *Worker) renderUtterance(ctx context.Context, text, language string) (string, error) {
	data, err := w.synthesizer.Synthesize(ctx, text, language, w.voice)
	if err != nil {
		return "", err
	}
	return w.store.Put(ctx, ObjectKey(text, w.voice), data)
}
