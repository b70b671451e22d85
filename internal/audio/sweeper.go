package audio

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"

	"github.com/lingosteps/backend/internal/domain"
)

type stuckTextRepo interface {
	ListStuckProcessing(ctx context.Context, cutoff time.Time) ([]domain.Text, error)
	UpdateAudioStatus(ctx context.Context, textID uuid.UUID, status domain.AudioStatus) error
}

// Sweeper periodically fails texts that got stuck in the processing
// state, typically after a worker crash mid-job. A failed text can be
// re-enqueued by the user.
type Sweeper struct {
	scheduler *gocron.Scheduler
	texts     stuckTextRepo
	maxAge    time.Duration
	interval  time.Duration
	log       *slog.Logger
}

func NewSweeper(texts stuckTextRepo, maxAge, interval time.Duration, log *slog.Logger) *Sweeper {
	return &Sweeper{
		scheduler: gocron.NewScheduler(time.UTC),
		texts:     texts,
		maxAge:    maxAge,
		interval:  interval,
		log:       log,
	}
}

// Start schedules the sweep and returns immediately.
func (s *Sweeper) Start(ctx context.Context) error {
	_, err := s.scheduler.Every(s.interval).Do(func() {
		if err := s.sweep(ctx); err != nil {
			s.log.Error("sweep stuck audio jobs", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule audio sweeper: %w", err)
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Sweeper) Stop() {
	s.scheduler.Stop()
}

func (s *Sweeper) sweep(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-s.maxAge)

	stuck, err := s.texts.ListStuckProcessing(ctx, cutoff)
	if err != nil {
		return err
	}

	for _, t := range stuck {
		if err := s.texts.UpdateAudioStatus(ctx, t.ID, domain.AudioStatusFailed); err != nil {
			s.log.Error("fail stuck text", "text_id", t.ID, "error", err)
			continue
		}
		s.log.Warn("failed stuck audio job", "text_id", t.ID)
	}

	return nil
}
