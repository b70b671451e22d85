// Package practice implements the speaking and cloze exercises on top
// of the word-comparison engine.
package practice

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/lingosteps/backend/internal/align"
	"github.com/lingosteps/backend/internal/domain"
)

type sentenceRepo interface {
	GetByID(ctx context.Context, userID, sentenceID uuid.UUID) (domain.Sentence, error)
	ListAlignmentBySentence(ctx context.Context, sentenceID uuid.UUID) ([]domain.AlignedWord, error)
}

type wordRepo interface {
	GetByID(ctx context.Context, userID, wordID uuid.UUID) (domain.Word, error)
}

type completionRecorder interface {
	RecordBatch(ctx context.Context, wordIDs []uuid.UUID, method domain.CompletionMethod) error
}

// Service implements the practice business logic. It keeps one
// in-memory speaking session per user so that retrying a sentence does
// not double-count the words already credited.
type Service struct {
	log         *slog.Logger
	sentences   sentenceRepo
	words       wordRepo
	completions completionRecorder

	mu       sync.Mutex
	sessions map[uuid.UUID]*align.Session
}

// NewService creates a new Practice service.
func NewService(logger *slog.Logger, sentences sentenceRepo, words wordRepo, completions completionRecorder) *Service {
	return &Service{
		log:         logger.With("service", "practice"),
		sentences:   sentences,
		words:       words,
		completions: completions,
		sessions:    make(map[uuid.UUID]*align.Session),
	}
}

func (s *Service) session(userID uuid.UUID) *align.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		sess = align.NewSession()
		s.sessions[userID] = sess
	}
	return sess
}
