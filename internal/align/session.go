package align

import (
	"sync"

	"github.com/google/uuid"
)

// Session tracks which expected words already earned credit while a
// user retries the same sentence, so a repeated attempt never awards a
// completion for the same word twice. Safe for concurrent use.
type Session struct {
	mu         sync.Mutex
	sentenceID uuid.UUID
	credited   map[uuid.UUID]struct{}
}

func NewSession() *Session {
	return &Session{credited: make(map[uuid.UUID]struct{})}
}

// Filter returns the word ids from results that should be credited
// now: words graded correct that were not credited earlier in this
// session. Near misses do not earn credit. Switching to another
// sentence resets the session.
func (s *Session) Filter(sentenceID uuid.UUID, results []Result) []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sentenceID != sentenceID {
		s.sentenceID = sentenceID
		s.credited = make(map[uuid.UUID]struct{})
	}

	ids := make([]uuid.UUID, 0, len(results))
	for _, r := range results {
		if r.Matched == nil || r.Status != StatusCorrect {
			continue
		}
		if _, ok := s.credited[*r.Matched]; ok {
			continue
		}
		s.credited[*r.Matched] = struct{}{}
		ids = append(ids, *r.Matched)
	}
	return ids
}
