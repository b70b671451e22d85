package completion

import (
	"context"
	"fmt"
	"time"

	"github.com/lingosteps/backend/internal/domain"
	"github.com/lingosteps/backend/pkg/ctxutil"
)

// statsWindowDays bounds how far back the per-day histogram reaches.
const statsWindowDays = 365

// Stats is the practice dashboard: per-day counts, the current streak
// and the all-time total.
type Stats struct {
	Days   []domain.DayCompletionCount
	Streak int
	Total  int
}

// GetStats builds the practice statistics in the user's timezone. An
// unknown timezone falls back to UTC rather than failing the request.
func (s *Service) GetStats(ctx context.Context, timezone string) (Stats, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return Stats{}, domain.ErrUnauthorized
	}

	loc := ParseTimezone(timezone)

	days, err := s.completions.DayCounts(ctx, userID, loc.String(), statsWindowDays)
	if err != nil {
		return Stats{}, fmt.Errorf("completion.GetStats day counts: %w", err)
	}

	total, err := s.completions.Total(ctx, userID)
	if err != nil {
		return Stats{}, fmt.Errorf("completion.GetStats total: %w", err)
	}

	return Stats{
		Days:   days,
		Streak: calculateStreak(days, time.Now().In(loc)),
		Total:  total,
	}, nil
}

// ParseTimezone parses an IANA timezone name, returning UTC as fallback.
func ParseTimezone(tz string) *time.Location {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

// calculateStreak calculates the current practice streak in days.
// days must be sorted DESC by date (most recent first).
// Returns the number of consecutive days with completions, starting
// from today or yesterday: an empty today does not break the streak
// until the day is over.
func calculateStreak(days []domain.DayCompletionCount, today time.Time) int {
	if len(days) == 0 {
		return 0
	}

	sameDay := func(a, b time.Time) bool {
		return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
	}

	expected := today
	if !sameDay(days[0].Date, today) {
		expected = today.AddDate(0, 0, -1)
	}

	streak := 0
	for _, d := range days {
		if !sameDay(d.Date, expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}

	return streak
}
