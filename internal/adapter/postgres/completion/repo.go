// Package completion implements the word-practice Completion repository
// using PostgreSQL.
package completion

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/lingosteps/backend/internal/adapter/postgres"
	"github.com/lingosteps/backend/internal/domain"
)

// Repo provides completion persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new completion repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createSQL = `
INSERT INTO completions (id, word_id, method, completed_at)
VALUES ($1, $2, $3, $4)`

// Days with at least one completion, grouped by the user's local calendar
// date. completed_at is timestamptz; AT TIME ZONE yields the local wall
// clock before the date cast.
const dayCountsSQL = `
SELECT (c.completed_at AT TIME ZONE $2)::date AS day, count(*)
FROM completions c
JOIN words w ON w.id = c.word_id
WHERE w.user_id = $1
GROUP BY day
ORDER BY day DESC
LIMIT $3`

const totalSQL = `
SELECT count(*)
FROM completions c
JOIN words w ON w.id = c.word_id
WHERE w.user_id = $1`

// Create appends one practice event. Ownership of the word must already
// be verified by the caller; the log itself has no user column.
func (r *Repo) Create(ctx context.Context, c domain.Completion) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CompletedAt.IsZero() {
		c.CompletedAt = time.Now().UTC().Truncate(time.Microsecond)
	}
	if c.Method == "" {
		c.Method = domain.MethodWriting
	}

	if _, err := q.Exec(ctx, createSQL, c.ID, c.WordID, string(c.Method), c.CompletedAt); err != nil {
		return postgres.MapError(err, "completion", c.ID)
	}

	return nil
}

// DayCounts returns per-local-day completion counts, most recent day
// first, limited to lastNDays rows. Days without completions are absent.
func (r *Repo) DayCounts(ctx context.Context, userID uuid.UUID, timezone string, lastNDays int) ([]domain.DayCompletionCount, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, dayCountsSQL, userID, timezone, lastNDays)
	if err != nil {
		return nil, fmt.Errorf("day counts: %w", err)
	}
	defer rows.Close()

	var counts []domain.DayCompletionCount
	for rows.Next() {
		var dc domain.DayCompletionCount
		if err := rows.Scan(&dc.Date, &dc.Count); err != nil {
			return nil, fmt.Errorf("scan day count: %w", err)
		}
		counts = append(counts, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate day counts: %w", err)
	}

	if counts == nil {
		counts = []domain.DayCompletionCount{}
	}

	return counts, nil
}

// Total returns the number of completion rows across the user's words.
func (r *Repo) Total(ctx context.Context, userID uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := q.QueryRow(ctx, totalSQL, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("total completions: %w", err)
	}

	return count, nil
}
