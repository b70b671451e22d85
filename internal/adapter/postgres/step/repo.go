// Package step implements the per-text step-completion repository using
// PostgreSQL.
package step

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/lingosteps/backend/internal/adapter/postgres"
)

// Repo provides step-completion persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new step-completion repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Re-marking a step hits the (text, step, user) primary key and is
// silently absorbed.
const upsertSQL = `
INSERT INTO text_step_completions (text_id, step_number, user_id, completed_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (text_id, step_number, user_id) DO NOTHING`

const listStepsSQL = `
SELECT step_number
FROM text_step_completions
WHERE text_id = $1 AND user_id = $2
ORDER BY step_number`

const countByTextsSQL = `
SELECT text_id, count(*)
FROM text_step_completions
WHERE user_id = $1 AND text_id = ANY($2::uuid[])
GROUP BY text_id`

const resetSQL = `
DELETE FROM text_step_completions
WHERE text_id = $1 AND user_id = $2`

// Upsert marks a step complete. Idempotent: marking an already-complete
// step succeeds without creating a second row.
func (r *Repo) Upsert(ctx context.Context, textID uuid.UUID, stepNumber int, userID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	if _, err := q.Exec(ctx, upsertSQL, textID, stepNumber, userID, now); err != nil {
		return postgres.MapError(err, "step completion", textID)
	}

	return nil
}

// ListSteps returns the sorted completed step numbers for a (text, user)
// pair; empty if none.
func (r *Repo) ListSteps(ctx context.Context, textID, userID uuid.UUID) ([]int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listStepsSQL, textID, userID)
	if err != nil {
		return nil, fmt.Errorf("list steps: %w", err)
	}
	defer rows.Close()

	var steps []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		steps = append(steps, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate steps: %w", err)
	}

	if steps == nil {
		steps = []int{}
	}

	return steps, nil
}

// CountByTexts returns a map from text id to completed-step count for the
// supplied ids. Texts with zero completions are absent from the map.
func (r *Repo) CountByTexts(ctx context.Context, userID uuid.UUID, textIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	if len(textIDs) == 0 {
		return map[uuid.UUID]int{}, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, countByTextsSQL, userID, textIDs)
	if err != nil {
		return nil, fmt.Errorf("count steps by texts: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int, len(textIDs))
	for rows.Next() {
		var (
			id uuid.UUID
			n  int
		)
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan step count: %w", err)
		}
		counts[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate step counts: %w", err)
	}

	return counts, nil
}

// Reset deletes all step completions for a (text, user) pair. Resetting
// an already-empty set succeeds.
func (r *Repo) Reset(ctx context.Context, textID, userID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, resetSQL, textID, userID); err != nil {
		return postgres.MapError(err, "step completion", textID)
	}

	return nil
}
