// Package text implements the Text repository using PostgreSQL.
package text

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/lingosteps/backend/internal/adapter/postgres"
	"github.com/lingosteps/backend/internal/domain"
)

// Repo provides text persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new text repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createSQL = `
INSERT INTO texts (id, user_id, body, source_language, target_language,
                   prompt_tokens, completion_tokens, total_tokens, audio_status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

const getByIDSQL = `
SELECT id, user_id, body, source_language, target_language,
       prompt_tokens, completion_tokens, total_tokens, audio_status, created_at
FROM texts
WHERE id = $1 AND user_id = $2`

const getSQL = `
SELECT id, user_id, body, source_language, target_language,
       prompt_tokens, completion_tokens, total_tokens, audio_status, created_at
FROM texts
WHERE id = $1`

const listByUserSQL = `
SELECT id, user_id, body, source_language, target_language,
       prompt_tokens, completion_tokens, total_tokens, audio_status, created_at
FROM texts
WHERE user_id = $1
ORDER BY created_at DESC`

const deleteSQL = `
DELETE FROM texts
WHERE id = $1 AND user_id = $2`

const updateAudioStatusSQL = `
UPDATE texts SET audio_status = $2, audio_status_at = now()
WHERE id = $1`

// Stuck detection keys on when the text entered processing, not when it
// was created, so a late re-enqueue gets its full grace period.
const listStuckProcessingSQL = `
SELECT id, user_id, body, source_language, target_language,
       prompt_tokens, completion_tokens, total_tokens, audio_status, created_at
FROM texts
WHERE audio_status = 'processing' AND audio_status_at < $1`

// Create inserts a new text row.
func (r *Repo) Create(ctx context.Context, t domain.Text) (domain.Text, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}
	if t.AudioStatus == "" {
		t.AudioStatus = domain.AudioStatusPending
	}

	_, err := q.Exec(ctx, createSQL,
		t.ID, t.UserID, t.Body, t.SourceLanguage, t.TargetLanguage,
		t.Usage.Prompt, t.Usage.Completion, t.Usage.Total, string(t.AudioStatus), t.CreatedAt)
	if err != nil {
		return domain.Text{}, postgres.MapError(err, "text", t.ID)
	}

	return t, nil
}

// GetByID returns a text by primary key filtered by user_id. A text owned
// by another user is indistinguishable from an absent one.
func (r *Repo) GetByID(ctx context.Context, userID, textID uuid.UUID) (domain.Text, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	t, err := scanText(q.QueryRow(ctx, getByIDSQL, textID, userID))
	if err != nil {
		return domain.Text{}, postgres.MapError(err, "text", textID)
	}

	return t, nil
}

// Get returns a text by primary key regardless of owner. Reserved for
// the background audio worker; request handlers go through GetByID.
func (r *Repo) Get(ctx context.Context, textID uuid.UUID) (domain.Text, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	t, err := scanText(q.QueryRow(ctx, getSQL, textID))
	if err != nil {
		return domain.Text{}, postgres.MapError(err, "text", textID)
	}

	return t, nil
}

// ListByUser returns the user's texts, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Text, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list texts: %w", err)
	}
	defer rows.Close()

	texts, err := scanTexts(rows)
	if err != nil {
		return nil, fmt.Errorf("list texts: %w", err)
	}

	return texts, nil
}

// Delete removes a text. Sentences and sentence_words go with it via
// FK cascade; words are never touched.
// Returns domain.ErrNotFound if the text does not exist or belongs to
// another user.
func (r *Repo) Delete(ctx context.Context, userID, textID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteSQL, textID, userID)
	if err != nil {
		return postgres.MapError(err, "text", textID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("text %s: %w", textID, domain.ErrNotFound)
	}

	return nil
}

// UpdateAudioStatus sets the audio pipeline status of a text.
// Not filtered by user: the background worker owns this transition.
func (r *Repo) UpdateAudioStatus(ctx context.Context, textID uuid.UUID, status domain.AudioStatus) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, updateAudioStatusSQL, textID, string(status))
	if err != nil {
		return postgres.MapError(err, "text", textID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("text %s: %w", textID, domain.ErrNotFound)
	}

	return nil
}

// ListStuckProcessing returns texts that have been in the processing state
// since before the cutoff. Used by the reconciliation sweeper.
func (r *Repo) ListStuckProcessing(ctx context.Context, cutoff time.Time) ([]domain.Text, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listStuckProcessingSQL, cutoff)
	if err != nil {
		return nil, fmt.Errorf("list stuck texts: %w", err)
	}
	defer rows.Close()

	texts, err := scanTexts(rows)
	if err != nil {
		return nil, fmt.Errorf("list stuck texts: %w", err)
	}

	return texts, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

type rowScanner interface {
	Scan(dest ...any) error
}

func scanText(row rowScanner) (domain.Text, error) {
	var (
		t      domain.Text
		status string
	)
	if err := row.Scan(&t.ID, &t.UserID, &t.Body, &t.SourceLanguage, &t.TargetLanguage,
		&t.Usage.Prompt, &t.Usage.Completion, &t.Usage.Total, &status, &t.CreatedAt); err != nil {
		return domain.Text{}, err
	}
	t.AudioStatus = domain.AudioStatus(status)
	return t, nil
}

func scanTexts(rows pgx.Rows) ([]domain.Text, error) {
	var texts []domain.Text
	for rows.Next() {
		t, err := scanText(rows)
		if err != nil {
			return nil, err
		}
		texts = append(texts, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if texts == nil {
		texts = []domain.Text{}
	}

	return texts, nil
}
