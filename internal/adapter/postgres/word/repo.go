// Package word implements the vocabulary Word repository using PostgreSQL.
package word

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/lingosteps/backend/internal/adapter/postgres"
	"github.com/lingosteps/backend/internal/domain"
)

// Repo provides word persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new word repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const upsertSQL = `
INSERT INTO words (id, user_id, source_word, target_word, source_language, target_language, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (user_id, source_word, source_language, target_language) DO NOTHING
RETURNING id`

const selectExistingSQL = `
SELECT id FROM words
WHERE user_id = $1 AND source_word = $2 AND source_language = $3 AND target_language = $4`

const getByIDSQL = `
SELECT id, user_id, source_word, target_word, source_language, target_language, audio_url, created_at
FROM words
WHERE id = $1 AND user_id = $2`

// Punctuation-only tokens are stored for sentence reconstruction but are
// not vocabulary, hence the alnum predicate here and in listKnownSQL.
const listStatsSQL = `
SELECT w.id, w.user_id, w.source_word, w.target_word, w.source_language, w.target_language,
       w.audio_url, w.created_at,
       (SELECT count(DISTINCT s.text_id)
        FROM sentence_words sw
        JOIN sentences s ON s.id = sw.sentence_id
        WHERE sw.word_id = w.id) AS occurrence_count,
       (SELECT count(*) FROM completions c WHERE c.word_id = w.id) AS completion_count
FROM words w
WHERE w.user_id = $1 AND w.source_word ~ '[[:alnum:]]'
ORDER BY occurrence_count DESC, w.source_word ASC`

const listKnownSQL = `
SELECT DISTINCT source_word
FROM words
WHERE user_id = $1 AND source_language = $2 AND source_word ~ '[[:alnum:]]'
ORDER BY source_word
LIMIT $3`

const setAudioURLSQL = `
UPDATE words SET audio_url = $2
WHERE id = $1`

const listByTextWithoutAudioSQL = `
SELECT DISTINCT w.id, w.user_id, w.source_word, w.target_word, w.source_language, w.target_language,
       w.audio_url, w.created_at
FROM words w
JOIN sentence_words sw ON sw.word_id = w.id
JOIN sentences s ON s.id = sw.sentence_id
WHERE s.text_id = $1 AND w.audio_url IS NULL AND w.source_word ~ '[[:alnum:]]'`

// GetOrCreate upserts a vocabulary word and returns its id. A concurrent
// insert of the same word resolves via the unique constraint: the insert
// is ignored and the existing row is re-read.
func (r *Repo) GetOrCreate(ctx context.Context, w domain.Word) (uuid.UUID, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	id := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)

	var got uuid.UUID
	err := q.QueryRow(ctx, upsertSQL,
		id, w.UserID, w.SourceWord, w.TargetWord, w.SourceLanguage, w.TargetLanguage, now).Scan(&got)
	if err == nil {
		return got, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, postgres.MapError(err, "word", id)
	}

	// Conflict: the word already exists for this user and language pair.
	err = q.QueryRow(ctx, selectExistingSQL,
		w.UserID, w.SourceWord, w.SourceLanguage, w.TargetLanguage).Scan(&got)
	if err != nil {
		return uuid.Nil, postgres.MapError(err, "word", uuid.Nil)
	}

	return got, nil
}

// GetByID returns a word by primary key filtered by user_id. A word owned
// by another user is indistinguishable from an absent one.
func (r *Repo) GetByID(ctx context.Context, userID, wordID uuid.UUID) (domain.Word, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	w, err := scanWord(q.QueryRow(ctx, getByIDSQL, wordID, userID))
	if err != nil {
		return domain.Word{}, postgres.MapError(err, "word", wordID)
	}

	return w, nil
}

// ListStats returns all of a user's words annotated with cross-text
// occurrence counts and completion counts, ordered by occurrence count
// descending then source word ascending.
func (r *Repo) ListStats(ctx context.Context, userID uuid.UUID) ([]domain.WordStats, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listStatsSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list word stats: %w", err)
	}
	defer rows.Close()

	var stats []domain.WordStats
	for rows.Next() {
		var ws domain.WordStats
		if err := rows.Scan(&ws.ID, &ws.UserID, &ws.SourceWord, &ws.TargetWord,
			&ws.SourceLanguage, &ws.TargetLanguage, &ws.AudioURL, &ws.CreatedAt,
			&ws.OccurrenceCount, &ws.CompletionCount); err != nil {
			return nil, fmt.Errorf("scan word stats: %w", err)
		}
		stats = append(stats, ws)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate word stats: %w", err)
	}

	if stats == nil {
		stats = []domain.WordStats{}
	}

	return stats, nil
}

// ListKnown returns the user's distinct source words for a language,
// capped at limit.
func (r *Repo) ListKnown(ctx context.Context, userID uuid.UUID, sourceLanguage string, limit int) ([]string, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listKnownSQL, userID, sourceLanguage, limit)
	if err != nil {
		return nil, fmt.Errorf("list known words: %w", err)
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("scan known word: %w", err)
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate known words: %w", err)
	}

	if words == nil {
		words = []string{}
	}

	return words, nil
}

// SetAudioURL records the synthesized audio reference for a word.
func (r *Repo) SetAudioURL(ctx context.Context, wordID uuid.UUID, url string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, setAudioURLSQL, wordID, url)
	if err != nil {
		return postgres.MapError(err, "word", wordID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("word %s: %w", wordID, domain.ErrNotFound)
	}

	return nil
}

// ListByTextWithoutAudio returns the distinct words of a text that still
// lack audio. Used by the audio worker.
func (r *Repo) ListByTextWithoutAudio(ctx context.Context, textID uuid.UUID) ([]domain.Word, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listByTextWithoutAudioSQL, textID)
	if err != nil {
		return nil, fmt.Errorf("list words without audio: %w", err)
	}
	defer rows.Close()

	var words []domain.Word
	for rows.Next() {
		w, err := scanWordFromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate words: %w", err)
	}

	if words == nil {
		words = []domain.Word{}
	}

	return words, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWord(row rowScanner) (domain.Word, error) {
	var w domain.Word
	if err := row.Scan(&w.ID, &w.UserID, &w.SourceWord, &w.TargetWord,
		&w.SourceLanguage, &w.TargetLanguage, &w.AudioURL, &w.CreatedAt); err != nil {
		return domain.Word{}, err
	}
	return w, nil
}

func scanWordFromRows(rows pgx.Rows) (domain.Word, error) {
	return scanWord(rows)
}
