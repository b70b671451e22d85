// Package sentence implements the Sentence and SentenceWord repositories
// using PostgreSQL. The reconstruction JOIN lives here because link rows
// have no life of their own outside a sentence.
package sentence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/lingosteps/backend/internal/adapter/postgres"
	"github.com/lingosteps/backend/internal/domain"
)

// Repo provides sentence persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new sentence repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const insertSentenceSQL = `
INSERT INTO sentences (id, text_id, order_in_text, source_sentence, target_sentence, audio_url)
VALUES ($1, $2, $3, $4, $5, $6)`

const insertLinkSQL = `
INSERT INTO sentence_words (id, sentence_id, word_id, order_in_sentence)
VALUES ($1, $2, $3, $4)`

const listByTextSQL = `
SELECT id, text_id, order_in_text, source_sentence, target_sentence, audio_url
FROM sentences
WHERE text_id = $1
ORDER BY order_in_text`

const getByIDSQL = `
SELECT s.id, s.text_id, s.order_in_text, s.source_sentence, s.target_sentence, s.audio_url
FROM sentences s
JOIN texts t ON t.id = s.text_id
WHERE s.id = $1 AND t.user_id = $2`

const listAlignmentSQL = `
SELECT sw.sentence_id, sw.order_in_sentence, w.id, w.source_word, w.target_word, w.audio_url,
       (SELECT count(DISTINCT s2.text_id)
        FROM sentence_words sw2
        JOIN sentences s2 ON s2.id = sw2.sentence_id
        WHERE sw2.word_id = w.id) AS occurrence_count
FROM sentence_words sw
JOIN words w ON w.id = sw.word_id
JOIN sentences s ON s.id = sw.sentence_id
WHERE s.text_id = $1
ORDER BY s.order_in_text, sw.order_in_sentence`

const listAlignmentBySentenceSQL = `
SELECT sw.sentence_id, sw.order_in_sentence, w.id, w.source_word, w.target_word, w.audio_url,
       0 AS occurrence_count
FROM sentence_words sw
JOIN words w ON w.id = sw.word_id
WHERE sw.sentence_id = $1
ORDER BY sw.order_in_sentence`

const setAudioURLSQL = `
UPDATE sentences SET audio_url = $2
WHERE id = $1`

const listWithoutAudioSQL = `
SELECT id, text_id, order_in_text, source_sentence, target_sentence, audio_url
FROM sentences
WHERE text_id = $1 AND audio_url IS NULL
ORDER BY order_in_text`

// CreateBatch inserts a sentence together with its word links in one
// round trip. Link order must already be 1-based and gap-free; the unique
// constraint on (sentence_id, order_in_sentence) enforces it.
func (r *Repo) CreateBatch(ctx context.Context, s domain.Sentence, links []domain.SentenceWord) (domain.Sentence, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	batch := &pgx.Batch{}
	batch.Queue(insertSentenceSQL, s.ID, s.TextID, s.OrderInText, s.SourceSentence, s.TargetSentence, s.AudioURL)
	for _, link := range links {
		id := link.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		batch.Queue(insertLinkSQL, id, s.ID, link.WordID, link.OrderInSentence)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < 1+len(links); i++ {
		if _, err := results.Exec(); err != nil {
			return domain.Sentence{}, postgres.MapError(err, "sentence", s.ID)
		}
	}

	return s, nil
}

// ListByText returns a text's sentences ordered by their position.
func (r *Repo) ListByText(ctx context.Context, textID uuid.UUID) ([]domain.Sentence, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listByTextSQL, textID)
	if err != nil {
		return nil, fmt.Errorf("list sentences: %w", err)
	}
	defer rows.Close()

	sentences, err := scanSentences(rows)
	if err != nil {
		return nil, fmt.Errorf("list sentences: %w", err)
	}

	return sentences, nil
}

// GetByID returns a sentence filtered by the owning user of its text.
func (r *Repo) GetByID(ctx context.Context, userID, sentenceID uuid.UUID) (domain.Sentence, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	s, err := scanSentence(q.QueryRow(ctx, getByIDSQL, sentenceID, userID))
	if err != nil {
		return domain.Sentence{}, postgres.MapError(err, "sentence", sentenceID)
	}

	return s, nil
}

// ListAlignment returns every word occurrence of a text joined with its
// vocabulary row, ordered by sentence position then word position. The
// occurrence count is the number of distinct texts (any of the corpus)
// containing the word.
func (r *Repo) ListAlignment(ctx context.Context, textID uuid.UUID) ([]domain.AlignedWord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listAlignmentSQL, textID)
	if err != nil {
		return nil, fmt.Errorf("list alignment: %w", err)
	}
	defer rows.Close()

	words, err := scanAlignedWords(rows)
	if err != nil {
		return nil, fmt.Errorf("list alignment: %w", err)
	}

	return words, nil
}

// ListAlignmentBySentence returns one sentence's word occurrences in
// order. Occurrence counts are not computed on this path.
func (r *Repo) ListAlignmentBySentence(ctx context.Context, sentenceID uuid.UUID) ([]domain.AlignedWord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listAlignmentBySentenceSQL, sentenceID)
	if err != nil {
		return nil, fmt.Errorf("list sentence alignment: %w", err)
	}
	defer rows.Close()

	words, err := scanAlignedWords(rows)
	if err != nil {
		return nil, fmt.Errorf("list sentence alignment: %w", err)
	}

	return words, nil
}

// SetAudioURL records the synthesized audio reference for a sentence.
func (r *Repo) SetAudioURL(ctx context.Context, sentenceID uuid.UUID, url string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, setAudioURLSQL, sentenceID, url)
	if err != nil {
		return postgres.MapError(err, "sentence", sentenceID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sentence %s: %w", sentenceID, domain.ErrNotFound)
	}

	return nil
}

// ListWithoutAudio returns a text's sentences that still lack audio.
func (r *Repo) ListWithoutAudio(ctx context.Context, textID uuid.UUID) ([]domain.Sentence, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listWithoutAudioSQL, textID)
	if err != nil {
		return nil, fmt.Errorf("list sentences without audio: %w", err)
	}
	defer rows.Close()

	sentences, err := scanSentences(rows)
	if err != nil {
		return nil, fmt.Errorf("list sentences without audio: %w", err)
	}

	return sentences, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSentence(row rowScanner) (domain.Sentence, error) {
	var s domain.Sentence
	if err := row.Scan(&s.ID, &s.TextID, &s.OrderInText, &s.SourceSentence, &s.TargetSentence, &s.AudioURL); err != nil {
		return domain.Sentence{}, err
	}
	return s, nil
}

func scanSentences(rows pgx.Rows) ([]domain.Sentence, error) {
	var sentences []domain.Sentence
	for rows.Next() {
		s, err := scanSentence(rows)
		if err != nil {
			return nil, err
		}
		sentences = append(sentences, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if sentences == nil {
		sentences = []domain.Sentence{}
	}

	return sentences, nil
}

func scanAlignedWords(rows pgx.Rows) ([]domain.AlignedWord, error) {
	var words []domain.AlignedWord
	for rows.Next() {
		var w domain.AlignedWord
		if err := rows.Scan(&w.SentenceID, &w.OrderInSentence, &w.WordID,
			&w.SourceWord, &w.TargetWord, &w.AudioURL, &w.OccurrenceCount); err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if words == nil {
		words = []domain.AlignedWord{}
	}

	return words, nil
}
