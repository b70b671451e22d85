package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lingosteps/backend/internal/domain"
)

// SeedUser inserts a user with a unique email and returns it.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()

	u := domain.User{
		ID:           uuid.New(),
		Email:        "u-" + uuid.New().String()[:8] + "@example.com",
		PasswordHash: "x",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, email, password_hash, created_at) VALUES ($1, $2, $3, $4)`,
		u.ID, u.Email, u.PasswordHash, u.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: seed user: %v", err)
	}

	return u
}

// SeedText inserts a text owned by userID and returns it.
func SeedText(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) domain.Text {
	t.Helper()

	tx := domain.Text{
		ID:             uuid.New(),
		UserID:         userID,
		Body:           "Hola mundo.",
		SourceLanguage: "es",
		TargetLanguage: "en",
		AudioStatus:    domain.AudioStatusPending,
		CreatedAt:      time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO texts (id, user_id, body, source_language, target_language, audio_status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		tx.ID, tx.UserID, tx.Body, tx.SourceLanguage, tx.TargetLanguage, string(tx.AudioStatus), tx.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: seed text: %v", err)
	}

	return tx
}

// SeedSentence inserts a sentence of textID at the given order.
func SeedSentence(t *testing.T, pool *pgxpool.Pool, textID uuid.UUID, order int) domain.Sentence {
	t.Helper()

	s := domain.Sentence{
		ID:             uuid.New(),
		TextID:         textID,
		OrderInText:    order,
		SourceSentence: "Hola mundo.",
		TargetSentence: "Hello world.",
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO sentences (id, text_id, order_in_text, source_sentence, target_sentence)
		 VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.TextID, s.OrderInText, s.SourceSentence, s.TargetSentence)
	if err != nil {
		t.Fatalf("testhelper: seed sentence: %v", err)
	}

	return s
}

// SeedWord inserts a vocabulary word for userID and returns it.
func SeedWord(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, source, target string) domain.Word {
	t.Helper()

	w := domain.Word{
		ID:             uuid.New(),
		UserID:         userID,
		SourceWord:     source,
		TargetWord:     target,
		SourceLanguage: "es",
		TargetLanguage: "en",
		CreatedAt:      time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO words (id, user_id, source_word, target_word, source_language, target_language, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		w.ID, w.UserID, w.SourceWord, w.TargetWord, w.SourceLanguage, w.TargetLanguage, w.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: seed word: %v", err)
	}

	return w
}

// SeedLink inserts a sentence_words row linking wordID into sentenceID.
func SeedLink(t *testing.T, pool *pgxpool.Pool, sentenceID, wordID uuid.UUID, order int) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO sentence_words (id, sentence_id, word_id, order_in_sentence)
		 VALUES ($1, $2, $3, $4)`,
		uuid.New(), sentenceID, wordID, order)
	if err != nil {
		t.Fatalf("testhelper: seed sentence_word: %v", err)
	}
}

// SeedCompletion inserts a completion for wordID at the given time.
func SeedCompletion(t *testing.T, pool *pgxpool.Pool, wordID uuid.UUID, method domain.CompletionMethod, at time.Time) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO completions (id, word_id, method, completed_at) VALUES ($1, $2, $3, $4)`,
		uuid.New(), wordID, string(method), at)
	if err != nil {
		t.Fatalf("testhelper: seed completion: %v", err)
	}
}
