package word_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lingosteps/backend/internal/adapter/postgres/testhelper"
	"github.com/lingosteps/backend/internal/adapter/postgres/word"
	"github.com/lingosteps/backend/internal/domain"
)

func newRepo(t *testing.T) (*word.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return word.New(pool), pool
}

func buildWord(userID uuid.UUID, source, target string) domain.Word {
	return domain.Word{
		UserID:         userID,
		SourceWord:     source,
		TargetWord:     target,
		SourceLanguage: "es",
		TargetLanguage: "en",
	}
}

func TestRepo_GetOrCreate_New(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)

	id, err := repo.GetOrCreate(ctx, buildWord(user.ID, "hola", "hello"))
	if err != nil {
		t.Fatalf("GetOrCreate: unexpected error: %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("GetOrCreate: returned nil id")
	}

	got, err := repo.GetByID(ctx, user.ID, id)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}
	if got.SourceWord != "hola" || got.TargetWord != "hello" {
		t.Errorf("word mismatch: got %q/%q", got.SourceWord, got.TargetWord)
	}
}

func TestRepo_GetOrCreate_DuplicateReturnsSameID(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)

	first, err := repo.GetOrCreate(ctx, buildWord(user.ID, "gato", "cat"))
	if err != nil {
		t.Fatalf("first GetOrCreate: %v", err)
	}

	second, err := repo.GetOrCreate(ctx, buildWord(user.ID, "gato", "cat"))
	if err != nil {
		t.Fatalf("second GetOrCreate: %v", err)
	}

	if first != second {
		t.Errorf("duplicate insert created a new row: %s != %s", first, second)
	}
}

func TestRepo_GetOrCreate_SameWordDifferentUsers(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	userA := testhelper.SeedUser(t, pool)
	userB := testhelper.SeedUser(t, pool)

	idA, err := repo.GetOrCreate(ctx, buildWord(userA.ID, "perro", "dog"))
	if err != nil {
		t.Fatalf("GetOrCreate A: %v", err)
	}
	idB, err := repo.GetOrCreate(ctx, buildWord(userB.ID, "perro", "dog"))
	if err != nil {
		t.Fatalf("GetOrCreate B: %v", err)
	}

	if idA == idB {
		t.Error("vocabulary is per user: expected distinct rows for distinct users")
	}
}

func TestRepo_GetByID_OtherUsersWordIsNotFound(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	owner := testhelper.SeedUser(t, pool)
	stranger := testhelper.SeedUser(t, pool)
	w := testhelper.SeedWord(t, pool, owner.ID, "luna", "moon")

	_, err := repo.GetByID(ctx, stranger.ID, w.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("cross-user read: got %v, want ErrNotFound", err)
	}

	_, err = repo.GetByID(ctx, stranger.ID, uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("absent id: got %v, want ErrNotFound", err)
	}
}

func TestRepo_ListStats_OccurrenceAcrossTexts(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	w := testhelper.SeedWord(t, pool, user.ID, "sol", "sun")

	// The same word linked from sentences of two different texts.
	text1 := testhelper.SeedText(t, pool, user.ID)
	text2 := testhelper.SeedText(t, pool, user.ID)
	s1 := testhelper.SeedSentence(t, pool, text1.ID, 1)
	s2 := testhelper.SeedSentence(t, pool, text2.ID, 1)
	testhelper.SeedLink(t, pool, s1.ID, w.ID, 1)
	testhelper.SeedLink(t, pool, s2.ID, w.ID, 1)

	testhelper.SeedCompletion(t, pool, w.ID, domain.MethodWriting, text1.CreatedAt)

	stats, err := repo.ListStats(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListStats: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("stats length: got %d, want 1", len(stats))
	}
	if stats[0].OccurrenceCount != 2 {
		t.Errorf("occurrence count: got %d, want 2", stats[0].OccurrenceCount)
	}
	if stats[0].CompletionCount != 1 {
		t.Errorf("completion count: got %d, want 1", stats[0].CompletionCount)
	}
}

func TestRepo_ListStats_MultipleLinksInOneTextCountOnce(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	w := testhelper.SeedWord(t, pool, user.ID, "agua", "water")

	text := testhelper.SeedText(t, pool, user.ID)
	s1 := testhelper.SeedSentence(t, pool, text.ID, 1)
	s2 := testhelper.SeedSentence(t, pool, text.ID, 2)
	testhelper.SeedLink(t, pool, s1.ID, w.ID, 1)
	testhelper.SeedLink(t, pool, s2.ID, w.ID, 1)

	stats, err := repo.ListStats(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListStats: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("stats length: got %d, want 1", len(stats))
	}
	if stats[0].OccurrenceCount != 1 {
		t.Errorf("occurrence counts distinct texts: got %d, want 1", stats[0].OccurrenceCount)
	}
}

func TestRepo_ListKnown_CapAndDistinct(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	testhelper.SeedWord(t, pool, user.ID, "uno", "one")
	testhelper.SeedWord(t, pool, user.ID, "dos", "two")
	testhelper.SeedWord(t, pool, user.ID, "tres", "three")

	known, err := repo.ListKnown(ctx, user.ID, "es", 2)
	if err != nil {
		t.Fatalf("ListKnown: %v", err)
	}
	if len(known) != 2 {
		t.Errorf("cap not applied: got %d words, want 2", len(known))
	}

	none, err := repo.ListKnown(ctx, user.ID, "fr", 10)
	if err != nil {
		t.Fatalf("ListKnown other language: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("unexpected words for unknown language: %v", none)
	}
}

func TestRepo_PunctuationExcludedFromVocabulary(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	testhelper.SeedWord(t, pool, user.ID, "sol", "sun")
	dot := testhelper.SeedWord(t, pool, user.ID, ".", ".")

	text := testhelper.SeedText(t, pool, user.ID)
	s := testhelper.SeedSentence(t, pool, text.ID, 1)
	testhelper.SeedLink(t, pool, s.ID, dot.ID, 2)

	stats, err := repo.ListStats(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListStats: %v", err)
	}
	for _, st := range stats {
		if st.Word.ID == dot.ID {
			t.Errorf("punctuation word appeared in stats: %q", st.Word.SourceWord)
		}
	}

	known, err := repo.ListKnown(ctx, user.ID, "es", 10)
	if err != nil {
		t.Fatalf("ListKnown: %v", err)
	}
	for _, w := range known {
		if w == "." {
			t.Error("punctuation word appeared in known list")
		}
	}
}
