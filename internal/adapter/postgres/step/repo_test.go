package step_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/lingosteps/backend/internal/adapter/postgres/step"
	"github.com/lingosteps/backend/internal/adapter/postgres/testhelper"
)

func TestRepo_Upsert_Idempotent(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := step.New(pool)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	text := testhelper.SeedText(t, pool, user.ID)

	for i := 0; i < 3; i++ {
		if err := repo.Upsert(ctx, text.ID, 2, user.ID); err != nil {
			t.Fatalf("Upsert attempt %d: %v", i+1, err)
		}
	}

	steps, err := repo.ListSteps(ctx, text.ID, user.ID)
	if err != nil {
		t.Fatalf("ListSteps: %v", err)
	}
	if len(steps) != 1 || steps[0] != 2 {
		t.Errorf("steps: got %v, want [2]", steps)
	}
}

func TestRepo_ListSteps_Ordered(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := step.New(pool)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	text := testhelper.SeedText(t, pool, user.ID)

	for _, n := range []int{5, 1, 3} {
		if err := repo.Upsert(ctx, text.ID, n, user.ID); err != nil {
			t.Fatalf("Upsert step %d: %v", n, err)
		}
	}

	steps, err := repo.ListSteps(ctx, text.ID, user.ID)
	if err != nil {
		t.Fatalf("ListSteps: %v", err)
	}
	want := []int{1, 3, 5}
	if len(steps) != len(want) {
		t.Fatalf("steps: got %v, want %v", steps, want)
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Fatalf("steps: got %v, want %v", steps, want)
		}
	}
}

func TestRepo_StepsArePerUser(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := step.New(pool)
	ctx := context.Background()

	owner := testhelper.SeedUser(t, pool)
	other := testhelper.SeedUser(t, pool)
	text := testhelper.SeedText(t, pool, owner.ID)

	if err := repo.Upsert(ctx, text.ID, 1, owner.ID); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	steps, err := repo.ListSteps(ctx, text.ID, other.ID)
	if err != nil {
		t.Fatalf("ListSteps for other user: %v", err)
	}
	if len(steps) != 0 {
		t.Errorf("other user sees owner's steps: %v", steps)
	}
}

func TestRepo_CountByTexts(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := step.New(pool)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	withSteps := testhelper.SeedText(t, pool, user.ID)
	withoutSteps := testhelper.SeedText(t, pool, user.ID)

	for _, n := range []int{1, 2, 4} {
		if err := repo.Upsert(ctx, withSteps.ID, n, user.ID); err != nil {
			t.Fatalf("Upsert step %d: %v", n, err)
		}
	}

	counts, err := repo.CountByTexts(ctx, user.ID, []uuid.UUID{withSteps.ID, withoutSteps.ID})
	if err != nil {
		t.Fatalf("CountByTexts: %v", err)
	}
	if counts[withSteps.ID] != 3 {
		t.Errorf("count for text with steps: got %d, want 3", counts[withSteps.ID])
	}
	if _, ok := counts[withoutSteps.ID]; ok {
		t.Error("text without steps should be absent from the map")
	}
}

func TestRepo_CountByTexts_Empty(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := step.New(pool)

	user := testhelper.SeedUser(t, pool)

	counts, err := repo.CountByTexts(context.Background(), user.ID, nil)
	if err != nil {
		t.Fatalf("CountByTexts with no ids: %v", err)
	}
	if len(counts) != 0 {
		t.Errorf("expected empty map, got %v", counts)
	}
}

func TestRepo_Reset(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := step.New(pool)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	text := testhelper.SeedText(t, pool, user.ID)

	for _, n := range []int{1, 2, 3} {
		if err := repo.Upsert(ctx, text.ID, n, user.ID); err != nil {
			t.Fatalf("Upsert step %d: %v", n, err)
		}
	}

	if err := repo.Reset(ctx, text.ID, user.ID); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	steps, err := repo.ListSteps(ctx, text.ID, user.ID)
	if err != nil {
		t.Fatalf("ListSteps: %v", err)
	}
	if len(steps) != 0 {
		t.Errorf("steps after reset: got %v, want none", steps)
	}

	// Resetting again is a no-op, not an error.
	if err := repo.Reset(ctx, text.ID, user.ID); err != nil {
		t.Errorf("second Reset: %v", err)
	}
}
