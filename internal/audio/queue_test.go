package audio_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/lingosteps/backend/internal/audio"
)

func newTestQueue(t *testing.T) *audio.Queue {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return audio.NewQueue(client, "audio:jobs")
}

func TestQueue_EnqueueDequeue_FIFO(t *testing.T) {
	t.Parallel()
	q := newTestQueue(t)
	ctx := context.Background()

	first := audio.Job{TextID: uuid.New()}
	second := audio.Job{TextID: uuid.New()}

	if err := q.Enqueue(ctx, first); err != nil {
		t.Fatalf("enqueue first: %v", err)
	}
	if err := q.Enqueue(ctx, second); err != nil {
		t.Fatalf("enqueue second: %v", err)
	}

	n, err := q.Len(ctx)
	if err != nil {
		t.Fatalf("Len: %v", err)
	}
	if n != 2 {
		t.Errorf("queue length: got %d, want 2", n)
	}

	got, err := q.Dequeue(ctx, time.Second)
	if err != nil {
		t.Fatalf("dequeue: %v", err)
	}
	if got.TextID != first.TextID {
		t.Error("queue is not FIFO")
	}
	if got.EnqueuedAt.IsZero() {
		t.Error("EnqueuedAt was not stamped on enqueue")
	}

	got, err = q.Dequeue(ctx, time.Second)
	if err != nil {
		t.Fatalf("dequeue second: %v", err)
	}
	if got.TextID != second.TextID {
		t.Error("second job out of order")
	}
}

func TestQueue_Dequeue_Empty(t *testing.T) {
	t.Parallel()
	q := newTestQueue(t)

	_, err := q.Dequeue(context.Background(), 50*time.Millisecond)
	if !errors.Is(err, audio.ErrQueueEmpty) {
		t.Errorf("empty dequeue: got %v, want ErrQueueEmpty", err)
	}
}
