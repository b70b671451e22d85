// Package audio generates speech for texts in the background: a redis
// backed job queue, an object store for the rendered files and a worker
// that processes one text at a time.
package audio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrQueueEmpty is returned by Dequeue when no job arrived within the
// blocking window.
var ErrQueueEmpty = errors.New("audio queue is empty")

// Job asks the worker to render audio for every sentence and word of
// one text.
type Job struct {
	TextID     uuid.UUID `json:"text_id"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// Queue is a FIFO of audio jobs on a redis list.
type Queue struct {
	client *redis.Client
	key    string
}

func NewQueue(client *redis.Client, key string) *Queue {
	return &Queue{client: client, key: key}
}

func (q *Queue) Enqueue(ctx context.Context, job Job) error {
	if job.EnqueuedAt.IsZero() {
		job.EnqueuedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal audio job: %w", err)
	}

	if err := q.client.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("push audio job: %w", err)
	}
	return nil
}

// Dequeue blocks up to timeout for the next job.
func (q *Queue) Dequeue(ctx context.Context, timeout time.Duration) (Job, error) {
	res, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Job{}, ErrQueueEmpty
		}
		return Job{}, fmt.Errorf("pop audio job: %w", err)
	}

	// BRPop returns the key followed by the value.
	if len(res) != 2 {
		return Job{}, fmt.Errorf("pop audio job: unexpected reply of %d elements", len(res))
	}

	var job Job
	if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
		return Job{}, fmt.Errorf("decode audio job: %w", err)
	}
	return job, nil
}

// Len reports how many jobs are waiting.
func (q *Queue) Len(ctx context.Context) (int64, error) {
	n, err := q.client.LLen(ctx, q.key).Result()
	if err != nil {
		return 0, fmt.Errorf("measure audio queue: %w", err)
	}
	return n, nil
}
