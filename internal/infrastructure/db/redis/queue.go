package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/profilehub/user-platform/internal/core/domain"
)

const (
	importQueueKey = "import:jobs"
	popTimeout     = 5 * time.Second
)

// Queue is a Redis-list-backed job queue for bulk imports. Producers LPUSH,
// the worker BRPOPs, so each job is handed to exactly one consumer.
type Queue struct {
	client *redis.Client
}

func NewQueue(client *redis.Client) *Queue {
	return &Queue{client: client}
}

// Enqueue publishes a job. Fire-and-forget from the caller's point of view:
// once this returns nil the job will eventually be processed.
func (q *Queue) Enqueue(ctx context.Context, job domain.ImportJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal import job: %w", err)
	}
	if err := q.client.LPush(ctx, importQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("enqueue import job: %w", err)
	}
	return nil
}

// Dequeue blocks until a job is available or ctx is cancelled. It returns
// (nil, nil) when the blocking pop times out with nothing to do, letting the
// worker loop re-check its context.
func (q *Queue) Dequeue(ctx context.Context) (*domain.ImportJob, error) {
	res, err := q.client.BRPop(ctx, popTimeout, importQueueKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("dequeue import job: %w", err)
	}

	// BRPop returns [key, value].
	var job domain.ImportJob
	if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
		return nil, fmt.Errorf("decode import job: %w", err)
	}
	return &job, nil
}

// Depth reports the number of jobs currently waiting.
func (q *Queue) Depth(ctx context.Context) (int64, error) {
	n, err := q.client.LLen(ctx, importQueueKey).Result()
	if err != nil {
		return 0, fmt.Errorf("queue depth: %w", err)
	}
	return n, nil
}
