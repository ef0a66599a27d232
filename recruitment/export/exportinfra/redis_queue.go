package exportinfra

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
	"github.com/go-redis/redis/v8"
)

// RedisQueue implements export.JobQueue with a list for ready jobs
// and a sorted set scored by due time for retries.
type RedisQueue struct {
	client    *redis.Client
	queueName string
	now       func() time.Time
}

func NewRedisQueue(client *redis.Client, queueName string) *RedisQueue {
	return &RedisQueue{
		client:    client,
		queueName: queueName,
		now:       time.Now,
	}
}

// WithClock overrides the time used to score delayed jobs, for tests
func (q *RedisQueue) WithClock(now func() time.Time) *RedisQueue {
	q.now = now
	return q
}

func (q *RedisQueue) delayedKey() string {
	return q.queueName + ":delayed"
}

func (q *RedisQueue) Enqueue(ctx context.Context, id kernel.ExportJobID) error {
	if err := q.client.LPush(ctx, q.queueName, id.String()).Err(); err != nil {
		return fmt.Errorf("enqueue job %s: %w", id, err)
	}
	return nil
}

func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) (kernel.ExportJobID, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		// redis.Nil means the timeout elapsed
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("dequeue job: %w", err)
	}

	if len(result) < 2 {
		return "", fmt.Errorf("invalid result from queue: expected 2 elements, got %d", len(result))
	}

	return kernel.ExportJobID(result[1]), nil
}

func (q *RedisQueue) EnqueueDelayed(ctx context.Context, id kernel.ExportJobID, delay time.Duration) error {
	score := float64(q.now().Add(delay).Unix())

	if err := q.client.ZAdd(ctx, q.delayedKey(), &redis.Z{
		Score:  score,
		Member: id.String(),
	}).Err(); err != nil {
		return fmt.Errorf("enqueue delayed job %s: %w", id, err)
	}
	return nil
}

func (q *RedisQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	due, err := q.client.ZRangeByScore(ctx, q.delayedKey(), &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(q.now().Unix(), 10),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("get delayed jobs: %w", err)
	}

	if len(due) == 0 {
		return 0, nil
	}

	pipe := q.client.TxPipeline()
	for _, id := range due {
		pipe.LPush(ctx, q.queueName, id)
		pipe.ZRem(ctx, q.delayedKey(), id)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("move delayed jobs to ready: %w", err)
	}

	return len(due), nil
}

func (q *RedisQueue) GetQueueSize(ctx context.Context) (int64, error) {
	size, err := q.client.LLen(ctx, q.queueName).Result()
	if err != nil {
		return 0, fmt.Errorf("get queue size: %w", err)
	}
	return size, nil
}

func (q *RedisQueue) GetDelayedQueueSize(ctx context.Context) (int64, error) {
	size, err := q.client.ZCard(ctx, q.delayedKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("get delayed queue size: %w", err)
	}
	return size, nil
}

// Ping checks the connection, for health checks
func (q *RedisQueue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}
