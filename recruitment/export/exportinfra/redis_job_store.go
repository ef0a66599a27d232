package exportinfra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
	"github.com/0Omaaar/iRecruitApp/recruitment/export"
	"github.com/go-redis/redis/v8"
)

// DefaultJobTTL is how long job state stays readable after its last update
const DefaultJobTTL = 24 * time.Hour

// RedisJobStore keeps export jobs as JSON strings with a TTL
type RedisJobStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisJobStore(client *redis.Client, prefix string, ttl time.Duration) *RedisJobStore {
	if ttl <= 0 {
		ttl = DefaultJobTTL
	}
	return &RedisJobStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisJobStore) key(id kernel.ExportJobID) string {
	return s.prefix + id.String()
}

// Save writes the job and refreshes its TTL
func (s *RedisJobStore) Save(ctx context.Context, job *export.Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job %s: %w", job.ID, err)
	}
	if err := s.client.Set(ctx, s.key(job.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save job %s: %w", job.ID, err)
	}
	return nil
}

func (s *RedisJobStore) GetByID(ctx context.Context, id kernel.ExportJobID) (*export.Job, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, export.ErrJobNotFound().WithDetail("job_id", id.String())
		}
		return nil, fmt.Errorf("get job %s: %w", id, err)
	}

	var job export.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("unmarshal job %s: %w", id, err)
	}
	return &job, nil
}
