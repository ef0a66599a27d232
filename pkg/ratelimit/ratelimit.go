package ratelimit

import (
	"context"
	"time"

	"github.com/0Omaaar/iRecruitApp/pkg/logx"
	"github.com/go-redis/redis/v8"
)

const rateLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

// RedisLimiter is a fixed-window counter shared by every API instance
type RedisLimiter struct {
	client  *redis.Client
	limit   int
	window  time.Duration
	prefix  string
	timeout time.Duration
	script  *redis.Script
}

func NewRedisLimiter(client *redis.Client, limit int, window time.Duration, prefix string) *RedisLimiter {
	if client == nil {
		return nil
	}
	return &RedisLimiter{
		client:  client,
		limit:   limit,
		window:  window,
		prefix:  prefix,
		timeout: 250 * time.Millisecond,
		script:  redis.NewScript(rateLimitScript),
	}
}

// Allow reports whether key may perform one more request in the current window.
// Redis errors let the request through.
func (l *RedisLimiter) Allow(ctx context.Context, key string) bool {
	if l == nil || l.client == nil {
		return true
	}
	if l.limit <= 0 || l.window <= 0 || key == "" {
		return true
	}
	redisKey := key
	if l.prefix != "" {
		redisKey = l.prefix + ":" + key
	}
	ttl := l.window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	allowed, err := l.script.Run(ctx, l.client, []string{redisKey}, ttl, l.limit).Int64()
	if err != nil {
		logx.Warn("rate limiter unavailable, allowing request", "key", redisKey, "error", err)
		return true
	}
	return allowed == 1
}

func (l *RedisLimiter) Window() time.Duration {
	if l == nil {
		return 0
	}
	return l.window
}
