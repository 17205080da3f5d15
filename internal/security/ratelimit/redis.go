package ratelimit

import (
	"context"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yourorg/recruitdesk/internal/reliability/circuitbreaker"
)

// allowScript counts requests per key within a fixed window. The counter
// expires with the window, so a key that goes quiet costs nothing.
var allowScript = goredis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RedisLimiter is a fixed-window limiter shared across instances. Redis
// outages must not take authentication down with them, so calls run through
// a circuit breaker and fail open.
type RedisLimiter struct {
	client  *goredis.Client
	maxReqs int
	window  time.Duration
	breaker *circuitbreaker.Breaker
	logger  *slog.Logger
}

func NewRedisLimiter(client *goredis.Client, maxRequests int, window time.Duration, logger *slog.Logger) *RedisLimiter {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisLimiter{
		client:  client,
		maxReqs: maxRequests,
		window:  window,
		breaker: circuitbreaker.New(5, 30*time.Second),
		logger:  logger,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) bool {
	if key == "" {
		return true
	}

	allowed := true
	err := l.breaker.Do(func() error {
		result, err := allowScript.Run(ctx, l.client, []string{"ratelimit:" + key}, l.window.Milliseconds()).Int64()
		if err != nil {
			return err
		}
		allowed = result <= int64(l.maxReqs)
		return nil
	})
	if err != nil {
		// fail open
		l.logger.Warn("rate limiter unavailable, allowing request",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return true
	}
	return allowed
}

func (l *RedisLimiter) Stop() {}
