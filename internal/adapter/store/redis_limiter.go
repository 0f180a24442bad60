package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window counter keyed by caller.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

// Allow counts one call for key. INCR and EXPIRE NX run in one MULTI block,
// so the window starts with the first call and a counter never outlives it.
func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := "refresh:" + key

	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.ExpireNX(ctx, redisKey, r.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("refresh limiter: %w", err)
	}
	return incr.Val() <= int64(r.limit), nil
}
