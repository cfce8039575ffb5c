package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter tracks attempts in Redis sorted sets, one set per key and
// window, so the minute and hour caps slide independently.
type RedisLimiter struct {
	client  *redis.Client
	windows Windows
	ctx     context.Context
}

func NewRedisLimiter(client *redis.Client, windows Windows) Limiter {
	return &RedisLimiter{
		client:  client,
		windows: windows,
		ctx:     context.Background(),
	}
}

// Allow records the attempt and reports whether it fits inside both caps.
// The attempt counts even when denied, so hammering a locked key does not
// shorten the wait.
func (l *RedisLimiter) Allow(key string) (bool, error) {
	now := time.Now()
	allowed := true

	for _, span := range []struct {
		window time.Duration
		limit  int
	}{
		{time.Minute, l.windows.PerMinute},
		{time.Hour, l.windows.PerHour},
	} {
		if span.limit <= 0 {
			continue
		}

		fits, err := l.recordAndCheck(key, span.window, span.limit, now)
		if err != nil {
			return false, err
		}
		if !fits {
			allowed = false
		}
	}

	return allowed, nil
}

func (l *RedisLimiter) recordAndCheck(key string, window time.Duration, limit int, now time.Time) (bool, error) {
	redisKey := l.windowKey(key, window)
	cutoff := now.Add(-window).UnixNano()
	stamp := now.UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(l.ctx, redisKey, "0", fmt.Sprintf("%d", cutoff))
	prior := pipe.ZCard(l.ctx, redisKey)
	pipe.ZAdd(l.ctx, redisKey, redis.Z{Score: float64(stamp), Member: stamp})
	pipe.Expire(l.ctx, redisKey, window+time.Minute)

	if _, err := pipe.Exec(l.ctx); err != nil {
		return false, fmt.Errorf("failed to record attempt: %w", err)
	}

	return prior.Val() < int64(limit), nil
}

// Reset clears every window for a key. Used when an operator unblocks an
// address after a support call.
func (l *RedisLimiter) Reset(key string) error {
	iter := l.client.Scan(l.ctx, 0, fmt.Sprintf("ratelimit:%s:*", key), 0).Iterator()
	for iter.Next(l.ctx) {
		if err := l.client.Del(l.ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete key %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan keys: %w", err)
	}
	return nil
}

func (l *RedisLimiter) windowKey(key string, window time.Duration) string {
	return fmt.Sprintf("ratelimit:%s:%s", key, window.String())
}
