package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "admin:login:"

// RedisLimiter shares attempt counters between server instances.
type RedisLimiter struct {
	rdb *redis.Client
	cfg LimitConfig
}

func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

func NewRedisLimiter(rdb *redis.Client, cfg LimitConfig) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, cfg: cfg.withDefaults()}
}

func failKey(client string) string { return redisKeyPrefix + "fails:" + client }
func lockKey(client string) string { return redisKeyPrefix + "lock:" + client }

func (l *RedisLimiter) Blocked(ctx context.Context, client string) (time.Duration, error) {
	ttl, err := l.rdb.PTTL(ctx, lockKey(client)).Result()
	if err != nil {
		return 0, fmt.Errorf("read lockout: %w", err)
	}
	// PTTL is negative when the key is missing or has no expiry.
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

func (l *RedisLimiter) Fail(ctx context.Context, client string) (bool, error) {
	key := failKey(client)

	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, l.cfg.Lockout)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("record failed attempt: %w", err)
	}

	if incr.Val() < int64(l.cfg.MaxAttempts) {
		return false, nil
	}

	pipe = l.rdb.TxPipeline()
	pipe.Set(ctx, lockKey(client), 1, l.cfg.Lockout)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("lock out client: %w", err)
	}
	return true, nil
}

func (l *RedisLimiter) Reset(ctx context.Context, client string) error {
	if err := l.rdb.Del(ctx, failKey(client), lockKey(client)).Err(); err != nil {
		return fmt.Errorf("reset attempts: %w", err)
	}
	return nil
}
