package auth

import (
	"context"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

// LoginLimiter throttles failed logins per account key.
type LoginLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Fail(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

// RedisLoginLimiter counts failures in a fixed window that starts at the
// first failure.
type RedisLoginLimiter struct {
	rdb         *redis.Client
	maxAttempts int
	window      time.Duration
}

func NewRedisLoginLimiter(rdb *redis.Client, maxAttempts int, window time.Duration) *RedisLoginLimiter {
	return &RedisLoginLimiter{
		rdb:         rdb,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

func (l *RedisLoginLimiter) key(k string) string {
	return "login_failures:" + strings.ToLower(k)
}

func (l *RedisLoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	n, err := l.rdb.Get(ctx, l.key(key)).Int()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return n < l.maxAttempts, nil
}

func (l *RedisLoginLimiter) Fail(ctx context.Context, key string) error {
	k := l.key(key)
	n, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		return err
	}
	if n == 1 {
		return l.rdb.Expire(ctx, k, l.window).Err()
	}
	return nil
}

func (l *RedisLoginLimiter) Reset(ctx context.Context, key string) error {
	return l.rdb.Del(ctx, l.key(key)).Err()
}

// NopLoginLimiter never throttles. Used when Redis is not configured.
type NopLoginLimiter struct{}

func (NopLoginLimiter) Allow(context.Context, string) (bool, error) { return true, nil }
func (NopLoginLimiter) Fail(context.Context, string) error          { return nil }
func (NopLoginLimiter) Reset(context.Context, string) error         { return nil }
