package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis backs the cache with a shared Redis instance so replicas share
// memoized summaries. All failures degrade to cache misses.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

func NewRedis(addr string, ttl time.Duration, log *slog.Logger) *Redis {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Redis{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
		log:    log,
	}
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn("cache get failed", "error", err)
		}
		return "", false
	}
	return val, true
}

func (r *Redis) Set(ctx context.Context, key, value string) {
	if err := r.client.Set(ctx, key, value, r.ttl).Err(); err != nil {
		r.log.Warn("cache set failed", "error", err)
	}
}

// Ping verifies connectivity at startup.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
