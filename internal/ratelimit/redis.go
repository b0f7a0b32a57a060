package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis commands the store issues. Declared as an interface so tests can
// substitute a stub without a live server; *redis.Client satisfies it.
type redisCmdable interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RedisStore is a Redis-backed fixed-window counter store. Counters are
// shared across replicas, so the configured limit holds globally.
//
// Implementation: INCR followed by EXPIRE NX-style guarding. The TTL is set
// only when INCR created the key (count == 1), so the window is anchored at
// its first request. INCR itself is atomic on the server.
type RedisStore struct {
	client    redisCmdable
	keyPrefix string
}

// NewRedisStore constructs a store over an existing Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, keyPrefix: "ratelimit:"}
}

// IncrementAndGet increments the windowed counter for key and returns the new
// count. Connection failures propagate to the caller, which is expected to
// fail open.
func (r *RedisStore) IncrementAndGet(ctx context.Context, key string, window time.Duration) (int64, error) {
	full := r.keyPrefix + key
	count, err := r.client.Incr(ctx, full).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		// First hit of the window: start its TTL. An Expire failure must
		// surface, otherwise the key never expires and the counter keeps
		// climbing across window boundaries with no error to fail open on.
		if err := r.client.Expire(ctx, full, window).Err(); err != nil {
			return 0, err
		}
	}
	return count, nil
}
