package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// stubRedis scripts Incr results and records Expire calls.
type stubRedis struct {
	count     int64
	incrErr   error
	expireErr error

	incrKeys    []string
	expireKeys  []string
	expireAfter time.Duration
}

func (s *stubRedis) Incr(_ context.Context, key string) *redis.IntCmd {
	s.incrKeys = append(s.incrKeys, key)
	if s.incrErr != nil {
		return redis.NewIntResult(0, s.incrErr)
	}
	s.count++
	return redis.NewIntResult(s.count, nil)
}

func (s *stubRedis) Expire(_ context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	s.expireKeys = append(s.expireKeys, key)
	s.expireAfter = expiration
	if s.expireErr != nil {
		return redis.NewBoolResult(false, s.expireErr)
	}
	return redis.NewBoolResult(true, nil)
}

func TestRedisStore_PrefixesKeys(t *testing.T) {
	stub := &stubRedis{}
	s := &RedisStore{client: stub, keyPrefix: "ratelimit:"}

	if _, err := s.IncrementAndGet(context.Background(), "user:u1|GET /jobs", time.Minute); err != nil {
		t.Fatalf("increment: %v", err)
	}
	if len(stub.incrKeys) != 1 || stub.incrKeys[0] != "ratelimit:user:u1|GET /jobs" {
		t.Fatalf("incr keys = %v", stub.incrKeys)
	}
}

func TestRedisStore_ExpireOnlyOnFirstHit(t *testing.T) {
	stub := &stubRedis{}
	s := &RedisStore{client: stub, keyPrefix: "ratelimit:"}
	ctx := context.Background()

	s.IncrementAndGet(ctx, "k", time.Minute)
	s.IncrementAndGet(ctx, "k", time.Minute)
	s.IncrementAndGet(ctx, "k", time.Minute)

	if len(stub.expireKeys) != 1 {
		t.Fatalf("expire calls = %d, want 1", len(stub.expireKeys))
	}
	if stub.expireAfter != time.Minute {
		t.Fatalf("ttl = %v", stub.expireAfter)
	}
}

// Connection failures must reach the caller so the middleware can fail open.
func TestRedisStore_PropagatesErrors(t *testing.T) {
	stub := &stubRedis{incrErr: errors.New("connection refused")}
	s := &RedisStore{client: stub, keyPrefix: "ratelimit:"}

	if _, err := s.IncrementAndGet(context.Background(), "k", time.Minute); err == nil {
		t.Fatal("expected error")
	}
}

// An Expire failure on the first hit leaves a counter with no TTL; if it were
// swallowed the key would accumulate forever and the identity would end up
// permanently limited with no error to fail open on.
func TestRedisStore_PropagatesExpireErrors(t *testing.T) {
	stub := &stubRedis{expireErr: errors.New("connection reset")}
	s := &RedisStore{client: stub, keyPrefix: "ratelimit:"}

	if _, err := s.IncrementAndGet(context.Background(), "k", time.Minute); err == nil {
		t.Fatal("expected error")
	}
	if len(stub.expireKeys) != 1 {
		t.Fatalf("expire calls = %d, want 1", len(stub.expireKeys))
	}
}
