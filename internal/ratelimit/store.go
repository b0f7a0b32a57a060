// Package ratelimit provides the counter store behind the HTTP rate-limit
// middleware: a fixed-window counter with atomic increment-and-check
// semantics, keyed by client identity and endpoint.
//
// Two implementations exist: an in-memory store for single-process
// deployments and tests, and a Redis-backed store for horizontally scaled
// deployments enforcing a global limit. The middleware selects one via
// configuration, never by branching inside business logic.
//
// Availability note: the middleware treats a store error as "allow"; when
// the counter store is unreachable the system fails open rather than turning
// the limiter into a single point of outage. That tradeoff is deliberate.
package ratelimit

import (
	"context"
	"time"
)

// Store is the capability interface for rate-limit counters.
//
// IncrementAndGet atomically increments the counter for key within the
// current fixed window and returns the post-increment count. The first
// increment of a window starts the window's TTL.
type Store interface {
	IncrementAndGet(ctx context.Context, key string, window time.Duration) (int64, error)
}
