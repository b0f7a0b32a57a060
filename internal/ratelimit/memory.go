package ratelimit

import (
	"context"
	"sync"
	"time"
)

// window holds one fixed-window counter and its reset deadline. Expired
// entries are evicted opportunistically during lookups to bound memory.
type window struct {
	count    int64
	resetsAt time.Time
}

// MemoryStore is a process-local fixed-window counter store. It is safe for
// concurrent use and suitable for single-process deployments and tests; use
// RedisStore when limits must hold across replicas.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window

	// lookups since the last sweep; expired windows are swept every
	// sweepEvery lookups rather than by a background goroutine.
	lookups    uint64
	sweepEvery uint64

	// now is a test seam; defaults to time.Now.
	now func() time.Time
}

// NewMemoryStore constructs an empty in-memory counter store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows:    make(map[string]*window),
		sweepEvery: 5000,
		now:        time.Now,
	}
}

// IncrementAndGet increments the counter for key within its current window
// and returns the new count. A window that has elapsed is replaced by a fresh
// one starting at this call. The error result is always nil; it exists to
// satisfy the Store interface shared with the networked implementation.
func (m *MemoryStore) IncrementAndGet(_ context.Context, key string, windowDur time.Duration) (int64, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Sweep BEFORE touching the requested key so a stale entry is replaced
	// rather than refreshed.
	m.lookups++
	if m.lookups >= m.sweepEvery {
		for k, w := range m.windows {
			if !now.Before(w.resetsAt) {
				delete(m.windows, k)
			}
		}
		m.lookups = 0
	}

	w, ok := m.windows[key]
	if !ok || !now.Before(w.resetsAt) {
		w = &window{resetsAt: now.Add(windowDur)}
		m.windows[key] = w
	}
	w.count++
	return w.count, nil
}
