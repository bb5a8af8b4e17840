package cache

import (
	"sync"
	"time"
)

// Cache memoizes the results of expensive fetches by string key, each with
// a caller-supplied time-to-live. Expired entries are recomputed lazily on
// the next access; nothing is ever evicted, which is fine for the small
// fixed key set the dashboard uses.
type Cache struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]entry
}

type entry struct {
	value    any
	storedAt time.Time
}

// New creates a cache. A nil clock defaults to time.Now; tests inject a
// fake clock for deterministic expiry.
func New(now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{
		now:     now,
		entries: make(map[string]entry),
	}
}

// lookup returns the cached value for key if it is younger than ttl.
func (c *Cache) lookup(key string, ttl time.Duration) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.storedAt) >= ttl {
		return nil, false
	}
	return e.value, true
}

// store records a freshly computed value with the current time.
func (c *Cache) store(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{value: value, storedAt: c.now()}
}

// GetOrCompute returns the cached value for key when a non-expired entry
// exists, otherwise invokes producer and stores its result. Errors are not
// cached. Concurrent misses on the same key may each invoke producer; the
// last writer wins with its own fresh timestamp. Each invocation is
// independently valid, so the race costs at most a redundant upstream call.
func GetOrCompute[T any](c *Cache, key string, ttl time.Duration, producer func() (T, error)) (T, error) {
	if v, ok := c.lookup(key, ttl); ok {
		return v.(T), nil
	}

	value, err := producer()
	if err != nil {
		var zero T
		return zero, err
	}

	c.store(key, value)
	return value, nil
}
