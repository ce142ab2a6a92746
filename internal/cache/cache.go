// Package cache provides in-memory TTL caches keyed by string.
//
// Each logical cache domain (bearer tokens, items, spells, source config) owns
// its own Cache instance with its own TTL, so churn in one domain cannot evict
// entries from another. Entries are evicted lazily: a read that observes an
// expired entry removes it and reports a miss.
package cache

import (
	"sync"
	"time"
)

// EmptyFunc reports whether a value counts as empty. Empty values are never
// stored: caching a transient upstream failure would otherwise shadow a later
// successful fetch for a full TTL.
type EmptyFunc[T any] func(T) bool

// Stats reports the number of valid and expired entries currently held.
type Stats struct {
	Name    string `json:"name"`
	Valid   int    `json:"valid"`
	Expired int    `json:"expired"`
}

type entry[T any] struct {
	value   T
	addedAt time.Time
}

func (e entry[T]) expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.addedAt) > ttl
}

// Cache is a thread-safe in-memory store with a fixed per-instance TTL.
type Cache[T any] struct {
	name    string
	ttl     time.Duration
	emptyFn EmptyFunc[T]

	mu      sync.RWMutex
	entries map[string]entry[T]

	now func() time.Time // overridable in tests
}

// Option configures a Cache.
type Option[T any] func(*Cache[T])

// WithEmptyCheck sets the predicate deciding which values are rejected by Add.
func WithEmptyCheck[T any](fn EmptyFunc[T]) Option[T] {
	return func(c *Cache[T]) {
		c.emptyFn = fn
	}
}

// New creates a cache holding values of type T with the given TTL.
func New[T any](name string, ttl time.Duration, opts ...Option[T]) *Cache[T] {
	c := &Cache[T]{
		name:    name,
		ttl:     ttl,
		entries: make(map[string]entry[T]),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewSliceCache creates a cache for slice payloads that rejects empty slices.
func NewSliceCache[E any](name string, ttl time.Duration) *Cache[[]E] {
	return New(name, ttl, WithEmptyCheck(func(v []E) bool {
		return len(v) == 0
	}))
}

// NewStringCache creates a cache for string payloads that rejects empty strings.
func NewStringCache(name string, ttl time.Duration) *Cache[string] {
	return New(name, ttl, WithEmptyCheck(func(v string) bool {
		return v == ""
	}))
}

// Get returns the cached value for key. A read that observes an expired entry
// removes it from the underlying map and reports a miss.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	var zero T
	if !ok {
		return zero, false
	}

	if e.expired(c.now(), c.ttl) {
		c.mu.Lock()
		// Re-check under the write lock: a concurrent Add may have refreshed it.
		if cur, ok := c.entries[key]; ok && cur.expired(c.now(), c.ttl) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return zero, false
	}

	return e.value, true
}

// Add stores value under key. Empty values (per the configured predicate) are
// silently ignored.
func (c *Cache[T]) Add(key string, value T) {
	if c.emptyFn != nil && c.emptyFn(value) {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[T]{value: value, addedAt: c.now()}
}

// Remove deletes the entry for key, if any.
func (c *Cache[T]) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear removes all entries.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[T])
}

// Stats counts valid and expired entries without evicting anything.
func (c *Cache[T]) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.now()
	stats := Stats{Name: c.name}
	for _, e := range c.entries {
		if e.expired(now, c.ttl) {
			stats.Expired++
		} else {
			stats.Valid++
		}
	}
	return stats
}
