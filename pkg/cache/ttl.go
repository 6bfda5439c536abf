package cache

import (
	"sync"
	"time"
)

type ttlEntry[V any] struct {
	value    V
	storedAt time.Time
}

// TTL is a thread-safe map whose entries are visible for a fixed duration
// after they were stored.
type TTL[K comparable, V any] struct {
	ttl   time.Duration
	now   func() time.Time
	mu    sync.Mutex
	items map[K]ttlEntry[V]
}

// Option configures a TTL cache.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source. Nil is ignored.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// NewTTL creates a cache whose entries live for ttl.
// The ttl must be positive, otherwise it panics.
func NewTTL[K comparable, V any](ttl time.Duration, opts ...Option) *TTL[K, V] {
	if ttl <= 0 {
		panic("TTL cache duration must be positive")
	}
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &TTL[K, V]{
		ttl:   ttl,
		now:   o.now,
		items: make(map[K]ttlEntry[V]),
	}
}

// Get returns the value for key together with the time it was stored.
// Expired entries are removed and reported as a miss.
func (c *TTL[K, V]) Get(key K) (V, time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.items[key]
	if !ok {
		var zero V
		return zero, time.Time{}, false
	}
	if c.now().Sub(entry.storedAt) >= c.ttl {
		delete(c.items, key)
		var zero V
		return zero, time.Time{}, false
	}
	return entry.value, entry.storedAt, true
}

// Put stores value under key, stamped with the current time.
func (c *TTL[K, V]) Put(key K, value V) {
	c.PutAt(key, value, c.now())
}

// PutAt stores value under key with an explicit timestamp.
func (c *TTL[K, V]) PutAt(key K, value V, storedAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = ttlEntry[V]{value: value, storedAt: storedAt}
}

// Remove deletes key and reports whether it was present.
func (c *TTL[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.items[key]
	delete(c.items, key)
	return ok
}

// Clear removes all entries.
func (c *TTL[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]ttlEntry[V])
}

// Len returns the number of stored entries, expired ones included.
func (c *TTL[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// TTL returns the configured entry lifetime.
func (c *TTL[K, V]) TTL() time.Duration {
	return c.ttl
}
