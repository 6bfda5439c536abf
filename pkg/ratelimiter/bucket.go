package ratelimiter

import (
	"fmt"
	"sync"
	"time"
)

// DefaultStaleAfter is how long an untouched key is kept before pruning.
const DefaultStaleAfter = time.Hour

type bucket struct {
	tokens     int
	lastRefill time.Time
	lastAccess time.Time
}

// Bucket is an in-memory token bucket limiter keyed by string. It is safe
// for concurrent use.
type Bucket struct {
	config     Config
	now        func() time.Time
	staleAfter time.Duration

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastPrune time.Time
}

// Option configures a Bucket.
type Option func(*Bucket)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(b *Bucket) {
		if now != nil {
			b.now = now
		}
	}
}

// WithStaleAfter sets how long idle keys are retained.
func WithStaleAfter(d time.Duration) Option {
	return func(b *Bucket) {
		if d > 0 {
			b.staleAfter = d
		}
	}
}

// NewBucket creates a limiter for config.
func NewBucket(config Config, opts ...Option) (*Bucket, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	b := &Bucket{
		config:     config,
		now:        time.Now,
		staleAfter: DefaultStaleAfter,
		buckets:    make(map[string]*bucket),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.lastPrune = b.now()
	return b, nil
}

// Allow consumes one token for key.
func (b *Bucket) Allow(key string) Result {
	r, _ := b.AllowN(key, 1)
	return r
}

// AllowN consumes n tokens for key. A denied request still consumes, so a
// caller hammering a locked key stays locked.
func (b *Bucket) AllowN(key string, n int) (Result, error) {
	if n <= 0 {
		return Result{}, fmt.Errorf("%w: must be positive, got %d", ErrInvalidTokenCount, n)
	}
	return b.consume(key, n), nil
}

// Status returns the current state without consuming tokens. It never
// starts tracking a key: unknown keys report a full budget.
func (b *Bucket) Status(key string) Result {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	bk, ok := b.buckets[key]
	if !ok {
		return b.result(b.config.Capacity, now)
	}
	tokens, lastRefill := b.refilled(bk, now)
	return b.result(tokens, lastRefill)
}

// Reset forgets key, restoring its full budget.
func (b *Bucket) Reset(key string) {
	b.mu.Lock()
	delete(b.buckets, key)
	b.mu.Unlock()
}

// Len returns the number of tracked keys.
func (b *Bucket) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.buckets)
}

func (b *Bucket) consume(key string, tokens int) Result {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	if now.Sub(b.lastPrune) >= b.staleAfter {
		b.prune(now)
	}

	bk, ok := b.buckets[key]
	if !ok {
		bk = &bucket{tokens: b.config.Capacity, lastRefill: now}
		b.buckets[key] = bk
	}

	bk.tokens, bk.lastRefill = b.refilled(bk, now)

	// Denied attempts keep the debt bounded at one capacity.
	bk.tokens = max(bk.tokens-tokens, -b.config.Capacity)
	bk.lastAccess = now

	return b.result(bk.tokens, bk.lastRefill)
}

// refilled returns bk's token count and refill time as of now without
// modifying it.
func (b *Bucket) refilled(bk *bucket, now time.Time) (int, time.Time) {
	// Cap elapsed intervals to avoid overflow on long-idle keys.
	maxIntervals := int64(b.config.Capacity/b.config.RefillRate + 1)
	intervals := int(min(int64(now.Sub(bk.lastRefill)/b.config.RefillInterval), maxIntervals))
	if intervals <= 0 {
		return bk.tokens, bk.lastRefill
	}
	return min(bk.tokens+intervals*b.config.RefillRate, b.config.Capacity), now
}

func (b *Bucket) result(tokens int, lastRefill time.Time) Result {
	return Result{
		Limit:     b.config.Capacity,
		Remaining: tokens,
		ResetAt:   lastRefill.Add(b.config.RefillInterval),
	}
}

func (b *Bucket) prune(now time.Time) {
	for key, bk := range b.buckets {
		if now.Sub(bk.lastAccess) > b.staleAfter {
			delete(b.buckets, key)
		}
	}
	b.lastPrune = now
}

func (c Config) validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	}
	if c.RefillRate <= 0 {
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	}
	if c.RefillInterval <= 0 {
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}
