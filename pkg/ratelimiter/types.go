package ratelimiter

import "time"

// Result is the outcome of a single check.
type Result struct {
	Limit     int       // bucket capacity
	Remaining int       // tokens left; negative when denied
	ResetAt   time.Time // next refill
}

// Allowed reports whether the attempt fits the budget.
func (r Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter returns how long to wait at now before the next attempt can
// succeed. Zero if this one was allowed.
func (r Result) RetryAfter(now time.Time) time.Duration {
	if r.Allowed() || !r.ResetAt.After(now) {
		return 0
	}
	return r.ResetAt.Sub(now)
}

// Config defines the token bucket.
type Config struct {
	Capacity       int           // burst limit
	RefillRate     int           // tokens added per interval
	RefillInterval time.Duration // refill period
}
