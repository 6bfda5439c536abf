// Package ratelimiter provides an in-memory token bucket keyed by string.
//
// Each key starts with Capacity tokens; RefillRate tokens come back every
// RefillInterval up to Capacity. Allow consumes one token and reports
// whether the budget was not exceeded. Idle keys are pruned lazily.
//
//	limiter, err := ratelimiter.NewBucket(ratelimiter.Config{
//		Capacity:       5,
//		RefillRate:     1,
//		RefillInterval: 30 * time.Second,
//	})
//	if err != nil {
//		return err
//	}
//
//	if r := limiter.Allow(credentialID); !r.Allowed() {
//		return fmt.Errorf("retry in %s", r.RetryAfter(time.Now()))
//	}
//
// Bucket satisfies otp.AttemptLimiter and guards code verification against
// brute force.
package ratelimiter
