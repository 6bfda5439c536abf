package otp

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/otpkit/pkg/logger"
	"github.com/dmitrymomot/otpkit/pkg/ratelimiter"
)

// AttemptLimiter budgets verification attempts per key.
// *ratelimiter.Bucket implements it.
type AttemptLimiter interface {
	Allow(key string) ratelimiter.Result
	Reset(key string)
}

var _ AttemptLimiter = (*ratelimiter.Bucket)(nil)

// VerifyAttempt is Verify behind the configured AttemptLimiter. Every call
// spends one attempt from the credential's budget; a successful match
// restores it. Once the budget is exhausted ErrTooManyAttempts is returned
// without checking the input. Without a limiter it behaves like Verify.
func (e *Engine) VerifyAttempt(c Credential, input string, window int) (bool, error) {
	if e.limiter == nil {
		return e.Verify(c, input, window), nil
	}

	key := c.ID
	if key == "" {
		key = string(c.Type) + "|" + c.identity()
	}

	r := e.limiter.Allow(key)
	if !r.Allowed() {
		wait := r.RetryAfter(e.now()).Round(time.Second)
		e.log.Warn("verification locked",
			logger.CredentialID(c.ID),
			logger.CredentialType(c.Type),
			slog.Duration("retry_after", wait),
		)
		return false, fmt.Errorf("%w: retry in %s", ErrTooManyAttempts, wait)
	}

	if !e.Verify(c, input, window) {
		return false, nil
	}
	e.limiter.Reset(key)
	return true, nil
}
