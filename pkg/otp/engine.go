package otp

import (
	"crypto/subtle"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/dmitrymomot/otpkit/pkg/backend"
	"github.com/dmitrymomot/otpkit/pkg/fallback"
	"github.com/dmitrymomot/otpkit/pkg/logger"
	"github.com/dmitrymomot/otpkit/pkg/secret"
)

// Engine derives display codes for credentials. It is safe for concurrent use.
type Engine struct {
	backend  backend.OTP
	now      func() time.Time
	log      *slog.Logger
	observer Observer
	cacheTTL time.Duration
	codes    *codeCache
	limiter  AttemptLimiter
}

// Option configures an Engine.
type Option func(*Engine)

// WithBackend replaces the primitive backend. Nil is ignored.
func WithBackend(b backend.OTP) Option {
	return func(e *Engine) {
		if b != nil {
			e.backend = b
		}
	}
}

// WithClock overrides the wall clock. Nil is ignored.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// WithAttemptLimiter budgets VerifyAttempt calls per credential.
func WithAttemptLimiter(l AttemptLimiter) Option {
	return func(e *Engine) { e.limiter = l }
}

// WithCacheTTL sets how long a code is reused. A non-positive value
// disables the cache.
func WithCacheTTL(d time.Duration) Option {
	return func(e *Engine) { e.cacheTTL = d }
}

// WithoutCache disables code memoization.
func WithoutCache() Option {
	return WithCacheTTL(0)
}

// NewEngine builds an engine backed by backend.Native with a 5 second
// code cache.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		backend:  backend.NewNative(),
		now:      time.Now,
		log:      logger.Discard(),
		observer: nopObserver{},
		cacheTTL: DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.cacheTTL > 0 {
		e.codes = newCodeCache(e.cacheTTL, e.now)
	}
	e.log = e.log.With(logger.Component("otp"))
	return e
}

// Generate returns the current display code for c. It never fails: an
// unusable secret, a failing backend or an empty backend result yields a
// deterministic placeholder with the same cadence, marked Degraded.
func (e *Engine) Generate(c Credential) GeneratedCode {
	now := e.now()
	sched := scheduleFor(c, now.Unix())

	if e.codes != nil && c.ID != "" {
		code, hit := e.codes.get(c.ID, c.Type, sched.slot, now)
		e.observer.CacheLookup(hit)
		if hit {
			return code
		}
	}

	raw, reason, err := e.derive(c, sched.slot)
	degraded := reason != ""
	if degraded {
		raw = e.placeholder(c, sched.slot)
		e.observer.Fallback(c.Type, reason)
		e.log.Debug("code generation degraded",
			logger.CredentialID(c.ID),
			logger.CredentialType(c.Type),
			logger.Reason(string(reason)),
			logger.Slot(sched.slot),
			logger.Error(err),
		)
	}

	code := GeneratedCode{
		Code:          display(c.Type, raw),
		TimeRemaining: sched.remaining,
		Period:        sched.period,
		Degraded:      degraded,
	}
	e.observer.CodeGenerated(c.Type, degraded)

	if e.codes != nil && c.ID != "" {
		e.codes.put(c.ID, c.Type, sched.slot, code, now)
	}
	return code
}

// Verify checks user input against the codes for the current slot and
// window slots on either side (look-ahead only for CounterBased).
// Placeholder codes never verify.
func (e *Engine) Verify(c Credential, input string, window int) bool {
	if window < 0 {
		window = 0
	}
	input = compact(c.Type, input)
	if input == "" {
		return false
	}

	sched := scheduleFor(c, e.now().Unix())
	// The window saturates at both ends of the uint64 slot range.
	w := uint64(window)
	first := sched.slot
	if c.Type != CounterBased {
		first -= min(sched.slot, w)
	}
	last := sched.slot + min(w, math.MaxUint64-sched.slot)

	ok := false
	for slot := first; ; slot++ {
		raw, reason, _ := e.derive(c, slot)
		if reason != "" {
			return false
		}
		if subtle.ConstantTimeCompare([]byte(compact(c.Type, raw)), []byte(input)) == 1 {
			ok = true
		}
		if slot == last {
			break
		}
	}
	return ok
}

// Advance returns c with its counter incremented and drops its cached code.
// Other credential types are returned unchanged.
func (e *Engine) Advance(c Credential) Credential {
	switch c.Type {
	case CounterBased:
		c.Counter++
		e.Invalidate(c.ID)
	case TimeBased, MobileOTP, SteamGuard:
	}
	return c
}

// Invalidate drops cached codes for ids, or every cached code when no id
// is given.
func (e *Engine) Invalidate(ids ...string) {
	if e.codes == nil {
		return
	}
	e.codes.invalidate(ids...)
}

// derive calls the backend. A non-empty Reason means no usable code; err
// carries the backend failure when there was one.
func (e *Engine) derive(c Credential, slot uint64) (string, Reason, error) {
	s, ok := secret.Normalize(c.Secret)
	if !ok {
		return "", ReasonInvalidSecret, nil
	}

	var (
		raw string
		err error
	)
	switch c.Type {
	case TimeBased:
		raw, err = e.backend.GenerateTOTP(s.String(), slot, c.EffectiveDigits(), c.EffectiveAlgorithm())
	case CounterBased:
		raw, err = e.backend.GenerateHOTP(s.String(), slot, c.EffectiveDigits(), c.EffectiveAlgorithm())
	case SteamGuard:
		raw, err = e.backend.GenerateSteamGuard(s.String(), slot)
	case MobileOTP:
		if c.PIN == "" {
			return "", ReasonMissingPIN, nil
		}
		raw, err = e.backend.GenerateMOTP(strings.TrimSpace(c.Secret), c.PIN, slot)
	default:
		return "", ReasonUnknownType, nil
	}

	if err != nil {
		return "", ReasonBackendUnavailable, err
	}
	if strings.TrimSpace(raw) == "" {
		return "", ReasonEmptyBackendResult, nil
	}
	return raw, "", nil
}

func (e *Engine) placeholder(c Credential, slot uint64) string {
	seed := fallback.Seed(c.Secret, c.identity())
	switch c.Type {
	case SteamGuard:
		return fallback.SteamCode(seed, slot)
	case TimeBased, CounterBased, MobileOTP:
	}
	return fallback.Code(seed, slot)
}
