package otp

import (
	"time"

	"github.com/dmitrymomot/otpkit/pkg/cache"
)

// DefaultCacheTTL is how long a generated code is reused.
const DefaultCacheTTL = 5 * time.Second

type cachedCode struct {
	code GeneratedCode
	typ  Type
	slot uint64
}

// codeCache memoizes the last code per credential id. A hit keeps the code
// string and recomputes the countdown from the cached period.
type codeCache struct {
	entries *cache.TTL[string, cachedCode]
}

func newCodeCache(ttl time.Duration, now func() time.Time) *codeCache {
	return &codeCache{entries: cache.NewTTL[string, cachedCode](ttl, cache.WithClock(now))}
}

// get returns the cached code for id when it is younger than the TTL and
// was derived for the same type and slot.
func (c *codeCache) get(id string, t Type, slot uint64, now time.Time) (GeneratedCode, bool) {
	entry, _, ok := c.entries.Get(id)
	if !ok || entry.typ != t || entry.slot != slot {
		return GeneratedCode{}, false
	}
	code := entry.code
	code.TimeRemaining = remainingAt(entry.typ, code.Period, now.Unix())
	return code, true
}

func (c *codeCache) put(id string, t Type, slot uint64, code GeneratedCode, generatedAt time.Time) {
	c.entries.PutAt(id, cachedCode{code: code, typ: t, slot: slot}, generatedAt)
}

func (c *codeCache) invalidate(ids ...string) {
	if len(ids) == 0 {
		c.entries.Clear()
		return
	}
	for _, id := range ids {
		c.entries.Remove(id)
	}
}
