// Package cache provides a generic, thread-safe time-to-live map for
// short-lived memoization.
//
// Entries never expire in the background. An entry is simply treated as a
// miss once it is older than the configured TTL and is dropped lazily on
// that lookup, so the map holds at most one entry per key for the lifetime
// of the cache.
//
// # Key Features
//
//   - Generic implementation supporting any comparable key type and any value type
//   - Thread-safe operations with mutex-based synchronization
//   - Injectable clock for deterministic tests
//   - Access to the insertion timestamp of every hit
//
// # Usage
//
//	c := cache.NewTTL[string, Code](5 * time.Second)
//
//	c.Put("github", code)
//	if v, storedAt, ok := c.Get("github"); ok {
//	    // v was stored less than 5 seconds ago at storedAt
//	}
//
//	c.Remove("github")
//	c.Clear()
//
// Use WithClock to control time in tests:
//
//	now := time.Unix(1_700_000_000, 0)
//	c := cache.NewTTL[string, int](time.Second, cache.WithClock(func() time.Time { return now }))
package cache
