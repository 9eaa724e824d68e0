package cache

import "time"

// CacheService is the in-memory read cache behind the storefront product and
// gallery lists. Entries expire on their own; mutators delete keys explicitly.
type CacheService interface {
	// Get returns the cached value and true, or nil and false when the key
	// is absent or expired.
	Get(key string) (interface{}, bool)

	// Set stores value under key for the given TTL.
	Set(key string, value interface{}, duration time.Duration)

	// Delete drops a single key.
	Delete(key string)

	// Flush drops everything.
	Flush()
}
