// This file defines how cache entries expire over time.

package expiration

import (
	"time"

	"github.com/sanshu/iconcache/types"
)

/*
Strategy is the interface all expiration rules must follow. The store asks
it for an entry's deadline once, at insert time, and for a verdict at read
time. Entries are immutable, so a strategy cannot slide a deadline on read.
*/
type Strategy interface {

	// Deadline returns when an entry inserted at insertedAt goes stale.
	// ttl <= 0 selects the strategy's own default.
	Deadline(insertedAt time.Time, ttl time.Duration) time.Time

	// IsExpired reports whether ent is stale at now.
	IsExpired(ent *types.CacheEntry, now time.Time) bool

	// DefaultTTL is the lifetime used when no explicit ttl is given.
	DefaultTTL() time.Duration
}
