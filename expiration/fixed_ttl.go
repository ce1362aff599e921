package expiration

import (
	"time"

	"github.com/sanshu/iconcache/types"
)

// DefaultTTL matches the icon workshop's default cache expiry.
const DefaultTTL = 30 * time.Minute

/*
FixedTTL expires an entry a fixed duration after it was written.
Reads never extend the deadline; a refresh replaces the entry instead.
*/
type FixedTTL struct {
	TTL time.Duration
}

func (f FixedTTL) DefaultTTL() time.Duration {
	if f.TTL <= 0 {
		return DefaultTTL
	}
	return f.TTL
}

func (f FixedTTL) Deadline(insertedAt time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		ttl = f.DefaultTTL()
	}
	return insertedAt.Add(ttl)
}

// IsExpired is strict: an entry is still valid at exactly ExpiresAt.
func (FixedTTL) IsExpired(ent *types.CacheEntry, now time.Time) bool {
	return ent.Expired(now)
}
