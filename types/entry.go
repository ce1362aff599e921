package types

import "time"

// CacheEntry is immutable once the store hands it out.
// A refresh replaces the entry; nothing writes into an existing one.
type CacheEntry struct {
	Key        string
	Value      any
	InsertedAt time.Time
	ExpiresAt  time.Time
	SizeBytes  int64
}

// Expired reports whether the entry is stale at now.
func (e *CacheEntry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}
