package types

import "time"

// CacheStats is derived on demand from the store; it is never persisted.
type CacheStats struct {
	TotalEntries     int
	ValidEntries     int
	ExpiredEntries   int
	TTL              time.Duration
	MemoryUsageBytes int64

	// Configured bounds; 0 means unbounded.
	MaxMemoryBytes int64
	MaxEntries     int

	Counters CounterSnapshot
}

// ClearResult reports the outcome of an administrative clear.
type ClearResult struct {
	ClearedCount   int
	RemainingCount int
}
