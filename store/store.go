// Package store holds cached search pages and icon content in memory,
// bounded by entry count and an approximate byte budget.
package store

import (
	"sync"
	"time"

	"github.com/sanshu/iconcache/eviction"
	"github.com/sanshu/iconcache/expiration"
	"github.com/sanshu/iconcache/types"
)

// Options configures a Store. Zero bounds mean unbounded.
type Options struct {
	TTL        time.Duration
	MaxBytes   int64
	MaxEntries int
	Policy     eviction.PolicyType

	// Expiration defaults to FixedTTL{TTL}.
	Expiration expiration.Strategy

	// Sizer defaults to EstimateSize.
	Sizer Sizer

	// Now defaults to time.Now.
	Now func() time.Time

	Metrics types.Metrics
}

/*
Store is the single shared cache. One mutex guards the map, the eviction
order and the byte tally, so every operation on a key is linearizable with
every other.

Expired entries are treated as misses but are left in place until they are
replaced, cleared or swept. That keeps them visible to Stats.
*/
type Store struct {
	mu      sync.Mutex
	entries map[string]*types.CacheEntry
	used    int64

	policy     eviction.Policy
	expiry     expiration.Strategy
	sizer      Sizer
	now        func() time.Time
	metrics    types.Metrics
	maxBytes   int64
	maxEntries int
}

func New(opts Options) (*Store, error) {
	policy, err := eviction.NewPolicy(opts.Policy)
	if err != nil {
		return nil, err
	}

	s := &Store{
		entries:    make(map[string]*types.CacheEntry),
		policy:     policy,
		expiry:     opts.Expiration,
		sizer:      opts.Sizer,
		now:        opts.Now,
		metrics:    opts.Metrics,
		maxBytes:   opts.MaxBytes,
		maxEntries: opts.MaxEntries,
	}
	if s.expiry == nil {
		s.expiry = expiration.FixedTTL{TTL: opts.TTL}
	}
	if s.sizer == nil {
		s.sizer = EstimateSize
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.metrics == nil {
		s.metrics = types.NoopMetrics{}
	}
	return s, nil
}

// Lookup returns the fresh entry for key. A stale entry is reported as a miss.
func (s *Store) Lookup(key string) (*types.CacheEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.entries[key]
	if !ok {
		s.metrics.Miss()
		return nil, false
	}
	if s.expiry.IsExpired(ent, s.now()) {
		s.metrics.Expire()
		s.metrics.Miss()
		return nil, false
	}
	s.metrics.Hit()
	return ent, true
}

// Peek is Lookup without recording metrics.
func (s *Store) Peek(key string) (*types.CacheEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.entries[key]
	if !ok || s.expiry.IsExpired(ent, s.now()) {
		return nil, false
	}
	return ent, true
}

/*
Insert stores value under key, replacing any previous entry.

Before inserting, the oldest entries are evicted until the new one fits
both bounds. The newly inserted entry is never a victim of its own insert.
If the value alone is larger than the byte budget, nothing is changed and a
*types.CapacityError is returned.
*/
func (s *Store) Insert(key string, value any, ttl time.Duration) error {
	size := s.sizer(key, value)
	if s.maxBytes > 0 && size > s.maxBytes {
		return &types.CapacityError{Key: key, Size: size, Budget: s.maxBytes}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.entries[key]; ok {
		s.removeLocked(old)
	}

	for s.overBudgetLocked(size) {
		victim := s.policy.Evict()
		if victim == "" {
			break
		}
		if ent, ok := s.entries[victim]; ok {
			delete(s.entries, victim)
			s.used -= ent.SizeBytes
			s.metrics.Eviction()
		}
	}

	// Stamped under the lock so InsertedAt order matches eviction order.
	now := s.now()
	s.entries[key] = &types.CacheEntry{
		Key:        key,
		Value:      value,
		InsertedAt: now,
		ExpiresAt:  s.expiry.Deadline(now, ttl),
		SizeBytes:  size,
	}
	s.used += size
	s.policy.OnPut(key)
	return nil
}

// Invalidate removes key. It reports whether an entry was present.
func (s *Store) Invalidate(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.entries[key]
	if !ok {
		return false
	}
	s.removeLocked(ent)
	return true
}

// Clear removes every entry matching pred. It returns how many it removed
// and how many were left, both taken under the same lock.
func (s *Store) Clear(pred Predicate) (removed, remaining int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, ent := range s.entries {
		if pred(ent, s.expiry.IsExpired(ent, now)) {
			s.removeLocked(ent)
			removed++
		}
	}
	return removed, len(s.entries)
}

// Stats scans the store once, partitioning entries by expiry.
func (s *Store) Stats() types.CacheStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	st := types.CacheStats{
		TotalEntries:     len(s.entries),
		TTL:              s.expiry.DefaultTTL(),
		MemoryUsageBytes: s.used,
		MaxMemoryBytes:   s.maxBytes,
		MaxEntries:       s.maxEntries,
	}
	for _, ent := range s.entries {
		if s.expiry.IsExpired(ent, now) {
			st.ExpiredEntries++
		} else {
			st.ValidEntries++
		}
	}
	return st
}

// Len returns the number of stored entries, stale ones included.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// TTL is the lifetime applied when Insert is given ttl <= 0.
func (s *Store) TTL() time.Duration {
	return s.expiry.DefaultTTL()
}

func (s *Store) removeLocked(ent *types.CacheEntry) {
	delete(s.entries, ent.Key)
	s.used -= ent.SizeBytes
	s.policy.Remove(ent.Key)
}

func (s *Store) overBudgetLocked(incoming int64) bool {
	if s.maxEntries > 0 && len(s.entries)+1 > s.maxEntries {
		return true
	}
	return s.maxBytes > 0 && s.used+incoming > s.maxBytes
}
