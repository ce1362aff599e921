package types

import "sync/atomic"

// This file defines how the cache reports what it is doing.

/*
Metrics is an interface that defines what the cache wants to measure.
Each method represents an event in the cache lifecycle.
*/
type Metrics interface {

	// Hit is called when a lookup returns a fresh entry.
	Hit()

	// Miss is called when a lookup finds nothing usable, stale entries included.
	Miss()

	// Eviction is called when an entry is removed to make room.
	Eviction()

	// Expire is called when a lookup finds a stale entry.
	Expire()

	// Fetch is called once per provider call actually issued.
	Fetch()

	// Shared is called when a caller received the result of another caller's fetch.
	Shared()
}

/*
NoopMetrics is a "do nothing" implementation of Metrics, so components can
always call through without nil checks.
*/
type NoopMetrics struct{}

func (NoopMetrics) Hit()      {}
func (NoopMetrics) Miss()     {}
func (NoopMetrics) Eviction() {}
func (NoopMetrics) Expire()   {}
func (NoopMetrics) Fetch()    {}
func (NoopMetrics) Shared()   {}

// Counters is a lock-free Metrics implementation whose totals are exposed
// through CacheStats.
type Counters struct {
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
	expired   atomic.Uint64
	fetches   atomic.Uint64
	shared    atomic.Uint64
}

func (c *Counters) Hit()      { c.hits.Add(1) }
func (c *Counters) Miss()     { c.misses.Add(1) }
func (c *Counters) Eviction() { c.evictions.Add(1) }
func (c *Counters) Expire()   { c.expired.Add(1) }
func (c *Counters) Fetch()    { c.fetches.Add(1) }
func (c *Counters) Shared()   { c.shared.Add(1) }

// CounterSnapshot is a point-in-time copy of Counters.
type CounterSnapshot struct {
	Hits          uint64
	Misses        uint64
	Evictions     uint64
	ExpiredReads  uint64
	Fetches       uint64
	SharedFetches uint64
}

// Snapshot reads every counter. Individual reads are atomic; the set is not.
func (c *Counters) Snapshot() CounterSnapshot {
	return CounterSnapshot{
		Hits:          c.hits.Load(),
		Misses:        c.misses.Load(),
		Evictions:     c.evictions.Load(),
		ExpiredReads:  c.expired.Load(),
		Fetches:       c.fetches.Load(),
		SharedFetches: c.shared.Load(),
	}
}
