package eviction

import "fmt"

/*
This file defines how the store decides what to remove when it runs out of budget.
*/

/*
Policy is the interface every eviction strategy must follow.

The store calls it under its own lock, so implementations need no
synchronisation of their own. The store does NOT care how the order is
kept; it only asks for the next victim.
*/
type Policy interface {

	// OnPut is called after a key is inserted or replaced.
	// A replaced key counts as newly inserted.
	OnPut(string)

	// Remove is called when a key leaves the store for any reason other
	// than Evict (invalidate, clear, replace).
	Remove(string)

	// Evict picks the next victim and stops tracking it.
	// It returns "" when nothing is tracked.
	Evict() string

	// Len returns how many keys are tracked.
	Len() int
}

// PolicyType identifies a supported eviction strategy.
type PolicyType string

const (
	// FIFO evicts the entry with the oldest insertion time, regardless of reads.
	FIFO PolicyType = "fifo"
)

// NewPolicy creates the policy for t.
func NewPolicy(t PolicyType) (Policy, error) {
	switch t {
	case FIFO, "":
		return newFIFO(), nil
	default:
		return nil, fmt.Errorf("unknown eviction policy %q", t)
	}
}
