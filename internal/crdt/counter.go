package crdt

import (
	"math"
	"sort"
)

// CounterState is the exchanged form of a GrowCounter: replica id -> tally.
type CounterState struct {
	Counts map[string]uint64 `json:"counts" msgpack:"counts"`
}

// GrowCounter is a grow-only counter. Every replica only raises its own
// tally; the value is the sum of all tallies and merge takes the pointwise max.
//
// GrowCounter is not safe for concurrent use; callers serialise access.
type GrowCounter struct {
	counts map[string]uint64
}

// NewGrowCounter creates an empty counter.
func NewGrowCounter() *GrowCounter {
	return &GrowCounter{counts: make(map[string]uint64)}
}

// NewGrowCounterFromState restores a counter from an exchanged state.
func NewGrowCounterFromState(state CounterState) *GrowCounter {
	c := NewGrowCounter()
	for replica, n := range state.Counts {
		c.counts[replica] = n
	}
	return c
}

// Increment raises the tally of replica by one.
func (c *GrowCounter) Increment(replica string) {
	c.IncrementBy(replica, 1)
}

// IncrementBy raises the tally of replica by amount. The tally saturates at
// math.MaxUint64 instead of wrapping around.
func (c *GrowCounter) IncrementBy(replica string, amount uint64) {
	current := c.counts[replica]
	if amount > math.MaxUint64-current {
		c.counts[replica] = math.MaxUint64
		return
	}
	c.counts[replica] = current + amount
}

// Value returns the sum of all replica tallies.
func (c *GrowCounter) Value() uint64 {
	var total uint64
	for _, n := range c.counts {
		// сумма тоже насыщается, чтобы не было переполнения при экстремальных значениях
		if n > math.MaxUint64-total {
			return math.MaxUint64
		}
		total += n
	}
	return total
}

// ReplicaValue returns the tally of a single replica (0 if unknown).
func (c *GrowCounter) ReplicaValue(replica string) uint64 {
	return c.counts[replica]
}

// Replicas returns the replica ids with a tally, sorted.
func (c *GrowCounter) Replicas() []string {
	ids := make([]string, 0, len(c.counts))
	for id := range c.counts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Merge folds other into c by taking the maximum tally per replica.
// Merge is commutative, associative and idempotent.
func (c *GrowCounter) Merge(other *GrowCounter) {
	if other == nil {
		return
	}
	for replica, n := range other.counts {
		if n > c.counts[replica] {
			c.counts[replica] = n
		}
	}
}

// Clone returns a deep copy.
func (c *GrowCounter) Clone() *GrowCounter {
	return NewGrowCounterFromState(c.State())
}

// State returns a copy of the tallies for exchange or persistence.
func (c *GrowCounter) State() CounterState {
	counts := make(map[string]uint64, len(c.counts))
	for replica, n := range c.counts {
		counts[replica] = n
	}
	return CounterState{Counts: counts}
}

// Equal reports whether both counters hold the same tallies.
// A missing replica and a zero tally are considered equal.
func (c *GrowCounter) Equal(other *GrowCounter) bool {
	if other == nil {
		return false
	}
	for replica, n := range c.counts {
		if other.counts[replica] != n {
			return false
		}
	}
	for replica, n := range other.counts {
		if c.counts[replica] != n {
			return false
		}
	}
	return true
}
