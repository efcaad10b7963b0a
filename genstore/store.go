// Package genstore implements the two-generation storage engine behind
// gencache. Entries live in a current and a previous generation; Sweep
// retires current to previous and drops what previous held, so an entry's
// age is implicit in which generation holds it. No per-entry timestamps.
package genstore

import (
	"sync/atomic"

	"github.com/unkn0wn-root/gencache/container"
)

// Policy controls what a read does when it finds its key in the previous
// generation.
type Policy int

const (
	// ExtendOnAccess moves the entry back into the current generation,
	// restarting its lifetime. Default.
	ExtendOnAccess Policy = iota

	// FixedOnAccess serves the entry where it is; its remaining lifetime
	// keeps running out.
	FixedOnAccess
)

// Outcome reports which path served a store operation.
type Outcome uint8

const (
	Miss        Outcome = iota
	HitCurrent          // found in the current generation
	HitPrevious         // found in previous, left in place (FixedOnAccess)
	Promoted            // found in previous, moved into current
	Added               // computed and inserted into current
	RaceLost            // computed, but a concurrent insert won
)

// generations is the immutable {current, previous} pair. It is replaced
// wholesale, never mutated, so a single pointer load always yields an
// internally consistent snapshot of both slots.
type generations[K comparable, V any] struct {
	current  container.Map[K, V]
	previous container.Map[K, V]
}

// Store holds entries across two generations and rotates them on Sweep.
//
// All operations are safe for concurrent use. An operation works against
// the snapshot it loaded: a Sweep that lands mid-operation relabels the
// pair underneath it, which at worst steers an insert into the generation
// that just became previous. Such an entry stays reachable for one more
// sweep interval, never less. Sweep and Clear must only be called from a
// single goroutine at a time; the snapshot slot has no write-write
// protection beyond that.
type Store[K comparable, V any] struct {
	policy Policy
	newMap container.Factory[K, V]
	gens   atomic.Pointer[generations[K, V]]
}

func New[K comparable, V any](policy Policy, newMap container.Factory[K, V]) *Store[K, V] {
	s := &Store[K, V]{policy: policy, newMap: newMap}
	s.gens.Store(&generations[K, V]{current: newMap(), previous: newMap()})
	return s
}

// Snapshot returns the pair as of one atomic load. The snapshot stays
// valid to read and write after a sweep relabels the store; it just may
// no longer be the latest pair.
func (s *Store[K, V]) Snapshot() (current, previous container.Map[K, V]) {
	g := s.gens.Load()
	return g.current, g.previous
}

// Lookup checks current first, then previous. A previous hit is promoted
// or left in place depending on the policy.
func (s *Store[K, V]) Lookup(key K) (V, Outcome) {
	g := s.gens.Load()
	if v, ok := g.current.Load(key); ok {
		return v, HitCurrent
	}
	if v, ok := g.previous.Load(key); ok {
		if s.policy == FixedOnAccess {
			return v, HitPrevious
		}
		return s.promote(g, key, v), Promoted
	}
	var zero V
	return zero, Miss
}

// GetOrInsert returns the value for key, computing and inserting it on a
// double miss. compute may run more than once when callers race past the
// miss check together; only the first inserted result is kept and every
// racer returns it. A compute error propagates to the caller and nothing
// is inserted, so the next call retries.
func (s *Store[K, V]) GetOrInsert(key K, compute func(K) (V, error)) (V, Outcome, error) {
	g := s.gens.Load()
	if v, ok := g.current.Load(key); ok {
		return v, HitCurrent, nil
	}
	if v, ok := g.previous.Load(key); ok {
		if s.policy == FixedOnAccess {
			return v, HitPrevious, nil
		}
		return s.promote(g, key, v), Promoted, nil
	}

	v, err := compute(key)
	if err != nil {
		var zero V
		return zero, Miss, err
	}
	actual, loaded := g.current.LoadOrStore(key, v)
	// A racer may have been promoted out of previous between our miss
	// check and the insert; clear the shadow so current is the single home.
	g.previous.Delete(key)
	if loaded {
		return actual, RaceLost, nil
	}
	return actual, Added, nil
}

// Upsert writes key into current unconditionally and clears any copy from
// previous, making current authoritative for the key.
func (s *Store[K, V]) Upsert(key K, value V) {
	g := s.gens.Load()
	g.current.Store(key, value)
	g.previous.Delete(key)
}

// Remove deletes key from both generations. When the key sat in both,
// the previous generation's value is reported: that is the copy that was
// about to expire.
func (s *Store[K, V]) Remove(key K) (V, bool) {
	g := s.gens.Load()
	cv, cok := g.current.LoadAndDelete(key)
	pv, pok := g.previous.LoadAndDelete(key)
	if pok {
		return pv, true
	}
	if cok {
		return cv, true
	}
	var zero V
	return zero, false
}

// Sweep retires current to previous and installs a fresh current,
// dropping whatever previous held. Returns the number of dropped entries.
// Single-sweeper only.
func (s *Store[K, V]) Sweep() int {
	old := s.gens.Load()
	dropped := old.previous.Len()
	s.gens.Store(&generations[K, V]{current: s.newMap(), previous: old.current})
	return dropped
}

// Len is the entry count across both generations. A key mid-promotion can
// transiently be counted in both; treat the result as diagnostic.
func (s *Store[K, V]) Len() int {
	g := s.gens.Load()
	return g.current.Len() + g.previous.Len()
}

// Clear drops both generations. Single-sweeper only, like Sweep.
func (s *Store[K, V]) Clear() {
	s.gens.Store(&generations[K, V]{current: s.newMap(), previous: s.newMap()})
}

// promote re-inserts a previous-generation value into current with
// insert-if-absent semantics: when a concurrent writer already put a newer
// value there, that value wins and is what the caller gets. The previous
// copy is deleted either way.
func (s *Store[K, V]) promote(g *generations[K, V], key K, v V) V {
	actual, _ := g.current.LoadOrStore(key, v)
	g.previous.Delete(key)
	return actual
}
