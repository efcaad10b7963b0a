package gencache

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/unkn0wn-root/gencache/container"
	"github.com/unkn0wn-root/gencache/genstore"
)

// Cache is the public surface of a generational cache. K must be
// comparable (it is used as a map key); V is the caller's value type,
// stored as-is with no serialization.
//
// Operations come in pairs. The plain variants run against the store
// immediately and never block. The Wait variants first wait for the next
// wake hand-off (a sweep, or an earlier Wait variant that mutated the
// cache), then run, then pass the hand-off on if they mutated anything
// themselves. The first Wait call on a fresh cache therefore blocks for
// up to one sweep interval; see the package documentation for why this
// pacing exists.
type Cache[K comparable, V any] interface {
	// GetOrAdd returns the value for key, invoking compute and storing
	// its result on miss. Concurrent callers may each invoke compute, but
	// only the first stored result survives and all callers return it.
	// A compute error is returned as-is and nothing is stored.
	GetOrAdd(key K, compute func(K) (V, error)) (V, error)

	// AddOrUpdate writes value under key unconditionally.
	AddOrUpdate(key K, value V)

	// TryGet returns the value for key if present.
	TryGet(key K) (V, bool)

	// TryRemove removes key, reporting whether it was present.
	TryRemove(key K) bool

	// TryTake removes key and returns the removed value. When the key
	// sat in both generations, the older value is returned.
	TryTake(key K) (V, bool)

	// Wait-gated variants. ctx aborts the gate wait only; once an
	// operation starts it runs to completion. After Close they return
	// ErrClosed.
	GetOrAddWait(ctx context.Context, key K, compute func(K) (V, error)) (V, error)
	AddOrUpdateWait(ctx context.Context, key K, value V) error
	TryGetWait(ctx context.Context, key K) (V, bool, error)
	TryRemoveWait(ctx context.Context, key K) (bool, error)

	// Len is the entry count across both generations (diagnostic; a key
	// mid-promotion may transiently be counted twice).
	Len() int

	// Name returns the diagnostic name the cache was built with.
	Name() string

	// Stats returns a snapshot of the cache's counters.
	Stats() Stats

	// Close stops the sweeper, drops all entries and marks the cache
	// inert. Idempotent. Afterwards reads miss, writes are dropped,
	// GetOrAdd degrades to computing without storing, and Wait variants
	// return ErrClosed.
	Close() error
}

// Options tune a cache. Only MaxAge is required; everything else has a
// usable default.
type Options[K comparable, V any] struct {
	// Required. Upper bound on how long an untouched entry stays
	// reachable. Sweeps run every MaxAge/2, so an entry written right
	// after a sweep lives at least MaxAge/2 and at most MaxAge unless
	// the policy extends it.
	MaxAge time.Duration

	Name      string          // diagnostic name; "" => "xCache"
	Policy    genstore.Policy // default ExtendOnAccess
	Logger    Logger          // if nil, NopLogger is used
	Hooks     Hooks           // if nil, NopHooks is used
	Normalize func(K) K       // optional key canonicalizer, applied before any container access

	// NewContainer supplies generation containers; nil => xsyncmap.
	// See container for the contract an implementation must honor.
	NewContainer container.Factory[K, V]

	// Clock drives the sweep ticker; nil => wall clock. Tests inject
	// clock.NewMock() to step sweeps deterministically.
	Clock clock.Clock
}

func New[K comparable, V any](opts Options[K, V]) (Cache[K, V], error) {
	return newCache[K, V](opts)
}
