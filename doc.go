// Package gencache implements an in-process, thread-safe key/value cache
// with generational expiration. Entries carry no timestamps; instead the
// cache keeps exactly two generations (current and previous) and a
// background sweeper rotates them every MaxAge/2. An entry written right
// after a sweep is reachable for at least MaxAge/2 and gone by MaxAge,
// unless an access promotes it back into the current generation
// (ExtendOnAccess, the default). Expiring a whole generation at a time
// keeps the hot path free of eviction scans and exclusive locks.
//
// Components:
//   - container.Map: per-key-atomic map a generation is made of
//     (xsync-backed by default, pluggable via Options.NewContainer).
//   - genstore.Store: the two-generation engine (lookup, promotion,
//     insert-if-absent, remove, sweep).
//   - Cache: the public facade pairing synchronous operations with
//     wait-gated ones, plus diagnostics (Logger events, Hooks, Stats).
//
// Every operation has a Wait variant that first waits for a wake
// hand-off: a token produced by each sweep and re-produced by any Wait
// operation that mutated the cache. The first Wait call after
// construction blocks for up to one sweep interval, and Wait calls
// serialize behind one another when nothing else notifies. The pacing
// throttles gated callers to the sweep cadence; callers that just want
// the value should use the synchronous variants, which never touch the
// signal.
//
// Usage:
//
//	cc, err := gencache.New[string, Token](gencache.Options[string, Token]{
//	    MaxAge: 10 * time.Minute,
//	    Name:   "tokens",
//	})
//	if err != nil { ... }
//	defer cc.Close()
//
//	tok, err := cc.GetOrAdd("tenant-a", fetchToken)
package gencache
