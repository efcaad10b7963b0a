package gencache

import "sync/atomic"

// stats is the cache's internal counter set. All fields are updated with
// atomic adds on the operation paths; reading happens via snapshot.
type stats struct {
	hitsCurrent  atomic.Uint64
	hitsPrevious atomic.Uint64
	misses       atomic.Uint64
	adds         atomic.Uint64
	updates      atomic.Uint64
	promotions   atomic.Uint64
	removals     atomic.Uint64
	computes     atomic.Uint64
	discarded    atomic.Uint64
	sweeps       atomic.Uint64
	dropped      atomic.Uint64
}

func (s *stats) snapshot() Stats {
	return Stats{
		HitsCurrent:     s.hitsCurrent.Load(),
		HitsPrevious:    s.hitsPrevious.Load(),
		Misses:          s.misses.Load(),
		Adds:            s.adds.Load(),
		Updates:         s.updates.Load(),
		Promotions:      s.promotions.Load(),
		Removals:        s.removals.Load(),
		Computes:        s.computes.Load(),
		ComputeDiscards: s.discarded.Load(),
		Sweeps:          s.sweeps.Load(),
		DroppedEntries:  s.dropped.Load(),
	}
}

// Stats is a point-in-time snapshot of cache counters. Counters are
// monotonic over the cache's lifetime; fields are not read atomically as
// a set, so cross-field arithmetic on a busy cache is approximate.
type Stats struct {
	HitsCurrent     uint64 // lookups served from the current generation
	HitsPrevious    uint64 // lookups served from the previous generation
	Misses          uint64 // lookups that found nothing
	Adds            uint64 // values inserted by get-or-add computes
	Updates         uint64 // unconditional writes (AddOrUpdate)
	Promotions      uint64 // previous-generation hits moved back to current
	Removals        uint64 // keys removed by TryRemove/TryTake
	Computes        uint64 // compute callbacks invoked (including failed ones)
	ComputeDiscards uint64 // computed values dropped after losing the insert race
	Sweeps          uint64 // generation rotations
	DroppedEntries  uint64 // entries discarded by sweeps
}

// Hits is the total lookup hit count across both generations.
func (s Stats) Hits() uint64 { return s.HitsCurrent + s.HitsPrevious }

// HitRatio returns hits / (hits + misses), or 0 before any lookup.
func (s Stats) HitRatio() float64 {
	total := s.Hits() + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits()) / float64(total)
}
