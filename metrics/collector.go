// Package metrics exposes gencache counters as a Prometheus collector.
// It is optional: nothing in the core imports it.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/unkn0wn-root/gencache"
)

// Source is anything that can report cache statistics. Every
// gencache.Cache satisfies it.
type Source interface {
	Name() string
	Len() int
	Stats() gencache.Stats
}

// Collector implements prometheus.Collector over one cache; register one
// per cache. The cache name rides along as a const label, so several
// caches can share a registry.
type Collector struct {
	src Source

	hits       *prometheus.Desc
	misses     *prometheus.Desc
	adds       *prometheus.Desc
	updates    *prometheus.Desc
	promotions *prometheus.Desc
	removals   *prometheus.Desc
	computes   *prometheus.Desc
	discards   *prometheus.Desc
	sweeps     *prometheus.Desc
	dropped    *prometheus.Desc
	entries    *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

func NewCollector(src Source) *Collector {
	cl := prometheus.Labels{"cache": src.Name()}
	return &Collector{
		src: src,
		hits: prometheus.NewDesc("gencache_hits_total",
			"Lookup hits, split by the generation that served them.",
			[]string{"generation"}, cl),
		misses: prometheus.NewDesc("gencache_misses_total",
			"Lookups that found nothing.", nil, cl),
		adds: prometheus.NewDesc("gencache_adds_total",
			"Values inserted by get-or-add computes.", nil, cl),
		updates: prometheus.NewDesc("gencache_updates_total",
			"Unconditional writes.", nil, cl),
		promotions: prometheus.NewDesc("gencache_promotions_total",
			"Previous-generation hits moved back into current.", nil, cl),
		removals: prometheus.NewDesc("gencache_removals_total",
			"Keys removed by callers.", nil, cl),
		computes: prometheus.NewDesc("gencache_computes_total",
			"Compute callbacks invoked, including failed ones.", nil, cl),
		discards: prometheus.NewDesc("gencache_compute_discards_total",
			"Computed values dropped after losing the insert race.", nil, cl),
		sweeps: prometheus.NewDesc("gencache_sweeps_total",
			"Generation rotations.", nil, cl),
		dropped: prometheus.NewDesc("gencache_dropped_entries_total",
			"Entries discarded by sweeps.", nil, cl),
		entries: prometheus.NewDesc("gencache_entries",
			"Entries currently held across both generations.", nil, cl),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hits
	ch <- c.misses
	ch <- c.adds
	ch <- c.updates
	ch <- c.promotions
	ch <- c.removals
	ch <- c.computes
	ch <- c.discards
	ch <- c.sweeps
	ch <- c.dropped
	ch <- c.entries
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(s.HitsCurrent), "current")
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(s.HitsPrevious), "previous")
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(s.Misses))
	ch <- prometheus.MustNewConstMetric(c.adds, prometheus.CounterValue, float64(s.Adds))
	ch <- prometheus.MustNewConstMetric(c.updates, prometheus.CounterValue, float64(s.Updates))
	ch <- prometheus.MustNewConstMetric(c.promotions, prometheus.CounterValue, float64(s.Promotions))
	ch <- prometheus.MustNewConstMetric(c.removals, prometheus.CounterValue, float64(s.Removals))
	ch <- prometheus.MustNewConstMetric(c.computes, prometheus.CounterValue, float64(s.Computes))
	ch <- prometheus.MustNewConstMetric(c.discards, prometheus.CounterValue, float64(s.ComputeDiscards))
	ch <- prometheus.MustNewConstMetric(c.sweeps, prometheus.CounterValue, float64(s.Sweeps))
	ch <- prometheus.MustNewConstMetric(c.dropped, prometheus.CounterValue, float64(s.DroppedEntries))
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(c.src.Len()))
}
