package gencache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/unkn0wn-root/gencache/container/xsyncmap"
	"github.com/unkn0wn-root/gencache/genstore"
)

const defaultName = "xCache"

type cache[K comparable, V any] struct {
	name      string
	store     *genstore.Store[K, V]
	log       Logger
	hooks     Hooks
	normalize func(K) K

	// wake gates the Wait variants; the sweeper and mutating Wait
	// operations feed it.
	wake *wakeSignal

	sweepInterval time.Duration
	clk           clock.Clock

	// background sweep
	ticker    *clock.Ticker
	stopCh    chan struct{}
	closeWg   sync.WaitGroup
	closeOnce sync.Once
	closed    atomic.Bool

	stats stats
}

func newCache[K comparable, V any](opts Options[K, V]) (*cache[K, V], error) {
	if opts.MaxAge <= 0 {
		return nil, fmt.Errorf("gencache: max age is required")
	}
	interval := opts.MaxAge / 2
	if interval <= 0 {
		return nil, fmt.Errorf("gencache: max age %v is too small to sweep at half-age", opts.MaxAge)
	}
	switch opts.Policy {
	case genstore.ExtendOnAccess, genstore.FixedOnAccess:
	default:
		return nil, fmt.Errorf("gencache: unknown expiration policy %d", opts.Policy)
	}

	newMap := opts.NewContainer
	if newMap == nil {
		newMap = xsyncmap.New[K, V]
	}

	c := &cache[K, V]{
		name:          coalesce(opts.Name, defaultName),
		store:         genstore.New(opts.Policy, newMap),
		log:           coalesce[Logger](opts.Logger, NopLogger{}),
		hooks:         coalesce[Hooks](opts.Hooks, NopHooks{}),
		normalize:     opts.Normalize,
		wake:          newWakeSignal(),
		sweepInterval: interval,
		clk:           coalesce[clock.Clock](opts.Clock, clock.New()),
		stopCh:        make(chan struct{}),
	}

	c.ticker = c.clk.Ticker(c.sweepInterval)
	c.closeWg.Add(1)
	go c.sweepLoop()
	return c, nil
}

func (c *cache[K, V]) Name() string { return c.name }

func (c *cache[K, V]) Len() int { return c.store.Len() }

func (c *cache[K, V]) Stats() Stats { return c.stats.snapshot() }

// Close stops and joins the sweeper, then drops both generations and
// marks the cache inert. Safe to call more than once.
func (c *cache[K, V]) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		close(c.stopCh)
		c.closeWg.Wait()
		c.ticker.Stop()
		c.store.Clear()
		c.log.Debug("cache closed", Fields{"cache": c.name})
	})
	return nil
}

// ---- synchronous operations ----

func (c *cache[K, V]) GetOrAdd(key K, compute func(K) (V, error)) (V, error) {
	v, _, err := c.getOrAdd(c.key(key), compute)
	return v, err
}

func (c *cache[K, V]) AddOrUpdate(key K, value V) {
	k := c.key(key)
	if c.closed.Load() {
		return
	}
	c.store.Upsert(k, value)
	c.stats.updates.Add(1)
	c.log.Debug("AddOrUpdate stored", Fields{"cache": c.name, "key": k})
}

func (c *cache[K, V]) TryGet(key K) (V, bool) {
	v, outcome := c.tryGet(c.key(key))
	return v, outcome != genstore.Miss
}

func (c *cache[K, V]) TryRemove(key K) bool {
	_, ok := c.take(c.key(key), "TryRemove")
	return ok
}

func (c *cache[K, V]) TryTake(key K) (V, bool) {
	return c.take(c.key(key), "TryTake")
}

// ---- wait-gated operations ----

func (c *cache[K, V]) GetOrAddWait(ctx context.Context, key K, compute func(K) (V, error)) (V, error) {
	var zero V
	if err := c.gate(ctx); err != nil {
		return zero, err
	}
	v, outcome, err := c.getOrAdd(c.key(key), compute)
	if err != nil {
		return zero, err
	}
	if outcome == genstore.Added || outcome == genstore.Promoted {
		c.wake.Notify()
	}
	return v, nil
}

func (c *cache[K, V]) AddOrUpdateWait(ctx context.Context, key K, value V) error {
	if err := c.gate(ctx); err != nil {
		return err
	}
	c.AddOrUpdate(key, value)
	c.wake.Notify()
	return nil
}

func (c *cache[K, V]) TryGetWait(ctx context.Context, key K) (V, bool, error) {
	var zero V
	if err := c.gate(ctx); err != nil {
		return zero, false, err
	}
	v, outcome := c.tryGet(c.key(key))
	if outcome == genstore.Promoted {
		c.wake.Notify()
	}
	return v, outcome != genstore.Miss, nil
}

func (c *cache[K, V]) TryRemoveWait(ctx context.Context, key K) (bool, error) {
	if err := c.gate(ctx); err != nil {
		return false, err
	}
	_, ok := c.take(c.key(key), "TryRemove")
	if ok {
		c.wake.Notify()
	}
	return ok, nil
}

// gate blocks until this caller consumes the wake hand-off. Close
// releases gated callers through stopCh with ErrClosed; a ctx abort
// consumes no hand-off.
func (c *cache[K, V]) gate(ctx context.Context) error {
	if c.closed.Load() {
		return ErrClosed
	}
	select {
	case <-c.wake.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-c.stopCh:
		return ErrClosed
	}
}

// ---- internals ----

func (c *cache[K, V]) getOrAdd(k K, compute func(K) (V, error)) (V, genstore.Outcome, error) {
	if c.closed.Load() {
		// inert: hand the caller a value without keeping it
		v, err := compute(k)
		return v, genstore.Miss, err
	}
	v, outcome, err := c.store.GetOrInsert(k, compute)
	if err != nil {
		c.stats.computes.Add(1)
		c.log.Debug("GetOrAdd compute failed", Fields{"cache": c.name, "key": k, "err": err})
		var zero V
		return zero, genstore.Miss, err
	}
	c.observe("GetOrAdd", k, outcome)
	return v, outcome, nil
}

func (c *cache[K, V]) tryGet(k K) (V, genstore.Outcome) {
	if c.closed.Load() {
		var zero V
		return zero, genstore.Miss
	}
	v, outcome := c.store.Lookup(k)
	c.observe("TryGet", k, outcome)
	return v, outcome
}

func (c *cache[K, V]) take(k K, op string) (V, bool) {
	var zero V
	if c.closed.Load() {
		return zero, false
	}
	v, ok := c.store.Remove(k)
	f := Fields{"cache": c.name, "key": k}
	if !ok {
		c.log.Debug(op+" miss", f)
		return zero, false
	}
	c.stats.removals.Add(1)
	c.log.Debug(op+" removed", f)
	return v, true
}

// observe counts an outcome and emits its diagnostic event.
func (c *cache[K, V]) observe(op string, key K, o genstore.Outcome) {
	f := Fields{"cache": c.name, "key": key}
	switch o {
	case genstore.HitCurrent:
		c.stats.hitsCurrent.Add(1)
		c.log.Debug(op+" hit (current)", f)
	case genstore.HitPrevious:
		c.stats.hitsPrevious.Add(1)
		c.log.Debug(op+" hit (previous, fixed policy)", f)
	case genstore.Promoted:
		c.stats.hitsPrevious.Add(1)
		c.stats.promotions.Add(1)
		c.log.Debug(op+" hit (promoted from previous)", f)
	case genstore.Added:
		c.stats.computes.Add(1)
		c.stats.adds.Add(1)
		c.log.Debug(op+" computed and stored", f)
	case genstore.RaceLost:
		c.stats.computes.Add(1)
		c.stats.discarded.Add(1)
		c.hooks.ComputeDiscarded(c.name, key)
		c.log.Debug(op+" lost insert race (kept winner)", f)
	case genstore.Miss:
		c.stats.misses.Add(1)
		c.log.Debug(op+" miss", f)
	}
}

func (c *cache[K, V]) key(k K) K {
	if c.normalize != nil {
		return c.normalize(k)
	}
	return k
}

func (c *cache[K, V]) sweepLoop() {
	defer c.closeWg.Done()
	for {
		select {
		case <-c.ticker.C:
			dropped := c.store.Sweep()
			c.wake.Notify()
			c.stats.dropped.Add(uint64(dropped))
			c.stats.sweeps.Add(1)
			c.hooks.Swept(c.name, dropped)
			if dropped > 0 {
				c.log.Debug("sweep rotated generations", Fields{"cache": c.name, "dropped": dropped})
			}
		case <-c.stopCh:
			return
		}
	}
}
