package gencache

import "context"

// wakeSignal is a coalesced wake-one primitive: at most one wake is
// pending at any time, and each pending wake releases exactly one waiter.
// It is a presence flag, not a counter - a channel of capacity 1 gives
// both properties for free.
type wakeSignal struct {
	ch chan struct{}
}

func newWakeSignal() *wakeSignal {
	return &wakeSignal{ch: make(chan struct{}, 1)}
}

// Notify marks a wake pending. When one is already pending this is a
// no-op; notifies never accumulate.
func (w *wakeSignal) Notify() {
	select {
	case w.ch <- struct{}{}:
	default:
	}
}

// Wait blocks until it consumes a pending wake, or until ctx is done.
// Concurrent waiters queue; one Notify releases exactly one of them, in
// no guaranteed order. A ctx abort consumes nothing: the pending wake, if
// any, stays available for the next waiter.
func (w *wakeSignal) Wait(ctx context.Context) error {
	select {
	case <-w.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
