// usage:
//
// import (
//
//	"log/slog"
//
//	"github.com/unkn0wn-root/gencache"
//	"github.com/unkn0wn-root/gencache/hooks/async"
//	"github.com/unkn0wn-root/gencache/sloghooks"
//
// )
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    SweptEvery:   10, // sample logs: ~every 10th sweep
//	    DiscardEvery: 1,  // log every discarded compute
//	})
//
// hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
// defer hooks.Close()
//
//	cache, _ := gencache.New[string, User](gencache.Options[string, User]{
//	    MaxAge: 10 * time.Minute,
//	    Name:   "users",
//	    Hooks:  hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/gencache"
)

type Hooks struct {
	inner gencache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ gencache.Hooks = (*Hooks)(nil)

func New(inner gencache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) Swept(cache string, dropped int) {
	h.try(func() { h.inner.Swept(cache, dropped) })
}

func (h *Hooks) ComputeDiscarded(cache string, key any) {
	h.try(func() { h.inner.ComputeDiscarded(cache, key) })
}
