package gencache

import (
	"fmt"
	"sort"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Entry is the slice of Cache a Registry manages: enough to identify and
// shut down a cache without knowing its key/value types.
type Entry interface {
	Name() string
	Close() error
}

// Registry tracks named caches so a host application can wire them up in
// one place and shut them down together. Names must be unique; give each
// cache a distinct Options.Name.
type Registry struct {
	mu     sync.Mutex
	caches map[string]Entry
}

func NewRegistry() *Registry {
	return &Registry{caches: make(map[string]Entry)}
}

// Register adds a cache under its Name. A second cache with the same
// name is rejected.
func (r *Registry) Register(c Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := c.Name()
	if _, ok := r.caches[name]; ok {
		return fmt.Errorf("gencache: cache %q already registered", name)
	}
	r.caches[name] = c
	return nil
}

// Deregister removes a cache by name without closing it.
func (r *Registry) Deregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.caches[name]; !ok {
		return false
	}
	delete(r.caches, name)
	return true
}

// Get returns the registered cache with the given name.
func (r *Registry) Get(name string) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.caches[name]
	return c, ok
}

// Names lists registered cache names, sorted.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.caches))
	for n := range r.caches {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Close closes every registered cache and empties the registry. Errors
// are collected per cache; one failing Close does not stop the rest.
func (r *Registry) Close() error {
	r.mu.Lock()
	caches := r.caches
	r.caches = make(map[string]Entry)
	r.mu.Unlock()

	names := make([]string, 0, len(caches))
	for n := range caches {
		names = append(names, n)
	}
	sort.Strings(names)

	var errs *multierror.Error
	for _, n := range names {
		if err := caches[n].Close(); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("close %q: %w", n, err))
		}
	}
	return errs.ErrorOrNil()
}
