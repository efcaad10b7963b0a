// Package syncmap provides a stdlib-only generation container for callers
// who want to keep gencache's dependency surface minimal. The default
// container (container/xsyncmap) is faster under write-heavy load.
package syncmap

import (
	"sync"

	"github.com/unkn0wn-root/gencache/container"
)

type Map[K comparable, V any] struct {
	m sync.Map
}

func New[K comparable, V any]() container.Map[K, V] {
	return &Map[K, V]{}
}

func (m *Map[K, V]) Load(key K) (V, bool) {
	v, ok := m.m.Load(key)
	if !ok {
		var zero V
		return zero, false
	}
	return v.(V), true
}

func (m *Map[K, V]) Store(key K, value V) { m.m.Store(key, value) }

func (m *Map[K, V]) LoadOrStore(key K, value V) (V, bool) {
	a, loaded := m.m.LoadOrStore(key, value)
	return a.(V), loaded
}

func (m *Map[K, V]) LoadAndDelete(key K) (V, bool) {
	v, loaded := m.m.LoadAndDelete(key)
	if !loaded {
		var zero V
		return zero, false
	}
	return v.(V), true
}

func (m *Map[K, V]) Delete(key K) { m.m.Delete(key) }

// Len walks the map; sync.Map keeps no counter. Fine for diagnostics,
// do not call it on a hot path.
func (m *Map[K, V]) Len() int {
	n := 0
	m.m.Range(func(any, any) bool {
		n++
		return true
	})
	return n
}

// Clear walks and deletes; sync.Map.Clear needs a go1.23 toolchain.
func (m *Map[K, V]) Clear() {
	m.m.Range(func(k, _ any) bool {
		m.m.Delete(k)
		return true
	})
}
