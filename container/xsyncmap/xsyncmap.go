// Package xsyncmap is the default generation container, backed by
// xsync.MapOf. Reads and per-key updates are lock-free, which keeps the
// cache's hot path free of a shared mutex.
package xsyncmap

import (
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/unkn0wn-root/gencache/container"
)

type Map[K comparable, V any] struct {
	m *xsync.MapOf[K, V]
}

func New[K comparable, V any]() container.Map[K, V] {
	return &Map[K, V]{m: xsync.NewMapOf[K, V]()}
}

func (m *Map[K, V]) Load(key K) (V, bool) { return m.m.Load(key) }

func (m *Map[K, V]) Store(key K, value V) { m.m.Store(key, value) }

func (m *Map[K, V]) LoadOrStore(key K, value V) (V, bool) {
	return m.m.LoadOrStore(key, value)
}

func (m *Map[K, V]) LoadAndDelete(key K) (V, bool) {
	return m.m.LoadAndDelete(key)
}

func (m *Map[K, V]) Delete(key K) { m.m.Delete(key) }

func (m *Map[K, V]) Len() int { return m.m.Size() }

func (m *Map[K, V]) Clear() { m.m.Clear() }
