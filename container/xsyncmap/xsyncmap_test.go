package xsyncmap_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/gencache/container"
	"github.com/unkn0wn-root/gencache/container/xsyncmap"
)

func TestMapOperations(t *testing.T) {
	var m container.Map[string, int] = xsyncmap.New[string, int]()

	_, ok := m.Load("a")
	require.False(t, ok)

	m.Store("a", 1)
	v, ok := m.Load("a")
	require.True(t, ok)
	require.Equal(t, 1, v)

	v, loaded := m.LoadOrStore("a", 99)
	require.True(t, loaded)
	require.Equal(t, 1, v, "LoadOrStore keeps the existing value")

	v, loaded = m.LoadOrStore("b", 2)
	require.False(t, loaded)
	require.Equal(t, 2, v)
	require.Equal(t, 2, m.Len())

	v, ok = m.LoadAndDelete("a")
	require.True(t, ok)
	require.Equal(t, 1, v)
	_, ok = m.LoadAndDelete("a")
	require.False(t, ok)

	m.Delete("b")
	m.Delete("b") // deleting a missing key is a no-op
	require.Zero(t, m.Len())

	m.Store("c", 3)
	m.Clear()
	require.Zero(t, m.Len())
}

// Concurrent LoadAndDelete on one key must hand the value to exactly one
// caller; the generational store's Remove path depends on this.
func TestLoadAndDeleteIsExactlyOnce(t *testing.T) {
	m := xsyncmap.New[string, int]()
	const rounds = 200
	const racers = 8

	for i := 0; i < rounds; i++ {
		m.Store("k", i)

		var wg sync.WaitGroup
		wins := make([]bool, racers)
		for r := 0; r < racers; r++ {
			wg.Add(1)
			go func(r int) {
				defer wg.Done()
				_, wins[r] = m.LoadAndDelete("k")
			}(r)
		}
		wg.Wait()

		won := 0
		for _, w := range wins {
			if w {
				won++
			}
		}
		require.Equal(t, 1, won, "round %d", i)
	}
}
