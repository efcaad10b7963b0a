package genstore

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/gencache/container/xsyncmap"
)

func newTestStore(p Policy) *Store[string, int] {
	return New[string, int](p, xsyncmap.New[string, int])
}

func TestLookupPromotesUnderExtendPolicy(t *testing.T) {
	s := newTestStore(ExtendOnAccess)
	s.Upsert("k", 7)
	s.Sweep() // k moves to previous

	v, outcome := s.Lookup("k")
	require.Equal(t, 7, v)
	require.Equal(t, Promoted, outcome)

	// The promotion moved it: reads now hit current, previous is clean.
	v, outcome = s.Lookup("k")
	require.Equal(t, 7, v)
	require.Equal(t, HitCurrent, outcome)

	_, prev := s.Snapshot()
	_, ok := prev.Load("k")
	require.False(t, ok, "promotion must remove the previous copy")
}

func TestLookupFixedPolicyLeavesEntryInPlace(t *testing.T) {
	s := newTestStore(FixedOnAccess)
	s.Upsert("k", 7)
	s.Sweep()

	for i := 0; i < 3; i++ {
		v, outcome := s.Lookup("k")
		require.Equal(t, 7, v)
		require.Equal(t, HitPrevious, outcome)
	}

	cur, _ := s.Snapshot()
	_, ok := cur.Load("k")
	require.False(t, ok, "fixed policy must not copy into current")

	s.Sweep()
	_, outcome := s.Lookup("k")
	require.Equal(t, Miss, outcome, "unpromoted entry is gone after the second sweep")
}

func TestGetOrInsertComputesOnMissOnly(t *testing.T) {
	s := newTestStore(ExtendOnAccess)
	calls := 0
	compute := func(string) (int, error) {
		calls++
		return 42, nil
	}

	v, outcome, err := s.GetOrInsert("k", compute)
	require.NoError(t, err)
	require.Equal(t, 42, v)
	require.Equal(t, Added, outcome)

	v, outcome, err = s.GetOrInsert("k", compute)
	require.NoError(t, err)
	require.Equal(t, 42, v)
	require.Equal(t, HitCurrent, outcome)
	require.Equal(t, 1, calls)
}

func TestGetOrInsertPromotesFromPrevious(t *testing.T) {
	s := newTestStore(ExtendOnAccess)
	s.Upsert("k", 1)
	s.Sweep()

	v, outcome, err := s.GetOrInsert("k", func(string) (int, error) {
		t.Fatal("compute must not run for a previous-generation hit")
		return 0, nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, v)
	require.Equal(t, Promoted, outcome)
}

func TestGetOrInsertErrorIsNotMemoized(t *testing.T) {
	s := newTestStore(ExtendOnAccess)
	boom := errors.New("boom")

	_, outcome, err := s.GetOrInsert("k", func(string) (int, error) { return 0, boom })
	require.ErrorIs(t, err, boom)
	require.Equal(t, Miss, outcome)

	_, outcome = s.Lookup("k")
	require.Equal(t, Miss, outcome, "a failed compute must store nothing")

	v, outcome, err := s.GetOrInsert("k", func(string) (int, error) { return 9, nil })
	require.NoError(t, err)
	require.Equal(t, 9, v)
	require.Equal(t, Added, outcome)
}

func TestGetOrInsertRaceKeepsFirstInsert(t *testing.T) {
	s := newTestStore(ExtendOnAccess)

	const racers = 32
	var (
		wg       sync.WaitGroup
		added    atomic.Int32
		computes atomic.Int32
		results  [racers]int
		errs     [racers]error
	)
	start := make(chan struct{})
	wg.Add(racers)
	for i := 0; i < racers; i++ {
		go func(i int) {
			defer wg.Done()
			<-start
			v, outcome, err := s.GetOrInsert("k", func(string) (int, error) {
				computes.Add(1)
				return i + 1, nil // every racer computes a distinct value
			})
			results[i], errs[i] = v, err
			if outcome == Added {
				added.Add(1)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 0; i < racers; i++ {
		require.NoError(t, errs[i])
	}
	require.EqualValues(t, 1, added.Load(), "exactly one racer's insert wins")
	require.GreaterOrEqual(t, computes.Load(), int32(1))

	winner, outcome := s.Lookup("k")
	require.Equal(t, HitCurrent, outcome)
	for i := 0; i < racers; i++ {
		require.Equal(t, winner, results[i], "every racer observes the winning value")
	}
}

func TestUpsertMakesCurrentAuthoritative(t *testing.T) {
	s := newTestStore(ExtendOnAccess)
	s.Upsert("k", 1)
	s.Sweep()
	s.Upsert("k", 2)

	v, outcome := s.Lookup("k")
	require.Equal(t, 2, v)
	require.Equal(t, HitCurrent, outcome)

	// Upsert cleared the previous copy, so removal reports the new value.
	v, ok := s.Remove("k")
	require.True(t, ok)
	require.Equal(t, 2, v)
}

func TestRemovePrefersPreviousValue(t *testing.T) {
	s := newTestStore(ExtendOnAccess)
	s.Upsert("k", 1)
	s.Sweep()

	// Plant a newer copy in current directly so the key sits in both.
	cur, _ := s.Snapshot()
	cur.Store("k", 2)

	v, ok := s.Remove("k")
	require.True(t, ok)
	require.Equal(t, 1, v, "the value about to expire wins")

	_, outcome := s.Lookup("k")
	require.Equal(t, Miss, outcome, "remove clears both generations")
}

func TestRemoveMissingKeyIsNoOp(t *testing.T) {
	s := newTestStore(ExtendOnAccess)
	_, ok := s.Remove("nope")
	require.False(t, ok)
}

func TestSweepCountsDroppedEntries(t *testing.T) {
	s := newTestStore(ExtendOnAccess)
	require.Zero(t, s.Sweep())

	s.Upsert("a", 1)
	s.Upsert("b", 2)
	require.Zero(t, s.Sweep(), "first sweep retires, drops nothing")
	require.Equal(t, 2, s.Sweep(), "second sweep drops the retired generation")

	_, outcome := s.Lookup("a")
	require.Equal(t, Miss, outcome)
}

func TestSweepMonotonicity(t *testing.T) {
	s := newTestStore(ExtendOnAccess)
	s.Upsert("k1", 1)
	s.Sweep()
	s.Upsert("k2", 2)
	s.Sweep()

	_, outcome := s.Lookup("k1")
	require.Equal(t, Miss, outcome, "two sweeps with no access drop an entry")

	v, outcome := s.Lookup("k2")
	require.Equal(t, 2, v)
	require.NotEqual(t, Miss, outcome, "one sweep only retires an entry")
}

func TestSnapshotStaysUsableAcrossSweep(t *testing.T) {
	s := newTestStore(FixedOnAccess)
	s.Upsert("k", 1)

	cur, _ := s.Snapshot()
	s.Sweep()

	// The captured container is still alive and readable; the store now
	// reaches the same entry through its previous slot.
	v, ok := cur.Load("k")
	require.True(t, ok)
	require.Equal(t, 1, v)

	v, outcome := s.Lookup("k")
	require.Equal(t, 1, v)
	require.Equal(t, HitPrevious, outcome)

	newCur, _ := s.Snapshot()
	require.Zero(t, newCur.Len(), "sweep installs a fresh current generation")
}

func TestLenAndClear(t *testing.T) {
	s := newTestStore(ExtendOnAccess)
	s.Upsert("a", 1)
	s.Upsert("b", 2)
	s.Sweep()
	s.Upsert("c", 3)
	require.Equal(t, 3, s.Len())

	s.Clear()
	require.Zero(t, s.Len())
	_, outcome := s.Lookup("a")
	require.Equal(t, Miss, outcome)
}
