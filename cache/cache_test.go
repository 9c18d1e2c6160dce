package cache_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ptalign/cache"
)

func TestCache_InsertLookup(t *testing.T) {
	c := cache.New(3)
	assert.Equal(t, 3, c.Nodes())

	_, ok := c.Lookup(1, "k")
	assert.False(t, ok)

	require.NoError(t, c.Insert(1, "k", 4))
	require.NoError(t, c.Insert(1, "k", 4), "identical re-insert is a no-op")

	v, ok := c.Lookup(1, "k")
	assert.True(t, ok)
	assert.Equal(t, 4, v)

	// The empty subsequence is its own key.
	require.NoError(t, c.Insert(1, "", 2))
	v, _ = c.Lookup(1, "")
	assert.Equal(t, 2, v)

	// Tables are per node.
	_, ok = c.Lookup(2, "k")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestCache_ConflictingCost(t *testing.T) {
	c := cache.New(1)
	require.NoError(t, c.Insert(0, "k", 1))

	err := c.Insert(0, "k", 2)
	assert.ErrorIs(t, err, cache.ErrConflictingCost)

	v, _ := c.Lookup(0, "k")
	assert.Equal(t, 1, v, "existing entry must not be overwritten")
}

func TestCache_UnknownNode(t *testing.T) {
	c := cache.New(1)
	assert.ErrorIs(t, c.Insert(5, "k", 1), cache.ErrUnknownNode)
	assert.ErrorIs(t, c.Insert(-1, "k", 1), cache.ErrUnknownNode)

	_, err := c.Do(context.Background(), 9, "k", func() (int, error) { return 0, nil })
	assert.ErrorIs(t, err, cache.ErrUnknownNode)

	_, ok := c.Lookup(9, "k")
	assert.False(t, ok)
}

func TestCache_DoComputesOnce(t *testing.T) {
	c := cache.New(1)
	var calls atomic.Int32

	const workers = 32
	results := make([]int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.Do(context.Background(), 0, "abc", func() (int, error) {
				calls.Add(1)
				time.Sleep(10 * time.Millisecond)
				return 3, nil
			})
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Equal(t, 3, v)
	}
	assert.Equal(t, 1, c.Len())
}

func TestCache_DoErrorIsNotStored(t *testing.T) {
	c := cache.New(1)
	boom := errors.New("boom")

	_, err := c.Do(context.Background(), 0, "k", func() (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	_, ok := c.Lookup(0, "k")
	assert.False(t, ok)

	v, err := c.Do(context.Background(), 0, "k", func() (int, error) { return 5, nil })
	require.NoError(t, err)
	assert.Equal(t, 5, v)
}

func TestCache_DoCancelledCaller(t *testing.T) {
	c := cache.New(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	_, err := c.Do(ctx, 0, "k", func() (int, error) {
		called = true
		return 1, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
	assert.Equal(t, 0, c.Len())
}

func TestCache_DoLeaderCancelledFollowerRecomputes(t *testing.T) {
	c := cache.New(1)

	leaderCtx, cancelLeader := context.WithCancel(context.Background())
	started := make(chan struct{})
	release := make(chan struct{})

	var leaderErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, leaderErr = c.Do(leaderCtx, 0, "k", func() (int, error) {
			close(started)
			<-release
			return 0, fmt.Errorf("aligning: %w", leaderCtx.Err())
		})
	}()
	<-started

	followerDone := make(chan int)
	go func() {
		v, err := c.Do(context.Background(), 0, "k", func() (int, error) { return 7, nil })
		assert.NoError(t, err)
		followerDone <- v
	}()

	// Give the follower time to join the in-flight computation.
	time.Sleep(20 * time.Millisecond)
	cancelLeader()
	close(release)

	<-done
	assert.ErrorIs(t, leaderErr, context.Canceled)
	assert.Equal(t, 7, <-followerDone)

	v, ok := c.Lookup(0, "k")
	assert.True(t, ok)
	assert.Equal(t, 7, v)
}

func TestCache_Capacity(t *testing.T) {
	c := cache.New(1, cache.WithCapacity(2))
	for i, k := range []string{"a", "b", "c"} {
		require.NoError(t, c.Insert(0, k, i))
	}

	assert.Equal(t, 2, c.Len())
	_, ok := c.Lookup(0, "a")
	assert.False(t, ok, "least recently used entry is evicted")

	s := c.Stats()
	assert.Equal(t, int64(1), s.Evictions)
	assert.Equal(t, []int{2}, s.PerNode)
}

func TestCache_WithCapacityPanics(t *testing.T) {
	assert.Panics(t, func() { cache.WithCapacity(-1) })
}

func TestCache_StatsAndReset(t *testing.T) {
	c := cache.New(2)
	require.NoError(t, c.Insert(0, "a", 1))
	require.NoError(t, c.Insert(1, "b", 1))
	c.Lookup(0, "a")
	c.Lookup(0, "zz")

	s := c.Stats()
	assert.Equal(t, int64(1), s.Hits)
	assert.Equal(t, int64(1), s.Misses)
	assert.Equal(t, 2, s.Entries)
	assert.Equal(t, []int{1, 1}, s.PerNode)
	assert.InDelta(t, 0.5, s.HitRate(), 1e-9)

	c.Reset()
	s = c.Stats()
	assert.Equal(t, cache.Stats{PerNode: []int{0, 0}}, s)
	assert.Equal(t, 0.0, s.HitRate())
}

func TestCache_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := cache.NewMetrics(reg)
	require.NoError(t, err)

	c := cache.New(2, cache.WithMetrics(m))
	require.NoError(t, c.Insert(0, "a", 1))
	c.Lookup(0, "a")
	c.Lookup(0, "b")
	_, err = c.Do(context.Background(), 1, "x", func() (int, error) { return 2, nil })
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Hits))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Misses))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Entries))

	// A second set of collectors on the same registry reuses the first.
	m2, err := cache.NewMetrics(reg)
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m2.Hits))

	c.Reset()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Entries))
}

func TestCache_NilRegistry(t *testing.T) {
	m, err := cache.NewMetrics(nil)
	assert.NoError(t, err)
	assert.Nil(t, m)

	c := cache.New(1, cache.WithMetrics(m))
	require.NoError(t, c.Insert(0, "a", 1))
	_, ok := c.Lookup(0, "a")
	assert.True(t, ok)
}
