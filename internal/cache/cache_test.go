package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// clockAt returns a MemoryCache pinned to a controllable clock.
func clockAt(t *testing.T) (*MemoryCache, *time.Time) {
	t.Helper()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.SetClock(func() time.Time { return now })
	return c, &now
}

func TestMemoryCache_SetGet(t *testing.T) {
	t.Parallel()

	c, now := clockAt(t)

	require.NoError(t, c.Set("k", "v", time.Minute))

	v, ok, err := c.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", v)

	// Entry disappears after its TTL passes.
	*now = now.Add(2 * time.Minute)
	_, ok, err = c.Get("k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryCache_SetIfAbsent(t *testing.T) {
	t.Parallel()

	c, now := clockAt(t)

	set, err := c.SetIfAbsent("lock", "token-a", time.Minute)
	require.NoError(t, err)
	require.True(t, set)

	// Second holder cannot take a live entry.
	set, err = c.SetIfAbsent("lock", "token-b", time.Minute)
	require.NoError(t, err)
	require.False(t, set)

	// After expiry the key is free again.
	*now = now.Add(2 * time.Minute)
	set, err = c.SetIfAbsent("lock", "token-b", time.Minute)
	require.NoError(t, err)
	require.True(t, set)
}

func TestMemoryCache_CompareAndDelete(t *testing.T) {
	t.Parallel()

	c, _ := clockAt(t)

	require.NoError(t, c.Set("lock", "token-a", time.Minute))

	deleted, err := c.CompareAndDelete("lock", "token-b")
	require.NoError(t, err)
	require.False(t, deleted, "mismatched token must not delete")

	deleted, err = c.CompareAndDelete("lock", "token-a")
	require.NoError(t, err)
	require.True(t, deleted)

	_, ok, err := c.Get("lock")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryCache_Increment(t *testing.T) {
	t.Parallel()

	c, now := clockAt(t)

	for i := int64(1); i <= 5; i++ {
		n, err := c.Increment("counter", time.Minute)
		require.NoError(t, err)
		require.Equal(t, i, n)
	}

	// The TTL is anchored to the first increment: the whole window expires at
	// once and counting restarts.
	*now = now.Add(2 * time.Minute)
	n, err := c.Increment("counter", time.Minute)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}

func TestMemoryCache_ConcurrentIncrement(t *testing.T) {
	t.Parallel()

	c := NewMemoryCache()

	const goroutines = 50
	const perGoroutine = 20

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				_, err := c.Increment("counter", time.Minute)
				require.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	n, err := c.Increment("counter", time.Minute)
	require.NoError(t, err)
	require.Equal(t, int64(goroutines*perGoroutine+1), n)
}
