package lock

import (
	"errors"
	"testing"
	"time"

	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/cache"

	"github.com/stretchr/testify/require"
)

func TestCoordinator_AcquireRelease(t *testing.T) {
	t.Parallel()

	c := cache.NewMemoryCache()
	coord := NewCoordinator(c, 5*time.Second)

	token, err := coord.Acquire("item1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Second caller contends while the lock is held.
	_, err = coord.Acquire("item1")
	require.Error(t, err)
	require.True(t, errors.Is(err, auctionerrors.ErrLockContention))

	// A different item is independent.
	otherToken, err := coord.Acquire("item2")
	require.NoError(t, err)
	require.NotEmpty(t, otherToken)

	coord.Release("item1", token)

	// Lock is free again after release.
	token2, err := coord.Acquire("item1")
	require.NoError(t, err)
	require.NotEqual(t, token, token2)
}

func TestCoordinator_StaleTokenCannotRelease(t *testing.T) {
	t.Parallel()

	mem := cache.NewMemoryCache()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mem.SetClock(func() time.Time { return now })
	coord := NewCoordinator(mem, 5*time.Second)

	staleToken, err := coord.Acquire("item1")
	require.NoError(t, err)

	// First holder's TTL expires and a new holder takes over.
	now = now.Add(10 * time.Second)
	freshToken, err := coord.Acquire("item1")
	require.NoError(t, err)

	// The expired holder's release is fenced out; the new holder still owns
	// the lock.
	coord.Release("item1", staleToken)
	_, err = coord.Acquire("item1")
	require.True(t, errors.Is(err, auctionerrors.ErrLockContention))

	coord.Release("item1", freshToken)
	_, err = coord.Acquire("item1")
	require.NoError(t, err)
}
