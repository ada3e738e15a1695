package ratelimit

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/cache"

	"github.com/stretchr/testify/require"
)

func TestLimitsFor(t *testing.T) {
	t.Parallel()

	strict := LimitsFor(3 * time.Hour)
	require.Equal(t, Limits{PerMinute: 5, PerHour: 50, PerItemHour: 20, Consecutive: 15}, strict)

	relaxed := LimitsFor(90 * time.Minute)
	require.Equal(t, Limits{PerMinute: 20, PerHour: 200, PerItemHour: 50, Consecutive: 40}, relaxed)
}

func TestLimiter_PerMinuteLimit(t *testing.T) {
	t.Parallel()

	limiter := NewLimiter(cache.NewMemoryCache())

	// Strict phase: auction ends far in the future, 5 bids per minute.
	auctionEnd := time.Now().Add(24 * time.Hour)

	for i := 0; i < 5; i++ {
		require.NoError(t, limiter.Check("user1", "item1", auctionEnd))
	}

	err := limiter.Check("user1", "item1", auctionEnd)
	require.Error(t, err)
	require.True(t, errors.Is(err, auctionerrors.ErrRateLimited), "6th bid in a minute must be rejected")
}

func TestLimiter_RelaxedFinalPhase(t *testing.T) {
	t.Parallel()

	limiter := NewLimiter(cache.NewMemoryCache())

	// Final two hours: 20 bids per minute are allowed.
	auctionEnd := time.Now().Add(30 * time.Minute)

	for i := 0; i < 20; i++ {
		require.NoError(t, limiter.Check("user1", "item1", auctionEnd))
	}

	err := limiter.Check("user1", "item1", auctionEnd)
	require.True(t, errors.Is(err, auctionerrors.ErrRateLimited))
}

func TestLimiter_IndependentUsers(t *testing.T) {
	t.Parallel()

	limiter := NewLimiter(cache.NewMemoryCache())
	auctionEnd := time.Now().Add(24 * time.Hour)

	for i := 0; i < 5; i++ {
		require.NoError(t, limiter.Check("user1", "item1", auctionEnd))
	}
	require.Error(t, limiter.Check("user1", "item1", auctionEnd))

	// Another user on the same item is not affected.
	require.NoError(t, limiter.Check("user2", "item1", auctionEnd))
}

func TestLimiter_WindowExpiry(t *testing.T) {
	t.Parallel()

	mem := cache.NewMemoryCache()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mem.SetClock(func() time.Time { return now })

	limiter := NewLimiter(mem)
	limiter.SetClock(func() time.Time { return now })

	auctionEnd := now.Add(24 * time.Hour)

	for i := 0; i < 5; i++ {
		require.NoError(t, limiter.Check("user1", "item1", auctionEnd))
	}
	require.Error(t, limiter.Check("user1", "item1", auctionEnd))

	// The minute window rolls over and bidding resumes.
	now = now.Add(2 * time.Minute)
	require.NoError(t, limiter.Check("user1", "item1", auctionEnd))
}

func TestLimiter_DetectShill_SameIP(t *testing.T) {
	t.Parallel()

	limiter := NewLimiter(cache.NewMemoryCache())

	err := limiter.DetectShill("user1", "item1", "10.0.0.1", "10.0.0.1")
	require.Error(t, err)
	require.True(t, errors.Is(err, auctionerrors.ErrSuspiciousActivity))

	require.NoError(t, limiter.DetectShill("user1", "item1", "10.0.0.1", "10.0.0.2"))
}

func TestLimiter_DetectShill_BurstPattern(t *testing.T) {
	t.Parallel()

	limiter := NewLimiter(cache.NewMemoryCache())

	// The burst threshold trips after too many attempts by one user on one
	// item inside the pattern window. Vary the IP so the per-IP heuristic
	// does not trip first.
	var err error
	for i := 0; i < 12; i++ {
		err = limiter.DetectShill("user1", "item1", "10.0.0.1", fmt.Sprintf("10.0.1.%d", i))
		if err != nil {
			break
		}
	}
	require.Error(t, err)
	require.True(t, errors.Is(err, auctionerrors.ErrSuspiciousActivity))
}

func TestLimiter_DetectShill_SameIPBurst(t *testing.T) {
	t.Parallel()

	limiter := NewLimiter(cache.NewMemoryCache())

	// Many different users bidding from one IP on one item trips the per-IP
	// heuristic.
	var err error
	for i := 0; i < 20; i++ {
		err = limiter.DetectShill(fmt.Sprintf("user%d", i), "item1", "10.0.0.1", "10.0.2.2")
		if err != nil {
			break
		}
	}
	require.Error(t, err)
	require.True(t, errors.Is(err, auctionerrors.ErrSuspiciousActivity))
}
