package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	require.Equal(t, ":8080", cfg.Addr)
	require.Empty(t, cfg.DatabaseDSN)
	require.Equal(t, 10*time.Second, cfg.LockTTL)
	require.False(t, cfg.TwoPhase)
	require.Equal(t, 8, cfg.BidWorkers)
	require.Equal(t, 256, cfg.BidQueueSize)
	require.Equal(t, 4, cfg.NotifyWorkers)
	require.Equal(t, 512, cfg.NotifyQueueSize)
	require.Equal(t, 5*time.Minute, cfg.SchedulerPeriod)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("BID_LOCK_TTL", "2s")
	t.Setenv("BID_TWO_PHASE", "true")
	t.Setenv("BID_WORKERS", "16")
	t.Setenv("SCHEDULER_PERIOD", "30s")

	cfg := Load()

	require.Equal(t, ":9090", cfg.Addr)
	require.Equal(t, 2*time.Second, cfg.LockTTL)
	require.True(t, cfg.TwoPhase)
	require.Equal(t, 16, cfg.BidWorkers)
	require.Equal(t, 30*time.Second, cfg.SchedulerPeriod)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("BID_WORKERS", "many")
	t.Setenv("BID_LOCK_TTL", "soon")
	t.Setenv("BID_TWO_PHASE", "maybe")

	cfg := Load()

	require.Equal(t, 8, cfg.BidWorkers)
	require.Equal(t, 10*time.Second, cfg.LockTTL)
	require.False(t, cfg.TwoPhase)
}
