package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"auction-engine/utils"
)

type Config struct {
	// Server settings
	Addr string

	// Storage settings. Empty DSN selects the in-memory repository.
	DatabaseDSN string

	// Bid admission settings
	LockTTL      time.Duration
	TwoPhase     bool
	BidWorkers   int
	BidQueueSize int

	// Notification settings
	NotifyWorkers   int
	NotifyQueueSize int

	// Lifecycle scheduler settings
	SchedulerPeriod time.Duration
}

// Load reads configuration from the environment. A .env file is applied
// first when present, matching local development setups.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		utils.Info("no .env file loaded, using environment", map[string]any{})
	}

	return &Config{
		Addr:        getEnv("ADDR", ":8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", ""),

		LockTTL:      getDuration("BID_LOCK_TTL", 10*time.Second),
		TwoPhase:     getBool("BID_TWO_PHASE", false),
		BidWorkers:   getInt("BID_WORKERS", 8),
		BidQueueSize: getInt("BID_QUEUE_SIZE", 256),

		NotifyWorkers:   getInt("NOTIFY_WORKERS", 4),
		NotifyQueueSize: getInt("NOTIFY_QUEUE_SIZE", 512),

		SchedulerPeriod: getDuration("SCHEDULER_PERIOD", 5*time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		utils.Warn("invalid integer in environment, using default", map[string]any{
			"key":   key,
			"value": v,
		})
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		utils.Warn("invalid duration in environment, using default", map[string]any{
			"key":   key,
			"value": v,
		})
		return fallback
	}
	return d
}
