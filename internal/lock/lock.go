// Package lock provides per-item mutual exclusion for the bid admission path.
// The lock is a conditional set keyed by item id with a TTL so a crashed
// holder cannot wedge an auction, and release is fenced by the holder's token
// so a stale holder cannot free a lock it no longer owns.
package lock

import (
	"fmt"
	"time"

	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/cache"
	"auction-engine/utils"
)

const lockKeyPrefix = "bid_lock:"

// Coordinator hands out per-item lock tokens backed by the cache boundary.
type Coordinator struct {
	cache cache.AuctionCache
	ttl   time.Duration
}

// NewCoordinator creates a Coordinator with the given lock TTL.
func NewCoordinator(c cache.AuctionCache, ttl time.Duration) *Coordinator {
	return &Coordinator{cache: c, ttl: ttl}
}

func lockKey(itemID string) string {
	return lockKeyPrefix + itemID
}

// Acquire takes the item lock and returns the fencing token to release it
// with. Contention is reported as ErrLockContention, a retryable condition,
// not a fault.
func (c *Coordinator) Acquire(itemID string) (string, error) {
	token := utils.GenerateID()

	acquired, err := c.cache.SetIfAbsent(lockKey(itemID), token, c.ttl)
	if err != nil {
		return "", fmt.Errorf("lock: acquire for item %s: %w", itemID, err)
	}
	if !acquired {
		return "", fmt.Errorf("lock: item %s: %w", itemID, auctionerrors.ErrLockContention)
	}
	return token, nil
}

// Release frees the item lock if token still owns it. A stale token (expired
// and replaced by a newer holder) is dropped silently; failing here must not
// fail the bid that already completed.
func (c *Coordinator) Release(itemID, token string) {
	released, err := c.cache.CompareAndDelete(lockKey(itemID), token)
	if err != nil {
		utils.Error("failed to release item lock", map[string]any{
			"item_id": itemID,
			"error":   err.Error(),
		})
		return
	}
	if !released {
		utils.Warn("stale lock token ignored on release", map[string]any{
			"item_id": itemID,
		})
	}
}
