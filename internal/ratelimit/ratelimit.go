// Package ratelimit gates bid admission with sliding-window counters and
// shill-bidding heuristics. Limits are dynamic: strict through most of an
// auction, relaxed inside the final two hours so last-minute competition is
// not throttled. Counter read failures fail open so an infrastructure hiccup
// never blocks legitimate bidding.
package ratelimit

import (
	"fmt"
	"time"

	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/cache"
	"auction-engine/utils"
)

const (
	rateLimitPrefix      = "rate_limit:"
	consecutivePrefix    = "consecutive_bid:"
	shillDetectionPrefix = "shill_detection:"

	minuteWindow  = time.Minute
	hourWindow    = time.Hour
	patternWindow = 5 * time.Minute

	// Heuristic thresholds for suspicious bursts on a single item.
	suspiciousUserItemBids = 10
	suspiciousIPItemBids   = 15

	relaxedWindow = 2 * time.Hour
)

// Limits holds the counter ceilings for one auction phase.
type Limits struct {
	PerMinute   int
	PerHour     int
	PerItemHour int
	Consecutive int
}

// LimitsFor returns the applicable limits given the time remaining in the
// auction.
func LimitsFor(timeLeft time.Duration) Limits {
	if timeLeft > relaxedWindow {
		// Early/middle phase: strict limits to prevent spam.
		return Limits{PerMinute: 5, PerHour: 50, PerItemHour: 20, Consecutive: 15}
	}
	// Final phase: relaxed limits for competitive bidding.
	return Limits{PerMinute: 20, PerHour: 200, PerItemHour: 50, Consecutive: 40}
}

// Limiter enforces bid-frequency limits and fraud heuristics over the cache
// boundary.
type Limiter struct {
	cache cache.AuctionCache
	now   func() time.Time
}

// NewLimiter creates a Limiter.
func NewLimiter(c cache.AuctionCache) *Limiter {
	return &Limiter{cache: c, now: time.Now}
}

// SetClock overrides the limiter's time source. Intended for tests only.
func (l *Limiter) SetClock(now func() time.Time) {
	l.now = now
}

// Check admits or rejects one bid attempt by userID on itemID. Each call
// consumes one slot in every window; exceeding any counter returns
// ErrRateLimited. The consecutive-bid counter is only advanced after all
// window checks pass.
func (l *Limiter) Check(userID, itemID string, auctionEnd time.Time) error {
	limits := LimitsFor(auctionEnd.Sub(l.now()))

	if l.windowExceeded(rateLimitPrefix+"minute:"+userID, minuteWindow, limits.PerMinute) {
		utils.Warn("per-minute bid limit exceeded", map[string]any{"user_id": userID})
		return fmt.Errorf("ratelimit: user %s per-minute: %w", userID, auctionerrors.ErrRateLimited)
	}

	if l.windowExceeded(rateLimitPrefix+"hour:"+userID, hourWindow, limits.PerHour) {
		utils.Warn("per-hour bid limit exceeded", map[string]any{"user_id": userID})
		return fmt.Errorf("ratelimit: user %s per-hour: %w", userID, auctionerrors.ErrRateLimited)
	}

	if l.windowExceeded(rateLimitPrefix+"item_hour:"+userID+":"+itemID, hourWindow, limits.PerItemHour) {
		utils.Warn("per-item-hour bid limit exceeded", map[string]any{"user_id": userID, "item_id": itemID})
		return fmt.Errorf("ratelimit: user %s item %s per-hour: %w", userID, itemID, auctionerrors.ErrRateLimited)
	}

	if l.consecutiveExceeded(userID, itemID, limits.Consecutive) {
		utils.Warn("consecutive bid limit exceeded", map[string]any{"user_id": userID, "item_id": itemID})
		return fmt.Errorf("ratelimit: user %s item %s consecutive: %w", userID, itemID, auctionerrors.ErrRateLimited)
	}

	l.recordBid(userID, itemID)
	return nil
}

// DetectShill applies the fraud heuristics for one bid attempt: same source
// IP for bidder and seller, too many attempts by one user on one item inside
// the pattern window, or too many attempts from one IP on one item. These are
// advisory heuristics; false positives are acceptable.
func (l *Limiter) DetectShill(userID, itemID, sellerIP, bidderIP string) error {
	if sellerIP != "" && sellerIP == bidderIP {
		utils.Warn("shill bidding detected: same IP for seller and bidder", map[string]any{
			"user_id": userID,
			"item_id": itemID,
		})
		return fmt.Errorf("ratelimit: same seller/bidder IP on item %s: %w", itemID, auctionerrors.ErrSuspiciousActivity)
	}

	userKey := shillDetectionPrefix + "pattern:" + userID + ":" + itemID
	if l.patternExceeded(userKey, suspiciousUserItemBids) {
		utils.Warn("suspicious bidding pattern detected", map[string]any{
			"user_id": userID,
			"item_id": itemID,
		})
		return fmt.Errorf("ratelimit: user %s pattern on item %s: %w", userID, itemID, auctionerrors.ErrSuspiciousActivity)
	}

	ipKey := shillDetectionPrefix + "ip:" + bidderIP + ":" + itemID
	if l.patternExceeded(ipKey, suspiciousIPItemBids) {
		utils.Warn("suspicious IP bidding pattern detected", map[string]any{
			"ip_address": bidderIP,
			"item_id":    itemID,
		})
		return fmt.Errorf("ratelimit: ip pattern on item %s: %w", itemID, auctionerrors.ErrSuspiciousActivity)
	}

	return nil
}

// windowExceeded consumes one slot in the window at key and reports whether
// the limit is now exceeded. Fail-open: a counter error counts as not limited.
func (l *Limiter) windowExceeded(key string, window time.Duration, limit int) bool {
	count, err := l.cache.Increment(key, window)
	if err != nil {
		utils.Error("rate limit counter read failed, failing open", map[string]any{
			"key":   key,
			"error": err.Error(),
		})
		return false
	}
	return count > int64(limit)
}

// patternExceeded is windowExceeded over the suspicious-pattern window.
func (l *Limiter) patternExceeded(key string, limit int) bool {
	count, err := l.cache.Increment(key, patternWindow)
	if err != nil {
		utils.Error("pattern counter read failed, failing open", map[string]any{
			"key":   key,
			"error": err.Error(),
		})
		return false
	}
	return count > int64(limit)
}

// consecutiveExceeded reads the consecutive-bid counter without consuming it.
func (l *Limiter) consecutiveExceeded(userID, itemID string, limit int) bool {
	value, ok, err := l.cache.Get(consecutivePrefix + itemID + ":" + userID)
	if err != nil {
		utils.Error("consecutive counter read failed, failing open", map[string]any{
			"user_id": userID,
			"item_id": itemID,
			"error":   err.Error(),
		})
		return false
	}
	if !ok {
		return false
	}
	var count int
	if _, err := fmt.Sscanf(value, "%d", &count); err != nil {
		return false
	}
	return count >= limit
}

// recordBid advances the consecutive-bid counter after an admitted attempt.
// Counters decay by TTL only; there is no cross-user reset.
func (l *Limiter) recordBid(userID, itemID string) {
	if _, err := l.cache.Increment(consecutivePrefix+itemID+":"+userID, hourWindow); err != nil {
		utils.Error("failed to record consecutive bid", map[string]any{
			"user_id": userID,
			"item_id": itemID,
			"error":   err.Error(),
		})
	}
}
