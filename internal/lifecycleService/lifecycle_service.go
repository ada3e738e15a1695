// Package lifecycle drives auction items through their states on a fixed
// period. Every pass is idempotent: an item whose status no longer matches
// the pass predicate is simply not selected again, so a crashed or partial
// run is healed by the next one.
package lifecycle

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/cache"
	"auction-engine/internal/lock"
	"auction-engine/internal/metrics"
	model "auction-engine/internal/models"
	"auction-engine/internal/notify"
	proxybid "auction-engine/internal/proxyService"
	"auction-engine/internal/repository"
	"auction-engine/utils"
)

// Scheduler runs the periodic lifecycle passes.
type Scheduler struct {
	db        repository.AuctionDB
	proxies   *proxybid.Engine
	locks     *lock.Coordinator
	publisher notify.Publisher
	cache     cache.AuctionCache
	period    time.Duration
	now       func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
	done     sync.WaitGroup
}

// NewScheduler creates a Scheduler with the given pass period.
func NewScheduler(db repository.AuctionDB, proxies *proxybid.Engine, locks *lock.Coordinator, publisher notify.Publisher, c cache.AuctionCache, period time.Duration) *Scheduler {
	return &Scheduler{
		db:        db,
		proxies:   proxies,
		locks:     locks,
		publisher: publisher,
		cache:     c,
		period:    period,
		now:       time.Now,
		stop:      make(chan struct{}),
	}
}

// SetClock overrides the scheduler's time source. Intended for tests only.
func (s *Scheduler) SetClock(now func() time.Time) {
	s.now = now
}

// Start launches the ticker goroutine. One pass runs immediately so restarts
// settle overdue items without waiting a full period.
func (s *Scheduler) Start() {
	s.done.Add(1)
	go func() {
		defer s.done.Done()

		s.RunPass()
		ticker := time.NewTicker(s.period)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.RunPass()
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop halts the ticker goroutine and waits for an in-flight pass.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	s.done.Wait()
}

// RunPass executes the three lifecycle passes once. Errors are logged per
// pass; the next scheduled run retries whatever was left behind.
func (s *Scheduler) RunPass() {
	utils.Info("auction lifecycle pass starting", map[string]any{})

	if err := s.processPendingItems(); err != nil {
		utils.Error("pending item pass failed", map[string]any{"error": err.Error()})
	}
	if err := s.processUpcomingItems(); err != nil {
		utils.Error("upcoming item pass failed", map[string]any{"error": err.Error()})
	}
	if err := s.processActiveItems(); err != nil {
		utils.Error("active item pass failed", map[string]any{"error": err.Error()})
	}

	utils.Info("auction lifecycle pass complete", map[string]any{})
}

// upcomingWindow is how far ahead the pending pass looks: items starting
// inside the window move to UPCOMING, items already started go straight to
// ACTIVE.
const upcomingWindow = time.Hour

// processPendingItems moves PENDING items whose start date has arrived to
// ACTIVE, and those starting within the upcoming window to UPCOMING.
func (s *Scheduler) processPendingItems() error {
	now := s.now()
	items, err := s.db.ItemsByStatusStartedBefore(model.ItemPending, now.Add(upcomingWindow))
	if err != nil {
		return fmt.Errorf("lifecycle: query pending items: %w", err)
	}

	for _, item := range items {
		next := model.ItemUpcoming
		if !item.AuctionStartDate.After(now) {
			next = model.ItemActive
		}
		item.Status = next
		if err := s.db.UpdateItem(item); err != nil {
			return fmt.Errorf("lifecycle: move item %s to %s: %w", item.ItemID, next, err)
		}
		metrics.IncLifecycleTransition(string(next))
		s.refreshPriceCache(item)

		utils.Info("item status advanced", map[string]any{
			"item_id": item.ItemID,
			"status":  string(next),
		})
	}
	return nil
}

// processUpcomingItems moves UPCOMING items past their start date to ACTIVE.
func (s *Scheduler) processUpcomingItems() error {
	now := s.now()
	items, err := s.db.ItemsByStatusStartedBefore(model.ItemUpcoming, now)
	if err != nil {
		return fmt.Errorf("lifecycle: query upcoming items: %w", err)
	}

	for _, item := range items {
		item.Status = model.ItemActive
		if err := s.db.UpdateItem(item); err != nil {
			return fmt.Errorf("lifecycle: activate item %s: %w", item.ItemID, err)
		}
		metrics.IncLifecycleTransition(string(model.ItemActive))
		s.refreshPriceCache(item)

		utils.Info("item moved from upcoming to active", map[string]any{
			"item_id": item.ItemID,
		})
	}
	return nil
}

// processActiveItems closes ACTIVE items past their end date: SOLD with full
// winner settlement when bids exist, EXPIRED otherwise. Each close holds the
// item lock; a contended item is left for the next pass.
func (s *Scheduler) processActiveItems() error {
	items, err := s.db.ItemsByStatusEndedBefore(model.ItemActive, s.now())
	if err != nil {
		return fmt.Errorf("lifecycle: query ended items: %w", err)
	}

	for _, item := range items {
		token, err := s.locks.Acquire(item.ItemID)
		if err != nil {
			utils.Warn("item busy at close, retrying next pass", map[string]any{
				"item_id": item.ItemID,
				"error":   err.Error(),
			})
			continue
		}
		err = s.closeLockedAuction(item.ItemID)
		s.locks.Release(item.ItemID, token)
		if err != nil {
			return err
		}
	}
	return nil
}

// closeLockedAuction re-reads the item under the lock and settles it if it is
// still an ended ACTIVE auction. A bid admitted between the pass query and the
// lock may have extended the end date, in which case the item stays open.
func (s *Scheduler) closeLockedAuction(itemID string) error {
	item, err := s.db.GetItem(itemID)
	if err != nil {
		return fmt.Errorf("lifecycle: reload item %s at close: %w", itemID, err)
	}
	if item.Status != model.ItemActive || item.AuctionEndDate.After(s.now()) {
		return nil
	}
	return s.closeAuction(item)
}

// closeAuction settles one ended auction.
func (s *Scheduler) closeAuction(item model.Item) error {
	winningBid, err := s.db.GetHighestBid(item.ItemID)
	if errors.Is(err, auctionerrors.ErrNoBids) {
		return s.expireItem(item)
	}
	if err != nil {
		return fmt.Errorf("lifecycle: highest bid for item %s: %w", item.ItemID, err)
	}

	if err := s.settleBids(item.ItemID, winningBid); err != nil {
		return err
	}

	item.Status = model.ItemSold
	item.CurrentBidPrice = winningBid.Amount
	if err := s.db.UpdateItem(item); err != nil {
		return fmt.Errorf("lifecycle: mark item %s sold: %w", item.ItemID, err)
	}
	metrics.IncLifecycleTransition(string(model.ItemSold))

	if err := s.proxies.ResolveAtAuctionEnd(item.ItemID, &winningBid); err != nil {
		utils.Error("proxy resolution failed at auction end", map[string]any{
			"item_id": item.ItemID,
			"error":   err.Error(),
		})
	}

	endEvent := notify.AuctionEndEvent{
		ItemID:     item.ItemID,
		SellerID:   item.SellerID,
		WinnerID:   winningBid.UserID,
		FinalPrice: winningBid.Amount,
		Status:     model.ItemSold,
		EndedAt:    s.now().UTC(),
	}
	s.publisher.Publish(notify.ItemEndTopic(item.ItemID), endEvent)
	s.publisher.Publish(notify.UserNotificationsTopic(winningBid.UserID), endEvent)
	s.publisher.Publish(notify.UserNotificationsTopic(item.SellerID), endEvent)

	utils.Info("auction closed with winner", map[string]any{
		"item_id":   item.ItemID,
		"winner_id": winningBid.UserID,
		"amount":    winningBid.Amount,
	})
	return nil
}

// settleBids transitions the winning bid to WON and every other bid on the
// item to LOST.
func (s *Scheduler) settleBids(itemID string, winningBid model.Bid) error {
	bids, err := s.db.GetBidsByItem(itemID)
	if err != nil {
		return fmt.Errorf("lifecycle: load bids for item %s: %w", itemID, err)
	}

	for _, bid := range bids {
		if bid.BidID == winningBid.BidID {
			bid.Status = model.BidWon
			bid.HighestBid = true
		} else {
			bid.Status = model.BidLost
			bid.HighestBid = false
		}
		if err := s.db.UpdateBid(bid); err != nil {
			return fmt.Errorf("lifecycle: settle bid %s: %w", bid.BidID, err)
		}
	}
	return nil
}

// expireItem closes an auction that received no bids.
func (s *Scheduler) expireItem(item model.Item) error {
	item.Status = model.ItemExpired
	if err := s.db.UpdateItem(item); err != nil {
		return fmt.Errorf("lifecycle: expire item %s: %w", item.ItemID, err)
	}
	metrics.IncLifecycleTransition(string(model.ItemExpired))

	if err := s.proxies.ResolveAtAuctionEnd(item.ItemID, nil); err != nil {
		utils.Error("proxy resolution failed for expired item", map[string]any{
			"item_id": item.ItemID,
			"error":   err.Error(),
		})
	}

	endEvent := notify.AuctionEndEvent{
		ItemID:   item.ItemID,
		SellerID: item.SellerID,
		Status:   model.ItemExpired,
		EndedAt:  s.now().UTC(),
	}
	s.publisher.Publish(notify.ItemEndTopic(item.ItemID), endEvent)
	s.publisher.Publish(notify.UserNotificationsTopic(item.SellerID), endEvent)

	utils.Info("auction expired with no bids", map[string]any{
		"item_id": item.ItemID,
	})
	return nil
}

// refreshPriceCache primes the current-bid entry for an item entering play so
// the first admission check after a restart does not miss.
func (s *Scheduler) refreshPriceCache(item model.Item) {
	if item.Status != model.ItemActive {
		return
	}
	value := strconv.FormatFloat(item.CurrentPrice(), 'f', -1, 64)
	if err := s.cache.Set(cache.CurrentBidKey(item.ItemID), value, cache.CurrentBidTTL); err != nil {
		utils.Warn("failed to prime current bid cache", map[string]any{
			"item_id": item.ItemID,
			"error":   err.Error(),
		})
	}
}
