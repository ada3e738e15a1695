// Package bidding implements bid admission: per-item locking, rate and fraud
// gates, ledger writes, and the fan-out that follows an accepted bid. Two
// shapes are offered: PlaceBid persists before responding, PlaceBidFast
// answers from the cache and defers persistence to a worker pool.
package bidding

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/audit"
	"auction-engine/internal/cache"
	"auction-engine/internal/increment"
	"auction-engine/internal/lock"
	"auction-engine/internal/metrics"
	model "auction-engine/internal/models"
	"auction-engine/internal/notify"
	proxybid "auction-engine/internal/proxyService"
	"auction-engine/internal/ratelimit"
	"auction-engine/internal/repository"
	"auction-engine/internal/worker"
	"auction-engine/utils"
)

const (
	bidSequenceKey = "bid_id_seq"
	userIPPrefix   = "user_ip:"

	userIPTTL = 24 * time.Hour
)

// BiddingService defines the business logic for auction bidding
type BiddingService struct {
	db        repository.AuctionDB
	cache     cache.AuctionCache
	locks     *lock.Coordinator
	limiter   *ratelimit.Limiter
	audit     *audit.Service
	proxies   *proxybid.Engine
	publisher notify.Publisher
	pool      *worker.Pool
	now       func() time.Time
}

// NewBiddingService creates a new BiddingService instance
func NewBiddingService(
	db repository.AuctionDB,
	c cache.AuctionCache,
	locks *lock.Coordinator,
	limiter *ratelimit.Limiter,
	auditor *audit.Service,
	proxies *proxybid.Engine,
	publisher notify.Publisher,
	pool *worker.Pool,
) *BiddingService {
	return &BiddingService{
		db:        db,
		cache:     c,
		locks:     locks,
		limiter:   limiter,
		audit:     auditor,
		proxies:   proxies,
		publisher: publisher,
		pool:      pool,
		now:       time.Now,
	}
}

// SetClock overrides the service's time source. Intended for tests only.
func (s *BiddingService) SetClock(now func() time.Time) {
	s.now = now
}

// PlaceBid validates and durably records a user's bid before responding. The
// accepted bid carries its durable id, the item's previous ACCEPTED bid is
// OUTBID, and active proxy bids get their chance to counter.
func (s *BiddingService) PlaceBid(itemID, userID string, amount float64, ipAddress string) (model.Bid, error) {
	if err := validateInput(itemID, userID, amount); err != nil {
		return model.Bid{}, err
	}

	token, err := s.locks.Acquire(itemID)
	if err != nil {
		metrics.IncBidRejected("lock_contention")
		return model.Bid{}, err
	}
	defer s.locks.Release(itemID, token)

	item, err := s.loadItem(itemID)
	if err != nil {
		return model.Bid{}, err
	}

	if err := s.admit(item, userID, amount, ipAddress, true); err != nil {
		return model.Bid{}, err
	}

	previousPrice := item.CurrentPrice()
	bid, err := s.applyBid(&item, userID, amount, false)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to record bid for item %s by user %s: %w", itemID, userID, err)
	}

	s.audit.LogAction(bid, model.ActionBidPlaced, ipAddress, previousPrice)
	metrics.IncBidAccepted()

	if err := s.proxies.ProcessAfterManualBid(itemID, amount, userID); err != nil {
		utils.Error("proxy cascade failed after manual bid", map[string]any{
			"item_id": itemID,
			"bid_id":  bid.BidID,
			"error":   err.Error(),
		})
	}

	s.broadcastBid(bid)

	utils.Info("bid placed", map[string]any{
		"bid_id":  bid.BidID,
		"item_id": itemID,
		"user_id": userID,
		"amount":  amount,
	})
	return bid, nil
}

// PlaceBidFast is the low-latency admission shape: validate against the
// cache, bump the cached price, and respond with a provisional bid id while
// the durable write, audit entry and proxy cascade run on the worker pool. If
// the background write fails the cached price is reverted so later bids do
// not validate against a phantom amount.
func (s *BiddingService) PlaceBidFast(itemID, userID string, amount float64, ipAddress string) (model.Bid, error) {
	if err := validateInput(itemID, userID, amount); err != nil {
		return model.Bid{}, err
	}

	token, err := s.locks.Acquire(itemID)
	if err != nil {
		metrics.IncBidRejected("lock_contention")
		return model.Bid{}, err
	}
	released := false
	release := func() {
		if !released {
			released = true
			s.locks.Release(itemID, token)
		}
	}
	defer release()

	item, err := s.loadItem(itemID)
	if err != nil {
		return model.Bid{}, err
	}

	// Shill heuristics move to the background pass; the fast path keeps only
	// the cheap gates.
	if err := s.admit(item, userID, amount, ipAddress, false); err != nil {
		return model.Bid{}, err
	}

	previousPrice := s.currentPrice(item)

	seq, err := s.cache.Increment(bidSequenceKey, 0)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to allocate provisional bid id: %w", err)
	}
	provisionalID := fmt.Sprintf("tmp-%d", seq)

	if err := s.cache.Set(cache.CurrentBidKey(itemID), formatAmount(amount), cache.CurrentBidTTL); err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to update current bid cache for item %s: %w", itemID, err)
	}

	// The next fast-path admission validates against the snapshot, so its
	// price and increment must advance with the accepted amount.
	item.CurrentBidPrice = amount
	item.MinIncreasePrice = increment.MinIncrement(amount)
	s.cacheItemSnapshot(item)

	now := s.now().UTC()
	provisional := model.Bid{
		BidID:      provisionalID,
		ItemID:     itemID,
		UserID:     userID,
		Amount:     amount,
		Status:     model.BidAccepted,
		HighestBid: true,
		CreatedAt:  now,
	}
	metrics.IncBidAccepted()

	// The pool may run the task inline on queue overflow, so the lock must be
	// free before submission.
	release()
	s.pool.Submit(func() {
		s.persistInBackground(provisional, ipAddress, previousPrice)
	})
	metrics.SetWorkerQueueDepth("bids", s.pool.QueueDepth())

	s.publisher.Publish(notify.ItemBidsTopic(itemID), notify.BidUpdateEvent{
		BidID:   provisionalID,
		ItemID:  itemID,
		UserID:  userID,
		Amount:  amount,
		BidTime: now,
	})

	utils.Info("bid accepted on fast path", map[string]any{
		"bid_id":  provisionalID,
		"item_id": itemID,
		"user_id": userID,
		"amount":  amount,
	})
	return provisional, nil
}

// persistInBackground completes a fast-path bid: durable ledger write, fraud
// heuristics, audit, proxy cascade and the completion notification. On
// failure the cached price reverts to what admission saw.
func (s *BiddingService) persistInBackground(provisional model.Bid, ipAddress string, previousPrice float64) {
	// Sibling background tasks and concurrent fast-path admissions contend
	// for the same item lock, so contention here is expected and retried.
	token, err := s.acquireWithRetry(provisional.ItemID)
	if err != nil {
		utils.Error("background persistence could not lock item", map[string]any{
			"item_id": provisional.ItemID,
			"bid_id":  provisional.BidID,
			"error":   err.Error(),
		})
		s.compensate(provisional, previousPrice)
		return
	}
	defer s.locks.Release(provisional.ItemID, token)

	item, err := s.db.GetItem(provisional.ItemID)
	if err == nil {
		if shillErr := s.limiter.DetectShill(provisional.UserID, provisional.ItemID, s.cachedUserIP(item.SellerID), ipAddress); shillErr != nil {
			err = shillErr
		}
	}

	// Background tasks can apply out of submission order. A task whose amount
	// no longer tops the durable price lands as OUTBID and leaves the item and
	// the cache to the newer bid.
	if err == nil && item.CurrentBidPrice >= provisional.Amount {
		s.recordOvertakenBid(item, provisional, ipAddress)
		return
	}

	var bid model.Bid
	if err == nil {
		bid, err = s.applyBid(&item, provisional.UserID, provisional.Amount, false)
	}

	if err != nil {
		utils.Error("background bid persistence failed", map[string]any{
			"item_id": provisional.ItemID,
			"bid_id":  provisional.BidID,
			"error":   err.Error(),
		})
		s.compensate(provisional, previousPrice)
		return
	}

	s.audit.LogAction(bid, model.ActionBidPlaced, ipAddress, previousPrice)

	if err := s.proxies.ProcessAfterManualBid(provisional.ItemID, provisional.Amount, provisional.UserID); err != nil {
		utils.Error("proxy cascade failed in background", map[string]any{
			"item_id": provisional.ItemID,
			"bid_id":  bid.BidID,
			"error":   err.Error(),
		})
	}

	s.broadcastBid(bid)

	utils.Info("background bid persistence completed", map[string]any{
		"provisional_id": provisional.BidID,
		"bid_id":         bid.BidID,
		"item_id":        provisional.ItemID,
	})
}

// recordOvertakenBid writes the durable record for a fast-path bid whose
// persistence lost the race against a higher accepted bid. The ledger keeps
// every admitted bid, so this one lands directly as OUTBID.
func (s *BiddingService) recordOvertakenBid(item model.Item, provisional model.Bid, ipAddress string) {
	bid := model.Bid{
		BidID:     utils.GenerateID(),
		ItemID:    provisional.ItemID,
		UserID:    provisional.UserID,
		Amount:    provisional.Amount,
		Status:    model.BidOutbid,
		ProxyBid:  false,
		CreatedAt: provisional.CreatedAt,
	}
	if err := s.db.CreateBid(bid); err != nil {
		utils.Error("failed to record overtaken bid", map[string]any{
			"item_id":        provisional.ItemID,
			"provisional_id": provisional.BidID,
			"error":          err.Error(),
		})
		return
	}

	s.audit.LogAction(bid, model.ActionBidOutbid, ipAddress, item.CurrentBidPrice)

	utils.Info("fast-path bid overtaken before persistence", map[string]any{
		"provisional_id": provisional.BidID,
		"bid_id":         bid.BidID,
		"item_id":        provisional.ItemID,
		"amount":         provisional.Amount,
	})
}

// acquireWithRetry keeps trying the item lock for roughly its TTL so a
// background task outlives any holder that is ahead of it.
func (s *BiddingService) acquireWithRetry(itemID string) (string, error) {
	var err error
	for attempt := 0; attempt < 100; attempt++ {
		var token string
		token, err = s.locks.Acquire(itemID)
		if err == nil {
			return token, nil
		}
		if !errors.Is(err, auctionerrors.ErrLockContention) {
			return "", err
		}
		time.Sleep(100 * time.Millisecond)
	}
	return "", err
}

// compensate rolls the cached price back after a failed background write so
// the next admission validates against the last durable amount. Best-effort:
// a newer accepted bid may already own the cache entry, in which case the
// revert is skipped.
func (s *BiddingService) compensate(provisional model.Bid, previousPrice float64) {
	key := cache.CurrentBidKey(provisional.ItemID)

	current, ok, err := s.cache.Get(key)
	if err != nil || !ok || current != formatAmount(provisional.Amount) {
		return
	}

	if err := s.cache.Set(key, formatAmount(previousPrice), cache.CurrentBidTTL); err != nil {
		utils.Error("failed to revert cached price for failed bid", map[string]any{
			"item_id": provisional.ItemID,
			"bid_id":  provisional.BidID,
			"error":   err.Error(),
		})
		return
	}

	// The fast path advanced the cached snapshot too; restore it from the
	// durable row.
	if dbItem, dbErr := s.db.GetItem(provisional.ItemID); dbErr == nil {
		s.cacheItemSnapshot(dbItem)
	}

	utils.Warn("reverted cached price for failed bid", map[string]any{
		"item_id":        provisional.ItemID,
		"bid_id":         provisional.BidID,
		"restored_price": previousPrice,
	})
}

// admit runs the admission gates in order: rate limits, auction window and
// status, minimum increment against the freshest known price, seller
// restriction, then optionally the shill heuristics.
func (s *BiddingService) admit(item model.Item, userID string, amount float64, ipAddress string, withShill bool) error {
	if err := s.limiter.Check(userID, item.ItemID, item.AuctionEndDate); err != nil {
		metrics.IncBidRejected("rate_limited")
		return err
	}

	now := s.now()
	if now.Before(item.AuctionStartDate) || now.After(item.AuctionEndDate) || item.Status != model.ItemActive {
		metrics.IncBidRejected("auction_not_active")
		return fmt.Errorf("service: item %s: %w", item.ItemID, auctionerrors.ErrAuctionNotActive)
	}

	currentPrice := s.currentPrice(item)
	minimumBid := currentPrice + item.MinIncreasePrice
	if amount < minimumBid {
		metrics.IncBidRejected("bid_too_low")
		return fmt.Errorf("service: bid must be at least %.2f: %w", minimumBid, auctionerrors.ErrBidTooLow)
	}

	if item.SellerID == userID {
		metrics.IncBidRejected("self_bidding")
		return fmt.Errorf("service: item %s: %w", item.ItemID, auctionerrors.ErrSelfBidding)
	}

	if item.ReservePrice > 0 && amount < item.ReservePrice {
		utils.Info("bid below reserve price", map[string]any{
			"item_id": item.ItemID,
			"amount":  amount,
		})
	}

	s.cacheUserIP(userID, ipAddress)

	if withShill {
		if err := s.limiter.DetectShill(userID, item.ItemID, s.cachedUserIP(item.SellerID), ipAddress); err != nil {
			metrics.IncBidRejected("suspicious")
			return err
		}
	}
	return nil
}

// applyBid performs the atomic ledger write for one accepted bid: previous
// bids lose the highest flag and move to OUTBID, the new bid lands as the
// single highest, and the item's price, increment, reserve flag and
// anti-snipe deadline update together. The caller holds the item lock.
func (s *BiddingService) applyBid(item *model.Item, userID string, amount float64, isProxy bool) (model.Bid, error) {
	if err := s.db.ResetHighestBidFlags(item.ItemID); err != nil {
		return model.Bid{}, fmt.Errorf("reset highest bid flags: %w", err)
	}
	if err := s.db.MarkAcceptedBidsOutbid(item.ItemID); err != nil {
		return model.Bid{}, fmt.Errorf("mark previous bids outbid: %w", err)
	}

	now := s.now().UTC()
	bid := model.Bid{
		BidID:      utils.GenerateID(),
		ItemID:     item.ItemID,
		UserID:     userID,
		Amount:     amount,
		Status:     model.BidAccepted,
		HighestBid: true,
		ProxyBid:   isProxy,
		CreatedAt:  now,
	}
	if err := s.db.CreateBid(bid); err != nil {
		return model.Bid{}, err
	}

	item.CurrentBidPrice = amount
	item.MinIncreasePrice = increment.MinIncrement(amount)
	if item.ReservePrice > 0 && amount >= item.ReservePrice {
		item.ReserveMet = true
	}
	s.maybeExtendAuction(item, now)

	if err := s.db.UpdateItem(*item); err != nil {
		return model.Bid{}, fmt.Errorf("update item after bid: %w", err)
	}

	if err := s.cache.Set(cache.CurrentBidKey(item.ItemID), formatAmount(amount), cache.CurrentBidTTL); err != nil {
		utils.Warn("failed to refresh current bid cache", map[string]any{
			"item_id": item.ItemID,
			"error":   err.Error(),
		})
	}
	s.cacheItemSnapshot(*item)

	return bid, nil
}

// maybeExtendAuction pushes the auction end out when a bid lands inside the
// anti-snipe threshold, up to the item's extension budget. The original end
// date is never touched.
func (s *BiddingService) maybeExtendAuction(item *model.Item, now time.Time) {
	if item.AntiSnipeThresholdMinutes <= 0 || item.CurrentExtensions >= item.MaxExtensions {
		return
	}

	threshold := time.Duration(item.AntiSnipeThresholdMinutes) * time.Minute
	if item.AuctionEndDate.Sub(now) > threshold {
		return
	}

	item.AuctionEndDate = item.AuctionEndDate.Add(time.Duration(item.AntiSnipeExtensionMinutes) * time.Minute)
	item.CurrentExtensions++
	metrics.IncAntiSnipeExtension()

	utils.Info("auction extended by late bid", map[string]any{
		"item_id":      item.ItemID,
		"new_end_date": item.AuctionEndDate,
		"extension":    item.CurrentExtensions,
	})
}

// CreateItem validates and registers a new auction listing. Items start
// PENDING until the lifecycle scheduler moves them along.
func (s *BiddingService) CreateItem(title, description, sellerID string, startingPrice, reservePrice float64, start, end time.Time) (model.Item, error) {
	if title == "" || sellerID == "" {
		return model.Item{}, fmt.Errorf("service: title and seller are required: %w", auctionerrors.ErrInvalidBid)
	}
	if startingPrice <= 0 {
		return model.Item{}, fmt.Errorf("service: starting price must be positive: %w", auctionerrors.ErrInvalidBid)
	}
	if !end.After(start) {
		return model.Item{}, fmt.Errorf("service: auction end must be after start: %w", auctionerrors.ErrInvalidBid)
	}
	if end.Before(s.now()) {
		return model.Item{}, fmt.Errorf("service: auction end must be in the future: %w", auctionerrors.ErrInvalidBid)
	}

	item := model.Item{
		ItemID:           utils.GenerateID(),
		Title:            title,
		Description:      description,
		SellerID:         sellerID,
		StartingPrice:    startingPrice,
		ReservePrice:     reservePrice,
		MinIncreasePrice: increment.MinIncrement(startingPrice),
		AuctionStartDate: start,
		AuctionEndDate:   end,
		OriginalEndDate:  end,

		AntiSnipeThresholdMinutes: 2,
		AntiSnipeExtensionMinutes: 5,
		MaxExtensions:             3,

		Status: model.ItemPending,
	}
	if err := s.db.CreateItem(item); err != nil {
		return model.Item{}, fmt.Errorf("service: failed to create item: %w", err)
	}

	utils.Info("item created", map[string]any{
		"item_id":   item.ItemID,
		"seller_id": sellerID,
		"title":     title,
	})
	return item, nil
}

// GetBidsForItem returns the item's bids ordered by amount descending.
func (s *BiddingService) GetBidsForItem(itemID string) ([]model.Bid, error) {
	return s.db.GetBidsByItem(itemID)
}

// GetWinningBid returns the current highest bid for an item.
func (s *BiddingService) GetWinningBid(itemID string) (model.Bid, error) {
	return s.db.GetHighestBid(itemID)
}

// GetItemsForUser returns the items the user has bid on.
func (s *BiddingService) GetItemsForUser(userID string) ([]model.Item, error) {
	return s.db.GetItemsByUser(userID)
}

// GetActiveItems returns the items currently open for bidding.
func (s *BiddingService) GetActiveItems() ([]model.Item, error) {
	return s.db.ItemsByStatusStartedBefore(model.ItemActive, s.now())
}

// loadItem resolves the item from the snapshot cache, falling back to
// durable storage and repopulating the cache on a miss.
func (s *BiddingService) loadItem(itemID string) (model.Item, error) {
	if raw, ok, err := s.cache.Get(cache.ItemSnapshotKey(itemID)); err == nil && ok {
		var item model.Item
		if err := json.Unmarshal([]byte(raw), &item); err == nil {
			return item, nil
		}
	}

	item, err := s.db.GetItem(itemID)
	if err != nil {
		return model.Item{}, fmt.Errorf("service: %w", err)
	}
	s.cacheItemSnapshot(item)
	return item, nil
}

func (s *BiddingService) cacheItemSnapshot(item model.Item) {
	raw, err := json.Marshal(item)
	if err != nil {
		return
	}
	if err := s.cache.Set(cache.ItemSnapshotKey(item.ItemID), string(raw), cache.ItemSnapshotTTL); err != nil {
		utils.Warn("failed to cache item snapshot", map[string]any{
			"item_id": item.ItemID,
			"error":   err.Error(),
		})
	}
}

// currentPrice prefers the cached amount, which may be ahead of the durable
// row during the two-phase window, and falls back to the item itself.
func (s *BiddingService) currentPrice(item model.Item) float64 {
	if raw, ok, err := s.cache.Get(cache.CurrentBidKey(item.ItemID)); err == nil && ok {
		if v, parseErr := strconv.ParseFloat(raw, 64); parseErr == nil {
			return v
		}
	}
	return item.CurrentPrice()
}

func (s *BiddingService) cacheUserIP(userID, ipAddress string) {
	if ipAddress == "" {
		return
	}
	if err := s.cache.Set(userIPPrefix+userID, ipAddress, userIPTTL); err != nil {
		utils.Warn("failed to cache user ip", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
	}
}

func (s *BiddingService) cachedUserIP(userID string) string {
	ip, ok, err := s.cache.Get(userIPPrefix + userID)
	if err != nil || !ok {
		return ""
	}
	return ip
}

func (s *BiddingService) broadcastBid(bid model.Bid) {
	totalBids, _ := s.db.CountBidsByItem(bid.ItemID)
	event := notify.BidUpdateEvent{
		BidID:     bid.BidID,
		ItemID:    bid.ItemID,
		UserID:    bid.UserID,
		Amount:    bid.Amount,
		ProxyBid:  bid.ProxyBid,
		BidTime:   bid.CreatedAt,
		TotalBids: totalBids,
	}
	s.publisher.Publish(notify.ItemBidsTopic(bid.ItemID), event)
	s.publisher.Publish(notify.AuctionUpdatesTopic, event)
}

func validateInput(itemID, userID string, amount float64) error {
	if itemID == "" || userID == "" {
		metrics.IncBidRejected("invalid")
		return fmt.Errorf("service: item and user are required: %w", auctionerrors.ErrInvalidBid)
	}
	if amount <= 0 {
		metrics.IncBidRejected("invalid")
		return fmt.Errorf("service: amount must be positive: %w", auctionerrors.ErrInvalidBid)
	}
	return nil
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
