// Package proxybid runs standing maximum bids on behalf of users. The engine
// reacts to every accepted manual bid, escalating the strongest proxy by the
// item's minimum increment and settling proxy-versus-proxy competition so the
// winner pays one increment over the next-best ceiling, never their own
// ceiling unless forced to it.
package proxybid

import (
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
	"auction-engine/internal/repository"
	"auction-engine/utils"
)

// Engine evaluates and executes proxy bids. Registration serializes through
// the item lock; the cascade entry points (ProcessAfterManualBid,
// ResolveAtAuctionEnd) run under their caller's lock.
type Engine struct {
	db        repository.AuctionDB
	cache     cache.AuctionCache
	locks     *lock.Coordinator
	audit     *audit.Service
	publisher notify.Publisher
	now       func() time.Time
}

// NewEngine creates a proxy-bid Engine.
func NewEngine(db repository.AuctionDB, c cache.AuctionCache, locks *lock.Coordinator, a *audit.Service, p notify.Publisher) *Engine {
	return &Engine{
		db:        db,
		cache:     c,
		locks:     locks,
		audit:     a,
		publisher: p,
		now:       time.Now,
	}
}

// SetClock overrides the engine's time source. Intended for tests only.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// CreateOrUpdateProxyBid registers a standing maximum bid for a user on an
// item, or raises the ceiling of the user's existing active one. Unless the
// user already holds the highest bid, the proxy executes immediately against
// the current price.
func (e *Engine) CreateOrUpdateProxyBid(userID, itemID string, maxAmount float64) (model.ProxyBid, error) {
	// Registration may execute a bid immediately, so the whole price read and
	// write sequence holds the item lock like any manual bid.
	token, err := e.locks.Acquire(itemID)
	if err != nil {
		return model.ProxyBid{}, err
	}
	defer e.locks.Release(itemID, token)

	item, err := e.db.GetItem(itemID)
	if err != nil {
		return model.ProxyBid{}, fmt.Errorf("proxy bid for item %s: %w", itemID, err)
	}

	if item.Status != model.ItemApproved && item.Status != model.ItemActive {
		return model.ProxyBid{}, fmt.Errorf("%w: item %s has status %s", auctionerrors.ErrProxyBidInvalid, itemID, item.Status)
	}

	if item.SellerID == userID {
		return model.ProxyBid{}, fmt.Errorf("proxy bid on item %s: %w", itemID, auctionerrors.ErrSelfBidding)
	}

	now := e.now()
	if now.After(item.AuctionEndDate) {
		return model.ProxyBid{}, fmt.Errorf("%w: auction for item %s has ended", auctionerrors.ErrProxyBidInvalid, itemID)
	}
	if now.Before(item.AuctionStartDate) {
		return model.ProxyBid{}, fmt.Errorf("%w: auction for item %s has not started", auctionerrors.ErrProxyBidInvalid, itemID)
	}

	currentPrice := item.CurrentPrice()
	minimumRequired := currentPrice + item.MinIncreasePrice
	if maxAmount <= minimumRequired {
		return model.ProxyBid{}, fmt.Errorf("%w: max amount %.2f must exceed current price %.2f plus minimum increment %.2f",
			auctionerrors.ErrProxyBidInvalid, maxAmount, currentPrice, item.MinIncreasePrice)
	}

	pb, err := e.db.ActiveProxyBidByUserAndItem(userID, itemID)
	switch {
	case err == nil:
		pb.MaxAmount = maxAmount
		pb.Status = model.ProxyActive
		utils.Info("proxy bid updated", map[string]any{
			"proxy_bid_id": pb.ProxyBidID,
			"user_id":      userID,
			"item_id":      itemID,
			"max_amount":   maxAmount,
		})
	case errors.Is(err, auctionerrors.ErrProxyBidNotFound):
		pb = model.ProxyBid{
			ProxyBidID:      utils.GenerateID(),
			ItemID:          itemID,
			UserID:          userID,
			MaxAmount:       maxAmount,
			CurrentAmount:   0,
			IncrementAmount: item.MinIncreasePrice,
			Status:          model.ProxyActive,
			CreatedAt:       now.UTC(),
		}
		utils.Info("proxy bid created", map[string]any{
			"proxy_bid_id": pb.ProxyBidID,
			"user_id":      userID,
			"item_id":      itemID,
			"max_amount":   maxAmount,
		})
	default:
		return model.ProxyBid{}, fmt.Errorf("lookup proxy bid for user %s on item %s: %w", userID, itemID, err)
	}

	if err := e.db.SaveProxyBid(pb); err != nil {
		return model.ProxyBid{}, fmt.Errorf("save proxy bid for user %s on item %s: %w", userID, itemID, err)
	}

	// Holding back while the user already leads avoids self-escalation.
	highest, err := e.db.GetHighestBid(itemID)
	if err == nil && highest.UserID == userID {
		return pb, nil
	}
	if err != nil && !errors.Is(err, auctionerrors.ErrNoBids) {
		return pb, nil
	}

	executed, err := e.executeProxyBid(&pb, currentPrice+item.MinIncreasePrice, &item)
	if err != nil {
		return model.ProxyBid{}, err
	}
	if executed {
		if err := e.processCompeting(&item, &pb); err != nil {
			return model.ProxyBid{}, err
		}
	}

	fresh, err := e.db.GetProxyBid(pb.ProxyBidID)
	if err != nil {
		return pb, nil
	}
	return fresh, nil
}

// ProcessAfterManualBid cascades proxy executions after an accepted manual
// bid. Exceeded proxies are always marked OUTBID, even when nothing remains
// eligible to counter.
func (e *Engine) ProcessAfterManualBid(itemID string, newBidAmount float64, excludeUserID string) error {
	item, err := e.db.GetItem(itemID)
	if err != nil {
		return fmt.Errorf("proxy cascade for item %s: %w", itemID, err)
	}

	active, err := e.db.ActiveProxyBidsByItem(itemID)
	if err != nil {
		return fmt.Errorf("load active proxy bids for item %s: %w", itemID, err)
	}

	var eligible []model.ProxyBid
	for _, pb := range active {
		if pb.UserID == excludeUserID {
			continue
		}
		if pb.MaxAmount > newBidAmount {
			eligible = append(eligible, pb)
			continue
		}
		pb.Status = model.ProxyOutbid
		pb.Winning = false
		if err := e.db.SaveProxyBid(pb); err != nil {
			return fmt.Errorf("mark proxy bid %s outbid: %w", pb.ProxyBidID, err)
		}
		e.notifyProxyOwner(pb)
		utils.Info("proxy bid exceeded by manual bid", map[string]any{
			"proxy_bid_id": pb.ProxyBidID,
			"item_id":      itemID,
			"bid_amount":   newBidAmount,
		})
	}

	if len(eligible) == 0 {
		return nil
	}

	winner := highestCeiling(eligible)

	nextAmount := newBidAmount + item.MinIncreasePrice
	if nextAmount > winner.MaxAmount {
		winner.Status = model.ProxyExhausted
		winner.Winning = false
		if err := e.db.SaveProxyBid(*winner); err != nil {
			return fmt.Errorf("mark proxy bid %s exhausted: %w", winner.ProxyBidID, err)
		}
		e.notifyProxyOwner(*winner)
		utils.Info("highest proxy bid exhausted by manual bid", map[string]any{
			"proxy_bid_id": winner.ProxyBidID,
			"item_id":      itemID,
			"bid_amount":   newBidAmount,
		})
		return nil
	}

	if _, err := e.executeProxyBid(winner, nextAmount, &item); err != nil {
		return err
	}

	return e.processCompeting(&item, winner)
}

// processCompeting settles proxy-versus-proxy competition after winner has
// executed. The winner is raised to one increment over the second-highest
// ceiling, clamped to its own ceiling, and every other contender is OUTBID.
func (e *Engine) processCompeting(item *model.Item, winner *model.ProxyBid) error {
	active, err := e.db.ActiveProxyBidsByItem(item.ItemID)
	if err != nil {
		return fmt.Errorf("load competing proxy bids for item %s: %w", item.ItemID, err)
	}

	currentAmount := item.CurrentBidPrice
	var competitors []model.ProxyBid
	for _, pb := range active {
		if pb.ProxyBidID == winner.ProxyBidID {
			continue
		}
		if pb.MaxAmount > currentAmount {
			competitors = append(competitors, pb)
		}
	}
	if len(competitors) == 0 {
		return nil
	}

	secondHighest := highestCeiling(competitors)

	competitive := secondHighest.MaxAmount + item.MinIncreasePrice
	if competitive > winner.MaxAmount {
		competitive = winner.MaxAmount
	}
	if competitive > currentAmount {
		if _, err := e.executeProxyBid(winner, competitive, item); err != nil {
			return err
		}
	}

	for _, pb := range competitors {
		pb.Status = model.ProxyOutbid
		pb.Winning = false
		if err := e.db.SaveProxyBid(pb); err != nil {
			return fmt.Errorf("mark competing proxy bid %s outbid: %w", pb.ProxyBidID, err)
		}
		e.notifyProxyOwner(pb)
	}
	return nil
}

// executeProxyBid writes an automatic bid through the ledger on behalf of pb.
// Returns false without writing when pb cannot afford bidAmount.
func (e *Engine) executeProxyBid(pb *model.ProxyBid, bidAmount float64, item *model.Item) (bool, error) {
	if bidAmount > pb.MaxAmount {
		return false, nil
	}

	if err := e.db.ResetHighestBidFlags(item.ItemID); err != nil {
		return false, fmt.Errorf("reset highest bid flags for item %s: %w", item.ItemID, err)
	}
	if err := e.db.MarkAcceptedBidsOutbid(item.ItemID); err != nil {
		return false, fmt.Errorf("mark previous bids outbid for item %s: %w", item.ItemID, err)
	}

	now := e.now().UTC()
	bid := model.Bid{
		BidID:      utils.GenerateID(),
		ItemID:     item.ItemID,
		UserID:     pb.UserID,
		Amount:     bidAmount,
		Status:     model.BidAccepted,
		HighestBid: true,
		ProxyBid:   true,
		CreatedAt:  now,
	}
	if err := e.db.CreateBid(bid); err != nil {
		return false, fmt.Errorf("record proxy bid for item %s: %w", item.ItemID, err)
	}

	previousAmount := item.CurrentBidPrice

	pb.CurrentAmount = bidAmount
	pb.LastBidDate = now
	pb.Winning = true
	if bidAmount >= pb.MaxAmount {
		pb.Status = model.ProxyExhausted
	}
	if err := e.db.SaveProxyBid(*pb); err != nil {
		return false, fmt.Errorf("update proxy bid %s after execution: %w", pb.ProxyBidID, err)
	}

	item.CurrentBidPrice = bidAmount
	item.MinIncreasePrice = increment.MinIncrement(bidAmount)
	if item.ReservePrice > 0 && bidAmount >= item.ReservePrice {
		item.ReserveMet = true
	}
	if err := e.db.UpdateItem(*item); err != nil {
		return false, fmt.Errorf("update item %s after proxy execution: %w", item.ItemID, err)
	}

	if err := e.cache.Set(cache.CurrentBidKey(item.ItemID), strconv.FormatFloat(bidAmount, 'f', -1, 64), cache.CurrentBidTTL); err != nil {
		utils.Warn("failed to refresh current bid cache after proxy execution", map[string]any{
			"item_id": item.ItemID,
			"error":   err.Error(),
		})
	}

	e.audit.LogAction(bid, model.ActionProxyExecuted, "", previousAmount)
	metrics.IncProxyExecution()

	totalBids, _ := e.db.CountBidsByItem(item.ItemID)
	e.publisher.Publish(notify.ItemBidsTopic(item.ItemID), notify.BidUpdateEvent{
		BidID:     bid.BidID,
		ItemID:    item.ItemID,
		UserID:    pb.UserID,
		Amount:    bidAmount,
		ProxyBid:  true,
		BidTime:   now,
		TotalBids: totalBids,
	})
	e.notifyProxyOwner(*pb)

	utils.Info("proxy bid executed", map[string]any{
		"proxy_bid_id": pb.ProxyBidID,
		"user_id":      pb.UserID,
		"item_id":      item.ItemID,
		"amount":       bidAmount,
	})
	return true, nil
}

// CancelProxyBid cancels a proxy bid owned by userID.
func (e *Engine) CancelProxyBid(proxyBidID, userID string) error {
	pb, err := e.db.GetProxyBid(proxyBidID)
	if err != nil {
		return fmt.Errorf("cancel proxy bid %s: %w", proxyBidID, err)
	}

	if pb.UserID != userID {
		return fmt.Errorf("%w: proxy bid %s is not owned by user %s", auctionerrors.ErrProxyBidInvalid, proxyBidID, userID)
	}

	pb.Status = model.ProxyCancelled
	pb.Winning = false
	if err := e.db.SaveProxyBid(pb); err != nil {
		return fmt.Errorf("cancel proxy bid %s: %w", proxyBidID, err)
	}

	utils.Info("proxy bid cancelled", map[string]any{
		"proxy_bid_id": proxyBidID,
		"user_id":      userID,
	})
	return nil
}

// ResolveAtAuctionEnd settles the item's remaining active proxy bids when the
// auction closes: the winning bidder's proxy becomes WON, the rest OUTBID.
func (e *Engine) ResolveAtAuctionEnd(itemID string, winningBid *model.Bid) error {
	active, err := e.db.ActiveProxyBidsByItem(itemID)
	if err != nil {
		return fmt.Errorf("resolve proxy bids for item %s: %w", itemID, err)
	}

	for _, pb := range active {
		if winningBid != nil && winningBid.UserID == pb.UserID {
			pb.Status = model.ProxyWon
			pb.Winning = true
		} else {
			pb.Status = model.ProxyOutbid
			pb.Winning = false
		}
		if err := e.db.SaveProxyBid(pb); err != nil {
			return fmt.Errorf("resolve proxy bid %s: %w", pb.ProxyBidID, err)
		}
		e.notifyProxyOwner(pb)
	}
	return nil
}

// ProxyBidsForUser returns every proxy bid the user has registered.
func (e *Engine) ProxyBidsForUser(userID string) ([]model.ProxyBid, error) {
	return e.db.ProxyBidsByUser(userID)
}

// ActiveForItem returns the item's active proxy bids in creation order.
func (e *Engine) ActiveForItem(itemID string) ([]model.ProxyBid, error) {
	return e.db.ActiveProxyBidsByItem(itemID)
}

func (e *Engine) notifyProxyOwner(pb model.ProxyBid) {
	e.publisher.Publish(notify.UserProxyBidsTopic(pb.UserID), notify.ProxyBidEvent{
		ProxyBidID:    pb.ProxyBidID,
		ItemID:        pb.ItemID,
		Status:        pb.Status,
		CurrentAmount: pb.CurrentAmount,
		MaxAmount:     pb.MaxAmount,
	})
}

// highestCeiling picks the proxy with the greatest MaxAmount. Ties resolve to
// the earliest created, which the repository's creation ordering provides.
func highestCeiling(pbs []model.ProxyBid) *model.ProxyBid {
	best := &pbs[0]
	for i := range pbs[1:] {
		if pbs[i+1].MaxAmount > best.MaxAmount {
			best = &pbs[i+1]
		}
	}
	return best
}
