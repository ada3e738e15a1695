package repository

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// AuctionDB is the durable persistence boundary for items, bids, proxy bids
// and the audit trail. Implementations must make each method atomic; cross-
// method atomicity for a single item is provided by the lock coordinator.
type AuctionDB interface {
	// Items
	CreateItem(item model.Item) error
	GetItem(itemID string) (model.Item, error)
	UpdateItem(item model.Item) error
	ItemsByStatusStartedBefore(status model.ItemStatus, t time.Time) ([]model.Item, error)
	ItemsByStatusEndedBefore(status model.ItemStatus, t time.Time) ([]model.Item, error)
	GetItemsByUser(userID string) ([]model.Item, error)

	// Bids
	CreateBid(bid model.Bid) error
	UpdateBid(bid model.Bid) error
	GetBidsByItem(itemID string) ([]model.Bid, error) // ordered by amount descending
	GetHighestBid(itemID string) (model.Bid, error)
	ResetHighestBidFlags(itemID string) error
	MarkAcceptedBidsOutbid(itemID string) error
	CountBidsByItem(itemID string) (int64, error)

	// Proxy bids
	SaveProxyBid(pb model.ProxyBid) error
	GetProxyBid(proxyBidID string) (model.ProxyBid, error)
	ActiveProxyBidsByItem(itemID string) ([]model.ProxyBid, error)
	ActiveProxyBidByUserAndItem(userID, itemID string) (model.ProxyBid, error)
	ProxyBidsByUser(userID string) ([]model.ProxyBid, error)

	// Audit trail (append-only)
	AppendAuditLog(entry model.BidAuditLog) error
	AuditLogsByBid(bidID string) ([]model.BidAuditLog, error)
}

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB.
// It is the default store when no database DSN is configured and the fixture
// store for tests.
type MemoryRepo struct {
	mu        sync.RWMutex
	items     map[string]model.Item          // key: itemID
	bids      map[string][]model.Bid         // key: itemID -> bids in insertion order
	proxyBids map[string]model.ProxyBid      // key: proxyBidID
	auditLogs map[string][]model.BidAuditLog // key: bidID -> append-only entries
	userItems map[string][]string            // key: userID -> itemIDs the user has bid on
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		items:     make(map[string]model.Item),
		bids:      make(map[string][]model.Bid),
		proxyBids: make(map[string]model.ProxyBid),
		auditLogs: make(map[string][]model.BidAuditLog),
		userItems: make(map[string][]string),
	}
}

// CreateItem stores a new item.
func (r *MemoryRepo) CreateItem(item model.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ItemID]; ok {
		return fmt.Errorf("create item %s: already exists", item.ItemID)
	}
	r.items[item.ItemID] = item
	return nil
}

// GetItem returns the item with the given id.
func (r *MemoryRepo) GetItem(itemID string) (model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[itemID]
	if !ok {
		return model.Item{}, fmt.Errorf("get item %s: %w", itemID, auctionerrors.ErrItemNotFound)
	}
	return item, nil
}

// UpdateItem replaces the stored item row.
func (r *MemoryRepo) UpdateItem(item model.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ItemID]; !ok {
		return fmt.Errorf("update item %s: %w", item.ItemID, auctionerrors.ErrItemNotFound)
	}
	r.items[item.ItemID] = item
	return nil
}

// ItemsByStatusStartedBefore returns items in the given status whose auction
// start date is at or before t.
func (r *MemoryRepo) ItemsByStatusStartedBefore(status model.ItemStatus, t time.Time) ([]model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Item
	for _, item := range r.items {
		if item.Status == status && !item.AuctionStartDate.After(t) {
			out = append(out, item)
		}
	}
	return out, nil
}

// ItemsByStatusEndedBefore returns items in the given status whose auction
// end date is strictly before t.
func (r *MemoryRepo) ItemsByStatusEndedBefore(status model.ItemStatus, t time.Time) ([]model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Item
	for _, item := range r.items {
		if item.Status == status && item.AuctionEndDate.Before(t) {
			out = append(out, item)
		}
	}
	return out, nil
}

// GetItemsByUser returns all items a user has bid on
func (r *MemoryRepo) GetItemsByUser(userID string) ([]model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	itemIDs, ok := r.userItems[userID]
	if !ok || len(itemIDs) == 0 {
		return nil, fmt.Errorf("get items for user %s: %w", userID, auctionerrors.ErrUserNoBids)
	}

	items := make([]model.Item, 0, len(itemIDs))
	for _, id := range itemIDs {
		if item, exists := r.items[id]; exists {
			items = append(items, item)
		}
	}
	return items, nil
}

// CreateBid records a new bid against an existing item.
func (r *MemoryRepo) CreateBid(bid model.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[bid.ItemID]; !ok {
		return fmt.Errorf("create bid for item %s: %w", bid.ItemID, auctionerrors.ErrItemNotFound)
	}

	r.bids[bid.ItemID] = append(r.bids[bid.ItemID], bid)

	for _, id := range r.userItems[bid.UserID] {
		if id == bid.ItemID {
			return nil
		}
	}
	r.userItems[bid.UserID] = append(r.userItems[bid.UserID], bid.ItemID)

	return nil
}

// UpdateBid replaces the stored bid row.
func (r *MemoryRepo) UpdateBid(bid model.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bids := r.bids[bid.ItemID]
	for i := range bids {
		if bids[i].BidID == bid.BidID {
			bids[i] = bid
			return nil
		}
	}
	return fmt.Errorf("update bid %s: %w", bid.BidID, auctionerrors.ErrNoBids)
}

// GetBidsByItem returns all bids for an item ordered by amount descending.
func (r *MemoryRepo) GetBidsByItem(itemID string) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bids, ok := r.bids[itemID]
	if !ok || len(bids) == 0 {
		return nil, fmt.Errorf("get bids for item %s: %w", itemID, auctionerrors.ErrNoBids)
	}

	out := append([]model.Bid(nil), bids...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Amount > out[j].Amount })
	return out, nil
}

// GetHighestBid returns the highest-amount bid for an item, breaking amount
// ties in favor of the earlier bid.
func (r *MemoryRepo) GetHighestBid(itemID string) (model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bids, ok := r.bids[itemID]
	if !ok || len(bids) == 0 {
		return model.Bid{}, fmt.Errorf("get highest bid for item %s: %w", itemID, auctionerrors.ErrNoBids)
	}

	highest := bids[0]
	for _, b := range bids[1:] {
		if b.Amount > highest.Amount || (b.Amount == highest.Amount && b.CreatedAt.Before(highest.CreatedAt)) {
			highest = b
		}
	}
	return highest, nil
}

// ResetHighestBidFlags clears the highest-bid flag on every bid for the item.
func (r *MemoryRepo) ResetHighestBidFlags(itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bids := r.bids[itemID]
	for i := range bids {
		bids[i].HighestBid = false
	}
	return nil
}

// MarkAcceptedBidsOutbid transitions the item's ACCEPTED bids to OUTBID.
func (r *MemoryRepo) MarkAcceptedBidsOutbid(itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bids := r.bids[itemID]
	for i := range bids {
		if bids[i].Status == model.BidAccepted {
			bids[i].Status = model.BidOutbid
		}
	}
	return nil
}

// CountBidsByItem returns the number of bids recorded for an item.
func (r *MemoryRepo) CountBidsByItem(itemID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.bids[itemID])), nil
}

// SaveProxyBid creates or replaces a proxy bid row.
func (r *MemoryRepo) SaveProxyBid(pb model.ProxyBid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.proxyBids[pb.ProxyBidID] = pb
	return nil
}

// GetProxyBid returns the proxy bid with the given id.
func (r *MemoryRepo) GetProxyBid(proxyBidID string) (model.ProxyBid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pb, ok := r.proxyBids[proxyBidID]
	if !ok {
		return model.ProxyBid{}, fmt.Errorf("get proxy bid %s: %w", proxyBidID, auctionerrors.ErrProxyBidNotFound)
	}
	return pb, nil
}

// ActiveProxyBidsByItem returns the ACTIVE proxy bids for an item ordered by
// creation time.
func (r *MemoryRepo) ActiveProxyBidsByItem(itemID string) ([]model.ProxyBid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.ProxyBid
	for _, pb := range r.proxyBids {
		if pb.ItemID == itemID && pb.Status == model.ProxyActive {
			out = append(out, pb)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// ActiveProxyBidByUserAndItem returns the user's ACTIVE proxy bid for an item.
func (r *MemoryRepo) ActiveProxyBidByUserAndItem(userID, itemID string) (model.ProxyBid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, pb := range r.proxyBids {
		if pb.UserID == userID && pb.ItemID == itemID && pb.Status == model.ProxyActive {
			return pb, nil
		}
	}
	return model.ProxyBid{}, fmt.Errorf("active proxy bid for user %s on item %s: %w", userID, itemID, auctionerrors.ErrProxyBidNotFound)
}

// ProxyBidsByUser returns every proxy bid owned by the user.
func (r *MemoryRepo) ProxyBidsByUser(userID string) ([]model.ProxyBid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.ProxyBid
	for _, pb := range r.proxyBids {
		if pb.UserID == userID {
			out = append(out, pb)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// AppendAuditLog appends one immutable audit entry. Entries are never
// updated or deleted.
func (r *MemoryRepo) AppendAuditLog(entry model.BidAuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.auditLogs[entry.BidID] = append(r.auditLogs[entry.BidID], entry)
	return nil
}

// AuditLogsByBid returns the audit trail for one bid in append order.
func (r *MemoryRepo) AuditLogsByBid(bidID string) ([]model.BidAuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]model.BidAuditLog(nil), r.auditLogs[bidID]...), nil
}

// AddItem adds an item to the repository. This method is intended for tests only.
func (r *MemoryRepo) AddItem(item model.Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ItemID] = item
}
