package repository

import (
	"errors"
	"fmt"
	"time"

	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormRepo is the MySQL-backed implementation of AuctionDB.
type GormRepo struct {
	db *gorm.DB
}

// NewGormRepo connects to MySQL with the given DSN and migrates the schema.
func NewGormRepo(dsn string) (*GormRepo, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("repository: connect to database: %w", err)
	}

	if err := db.AutoMigrate(&model.Item{}, &model.Bid{}, &model.ProxyBid{}, &model.BidAuditLog{}, &model.User{}); err != nil {
		return nil, fmt.Errorf("repository: migrate schema: %w", err)
	}

	return &GormRepo{db: db}, nil
}

// NewGormRepoWithDB wraps an existing gorm connection. Intended for tests.
func NewGormRepoWithDB(db *gorm.DB) *GormRepo {
	return &GormRepo{db: db}
}

// CreateItem stores a new item.
func (r *GormRepo) CreateItem(item model.Item) error {
	if err := r.db.Create(&item).Error; err != nil {
		return fmt.Errorf("create item %s: %w", item.ItemID, err)
	}
	return nil
}

// GetItem returns the item with the given id.
func (r *GormRepo) GetItem(itemID string) (model.Item, error) {
	var item model.Item
	err := r.db.First(&item, "item_id = ?", itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Item{}, fmt.Errorf("get item %s: %w", itemID, auctionerrors.ErrItemNotFound)
	}
	if err != nil {
		return model.Item{}, fmt.Errorf("get item %s: %w", itemID, err)
	}
	return item, nil
}

// UpdateItem replaces the stored item row.
func (r *GormRepo) UpdateItem(item model.Item) error {
	res := r.db.Model(&model.Item{}).Where("item_id = ?", item.ItemID).Updates(map[string]any{
		"title":              item.Title,
		"description":        item.Description,
		"seller_id":          item.SellerID,
		"starting_price":     item.StartingPrice,
		"current_bid_price":  item.CurrentBidPrice,
		"min_increase_price": item.MinIncreasePrice,
		"reserve_price":      item.ReservePrice,
		"reserve_met":        item.ReserveMet,
		"auction_start_date": item.AuctionStartDate,
		"auction_end_date":   item.AuctionEndDate,
		"original_end_date":  item.OriginalEndDate,
		"current_extensions": item.CurrentExtensions,
		"status":             item.Status,
	})
	if res.Error != nil {
		return fmt.Errorf("update item %s: %w", item.ItemID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update item %s: %w", item.ItemID, auctionerrors.ErrItemNotFound)
	}
	return nil
}

// ItemsByStatusStartedBefore returns items in the given status whose auction
// start date is at or before t.
func (r *GormRepo) ItemsByStatusStartedBefore(status model.ItemStatus, t time.Time) ([]model.Item, error) {
	var items []model.Item
	if err := r.db.Where("status = ? AND auction_start_date <= ?", status, t).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("items by status %s started before: %w", status, err)
	}
	return items, nil
}

// ItemsByStatusEndedBefore returns items in the given status whose auction
// end date is strictly before t.
func (r *GormRepo) ItemsByStatusEndedBefore(status model.ItemStatus, t time.Time) ([]model.Item, error) {
	var items []model.Item
	if err := r.db.Where("status = ? AND auction_end_date < ?", status, t).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("items by status %s ended before: %w", status, err)
	}
	return items, nil
}

// GetItemsByUser returns all items a user has bid on.
func (r *GormRepo) GetItemsByUser(userID string) ([]model.Item, error) {
	var items []model.Item
	err := r.db.
		Where("item_id IN (?)", r.db.Model(&model.Bid{}).Select("item_id").Where("user_id = ?", userID)).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("get items for user %s: %w", userID, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("get items for user %s: %w", userID, auctionerrors.ErrUserNoBids)
	}
	return items, nil
}

// CreateBid records a new bid against an existing item.
func (r *GormRepo) CreateBid(bid model.Bid) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Item{}).Where("item_id = ?", bid.ItemID).Count(&count).Error; err != nil {
			return fmt.Errorf("create bid for item %s: %w", bid.ItemID, err)
		}
		if count == 0 {
			return fmt.Errorf("create bid for item %s: %w", bid.ItemID, auctionerrors.ErrItemNotFound)
		}
		if err := tx.Create(&bid).Error; err != nil {
			return fmt.Errorf("create bid %s: %w", bid.BidID, err)
		}
		return nil
	})
}

// UpdateBid replaces the stored bid row.
func (r *GormRepo) UpdateBid(bid model.Bid) error {
	res := r.db.Model(&model.Bid{}).Where("bid_id = ?", bid.BidID).Updates(map[string]any{
		"status":      bid.Status,
		"highest_bid": bid.HighestBid,
		"amount":      bid.Amount,
	})
	if res.Error != nil {
		return fmt.Errorf("update bid %s: %w", bid.BidID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update bid %s: %w", bid.BidID, auctionerrors.ErrNoBids)
	}
	return nil
}

// GetBidsByItem returns all bids for an item ordered by amount descending.
func (r *GormRepo) GetBidsByItem(itemID string) ([]model.Bid, error) {
	var bids []model.Bid
	if err := r.db.Where("item_id = ?", itemID).Order("amount DESC").Find(&bids).Error; err != nil {
		return nil, fmt.Errorf("get bids for item %s: %w", itemID, err)
	}
	if len(bids) == 0 {
		return nil, fmt.Errorf("get bids for item %s: %w", itemID, auctionerrors.ErrNoBids)
	}
	return bids, nil
}

// GetHighestBid returns the highest-amount bid for an item, breaking amount
// ties in favor of the earlier bid.
func (r *GormRepo) GetHighestBid(itemID string) (model.Bid, error) {
	var bid model.Bid
	err := r.db.Where("item_id = ?", itemID).Order("amount DESC, created_at ASC").First(&bid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Bid{}, fmt.Errorf("get highest bid for item %s: %w", itemID, auctionerrors.ErrNoBids)
	}
	if err != nil {
		return model.Bid{}, fmt.Errorf("get highest bid for item %s: %w", itemID, err)
	}
	return bid, nil
}

// ResetHighestBidFlags clears the highest-bid flag on every bid for the item.
func (r *GormRepo) ResetHighestBidFlags(itemID string) error {
	err := r.db.Model(&model.Bid{}).Where("item_id = ?", itemID).Update("highest_bid", false).Error
	if err != nil {
		return fmt.Errorf("reset highest bid flags for item %s: %w", itemID, err)
	}
	return nil
}

// MarkAcceptedBidsOutbid transitions the item's ACCEPTED bids to OUTBID.
func (r *GormRepo) MarkAcceptedBidsOutbid(itemID string) error {
	err := r.db.Model(&model.Bid{}).
		Where("item_id = ? AND status = ?", itemID, model.BidAccepted).
		Update("status", model.BidOutbid).Error
	if err != nil {
		return fmt.Errorf("mark accepted bids outbid for item %s: %w", itemID, err)
	}
	return nil
}

// CountBidsByItem returns the number of bids recorded for an item.
func (r *GormRepo) CountBidsByItem(itemID string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Bid{}).Where("item_id = ?", itemID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count bids for item %s: %w", itemID, err)
	}
	return count, nil
}

// SaveProxyBid creates or replaces a proxy bid row.
func (r *GormRepo) SaveProxyBid(pb model.ProxyBid) error {
	if err := r.db.Save(&pb).Error; err != nil {
		return fmt.Errorf("save proxy bid %s: %w", pb.ProxyBidID, err)
	}
	return nil
}

// GetProxyBid returns the proxy bid with the given id.
func (r *GormRepo) GetProxyBid(proxyBidID string) (model.ProxyBid, error) {
	var pb model.ProxyBid
	err := r.db.First(&pb, "proxy_bid_id = ?", proxyBidID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ProxyBid{}, fmt.Errorf("get proxy bid %s: %w", proxyBidID, auctionerrors.ErrProxyBidNotFound)
	}
	if err != nil {
		return model.ProxyBid{}, fmt.Errorf("get proxy bid %s: %w", proxyBidID, err)
	}
	return pb, nil
}

// ActiveProxyBidsByItem returns the ACTIVE proxy bids for an item ordered by
// creation time.
func (r *GormRepo) ActiveProxyBidsByItem(itemID string) ([]model.ProxyBid, error) {
	var out []model.ProxyBid
	err := r.db.Where("item_id = ? AND status = ?", itemID, model.ProxyActive).
		Order("created_at ASC").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("active proxy bids for item %s: %w", itemID, err)
	}
	return out, nil
}

// ActiveProxyBidByUserAndItem returns the user's ACTIVE proxy bid for an item.
func (r *GormRepo) ActiveProxyBidByUserAndItem(userID, itemID string) (model.ProxyBid, error) {
	var pb model.ProxyBid
	err := r.db.Where("user_id = ? AND item_id = ? AND status = ?", userID, itemID, model.ProxyActive).
		First(&pb).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ProxyBid{}, fmt.Errorf("active proxy bid for user %s on item %s: %w", userID, itemID, auctionerrors.ErrProxyBidNotFound)
	}
	if err != nil {
		return model.ProxyBid{}, fmt.Errorf("active proxy bid for user %s on item %s: %w", userID, itemID, err)
	}
	return pb, nil
}

// ProxyBidsByUser returns every proxy bid owned by the user.
func (r *GormRepo) ProxyBidsByUser(userID string) ([]model.ProxyBid, error) {
	var out []model.ProxyBid
	if err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("proxy bids for user %s: %w", userID, err)
	}
	return out, nil
}

// AppendAuditLog appends one immutable audit entry.
func (r *GormRepo) AppendAuditLog(entry model.BidAuditLog) error {
	if err := r.db.Create(&entry).Error; err != nil {
		return fmt.Errorf("append audit log for bid %s: %w", entry.BidID, err)
	}
	return nil
}

// AuditLogsByBid returns the audit trail for one bid in append order.
func (r *GormRepo) AuditLogsByBid(bidID string) ([]model.BidAuditLog, error) {
	var out []model.BidAuditLog
	if err := r.db.Where("bid_id = ?", bidID).Order("timestamp ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("audit logs for bid %s: %w", bidID, err)
	}
	return out, nil
}
