package models

import "time"

// ItemStatus is the lifecycle state of an auction item.
type ItemStatus string

const (
	ItemPending   ItemStatus = "PENDING"   // waiting for admin approval
	ItemApproved  ItemStatus = "APPROVED"  // approved by admin
	ItemRejected  ItemStatus = "REJECTED"  // rejected by admin
	ItemUpcoming  ItemStatus = "UPCOMING"  // approved but auction hasn't started
	ItemActive    ItemStatus = "ACTIVE"    // auction in progress
	ItemSold      ItemStatus = "SOLD"      // successfully sold
	ItemExpired   ItemStatus = "EXPIRED"   // auction ended without buyer
	ItemCancelled ItemStatus = "CANCELLED" // cancelled before start
)

// BidStatus is the state of a single bid.
type BidStatus string

const (
	BidPending   BidStatus = "PENDING"
	BidAccepted  BidStatus = "ACCEPTED"
	BidOutbid    BidStatus = "OUTBID"
	BidWon       BidStatus = "WON"
	BidLost      BidStatus = "LOST"
	BidCancelled BidStatus = "CANCELLED"
)

// ProxyBidStatus is the state of a standing proxy bid.
type ProxyBidStatus string

const (
	ProxyActive    ProxyBidStatus = "ACTIVE"
	ProxyExhausted ProxyBidStatus = "EXHAUSTED" // ceiling reached
	ProxyOutbid    ProxyBidStatus = "OUTBID"
	ProxyWon       ProxyBidStatus = "WON"
	ProxyCancelled ProxyBidStatus = "CANCELLED"
)

// AuditAction classifies audit trail entries.
type AuditAction string

const (
	ActionBidPlaced     AuditAction = "BID_PLACED"
	ActionBidOutbid     AuditAction = "BID_OUTBID"
	ActionBidWon        AuditAction = "BID_WON"
	ActionBidCancelled  AuditAction = "BID_CANCELLED"
	ActionProxyExecuted AuditAction = "PROXY_BID_EXECUTED"
)

// User represents a participant in the auction
type User struct {
	UserID   string `json:"user_id" gorm:"primaryKey;column:user_id"`
	Username string `json:"username" gorm:"column:username"`
}

// Item represents an auction lot. AuctionEndDate only ever moves forward,
// through recorded anti-snipe extensions; OriginalEndDate preserves the
// schedule as listed.
type Item struct {
	ItemID           string  `json:"item_id" gorm:"primaryKey;column:item_id"`
	Title            string  `json:"title" gorm:"column:title"`
	Description      string  `json:"description" gorm:"column:description"`
	SellerID         string  `json:"seller_id" gorm:"column:seller_id;index"`
	StartingPrice    float64 `json:"starting_price" gorm:"column:starting_price"`
	CurrentBidPrice  float64 `json:"current_bid_price" gorm:"column:current_bid_price"`
	MinIncreasePrice float64 `json:"min_increase_price" gorm:"column:min_increase_price"`
	ReservePrice     float64 `json:"reserve_price" gorm:"column:reserve_price"`
	ReserveMet       bool    `json:"reserve_met" gorm:"column:reserve_met"`

	AuctionStartDate time.Time `json:"auction_start_date" gorm:"column:auction_start_date;index"`
	AuctionEndDate   time.Time `json:"auction_end_date" gorm:"column:auction_end_date;index"`
	OriginalEndDate  time.Time `json:"original_end_date" gorm:"column:original_end_date"`

	AntiSnipeThresholdMinutes int `json:"anti_snipe_threshold_minutes" gorm:"column:anti_snipe_threshold_minutes;default:2"`
	AntiSnipeExtensionMinutes int `json:"anti_snipe_extension_minutes" gorm:"column:anti_snipe_extension_minutes;default:5"`
	MaxExtensions             int `json:"max_extensions" gorm:"column:max_extensions;default:3"`
	CurrentExtensions         int `json:"current_extensions" gorm:"column:current_extensions;default:0"`

	Status ItemStatus `json:"status" gorm:"column:status;index"`
}

// CurrentPrice returns the price the next bid is validated against: the
// current highest bid, or the starting price before any bids.
func (i Item) CurrentPrice() float64 {
	if i.CurrentBidPrice > 0 {
		return i.CurrentBidPrice
	}
	return i.StartingPrice
}

// Bid represents a user's bid on an item. At most one bid per item carries
// HighestBid=true at any instant.
type Bid struct {
	BidID      string    `json:"bid_id" gorm:"primaryKey;column:bid_id"`
	ItemID     string    `json:"item_id" gorm:"column:item_id;index"`
	UserID     string    `json:"user_id" gorm:"column:user_id;index"`
	Amount     float64   `json:"amount" gorm:"column:amount"`
	Status     BidStatus `json:"status" gorm:"column:status;index"`
	HighestBid bool      `json:"highest_bid" gorm:"column:highest_bid"`
	ProxyBid   bool      `json:"proxy_bid" gorm:"column:proxy_bid"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at;index"`
}

// ProxyBid is a standing authorization to bid on a user's behalf up to
// MaxAmount. CurrentAmount never exceeds MaxAmount; reaching it makes the
// proxy EXHAUSTED.
type ProxyBid struct {
	ProxyBidID      string         `json:"proxy_bid_id" gorm:"primaryKey;column:proxy_bid_id"`
	ItemID          string         `json:"item_id" gorm:"column:item_id;index"`
	UserID          string         `json:"user_id" gorm:"column:user_id;index"`
	MaxAmount       float64        `json:"max_amount" gorm:"column:max_amount"`
	CurrentAmount   float64        `json:"current_amount" gorm:"column:current_amount"`
	IncrementAmount float64        `json:"increment_amount" gorm:"column:increment_amount"`
	Status          ProxyBidStatus `json:"status" gorm:"column:status;index"`
	Winning         bool           `json:"winning" gorm:"column:winning"`
	CreatedAt       time.Time      `json:"created_at" gorm:"column:created_at"`
	LastBidDate     time.Time      `json:"last_bid_date" gorm:"column:last_bid_date"`
}

// BidAuditLog is one immutable row of the tamper-evident audit trail.
// ValidationHash covers the business fields; recomputing it over a stored row
// must reproduce the stored value.
type BidAuditLog struct {
	AuditID        string      `json:"audit_id" gorm:"primaryKey;column:audit_id"`
	BidID          string      `json:"bid_id" gorm:"column:bid_id;index"`
	ItemID         string      `json:"item_id" gorm:"column:item_id;index"`
	UserID         string      `json:"user_id" gorm:"column:user_id"`
	Amount         float64     `json:"amount" gorm:"column:amount"`
	PreviousAmount float64     `json:"previous_amount" gorm:"column:previous_amount"`
	Action         AuditAction `json:"action" gorm:"column:action"`
	IPAddress      string      `json:"ip_address" gorm:"column:ip_address"`
	ProxyBid       bool        `json:"proxy_bid" gorm:"column:proxy_bid"`
	Timestamp      time.Time   `json:"timestamp" gorm:"column:timestamp;index"`
	ValidationHash string      `json:"validation_hash" gorm:"column:validation_hash"`
}
