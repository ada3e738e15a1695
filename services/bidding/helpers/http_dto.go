package helpers

// Request/Response DTOs
type PlaceBidRequest struct {
	ItemID string  `json:"item_id" binding:"required"`
	UserID string  `json:"user_id" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

type BidResponse struct {
	BidID     string  `json:"bid_id"`
	ItemID    string  `json:"item_id"`
	UserID    string  `json:"user_id"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
	ProxyBid  bool    `json:"proxy_bid"`
	CreatedAt string  `json:"created_at"`
}

type CreateProxyBidRequest struct {
	ItemID    string  `json:"item_id" binding:"required"`
	UserID    string  `json:"user_id" binding:"required"`
	MaxAmount float64 `json:"max_amount" binding:"required,gt=0"`
}

type ProxyBidResponse struct {
	ProxyBidID    string  `json:"proxy_bid_id"`
	ItemID        string  `json:"item_id"`
	UserID        string  `json:"user_id"`
	MaxAmount     float64 `json:"max_amount"`
	CurrentAmount float64 `json:"current_amount"`
	Status        string  `json:"status"`
	Winning       bool    `json:"winning"`
}

type CreateItemRequest struct {
	Title         string  `json:"title" binding:"required"`
	Description   string  `json:"description"`
	SellerID      string  `json:"seller_id" binding:"required"`
	StartingPrice float64 `json:"starting_price" binding:"required,gt=0"`
	ReservePrice  float64 `json:"reserve_price"`
	StartDate     string  `json:"start_date" binding:"required"` // RFC 3339
	EndDate       string  `json:"end_date" binding:"required"`   // RFC 3339
}
