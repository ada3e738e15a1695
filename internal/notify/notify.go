// Package notify is the outbound notification boundary. The core publishes
// events to topics; the transport (websocket hub, message broker) is supplied
// from outside and delivery is best-effort and non-blocking. A failed or
// dropped notification never affects the authoritative bid state.
package notify

import (
	"time"

	"auction-engine/internal/metrics"
	model "auction-engine/internal/models"
	"auction-engine/internal/worker"
	"auction-engine/utils"
)

// Publisher is the pub/sub capability the core consumes.
type Publisher interface {
	Publish(topic string, payload any)
}

// Topic builders. One topic per item bid stream and per auction-end event,
// a global updates stream, and per-user private queues.
func ItemBidsTopic(itemID string) string { return "topic/item/" + itemID + "/bids" }

func ItemEndTopic(itemID string) string { return "topic/item/" + itemID + "/end" }

func UserNotificationsTopic(userID string) string { return "user/" + userID + "/queue/notifications" }

func UserProxyBidsTopic(userID string) string { return "user/" + userID + "/queue/proxy-bids" }

// AuctionUpdatesTopic is the global auction activity stream.
const AuctionUpdatesTopic = "topic/auctions/updates"

// BidUpdateEvent fans out after every accepted bid.
type BidUpdateEvent struct {
	BidID     string    `json:"bid_id"`
	ItemID    string    `json:"item_id"`
	UserID    string    `json:"user_id"`
	Amount    float64   `json:"amount"`
	ProxyBid  bool      `json:"proxy_bid"`
	BidTime   time.Time `json:"bid_time"`
	TotalBids int64     `json:"total_bids"`
}

// AuctionEndEvent fans out when the lifecycle closes an auction. WinnerID is
// empty when the item expired without bids.
type AuctionEndEvent struct {
	ItemID     string           `json:"item_id"`
	SellerID   string           `json:"seller_id"`
	WinnerID   string           `json:"winner_id,omitempty"`
	FinalPrice float64          `json:"final_price"`
	Status     model.ItemStatus `json:"status"`
	EndedAt    time.Time        `json:"ended_at"`
}

// ProxyBidEvent informs a user about their proxy bid's status changes.
type ProxyBidEvent struct {
	ProxyBidID    string               `json:"proxy_bid_id"`
	ItemID        string               `json:"item_id"`
	Status        model.ProxyBidStatus `json:"status"`
	CurrentAmount float64              `json:"current_amount"`
	MaxAmount     float64              `json:"max_amount"`
}

// LogPublisher is the default Publisher: it records every event in the
// structured log. Real transports replace it in main.
type LogPublisher struct{}

// Publish logs the event.
func (LogPublisher) Publish(topic string, payload any) {
	utils.Info("notification published", map[string]any{
		"topic":   topic,
		"payload": payload,
	})
}

// AsyncPublisher decouples publishers from the bidding hot path by fanning
// events out through a bounded worker pool. When the queue is full the event
// is dropped, not queued unbounded.
type AsyncPublisher struct {
	next Publisher
	pool *worker.Pool
}

// NewAsyncPublisher wraps next with a Discard pool sized by workers and
// queueSize.
func NewAsyncPublisher(next Publisher, workers, queueSize int) *AsyncPublisher {
	return &AsyncPublisher{
		next: next,
		pool: worker.NewPool("notifications", workers, queueSize, worker.Discard),
	}
}

// Publish hands the event to the pool. Drops are counted, never retried.
func (p *AsyncPublisher) Publish(topic string, payload any) {
	submitted := p.pool.Submit(func() {
		p.next.Publish(topic, payload)
	})
	metrics.SetWorkerQueueDepth("notifications", p.pool.QueueDepth())
	if !submitted {
		metrics.IncNotificationDropped()
		utils.Warn("notification dropped", map[string]any{"topic": topic})
	}
}

// Close drains the queue and stops the pool.
func (p *AsyncPublisher) Close() {
	p.pool.Stop()
}
