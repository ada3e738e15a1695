// Package metrics exposes Prometheus counters and gauges for the auction
// engine. Everything is registered in init() and served by the HTTP router
// at /metrics (Prometheus text exposition format).
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	bidsAccepted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "auction_bids_accepted_total",
			Help: "Bids admitted to the ledger",
		},
	)

	bidsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auction_bids_rejected_total",
			Help: "Bids rejected, split by reason",
		},
		[]string{"reason"}, // reason: rate_limited|lock_contention|bid_too_low|auction_not_active|self_bidding|suspicious|invalid
	)

	proxyExecutions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "auction_proxy_executions_total",
			Help: "Automatic bids placed by the proxy engine",
		},
	)

	lifecycleTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auction_lifecycle_transitions_total",
			Help: "Item status transitions applied by the scheduler",
		},
		[]string{"to"}, // to: UPCOMING|ACTIVE|SOLD|EXPIRED
	)

	antiSnipeExtensions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "auction_anti_snipe_extensions_total",
			Help: "Auction end extensions triggered by late bids",
		},
	)

	workerQueueDepth = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "auction_worker_queue_depth",
			Help: "Pending tasks per worker pool",
		},
		[]string{"pool"},
	)

	notificationsDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "auction_notifications_dropped_total",
			Help: "Notification tasks discarded because the pool queue was full",
		},
	)
)

func init() {
	prometheus.MustRegister(bidsAccepted, bidsRejected)
	prometheus.MustRegister(proxyExecutions, lifecycleTransitions, antiSnipeExtensions)
	prometheus.MustRegister(workerQueueDepth, notificationsDropped)
}

func IncBidAccepted()              { bidsAccepted.Inc() }
func IncBidRejected(reason string) { bidsRejected.WithLabelValues(reason).Inc() }

func IncProxyExecution() { proxyExecutions.Inc() }

func IncLifecycleTransition(to string) { lifecycleTransitions.WithLabelValues(to).Inc() }

func IncAntiSnipeExtension() { antiSnipeExtensions.Inc() }

func SetWorkerQueueDepth(pool string, depth int) {
	workerQueueDepth.WithLabelValues(pool).Set(float64(depth))
}

func IncNotificationDropped() { notificationsDropped.Inc() }
