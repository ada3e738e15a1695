package cache

import "time"

// Key prefixes and TTLs shared by the admission path and the proxy engine.
// The current-bid entry is refreshed on every ledger write so readers see the
// newest accepted amount without touching the database.
const (
	CurrentBidTTL   = 24 * time.Hour
	ItemSnapshotTTL = 30 * time.Minute
)

// CurrentBidKey returns the cache key holding an item's current bid price.
func CurrentBidKey(itemID string) string { return "current_bid:" + itemID }

// ItemSnapshotKey returns the cache key holding an item's JSON snapshot.
func ItemSnapshotKey(itemID string) string { return "item:" + itemID }
