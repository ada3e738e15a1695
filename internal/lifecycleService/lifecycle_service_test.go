package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"auction-engine/internal/audit"
	"auction-engine/internal/cache"
	"auction-engine/internal/lock"
	model "auction-engine/internal/models"
	"auction-engine/internal/notify"
	proxybid "auction-engine/internal/proxyService"
	"auction-engine/internal/repository"
	"auction-engine/utils"
)

func newTestScheduler(t *testing.T) (*Scheduler, *repository.MemoryRepo, *cache.MemoryCache, *lock.Coordinator) {
	t.Helper()

	repo := repository.NewMemoryRepo()
	memCache := cache.NewMemoryCache()
	locks := lock.NewCoordinator(memCache, 10*time.Second)
	proxies := proxybid.NewEngine(repo, memCache, locks, audit.NewService(repo), notify.LogPublisher{})
	scheduler := NewScheduler(repo, proxies, locks, notify.LogPublisher{}, memCache, time.Minute)
	return scheduler, repo, memCache, locks
}

func item(itemID string, status model.ItemStatus, start, end time.Time) model.Item {
	return model.Item{
		ItemID:           itemID,
		Title:            "test item",
		SellerID:         "seller1",
		StartingPrice:    100,
		MinIncreasePrice: 10,
		AuctionStartDate: start,
		AuctionEndDate:   end,
		OriginalEndDate:  end,
		Status:           status,
	}
}

func addBid(t *testing.T, repo *repository.MemoryRepo, itemID, userID string, amount float64, highest bool) model.Bid {
	t.Helper()

	bid := model.Bid{
		BidID:      utils.GenerateID(),
		ItemID:     itemID,
		UserID:     userID,
		Amount:     amount,
		Status:     model.BidAccepted,
		HighestBid: highest,
		CreatedAt:  time.Now().UTC(),
	}
	require.NoError(t, repo.CreateBid(bid))
	return bid
}

// Pending items past their start go straight to ACTIVE; future ones wait in
// UPCOMING.
func TestScheduler_PendingItems(t *testing.T) {
	scheduler, repo, memCache, _ := newTestScheduler(t)
	now := time.Now().UTC()

	repo.AddItem(item("started", model.ItemPending, now.Add(-time.Hour), now.Add(time.Hour)))
	repo.AddItem(item("soon", model.ItemPending, now.Add(30*time.Minute), now.Add(3*time.Hour)))
	repo.AddItem(item("future", model.ItemPending, now.Add(2*time.Hour), now.Add(4*time.Hour)))

	scheduler.RunPass()

	started, err := repo.GetItem("started")
	require.NoError(t, err)
	require.Equal(t, model.ItemActive, started.Status)

	// The activated item's price cache is primed.
	cached, ok, err := memCache.Get(cache.CurrentBidKey("started"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "100", cached)

	soon, err := repo.GetItem("soon")
	require.NoError(t, err)
	require.Equal(t, model.ItemUpcoming, soon.Status)

	future, err := repo.GetItem("future")
	require.NoError(t, err)
	require.Equal(t, model.ItemPending, future.Status)
}

func TestScheduler_UpcomingToActive(t *testing.T) {
	scheduler, repo, _, _ := newTestScheduler(t)
	now := time.Now().UTC()

	repo.AddItem(item("due", model.ItemUpcoming, now.Add(-time.Minute), now.Add(time.Hour)))
	repo.AddItem(item("notyet", model.ItemUpcoming, now.Add(time.Hour), now.Add(2*time.Hour)))

	scheduler.RunPass()

	due, err := repo.GetItem("due")
	require.NoError(t, err)
	require.Equal(t, model.ItemActive, due.Status)

	notYet, err := repo.GetItem("notyet")
	require.NoError(t, err)
	require.Equal(t, model.ItemUpcoming, notYet.Status)
}

// An ended auction with bids settles: item SOLD at the winning amount, the
// winning bid WON, the rest LOST, and proxies resolved.
func TestScheduler_CloseWithWinner(t *testing.T) {
	scheduler, repo, _, _ := newTestScheduler(t)
	now := time.Now().UTC()

	repo.AddItem(item("item1", model.ItemActive, now.Add(-2*time.Hour), now.Add(-time.Minute)))
	losing := addBid(t, repo, "item1", "buyer1", 110, false)
	winning := addBid(t, repo, "item1", "buyer2", 120, true)

	require.NoError(t, repo.SaveProxyBid(model.ProxyBid{
		ProxyBidID: "pb1",
		ItemID:     "item1",
		UserID:     "buyer2",
		MaxAmount:  300,
		Status:     model.ProxyActive,
		CreatedAt:  now,
	}))

	scheduler.RunPass()

	got, err := repo.GetItem("item1")
	require.NoError(t, err)
	require.Equal(t, model.ItemSold, got.Status)
	require.Equal(t, 120.0, got.CurrentBidPrice)

	bids, err := repo.GetBidsByItem("item1")
	require.NoError(t, err)
	for _, b := range bids {
		switch b.BidID {
		case winning.BidID:
			require.Equal(t, model.BidWon, b.Status)
			require.True(t, b.HighestBid)
		case losing.BidID:
			require.Equal(t, model.BidLost, b.Status)
			require.False(t, b.HighestBid)
		}
	}

	pb, err := repo.GetProxyBid("pb1")
	require.NoError(t, err)
	require.Equal(t, model.ProxyWon, pb.Status)
}

func TestScheduler_CloseWithoutBids(t *testing.T) {
	scheduler, repo, _, _ := newTestScheduler(t)
	now := time.Now().UTC()

	repo.AddItem(item("item1", model.ItemActive, now.Add(-2*time.Hour), now.Add(-time.Minute)))

	scheduler.RunPass()

	got, err := repo.GetItem("item1")
	require.NoError(t, err)
	require.Equal(t, model.ItemExpired, got.Status)
}

// An ended item whose lock is held elsewhere is skipped and picked up on the
// next pass once the lock is free.
func TestScheduler_CloseWaitsForItemLock(t *testing.T) {
	scheduler, repo, _, locks := newTestScheduler(t)
	now := time.Now().UTC()

	repo.AddItem(item("item1", model.ItemActive, now.Add(-2*time.Hour), now.Add(-time.Minute)))
	addBid(t, repo, "item1", "buyer1", 150, true)

	token, err := locks.Acquire("item1")
	require.NoError(t, err)

	scheduler.RunPass()
	got, err := repo.GetItem("item1")
	require.NoError(t, err)
	require.Equal(t, model.ItemActive, got.Status)

	locks.Release("item1", token)

	scheduler.RunPass()
	got, err = repo.GetItem("item1")
	require.NoError(t, err)
	require.Equal(t, model.ItemSold, got.Status)
}

// Running the pass twice leaves the same state: closed items are not
// reprocessed and settled bids keep their statuses.
func TestScheduler_PassesAreIdempotent(t *testing.T) {
	scheduler, repo, _, _ := newTestScheduler(t)
	now := time.Now().UTC()

	repo.AddItem(item("sold", model.ItemActive, now.Add(-2*time.Hour), now.Add(-time.Minute)))
	addBid(t, repo, "sold", "buyer1", 150, true)
	repo.AddItem(item("expired", model.ItemActive, now.Add(-2*time.Hour), now.Add(-time.Minute)))
	repo.AddItem(item("starting", model.ItemPending, now.Add(-time.Hour), now.Add(time.Hour)))

	scheduler.RunPass()

	snapshot := func() map[string]model.ItemStatus {
		out := make(map[string]model.ItemStatus)
		for _, id := range []string{"sold", "expired", "starting"} {
			it, err := repo.GetItem(id)
			require.NoError(t, err)
			out[id] = it.Status
		}
		return out
	}
	first := snapshot()
	require.Equal(t, model.ItemSold, first["sold"])
	require.Equal(t, model.ItemExpired, first["expired"])
	require.Equal(t, model.ItemActive, first["starting"])

	scheduler.RunPass()
	require.Equal(t, first, snapshot())

	bids, err := repo.GetBidsByItem("sold")
	require.NoError(t, err)
	require.Equal(t, model.BidWon, bids[0].Status)
}

// Start runs an immediate pass; Stop halts the ticker.
func TestScheduler_StartStop(t *testing.T) {
	scheduler, repo, _, _ := newTestScheduler(t)
	now := time.Now().UTC()
	repo.AddItem(item("item1", model.ItemPending, now.Add(-time.Hour), now.Add(time.Hour)))

	scheduler.Start()
	require.Eventually(t, func() bool {
		it, err := repo.GetItem("item1")
		return err == nil && it.Status == model.ItemActive
	}, 2*time.Second, 10*time.Millisecond)

	scheduler.Stop()
}
