package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"

	"github.com/stretchr/testify/require"
)

// Helper to create a new Item
func newItem(itemID string, startingPrice float64, status model.ItemStatus) model.Item {
	now := time.Now().UTC()
	return model.Item{
		ItemID:           itemID,
		Title:            itemID + " title",
		Description:      fmt.Sprintf("%s description", itemID),
		SellerID:         "seller1",
		StartingPrice:    startingPrice,
		AuctionStartDate: now.Add(-time.Hour),
		AuctionEndDate:   now.Add(time.Hour),
		OriginalEndDate:  now.Add(time.Hour),
		Status:           status,
	}
}

// Helper to create a new Bid
func newBid(bidID, itemID, userID string, amount float64, createdAt time.Time) model.Bid {
	return model.Bid{
		BidID:     bidID,
		ItemID:    itemID,
		UserID:    userID,
		Amount:    amount,
		Status:    model.BidAccepted,
		CreatedAt: createdAt,
	}
}

func TestMemoryRepo_CreateBid(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	repo.AddItem(newItem("item1", 50, model.ItemActive))

	tests := []struct {
		name      string
		bid       model.Bid
		wantError bool
	}{
		{name: "valid_bid", bid: newBid("bid1", "item1", "user1", 100, time.Now()), wantError: false},
		{name: "item_not_found", bid: newBid("bid2", "itemX", "user1", 50, time.Now()), wantError: true},
		{name: "second_bid_same_user", bid: newBid("bid3", "item1", "user1", 110, time.Now()), wantError: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := repo.CreateBid(tc.bid)
			if tc.wantError {
				require.Error(t, err)
				require.True(t, errors.Is(err, auctionerrors.ErrItemNotFound))
			} else {
				require.NoError(t, err)
				bids, err := repo.GetBidsByItem(tc.bid.ItemID)
				require.NoError(t, err)
				require.Contains(t, bids, tc.bid)
			}
		})
	}
}

func TestMemoryRepo_GetBidsByItem_OrderedByAmountDesc(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	repo.AddItem(newItem("item1", 50, model.ItemActive))

	now := time.Now().UTC()
	require.NoError(t, repo.CreateBid(newBid("bid1", "item1", "user1", 100, now)))
	require.NoError(t, repo.CreateBid(newBid("bid2", "item1", "user2", 300, now.Add(time.Second))))
	require.NoError(t, repo.CreateBid(newBid("bid3", "item1", "user3", 200, now.Add(2*time.Second))))

	bids, err := repo.GetBidsByItem("item1")
	require.NoError(t, err)
	require.Len(t, bids, 3)
	require.Equal(t, []float64{300, 200, 100}, []float64{bids[0].Amount, bids[1].Amount, bids[2].Amount})

	_, err = repo.GetBidsByItem("itemX")
	require.True(t, errors.Is(err, auctionerrors.ErrNoBids))
}

func TestMemoryRepo_GetHighestBid_TieBreaksEarlier(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	repo.AddItem(newItem("item1", 50, model.ItemActive))

	now := time.Now().UTC()
	require.NoError(t, repo.CreateBid(newBid("bid1", "item1", "user1", 200, now)))
	require.NoError(t, repo.CreateBid(newBid("bid2", "item1", "user2", 200, now.Add(time.Second))))

	highest, err := repo.GetHighestBid("item1")
	require.NoError(t, err)
	require.Equal(t, "bid1", highest.BidID)
}

func TestMemoryRepo_BulkStatusUpdates(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	repo.AddItem(newItem("item1", 50, model.ItemActive))

	now := time.Now().UTC()
	first := newBid("bid1", "item1", "user1", 100, now)
	first.HighestBid = true
	require.NoError(t, repo.CreateBid(first))

	require.NoError(t, repo.ResetHighestBidFlags("item1"))
	require.NoError(t, repo.MarkAcceptedBidsOutbid("item1"))

	second := newBid("bid2", "item1", "user2", 150, now.Add(time.Second))
	second.HighestBid = true
	require.NoError(t, repo.CreateBid(second))

	bids, err := repo.GetBidsByItem("item1")
	require.NoError(t, err)

	var highestCount int
	for _, b := range bids {
		if b.HighestBid {
			highestCount++
			require.Equal(t, "bid2", b.BidID)
		}
		if b.BidID == "bid1" {
			require.Equal(t, model.BidOutbid, b.Status)
		}
	}
	require.Equal(t, 1, highestCount, "exactly one bid may hold the highest flag")
}

func TestMemoryRepo_ItemsByStatusAndDate(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	now := time.Now().UTC()

	pendingStarted := newItem("item1", 50, model.ItemPending)
	pendingStarted.AuctionStartDate = now.Add(-time.Minute)
	repo.AddItem(pendingStarted)

	pendingFuture := newItem("item2", 50, model.ItemPending)
	pendingFuture.AuctionStartDate = now.Add(time.Hour)
	repo.AddItem(pendingFuture)

	activeEnded := newItem("item3", 50, model.ItemActive)
	activeEnded.AuctionEndDate = now.Add(-time.Minute)
	repo.AddItem(activeEnded)

	started, err := repo.ItemsByStatusStartedBefore(model.ItemPending, now)
	require.NoError(t, err)
	require.Len(t, started, 1)
	require.Equal(t, "item1", started[0].ItemID)

	ended, err := repo.ItemsByStatusEndedBefore(model.ItemActive, now)
	require.NoError(t, err)
	require.Len(t, ended, 1)
	require.Equal(t, "item3", ended[0].ItemID)
}

func TestMemoryRepo_ProxyBids(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	now := time.Now().UTC()

	pbA := model.ProxyBid{ProxyBidID: "pb1", ItemID: "item1", UserID: "userA", MaxAmount: 500, Status: model.ProxyActive, CreatedAt: now}
	pbB := model.ProxyBid{ProxyBidID: "pb2", ItemID: "item1", UserID: "userB", MaxAmount: 300, Status: model.ProxyActive, CreatedAt: now.Add(time.Second)}
	pbC := model.ProxyBid{ProxyBidID: "pb3", ItemID: "item1", UserID: "userC", MaxAmount: 200, Status: model.ProxyCancelled, CreatedAt: now.Add(2 * time.Second)}

	for _, pb := range []model.ProxyBid{pbA, pbB, pbC} {
		require.NoError(t, repo.SaveProxyBid(pb))
	}

	active, err := repo.ActiveProxyBidsByItem("item1")
	require.NoError(t, err)
	require.Len(t, active, 2)
	require.Equal(t, "pb1", active[0].ProxyBidID, "ordered by creation time")

	got, err := repo.ActiveProxyBidByUserAndItem("userB", "item1")
	require.NoError(t, err)
	require.Equal(t, "pb2", got.ProxyBidID)

	_, err = repo.ActiveProxyBidByUserAndItem("userC", "item1")
	require.True(t, errors.Is(err, auctionerrors.ErrProxyBidNotFound), "cancelled proxy is not active")

	mine, err := repo.ProxyBidsByUser("userC")
	require.NoError(t, err)
	require.Len(t, mine, 1)
}

func TestMemoryRepo_AuditTrailAppendOnly(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()

	first := model.BidAuditLog{AuditID: "a1", BidID: "bid1", ItemID: "item1", Action: model.ActionBidPlaced, Timestamp: time.Now()}
	second := model.BidAuditLog{AuditID: "a2", BidID: "bid1", ItemID: "item1", Action: model.ActionBidOutbid, Timestamp: time.Now()}

	require.NoError(t, repo.AppendAuditLog(first))
	require.NoError(t, repo.AppendAuditLog(second))

	logs, err := repo.AuditLogsByBid("bid1")
	require.NoError(t, err)
	require.Len(t, logs, 2)
	require.Equal(t, "a1", logs[0].AuditID)
	require.Equal(t, "a2", logs[1].AuditID)
}

func TestMemoryRepo_UpdateItem(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	item := newItem("item1", 50, model.ItemActive)
	repo.AddItem(item)

	item.CurrentBidPrice = 120
	item.Status = model.ItemSold
	require.NoError(t, repo.UpdateItem(item))

	got, err := repo.GetItem("item1")
	require.NoError(t, err)
	require.Equal(t, 120.0, got.CurrentBidPrice)
	require.Equal(t, model.ItemSold, got.Status)

	missing := newItem("itemX", 50, model.ItemActive)
	require.True(t, errors.Is(repo.UpdateItem(missing), auctionerrors.ErrItemNotFound))
}
