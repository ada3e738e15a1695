package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"
	"auction-engine/services/bidding/helpers"
	"auction-engine/utils"
)

//go:generate mockgen -source=bidding_handler.go -destination=mock_bidding_handler.go -package=handler

type BiddingServiceInterface interface {
	PlaceBid(itemID, userID string, amount float64, ipAddress string) (model.Bid, error)
	PlaceBidFast(itemID, userID string, amount float64, ipAddress string) (model.Bid, error)
	CreateItem(title, description, sellerID string, startingPrice, reservePrice float64, start, end time.Time) (model.Item, error)
	GetBidsForItem(itemID string) ([]model.Bid, error)
	GetWinningBid(itemID string) (model.Bid, error)
	GetItemsForUser(userID string) ([]model.Item, error)
	GetActiveItems() ([]model.Item, error)
}

type ProxyServiceInterface interface {
	CreateOrUpdateProxyBid(userID, itemID string, maxAmount float64) (model.ProxyBid, error)
	CancelProxyBid(proxyBidID, userID string) error
	ProxyBidsForUser(userID string) ([]model.ProxyBid, error)
}

type BiddingHandler struct {
	service  BiddingServiceInterface
	proxies  ProxyServiceInterface
	twoPhase bool
}

// NewBiddingHandler creates the HTTP handler set. With twoPhase set, bid
// placement answers from the fast path with a provisional bid id.
func NewBiddingHandler(service BiddingServiceInterface, proxies ProxyServiceInterface, twoPhase bool) *BiddingHandler {
	return &BiddingHandler{service: service, proxies: proxies, twoPhase: twoPhase}
}

// RecordBidHandler handles POST /bids
func (h *BiddingHandler) RecordBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RecordBidHandler", err)
		return
	}

	placeBid := h.service.PlaceBid
	if h.twoPhase {
		placeBid = h.service.PlaceBidFast
	}

	bid, err := placeBid(req.ItemID, req.UserID, req.Amount, c.ClientIP())
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("RecordBidHandler: failed to record bid", map[string]any{
			"handler": "RecordBidHandler",
			"item_id": req.ItemID,
			"user_id": req.UserID,
			"error":   err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.ToBidResponse(bid), "bid recorded successfully")
	helpers.LogSuccess("RecordBidHandler", "bid recorded successfully", map[string]any{
		"bid_id":  bid.BidID,
		"item_id": bid.ItemID,
		"user_id": req.UserID,
		"amount":  bid.Amount,
	})
}

// CreateItemHandler handles POST /items
func (h *BiddingHandler) CreateItemHandler(c *gin.Context) {
	var req helpers.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateItemHandler", err)
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		helpers.HandleBindError(c, "CreateItemHandler", fmt.Errorf("start_date: %w", err))
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		helpers.HandleBindError(c, "CreateItemHandler", fmt.Errorf("end_date: %w", err))
		return
	}

	item, err := h.service.CreateItem(req.Title, req.Description, req.SellerID, req.StartingPrice, req.ReservePrice, start, end)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("CreateItemHandler: failed to create item", map[string]any{
			"seller_id": req.SellerID,
			"error":     err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, item, "item created successfully")
	helpers.LogSuccess("CreateItemHandler", "item created successfully", map[string]any{
		"item_id":   item.ItemID,
		"seller_id": item.SellerID,
	})
}

// CreateProxyBidHandler handles POST /proxy-bids
func (h *BiddingHandler) CreateProxyBidHandler(c *gin.Context) {
	var req helpers.CreateProxyBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateProxyBidHandler", err)
		return
	}

	pb, err := h.proxies.CreateOrUpdateProxyBid(req.UserID, req.ItemID, req.MaxAmount)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("CreateProxyBidHandler: failed to create proxy bid", map[string]any{
			"item_id": req.ItemID,
			"user_id": req.UserID,
			"error":   err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.ToProxyBidResponse(pb), "proxy bid registered successfully")
	helpers.LogSuccess("CreateProxyBidHandler", "proxy bid registered successfully", map[string]any{
		"proxy_bid_id": pb.ProxyBidID,
		"item_id":      pb.ItemID,
		"user_id":      pb.UserID,
	})
}

// CancelProxyBidHandler handles DELETE /proxy-bids/:proxy_bid_id
func (h *BiddingHandler) CancelProxyBidHandler(c *gin.Context) {
	proxyBidID := c.Param("proxy_bid_id")
	userID := c.Query("user_id")
	if userID == "" {
		helpers.HandleBindError(c, "CancelProxyBidHandler", errors.New("user_id query parameter is required"))
		return
	}

	if err := h.proxies.CancelProxyBid(proxyBidID, userID); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("CancelProxyBidHandler: cancel failed", map[string]any{
			"proxy_bid_id": proxyBidID,
			"user_id":      userID,
			"error":        err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"proxy_bid_id": proxyBidID}, "proxy bid cancelled successfully")
	helpers.LogSuccess("CancelProxyBidHandler", "proxy bid cancelled successfully", map[string]any{
		"proxy_bid_id": proxyBidID,
		"user_id":      userID,
	})
}

// GetUserProxyBidsHandler handles GET /users/:user_id/proxy-bids
func (h *BiddingHandler) GetUserProxyBidsHandler(c *gin.Context) {
	userID := c.Param("user_id")
	pbs, err := h.proxies.ProxyBidsForUser(userID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetUserProxyBidsHandler: error retrieving proxy bids", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}

	resp := make([]helpers.ProxyBidResponse, 0, len(pbs))
	for _, pb := range pbs {
		resp = append(resp, helpers.ToProxyBidResponse(pb))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "proxy bids retrieved successfully")
	helpers.LogSuccess("GetUserProxyBidsHandler", "proxy bids retrieved successfully", map[string]any{
		"user_id": userID,
		"count":   len(resp),
	})
}

// GetBidsByItemHandler handles GET /items/:item_id/bids
func (h *BiddingHandler) GetBidsByItemHandler(c *gin.Context) {
	itemID := c.Param("item_id")
	bids, err := h.service.GetBidsForItem(itemID)
	if err != nil && !errors.Is(err, auctionerrors.ErrNoBids) {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetBidsByItemHandler: error retrieving bids", map[string]any{"item_id": itemID, "error": err.Error()})
		return
	}

	if bids == nil {
		bids = []model.Bid{}
	}

	utils.JSONResponse(c, http.StatusOK, bids, "bids retrieved successfully")
	helpers.LogSuccess("GetBidsByItemHandler", "bids retrieved successfully", map[string]any{
		"item_id": itemID,
		"count":   len(bids),
	})
}

// GetWinningBidHandler handles GET /items/:item_id/winning
func (h *BiddingHandler) GetWinningBidHandler(c *gin.Context) {
	itemID := c.Param("item_id")
	bid, err := h.service.GetWinningBid(itemID)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrNoBids) {
			utils.JSONError(c, http.StatusNotFound, err, "no winning bid found")
			utils.Info("GetWinningBidHandler: no winning bid found", map[string]any{"item_id": itemID})
			return
		}
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetWinningBidHandler: winning bid error", map[string]any{"item_id": itemID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToBidResponse(bid), "winning bid retrieved successfully")
	helpers.LogSuccess("GetWinningBidHandler", "winning bid retrieved successfully", map[string]any{
		"bid_id":  bid.BidID,
		"item_id": bid.ItemID,
		"user_id": bid.UserID,
		"amount":  bid.Amount,
	})
}

// GetItemsByUserHandler handles GET /users/:user_id/items
func (h *BiddingHandler) GetItemsByUserHandler(c *gin.Context) {
	userID := c.Param("user_id")
	items, err := h.service.GetItemsForUser(userID)
	if err != nil && !errors.Is(err, auctionerrors.ErrUserNoBids) {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetItemsByUserHandler: error retrieving items", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}

	if items == nil {
		items = []model.Item{}
	}

	utils.JSONResponse(c, http.StatusOK, items, "items retrieved successfully")
	helpers.LogSuccess("GetItemsByUserHandler", "items retrieved successfully", map[string]any{
		"user_id":     userID,
		"items_count": len(items),
	})
}

// GetActiveItemsHandler handles GET /items
func (h *BiddingHandler) GetActiveItemsHandler(c *gin.Context) {
	items, err := h.service.GetActiveItems()
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetActiveItemsHandler: error retrieving active items", map[string]any{"error": err.Error()})
		return
	}

	if items == nil {
		items = []model.Item{}
	}

	utils.JSONResponse(c, http.StatusOK, items, "active items retrieved successfully")
	helpers.LogSuccess("GetActiveItemsHandler", "active items retrieved successfully", map[string]any{
		"items_count": len(items),
	})
}
