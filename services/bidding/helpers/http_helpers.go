package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"
	"auction-engine/utils"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrItemNotFound):
		return http.StatusNotFound, "item not found"
	case errors.Is(err, auctionerrors.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, auctionerrors.ErrProxyBidNotFound):
		return http.StatusNotFound, "proxy bid not found"
	case errors.Is(err, auctionerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, auctionerrors.ErrProxyBidInvalid):
		return http.StatusBadRequest, "invalid proxy bid"
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusConflict, "bid amount too low"
	case errors.Is(err, auctionerrors.ErrAuctionNotActive):
		return http.StatusConflict, "auction is not active"
	case errors.Is(err, auctionerrors.ErrLockContention):
		return http.StatusConflict, "another bid is being processed, please retry"
	case errors.Is(err, auctionerrors.ErrRateLimited):
		return http.StatusTooManyRequests, "bid rate limit exceeded"
	case errors.Is(err, auctionerrors.ErrSelfBidding):
		return http.StatusForbidden, "sellers cannot bid on their own items"
	case errors.Is(err, auctionerrors.ErrSuspiciousActivity):
		return http.StatusForbidden, "suspicious bidding pattern detected"
	case errors.Is(err, auctionerrors.ErrNoBids):
		return http.StatusOK, "no bids found for item"
	case errors.Is(err, auctionerrors.ErrUserNoBids):
		return http.StatusOK, "no items found for user"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// ToBidResponse converts a bid to its transport shape.
func ToBidResponse(bid model.Bid) BidResponse {
	return BidResponse{
		BidID:     bid.BidID,
		ItemID:    bid.ItemID,
		UserID:    bid.UserID,
		Amount:    bid.Amount,
		Status:    string(bid.Status),
		ProxyBid:  bid.ProxyBid,
		CreatedAt: bid.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ToProxyBidResponse converts a proxy bid to its transport shape.
func ToProxyBidResponse(pb model.ProxyBid) ProxyBidResponse {
	return ProxyBidResponse{
		ProxyBidID:    pb.ProxyBidID,
		ItemID:        pb.ItemID,
		UserID:        pb.UserID,
		MaxAmount:     pb.MaxAmount,
		CurrentAmount: pb.CurrentAmount,
		Status:        string(pb.Status),
		Winning:       pb.Winning,
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
