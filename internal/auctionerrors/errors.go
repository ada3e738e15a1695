package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrItemNotFound     = errors.New("item not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrNoBids           = errors.New("no bids found for item")
	ErrUserNoBids       = errors.New("user has not placed any bids")
	ErrProxyBidNotFound = errors.New("proxy bid not found")
)

// Admission-gate errors. Lock contention and rate limiting are retryable;
// the rest are terminal for the attempted amount.
var (
	ErrLockContention     = errors.New("another bid is being processed")
	ErrRateLimited        = errors.New("bid rate limit exceeded")
	ErrAuctionNotActive   = errors.New("auction is not active")
	ErrBidTooLow          = errors.New("bid amount too low")
	ErrSelfBidding        = errors.New("sellers cannot bid on their own items")
	ErrSuspiciousActivity = errors.New("suspicious bidding pattern detected")
)

// Business logic errors
var (
	ErrInvalidBid      = errors.New("invalid bid")
	ErrProxyBidInvalid = errors.New("invalid proxy bid")
)
