// Package audit maintains the tamper-evident trail of bid actions. Entries
// are append-only; each carries a SHA-256 validation hash over its business
// fields so post-hoc edits are detectable by re-derivation. Audit writes are
// best-effort and never fail the business operation that triggered them.
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	model "auction-engine/internal/models"
	"auction-engine/internal/repository"
	"auction-engine/utils"
)

// Service appends audit entries to durable storage.
type Service struct {
	db repository.AuctionDB
}

// NewService creates an audit Service.
func NewService(db repository.AuctionDB) *Service {
	return &Service{db: db}
}

// LogAction appends one audit entry for a bid action. Failures are logged and
// swallowed.
func (s *Service) LogAction(bid model.Bid, action model.AuditAction, ipAddress string, previousAmount float64) {
	entry := model.BidAuditLog{
		AuditID:        utils.GenerateID(),
		BidID:          bid.BidID,
		ItemID:         bid.ItemID,
		UserID:         bid.UserID,
		Amount:         bid.Amount,
		PreviousAmount: previousAmount,
		Action:         action,
		IPAddress:      ipAddress,
		ProxyBid:       bid.ProxyBid,
		Timestamp:      time.Now().UTC(),
	}
	entry.ValidationHash = ValidationHash(entry)

	if err := s.db.AppendAuditLog(entry); err != nil {
		utils.Error("failed to append audit log", map[string]any{
			"bid_id":  bid.BidID,
			"item_id": bid.ItemID,
			"action":  string(action),
			"error":   err.Error(),
		})
		return
	}

	utils.Info("audit log created", map[string]any{
		"bid_id": bid.BidID,
		"action": string(action),
	})
}

// Verify recomputes the entry's validation hash and reports whether it
// matches the stored value.
func (s *Service) Verify(entry model.BidAuditLog) bool {
	return ValidationHash(entry) == entry.ValidationHash
}

// ValidationHash derives the SHA-256 integrity hash over the entry's stable
// business fields. The field set and encoding must never change, or existing
// trails become unverifiable.
func ValidationHash(entry model.BidAuditLog) string {
	data := strings.Join([]string{
		entry.BidID,
		entry.ItemID,
		entry.UserID,
		strconv.FormatFloat(entry.Amount, 'f', 4, 64),
		entry.Timestamp.UTC().Format(time.RFC3339Nano),
		string(entry.Action),
	}, "-")

	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}
