package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a new unique identifier for bids, items, proxy bids
// and lock fencing tokens.
func GenerateID() string {
	return uuid.New().String()
}
