// Package increment implements the tiered minimum-increment schedule applied
// after every bid.
package increment

// MinIncrement returns the minimum bid increment for the given current price.
// Tiers:
//
//	<= 49.99        -> 1.00
//	50.00-199.99    -> 5.00
//	200.00-999.99   -> 10.00
//	1000.00-4999.99 -> 50.00
//	> 4999.99       -> 100.00
//
// Non-positive prices fall into the lowest tier.
func MinIncrement(currentPrice float64) float64 {
	switch {
	case currentPrice <= 49.99:
		return 1.00
	case currentPrice <= 199.99:
		return 5.00
	case currentPrice <= 999.99:
		return 10.00
	case currentPrice <= 4999.99:
		return 50.00
	default:
		return 100.00
	}
}

// MinimumBid returns the lowest amount a new bid must reach against the given
// current price.
func MinimumBid(currentPrice float64) float64 {
	return currentPrice + MinIncrement(currentPrice)
}

// IsValidBidAmount reports whether amount meets the minimum increment
// requirement over currentPrice.
func IsValidBidAmount(currentPrice, amount float64) bool {
	return amount >= MinimumBid(currentPrice)
}
