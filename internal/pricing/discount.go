package pricing

import (
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// Tier applies Rate to totals strictly greater than Threshold.
type Tier struct {
	Threshold decimal.Decimal `json:"threshold"`
	Rate      decimal.Decimal `json:"rate"`
}

// tiers are ordered by descending threshold, first match wins
var tiers = []Tier{
	{Threshold: decimal.NewFromInt(200), Rate: decimal.RequireFromString("0.15")},
	{Threshold: decimal.NewFromInt(100), Rate: decimal.RequireFromString("0.10")},
	{Threshold: decimal.NewFromInt(50), Rate: decimal.RequireFromString("0.05")},
}

// Tiers returns a copy of the discount table.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}

// RateFor returns the discount rate for total, zero when no tier matches.
func RateFor(total decimal.Decimal) decimal.Decimal {
	for _, tier := range tiers {
		if total.GreaterThan(tier.Threshold) {
			return tier.Rate
		}
	}
	return decimal.Zero
}

// Calculate maps a cart total to its discount and final total.
// FinalTotal is always Total - Discount.
func Calculate(total decimal.Decimal) domain.DiscountResult {
	rate := RateFor(total)
	discount := total.Mul(rate)
	return domain.DiscountResult{
		Total:      total,
		Rate:       rate,
		Discount:   discount,
		FinalTotal: total.Sub(discount),
	}
}
