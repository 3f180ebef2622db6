package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountResult is derived from a cart total and never stored.
type DiscountResult struct {
	Total      decimal.Decimal `json:"total"`
	Rate       decimal.Decimal `json:"rate"`
	Discount   decimal.Decimal `json:"discount"`
	FinalTotal decimal.Decimal `json:"final_total"`
}

// Order is the receipt captured when the cart is confirmed.
type Order struct {
	ID          string         `json:"order_id"`
	Lines       []CartLine     `json:"lines"`
	Pricing     DiscountResult `json:"pricing"`
	ConfirmedAt time.Time      `json:"confirmed_at"`
}
