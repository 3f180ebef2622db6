package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
	Image string          `json:"image"`
}

// InStock reports whether at least one unit can still be added to a cart.
func (p Product) InStock() bool {
	return p.Stock > 0
}
