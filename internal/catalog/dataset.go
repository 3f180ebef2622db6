package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

//go:embed data/products.json
var productsJSON []byte

// Dataset returns the catalog shipped with the binary.
func Dataset() ([]domain.Product, error) {
	return ParseProducts(productsJSON)
}

// ParseProducts decodes an ordered product list and rejects records
// that would break the catalog invariants.
func ParseProducts(data []byte) ([]domain.Product, error) {
	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("unmarshal products failed: %w", err)
	}

	seen := make(map[int64]struct{}, len(products))
	for _, p := range products {
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d: %w", p.ID, ErrInvalidProduct)
		}
		seen[p.ID] = struct{}{}
		if p.Stock < 0 || p.Price.IsNegative() {
			return nil, fmt.Errorf("product %d: %w", p.ID, ErrInvalidProduct)
		}
	}
	return products, nil
}
