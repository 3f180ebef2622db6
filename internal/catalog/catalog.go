package catalog

import (
	"errors"
	"strings"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

var (
	ErrUnknownFilter  = errors.New("unknown stock filter")
	ErrInvalidProduct = errors.New("invalid product record")
)

// Filter narrows the catalog by stock availability.
type Filter string

const (
	FilterAll        Filter = "all"
	FilterInStock    Filter = "in-stock"
	FilterOutOfStock Filter = "out-of-stock"
)

// ParseFilter accepts the three filter names; empty means all.
func ParseFilter(s string) (Filter, error) {
	switch Filter(strings.ToLower(strings.TrimSpace(s))) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterInStock:
		return FilterInStock, nil
	case FilterOutOfStock:
		return FilterOutOfStock, nil
	default:
		return "", ErrUnknownFilter
	}
}

func (f Filter) matches(p domain.Product) bool {
	switch f {
	case FilterInStock:
		return p.Stock > 0
	case FilterOutOfStock:
		return p.Stock == 0
	default:
		return true
	}
}

type Query struct {
	Search string
	Filter Filter
}

// Matches applies a case-insensitive name substring search and the stock filter.
func (q Query) Matches(p domain.Product) bool {
	if q.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(q.Search)) {
		return false
	}
	return q.Filter.matches(p)
}

// Apply returns the products matching q, preserving catalog order.
func Apply(products []domain.Product, q Query) []domain.Product {
	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if q.Matches(p) {
			result = append(result, p)
		}
	}
	return result
}
