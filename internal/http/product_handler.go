package http

import (
	"net/http"

	"github.com/fjod/go_cart/storefront/internal/catalog"
	"github.com/fjod/go_cart/storefront/internal/pricing"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductHandler struct {
	responder
	store Storefront
}

func NewProductHandler(store Storefront, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{responder: newResponder(logger), store: store}
}

type ProductResponse struct {
	ID      int64           `json:"id"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
	Stock   int             `json:"stock"`
	InStock bool            `json:"in_stock"`
	Image   string          `json:"image"`
}

type ProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

// List serves GET /products?search=&filter=
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := catalog.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_filter", "filter must be one of all, in-stock, out-of-stock")
		return
	}

	found := h.store.Products(catalog.Query{
		Search: r.URL.Query().Get("search"),
		Filter: filter,
	})

	products := make([]ProductResponse, len(found))
	for i, p := range found {
		products[i] = ProductResponse{
			ID:      p.ID,
			Name:    p.Name,
			Price:   p.Price,
			Stock:   p.Stock,
			InStock: p.InStock(),
			Image:   p.Image,
		}
	}

	h.respondJSON(w, http.StatusOK, &ProductsResponse{Products: products})
}

// Tiers serves the discount table.
func (h *ProductHandler) Tiers(w http.ResponseWriter, _ *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"tiers": pricing.Tiers()})
}
