package http

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

type CartHandler struct {
	responder
	store Storefront
}

func NewCartHandler(store Storefront, logger *zap.Logger) *CartHandler {
	return &CartHandler{responder: newResponder(logger), store: store}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, _ *http.Request) {
	h.respondJSON(w, http.StatusOK, h.store.Summary())
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID <= 0 {
		h.respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}
	if req.Quantity <= 0 {
		h.respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be positive")
		return
	}

	summary, err := h.store.AddToCart(r.Context(), req.ProductID, req.Quantity)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, summary)
}
