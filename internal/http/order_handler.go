package http

import (
	"net/http"

	"github.com/fjod/go_cart/storefront/internal/checkout"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"go.uber.org/zap"
)

const confirmationMessage = "Your order has been confirmed! Thank you for shopping with us."

type OrderHandler struct {
	responder
	store Storefront
}

func NewOrderHandler(store Storefront, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{responder: newResponder(logger), store: store}
}

type ModalResponse struct {
	State     checkout.ModalState `json:"state"`
	Open      bool                `json:"open"`
	Confirmed bool                `json:"confirmed"`
}

type ConfirmResponse struct {
	Order   *domain.Order `json:"order"`
	Message string        `json:"message"`
}

func modalResponse(state checkout.ModalState) ModalResponse {
	return ModalResponse{
		State:     state,
		Open:      state.IsOpen(),
		Confirmed: state.IsConfirmed(),
	}
}

func (h *OrderHandler) Get(w http.ResponseWriter, _ *http.Request) {
	h.respondJSON(w, http.StatusOK, modalResponse(h.store.ModalState()))
}

// Open returns the cart summary shown in the modal.
func (h *OrderHandler) Open(w http.ResponseWriter, _ *http.Request) {
	summary, err := h.store.OpenOrder()
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, summary)
}

func (h *OrderHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	order, err := h.store.ConfirmOrder(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, ConfirmResponse{Order: order, Message: confirmationMessage})
}

func (h *OrderHandler) Close(w http.ResponseWriter, _ *http.Request) {
	if err := h.store.CloseOrder(); err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, modalResponse(h.store.ModalState()))
}
