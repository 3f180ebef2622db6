package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fjod/go_cart/storefront/internal/catalog"
	"github.com/fjod/go_cart/storefront/internal/checkout"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/service"
	"github.com/fjod/go_cart/storefront/internal/storefront"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

type StorefrontMock struct {
	products  []domain.Product
	summary   service.Summary
	modal     checkout.ModalState
	order     *domain.Order
	err       error
	lastQuery catalog.Query
}

func (m *StorefrontMock) Products(q catalog.Query) []domain.Product {
	m.lastQuery = q
	return catalog.Apply(m.products, q)
}

func (m *StorefrontMock) Summary() service.Summary { return m.summary }

func (m *StorefrontMock) AddToCart(_ context.Context, _ int64, _ int) (service.Summary, error) {
	return m.summary, m.err
}

func (m *StorefrontMock) ModalState() checkout.ModalState { return m.modal }

func (m *StorefrontMock) OpenOrder() (service.Summary, error) { return m.summary, m.err }

func (m *StorefrontMock) ConfirmOrder(context.Context) (*domain.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.order, nil
}

func (m *StorefrontMock) CloseOrder() error { return m.err }

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) ErrorResponse {
	var response ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	return response
}

func TestProductList_SearchAndFilter(t *testing.T) {
	mock := &StorefrontMock{products: []domain.Product{
		{ID: 1, Name: "Smart Watch", Price: decimal.NewFromInt(150), Stock: 2},
		{ID: 2, Name: "Watch Strap", Price: decimal.NewFromInt(10), Stock: 0},
	}}
	handler := NewProductHandler(mock, zaptest.NewLogger(t))

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/products?search=watch&filter=in-stock", nil)
	handler.List(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	var response ProductsResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	require.Len(t, response.Products, 1)
	assert.Equal(t, int64(1), response.Products[0].ID)
	assert.True(t, response.Products[0].InStock)
	assert.Equal(t, "watch", mock.lastQuery.Search)
	assert.Equal(t, catalog.FilterInStock, mock.lastQuery.Filter)
}

func TestProductList_InvalidFilter(t *testing.T) {
	handler := NewProductHandler(&StorefrontMock{}, zaptest.NewLogger(t))

	recorder := httptest.NewRecorder()
	handler.List(recorder, httptest.NewRequest("GET", "/products?filter=cheap", nil))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "invalid_filter", decodeError(t, recorder).Code)
}

func TestAddItem_Success(t *testing.T) {
	mock := &StorefrontMock{summary: service.Summary{
		Lines:     []domain.CartLine{{ProductID: 1, Quantity: 2}},
		ItemCount: 2,
	}}
	handler := NewCartHandler(mock, zaptest.NewLogger(t))

	body, _ := json.Marshal(&AddItemRequestDTO{ProductID: 1, Quantity: 2})
	recorder := httptest.NewRecorder()
	handler.AddItem(recorder, httptest.NewRequest("POST", "/items", bytes.NewReader(body)))

	assert.Equal(t, http.StatusCreated, recorder.Code)
	var response service.Summary
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, 2, response.ItemCount)
}

func TestAddItem_InvalidJSON(t *testing.T) {
	handler := NewCartHandler(&StorefrontMock{}, zaptest.NewLogger(t))

	recorder := httptest.NewRecorder()
	handler.AddItem(recorder, httptest.NewRequest("POST", "/items", bytes.NewReader([]byte("invalid json"))))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "invalid_request", decodeError(t, recorder).Code)
}

func TestAddItem_ValidatesInput(t *testing.T) {
	handler := NewCartHandler(&StorefrontMock{}, zaptest.NewLogger(t))

	tests := []struct {
		name string
		req  AddItemRequestDTO
		code string
	}{
		{"zero product_id", AddItemRequestDTO{ProductID: 0, Quantity: 1}, "invalid_product_id"},
		{"negative product_id", AddItemRequestDTO{ProductID: -1, Quantity: 1}, "invalid_product_id"},
		{"zero quantity", AddItemRequestDTO{ProductID: 1, Quantity: 0}, "invalid_quantity"},
		{"negative quantity", AddItemRequestDTO{ProductID: 1, Quantity: -3}, "invalid_quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.req)
			recorder := httptest.NewRecorder()
			handler.AddItem(recorder, httptest.NewRequest("POST", "/items", bytes.NewReader(body)))

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Equal(t, tt.code, decodeError(t, recorder).Code)
		})
	}
}

func TestAddItem_ServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", storefront.ErrProductNotFound, http.StatusNotFound, "not_found"},
		{"insufficient stock", storefront.ErrInsufficientStock, http.StatusConflict, "insufficient_stock"},
		{"invalid quantity", storefront.ErrInvalidQuantity, http.StatusBadRequest, "invalid_quantity"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewCartHandler(&StorefrontMock{err: tt.err}, zaptest.NewLogger(t))
			body, _ := json.Marshal(&AddItemRequestDTO{ProductID: 1, Quantity: 1})
			recorder := httptest.NewRecorder()
			handler.AddItem(recorder, httptest.NewRequest("POST", "/items", bytes.NewReader(body)))

			assert.Equal(t, tt.status, recorder.Code)
			assert.Equal(t, tt.code, decodeError(t, recorder).Code)
		})
	}
}

func TestOrderConfirm_IllegalTransition(t *testing.T) {
	handler := NewOrderHandler(&StorefrontMock{err: checkout.ErrIllegalTransition}, zaptest.NewLogger(t))

	recorder := httptest.NewRecorder()
	handler.Confirm(recorder, httptest.NewRequest("POST", "/order/confirm", nil))

	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Equal(t, "illegal_transition", decodeError(t, recorder).Code)
}

func TestOrderConfirm_Success(t *testing.T) {
	handler := NewOrderHandler(&StorefrontMock{order: &domain.Order{ID: "order-9"}}, zaptest.NewLogger(t))

	recorder := httptest.NewRecorder()
	handler.Confirm(recorder, httptest.NewRequest("POST", "/order/confirm", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	var response ConfirmResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, "order-9", response.Order.ID)
	assert.Equal(t, confirmationMessage, response.Message)
}

func TestOrderGet(t *testing.T) {
	handler := NewOrderHandler(&StorefrontMock{modal: checkout.ModalOpenConfirmed}, zaptest.NewLogger(t))

	recorder := httptest.NewRecorder()
	handler.Get(recorder, httptest.NewRequest("GET", "/order", nil))

	var response ModalResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.True(t, response.Open)
	assert.True(t, response.Confirmed)
}

func TestRespondJSON_LogsEncodeFailureToInjectedLogger(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	handler := NewCartHandler(&StorefrontMock{}, zap.New(core))

	recorder := httptest.NewRecorder()
	handler.respondJSON(recorder, http.StatusOK, map[string]interface{}{"bad": make(chan int)})

	assert.Equal(t, http.StatusOK, recorder.Code)
	entries := logs.FilterMessage("failed to encode response").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(http.StatusOK), entries[0].ContextMap()["status"])
}

func TestHandleServiceError_LogsUnexpectedErrors(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	handler := NewOrderHandler(&StorefrontMock{err: errors.New("boom")}, zap.New(core))

	recorder := httptest.NewRecorder()
	handler.Confirm(recorder, httptest.NewRequest("POST", "/order/confirm", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, 1, logs.FilterMessage("unexpected service error").Len())
}
