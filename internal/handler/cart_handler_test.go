package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"shoply/internal/model"
	"shoply/internal/pricing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCartRouter(h *CartHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/cart/add", h.AddItem)
	r.Get("/api/cart/items", h.ListItems)
	r.Post("/api/cart/calculate-total", h.CalculateTotal)
	r.Put("/api/cart/{itemID}", h.UpdateItem)
	r.Delete("/api/cart/{itemID}", h.RemoveItem)
	r.Delete("/api/cart", h.Clear)
	return r
}

func TestCartHandler_AddItem(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()
	productID := uuid.New()

	tests := []struct {
		name           string
		body           string
		mockErr        error
		expectService  bool
		expectedStatus int
	}{
		{
			name:           "Success",
			body:           fmt.Sprintf(`{"userId":%q,"productId":%q,"quantity":2}`, userID, productID),
			expectService:  true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Unknown product",
			body:           fmt.Sprintf(`{"userId":%q,"productId":%q,"quantity":2}`, userID, productID),
			mockErr:        model.ErrProductNotFound,
			expectService:  true,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Invalid quantity",
			body:           fmt.Sprintf(`{"userId":%q,"productId":%q,"quantity":0}`, userID, productID),
			mockErr:        model.ErrInvalidQuantity,
			expectService:  true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Invalid JSON",
			body:           `{`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := new(MockCartService)
			checkout := new(MockCheckoutService)

			if tt.expectService {
				cart.On("AddItem", mock.Anything, mock.Anything).Return(tt.mockErr)
			}

			h := NewCartHandler(cart, checkout, logger)
			router := newCartRouter(h)

			req := httptest.NewRequest(http.MethodPost, "/api/cart/add", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestCartHandler_CalculateTotal(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()

	breakdown := &pricing.Breakdown{
		Subtotal:        decimal.RequireFromString("20.00"),
		Discount:        decimal.Zero,
		WalletDeduction: decimal.NewFromInt(5),
		Total:           decimal.RequireFromString("15.00"),
		ItemCount:       1,
	}

	cart := new(MockCartService)
	checkout := new(MockCheckoutService)
	checkout.On("PreviewTotal", mock.Anything, userID, (*string)(nil), 5).Return(breakdown, nil)

	h := NewCartHandler(cart, checkout, logger)
	router := newCartRouter(h)

	body := fmt.Sprintf(`{"userId":%q,"walletPointsUsed":5}`, userID)
	req := httptest.NewRequest(http.MethodPost, "/api/cart/calculate-total", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.JSONEq(t, `"20"`, string(got["subtotal"]))
	assert.JSONEq(t, `"15"`, string(got["total"]))
	assert.JSONEq(t, `1`, string(got["item_count"]))
}

func TestCartHandler_ListItems_RequiresUserID(t *testing.T) {
	logger := zerolog.Nop()

	cart := new(MockCartService)
	checkout := new(MockCheckoutService)

	h := NewCartHandler(cart, checkout, logger)
	router := newCartRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/cart/items", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	cart.AssertNotCalled(t, "ListItems", mock.Anything, mock.Anything)
}

func TestCartHandler_RemoveItem(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()
	itemID := uuid.New()

	cart := new(MockCartService)
	checkout := new(MockCheckoutService)
	cart.On("RemoveItem", mock.Anything, itemID, userID).Return(nil)

	h := NewCartHandler(cart, checkout, logger)
	router := newCartRouter(h)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/cart/%s?user_id=%s", itemID, userID), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	cart.AssertExpectations(t)
}
