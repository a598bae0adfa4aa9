package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"shoply/internal/model"
	"shoply/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CartHandler handles cart-related HTTP requests.
type CartHandler struct {
	cart     service.CartService
	checkout service.CheckoutService
	logger   zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cart service.CartService, checkout service.CheckoutService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		cart:     cart,
		checkout: checkout,
		logger:   logger.With().Str("handler", "cart").Logger(),
	}
}

// AddItem handles POST /api/cart/add requests.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req model.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if req.UserID == uuid.Nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "userId is required", h.logger)
		return
	}

	if err := h.cart.AddItem(r.Context(), &req); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "item added to cart"})
}

// ListItems handles GET /api/cart/items requests.
func (h *CartHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromQuery(w, r, h.logger)
	if !ok {
		return
	}

	lines, err := h.cart.ListItems(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if lines == nil {
		lines = []model.CartLine{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"items": lines})
}

// UpdateItem handles PUT /api/cart/{itemID} requests.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid cart item ID", h.logger)
		return
	}

	var req model.UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if err := h.cart.UpdateItem(r.Context(), itemID, &req); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "cart item updated"})
}

// RemoveItem handles DELETE /api/cart/{itemID} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid cart item ID", h.logger)
		return
	}

	userID, ok := userIDFromQuery(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.cart.RemoveItem(r.Context(), itemID, userID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "cart item removed"})
}

// Clear handles DELETE /api/cart requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromQuery(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.cart.Clear(r.Context(), userID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "cart cleared"})
}

// calculateTotalRequest is the preview payload: same discount inputs as
// order placement.
type calculateTotalRequest struct {
	UserID           uuid.UUID `json:"userId"`
	CouponCode       *string   `json:"couponCode,omitempty"`
	WalletPointsUsed int       `json:"walletPointsUsed"`
}

// CalculateTotal handles POST /api/cart/calculate-total requests. Pure
// preview: repeatable, nothing is mutated.
func (h *CartHandler) CalculateTotal(w http.ResponseWriter, r *http.Request) {
	var req calculateTotalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if req.UserID == uuid.Nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "userId is required", h.logger)
		return
	}

	breakdown, err := h.checkout.PreviewTotal(r.Context(), req.UserID, req.CouponCode, req.WalletPointsUsed)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, breakdown)
}

// userIDFromQuery extracts and validates the user_id query parameter.
func userIDFromQuery(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (uuid.UUID, bool) {
	raw := r.URL.Query().Get("user_id")
	if raw == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "user_id is required", logger)
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid user_id format", logger)
		return uuid.Nil, false
	}

	return userID, true
}

// parseIntQuery reads an integer query parameter with a fallback.
func parseIntQuery(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
