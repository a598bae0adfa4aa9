package handler

import (
	"encoding/json"
	"net/http"

	"shoply/internal/model"
	"shoply/internal/payment"
	"shoply/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests: placement, queries, and
// the payment settlement callback.
type OrderHandler struct {
	checkout  service.CheckoutService
	orders    service.OrderService
	payments  service.PaymentService
	simulator *payment.Simulator // nil unless the payment simulator is enabled
	logger    zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(
	checkout service.CheckoutService,
	orders service.OrderService,
	payments service.PaymentService,
	simulator *payment.Simulator,
	logger zerolog.Logger,
) *OrderHandler {
	return &OrderHandler{
		checkout:  checkout,
		orders:    orders,
		payments:  payments,
		simulator: simulator,
		logger:    logger.With().Str("handler", "order").Logger(),
	}
}

// Place handles POST /api/orders/place requests.
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	var req model.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if req.UserID == uuid.Nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "userId is required", h.logger)
		return
	}

	resp, err := h.checkout.PlaceOrder(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if h.simulator != nil {
		h.simulator.Schedule(resp.OrderID)
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Order placed successfully. Awaiting payment confirmation.",
		"order":   resp,
	})
}

// GetByID handles GET /api/orders/{orderID} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid order ID format", h.logger)
		return
	}

	userID, ok := userIDFromQuery(w, r, h.logger)
	if !ok {
		return
	}

	detail, err := h.orders.GetByID(r.Context(), orderID, userID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if detail == nil {
		writeError(w, http.StatusNotFound, model.ErrCodeOrderNotFound, "order not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// List handles GET /api/orders requests.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromQuery(w, r, h.logger)
	if !ok {
		return
	}

	orders, err := h.orders.ListByUser(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if orders == nil {
		orders = []model.Order{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

// SettlePayment handles PUT /api/orders/payment/{orderID} requests. The body
// carries the decided outcome from the external payment step.
func (h *OrderHandler) SettlePayment(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid order ID format", h.logger)
		return
	}

	var req model.SettlePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	resp, err := h.payments.Settle(r.Context(), orderID, req.Status)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"order": resp})
}
