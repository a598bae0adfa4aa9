package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus is the settlement state of an order's payment.
// pending is the only non-terminal state.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentSuccess PaymentStatus = "success"
	PaymentFailed  PaymentStatus = "failed"
)

// Valid reports whether s is a recognised settlement outcome or state.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentSuccess, PaymentFailed:
		return true
	}
	return false
}

// Terminal reports whether no further payment transition exists out of s.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentSuccess || s == PaymentFailed
}

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// Order represents a customer order created from a cart snapshot.
type Order struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	UserID           uuid.UUID       `json:"userId" db:"user_id"`
	TotalPrice       decimal.Decimal `json:"total_price" db:"total_price"`
	DiscountAmount   decimal.Decimal `json:"discount_amount" db:"discount_amount"`
	WalletPointsUsed int             `json:"wallet_points_used" db:"wallet_points_used"`
	CouponCode       *string         `json:"coupon_code,omitempty" db:"coupon_code"`
	PaymentStatus    PaymentStatus   `json:"payment_status" db:"payment_status"`
	OrderStatus      OrderStatus     `json:"order_status" db:"order_status"`
	CreatedAt        time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time       `json:"updatedAt" db:"updated_at"`
}

// OrderItem is an immutable line of an order. Price is the unit price
// captured at order-creation time, decoupled from later catalogue changes.
type OrderItem struct {
	ID        uuid.UUID       `json:"-" db:"id"`
	OrderID   uuid.UUID       `json:"-" db:"order_id"`
	ProductID uuid.UUID       `json:"productId" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	Price     decimal.Decimal `json:"price" db:"price"`
}

// PlaceOrderRequest represents the request payload for placing an order.
// Coupon and wallet inputs are re-validated server-side; client-side preview
// values are never trusted.
type PlaceOrderRequest struct {
	UserID           uuid.UUID `json:"userId"`
	CouponCode       *string   `json:"couponCode,omitempty"`
	WalletPointsUsed int       `json:"walletPointsUsed"`
}

// PlaceOrderResponse is the summary returned after a successful placement.
// Payment is always pending at this point; settlement happens later.
type PlaceOrderResponse struct {
	OrderID          uuid.UUID       `json:"order_id"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	DiscountAmount   decimal.Decimal `json:"discount_amount"`
	WalletPointsUsed int             `json:"wallet_points_used"`
	CouponCode       *string         `json:"coupon_code,omitempty"`
	PaymentStatus    PaymentStatus   `json:"payment_status"`
}

// OrderDetail is an order together with its items.
type OrderDetail struct {
	Order Order       `json:"order"`
	Items []OrderItem `json:"items"`
}

// SettlePaymentRequest carries the decided outcome of an external payment
// step.
type SettlePaymentRequest struct {
	Status PaymentStatus `json:"status"`
}

// SettlePaymentResponse reports the terminal state reached by a settlement.
type SettlePaymentResponse struct {
	OrderID       uuid.UUID     `json:"order_id"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	OrderStatus   OrderStatus   `json:"order_status"`
}
