package service

import (
	"context"

	"shoply/internal/model"
	"shoply/internal/pricing"

	"github.com/google/uuid"
)

// ProductService defines operations for the read-only product catalogue.
type ProductService interface {
	// GetAll retrieves all products with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID. Returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
}

// CartService defines operations for cart management.
type CartService interface {
	// AddItem adds a product to the user's cart, accumulating quantity.
	AddItem(ctx context.Context, req *model.AddCartItemRequest) error

	// ListItems retrieves the user's cart joined with live product data.
	ListItems(ctx context.Context, userID uuid.UUID) ([]model.CartLine, error)

	// UpdateItem replaces a cart item's quantity.
	UpdateItem(ctx context.Context, itemID uuid.UUID, req *model.UpdateCartItemRequest) error

	// RemoveItem deletes a single cart item.
	RemoveItem(ctx context.Context, itemID, userID uuid.UUID) error

	// Clear empties the user's cart.
	Clear(ctx context.Context, userID uuid.UUID) error
}

// CheckoutService coordinates the cart-to-order transition.
type CheckoutService interface {
	// PreviewTotal computes the price breakdown for the user's current
	// cart without mutating anything. Callable any number of times; an
	// empty cart yields a zero breakdown.
	PreviewTotal(ctx context.Context, userID uuid.UUID, couponCode *string, walletPoints int) (*pricing.Breakdown, error)

	// PlaceOrder converts the user's cart into a pending order, or fails
	// atomically leaving cart, stock and wallet untouched.
	PlaceOrder(ctx context.Context, req *model.PlaceOrderRequest) (*model.PlaceOrderResponse, error)
}

// PaymentService resolves pending payments into terminal states.
type PaymentService interface {
	// Settle applies a decided payment outcome to a pending order. The
	// transition is single-fire: a non-pending order is rejected with
	// PAYMENT_ALREADY_SETTLED. A failed outcome restores stock and wallet
	// exactly as the checkout consumed them.
	Settle(ctx context.Context, orderID uuid.UUID, outcome model.PaymentStatus) (*model.SettlePaymentResponse, error)
}

// OrderService defines read operations over placed orders.
type OrderService interface {
	// GetByID retrieves a user's order with its items. Returns nil when
	// absent.
	GetByID(ctx context.Context, orderID, userID uuid.UUID) (*model.OrderDetail, error)

	// ListByUser retrieves the user's orders, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
}
