package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem represents one (product, quantity) pairing awaiting checkout.
// Unique per (user, product); adding the same product again accumulates
// the quantity.
type CartItem struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	ProductID uuid.UUID `json:"productId" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CartLine is a cart item joined with the product's live price and stock.
// Price is read at checkout time, never stored on the cart row.
type CartLine struct {
	ItemID      uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Stock       int             `json:"stock"`
}

// AddCartItemRequest represents the request payload for adding to the cart.
type AddCartItemRequest struct {
	UserID    uuid.UUID `json:"userId"`
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// UpdateCartItemRequest represents the request payload for changing a cart
// item's quantity.
type UpdateCartItemRequest struct {
	UserID   uuid.UUID `json:"userId"`
	Quantity int       `json:"quantity"`
}
