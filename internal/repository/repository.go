package repository

import (
	"context"

	"shoply/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves all products with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns nil when the
	// product does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// DecrementStock subtracts qty from the product's stock within the
	// provided transaction. The update is guarded: if the remaining stock
	// would go negative it applies nothing and returns an
	// INSUFFICIENT_STOCK domain error.
	DecrementStock(ctx context.Context, tx pgx.Tx, productID uuid.UUID, qty int) error

	// IncrementStock adds qty back onto the product's stock within the
	// provided transaction. Used by failed-payment compensation.
	IncrementStock(ctx context.Context, tx pgx.Tx, productID uuid.UUID, qty int) error
}

// CartRepository defines the interface for cart data access operations.
type CartRepository interface {
	// ListLines retrieves the user's cart joined with each product's live
	// name, price and stock. Read-only; used by cart display and price
	// preview.
	ListLines(ctx context.Context, userID uuid.UUID) ([]model.CartLine, error)

	// ListLinesForUpdate retrieves the user's cart lines within the
	// provided transaction, locking the joined product rows (ordered by
	// product id) so concurrent checkouts serialise their stock updates.
	ListLinesForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID) ([]model.CartLine, error)

	// AddItem inserts a cart item, or accumulates quantity onto the
	// existing (user, product) row.
	AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) error

	// UpdateQuantity replaces a cart item's quantity. Returns a
	// CART_ITEM_NOT_FOUND domain error when no row matches.
	UpdateQuantity(ctx context.Context, itemID, userID uuid.UUID, quantity int) error

	// RemoveItem deletes a single cart item belonging to the user.
	RemoveItem(ctx context.Context, itemID, userID uuid.UUID) error

	// Clear deletes all of the user's cart items.
	Clear(ctx context.Context, userID uuid.UUID) error

	// ClearTx deletes all of the user's cart items within the provided
	// transaction. Used by checkout.
	ClearTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error
}

// UserRepository defines wallet access on the user entity.
type UserRepository interface {
	// GetWalletBalance returns the user's current wallet points.
	GetWalletBalance(ctx context.Context, userID uuid.UUID) (int, error)

	// DebitWallet subtracts points from the user's wallet within the
	// provided transaction. Guarded so the balance never goes negative.
	DebitWallet(ctx context.Context, tx pgx.Tx, userID uuid.UUID, points int) error

	// CreditWallet adds points back onto the user's wallet within the
	// provided transaction. Used by failed-payment compensation.
	CreditWallet(ctx context.Context, tx pgx.Tx, userID uuid.UUID, points int) error
}

// CouponRepository resolves coupon assignments.
type CouponRepository interface {
	// ResolveForUser returns the coupon matching code if, and only if, the
	// user holds an assignment for it and it has not expired. Returns nil
	// in every other case; an inapplicable coupon is not an error.
	ResolveForUser(ctx context.Context, userID uuid.UUID, code string) (*model.Coupon, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves a user's order by its ID along with its items.
	// Returns nil when no order matches.
	GetByID(ctx context.Context, orderID, userID uuid.UUID) (*model.Order, []model.OrderItem, error)

	// ListByUser retrieves the user's orders, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// GetForSettlement retrieves an order by ID within the provided
	// transaction, locking the row so the payment transition is
	// single-fire. Returns nil when no order matches.
	GetForSettlement(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) (*model.Order, error)

	// ItemsForOrder retrieves the order's items within the provided
	// transaction. Used by compensation.
	ItemsForOrder(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) ([]model.OrderItem, error)

	// SetPaymentStatus updates the payment and fulfilment status within
	// the provided transaction.
	SetPaymentStatus(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, payment model.PaymentStatus, status model.OrderStatus) error
}
