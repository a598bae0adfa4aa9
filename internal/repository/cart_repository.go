package repository

import (
	"context"
	"fmt"

	"shoply/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

const cartLinesQuery = `
	SELECT c.id, c.product_id, p.name, c.quantity, p.price, p.stock
	FROM cart_items c
	JOIN products p ON p.id = c.product_id
	WHERE c.user_id = $1
`

func scanCartLines(rows pgx.Rows) ([]model.CartLine, error) {
	defer rows.Close()

	var lines []model.CartLine
	for rows.Next() {
		var l model.CartLine
		if err := rows.Scan(&l.ItemID, &l.ProductID, &l.ProductName, &l.Quantity, &l.UnitPrice, &l.Stock); err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart lines: %w", err)
	}

	return lines, nil
}

// ListLines retrieves the user's cart joined with live product data.
func (r *cartRepository) ListLines(ctx context.Context, userID uuid.UUID) ([]model.CartLine, error) {
	rows, err := r.pool.Query(ctx, cartLinesQuery+` ORDER BY c.created_at DESC`, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query cart lines")
		return nil, fmt.Errorf("failed to query cart lines: %w", err)
	}

	lines, err := scanCartLines(rows)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to read cart lines")
		return nil, err
	}

	return lines, nil
}

// ListLinesForUpdate retrieves the user's cart lines within the transaction,
// locking the joined product rows. Ordering by product id keeps the lock
// order deterministic across concurrent checkouts.
func (r *cartRepository) ListLinesForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID) ([]model.CartLine, error) {
	rows, err := tx.Query(ctx, cartLinesQuery+` ORDER BY p.id FOR UPDATE OF p`, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to lock cart lines")
		return nil, fmt.Errorf("failed to lock cart lines: %w", err)
	}

	lines, err := scanCartLines(rows)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to read locked cart lines")
		return nil, err
	}

	return lines, nil
}

// AddItem inserts a cart item, accumulating quantity when the (user, product)
// row already exists.
func (r *cartRepository) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	query := `
		INSERT INTO cart_items (id, user_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`

	_, err := r.pool.Exec(ctx, query, uuid.New(), userID, productID, quantity)
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", userID.String()).
			Str("product_id", productID.String()).
			Msg("failed to add cart item")
		return fmt.Errorf("failed to add cart item: %w", err)
	}

	r.logger.Debug().
		Str("user_id", userID.String()).
		Str("product_id", productID.String()).
		Int("quantity", quantity).
		Msg("cart item added")

	return nil
}

// UpdateQuantity replaces a cart item's quantity.
func (r *cartRepository) UpdateQuantity(ctx context.Context, itemID, userID uuid.UUID, quantity int) error {
	query := `
		UPDATE cart_items
		SET quantity = $3
		WHERE id = $1 AND user_id = $2
	`

	tag, err := r.pool.Exec(ctx, query, itemID, userID, quantity)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_item_id", itemID.String()).Msg("failed to update cart item")
		return fmt.Errorf("failed to update cart item: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrCartItemNotFound
	}

	return nil
}

// RemoveItem deletes a single cart item belonging to the user.
func (r *cartRepository) RemoveItem(ctx context.Context, itemID, userID uuid.UUID) error {
	query := `DELETE FROM cart_items WHERE id = $1 AND user_id = $2`

	tag, err := r.pool.Exec(ctx, query, itemID, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_item_id", itemID.String()).Msg("failed to remove cart item")
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrCartItemNotFound
	}

	return nil
}

// Clear deletes all of the user's cart items.
func (r *cartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// ClearTx deletes all of the user's cart items within the transaction.
func (r *cartRepository) ClearTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error {
	_, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to clear cart in transaction")
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
