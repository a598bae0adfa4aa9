package service

import (
	"context"
	"fmt"

	"shoply/internal/model"
	"shoply/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, logger zerolog.Logger) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

// AddItem adds a product to the user's cart, accumulating quantity.
func (s *cartService) AddItem(ctx context.Context, req *model.AddCartItemRequest) error {
	if req.Quantity <= 0 {
		return model.ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}
	if product == nil {
		return model.ErrProductNotFound
	}

	if err := s.cartRepo.AddItem(ctx, req.UserID, req.ProductID, req.Quantity); err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}

	s.logger.Debug().
		Str("user_id", req.UserID.String()).
		Str("product_id", req.ProductID.String()).
		Int("quantity", req.Quantity).
		Msg("item added to cart")

	return nil
}

// ListItems retrieves the user's cart joined with live product data.
func (s *cartService) ListItems(ctx context.Context, userID uuid.UUID) ([]model.CartLine, error) {
	lines, err := s.cartRepo.ListLines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	return lines, nil
}

// UpdateItem replaces a cart item's quantity.
func (s *cartService) UpdateItem(ctx context.Context, itemID uuid.UUID, req *model.UpdateCartItemRequest) error {
	if req.Quantity <= 0 {
		return model.ErrInvalidQuantity
	}

	if err := s.cartRepo.UpdateQuantity(ctx, itemID, req.UserID, req.Quantity); err != nil {
		return err
	}

	return nil
}

// RemoveItem deletes a single cart item.
func (s *cartService) RemoveItem(ctx context.Context, itemID, userID uuid.UUID) error {
	return s.cartRepo.RemoveItem(ctx, itemID, userID)
}

// Clear empties the user's cart.
func (s *cartService) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
