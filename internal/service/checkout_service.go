package service

import (
	"context"
	"fmt"
	"time"

	"shoply/internal/coupon"
	"shoply/internal/model"
	"shoply/internal/pricing"
	"shoply/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// checkoutService implements CheckoutService.
type checkoutService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	userRepo    repository.UserRepository
	validator   coupon.Validator
	logger      zerolog.Logger
}

// NewCheckoutService creates a new checkout coordinator.
func NewCheckoutService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	userRepo repository.UserRepository,
	validator coupon.Validator,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		userRepo:    userRepo,
		validator:   validator,
		logger:      logger.With().Str("service", "checkout").Logger(),
	}
}

// PreviewTotal computes the price breakdown for the user's current cart.
// Pure with respect to store state: identical inputs over unchanged state
// yield identical output.
func (s *checkoutService) PreviewTotal(ctx context.Context, userID uuid.UUID, couponCode *string, walletPoints int) (*pricing.Breakdown, error) {
	lines, err := s.cartRepo.ListLines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	// An empty cart previews as a zero breakdown, not an error.
	if len(lines) == 0 {
		return &pricing.Breakdown{}, nil
	}

	resolution, err := s.validator.Resolve(ctx, userID, couponCode, walletPoints)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve discount inputs: %w", err)
	}

	breakdown := pricing.Compute(toPricingLines(lines), resolution.DiscountPercent, resolution.WalletPoints)
	return &breakdown, nil
}

// PlaceOrder converts the user's cart into a pending order inside a single
// transaction. Coupon and wallet inputs are re-resolved server-side; a
// preview shown earlier carries no authority.
func (s *checkoutService) PlaceOrder(ctx context.Context, req *model.PlaceOrderRequest) (*model.PlaceOrderResponse, error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	// Roll back the whole unit of work on any failure. Rollback after a
	// successful commit is a no-op error that pgx reports as ErrTxClosed.
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback checkout transaction")
			}
		}
	}()

	// Snapshot the cart with product rows locked. Every later stock
	// decrement in this checkout acts on prices and quantities frozen here.
	lines, err := s.cartRepo.ListLinesForUpdate(ctx, tx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	if len(lines) == 0 {
		err = model.ErrEmptyCart
		return nil, err
	}

	for _, line := range lines {
		if line.Quantity > line.Stock {
			s.logger.Warn().
				Str("user_id", req.UserID.String()).
				Str("product_id", line.ProductID.String()).
				Int("requested", line.Quantity).
				Int("stock", line.Stock).
				Msg("checkout rejected, insufficient stock")
			err = model.NewInsufficientStockError(line.ProductID)
			return nil, err
		}
	}

	resolution, err := s.validator.Resolve(ctx, req.UserID, req.CouponCode, req.WalletPointsUsed)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve discount inputs: %w", err)
	}

	breakdown := pricing.Compute(toPricingLines(lines), resolution.DiscountPercent, resolution.WalletPoints)

	var appliedCoupon *string
	if resolution.CouponApplied {
		appliedCoupon = req.CouponCode
	}

	now := time.Now()
	order := &model.Order{
		ID:               uuid.New(),
		UserID:           req.UserID,
		TotalPrice:       breakdown.Total,
		DiscountAmount:   breakdown.Discount,
		WalletPointsUsed: breakdown.WalletPointsApplied,
		CouponCode:       appliedCoupon,
		PaymentStatus:    model.PaymentPending,
		OrderStatus:      model.OrderPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	orderItems := make([]model.OrderItem, len(lines))
	for i, line := range lines {
		orderItems[i] = model.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.UnitPrice,
		}
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	// The product rows are locked, but the decrement stays guarded so the
	// stock invariant cannot be broken by any future code path that skips
	// the lock.
	for _, line := range lines {
		if err = s.productRepo.DecrementStock(ctx, tx, line.ProductID, line.Quantity); err != nil {
			return nil, err
		}
	}

	if breakdown.WalletPointsApplied > 0 {
		if err = s.userRepo.DebitWallet(ctx, tx, req.UserID, breakdown.WalletPointsApplied); err != nil {
			return nil, fmt.Errorf("failed to debit wallet: %w", err)
		}
	}

	if err = s.cartRepo.ClearTx(ctx, tx, req.UserID); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", req.UserID.String()).
		Str("total_price", order.TotalPrice.String()).
		Int("item_count", len(orderItems)).
		Msg("order placed, awaiting payment")

	return &model.PlaceOrderResponse{
		OrderID:          order.ID,
		TotalPrice:       order.TotalPrice,
		DiscountAmount:   order.DiscountAmount,
		WalletPointsUsed: order.WalletPointsUsed,
		CouponCode:       order.CouponCode,
		PaymentStatus:    order.PaymentStatus,
	}, nil
}

func toPricingLines(lines []model.CartLine) []pricing.Line {
	priced := make([]pricing.Line, len(lines))
	for i, line := range lines {
		priced[i] = pricing.Line{UnitPrice: line.UnitPrice, Quantity: line.Quantity}
	}
	return priced
}
