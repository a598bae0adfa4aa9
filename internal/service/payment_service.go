package service

import (
	"context"
	"fmt"

	"shoply/internal/model"
	"shoply/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// paymentService implements the settlement state machine:
// pending → success or pending → failed, both terminal.
type paymentService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	logger      zerolog.Logger
}

// NewPaymentService creates a new payment settlement service.
func NewPaymentService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	logger zerolog.Logger,
) PaymentService {
	return &paymentService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		logger:      logger.With().Str("service", "payment").Logger(),
	}
}

// Settle applies a decided outcome to a pending order. The status flip and
// any compensation commit together or not at all.
func (s *paymentService) Settle(ctx context.Context, orderID uuid.UUID, outcome model.PaymentStatus) (*model.SettlePaymentResponse, error) {
	// Contract error, rejected before any read or write.
	if !outcome.Terminal() {
		return nil, model.ErrInvalidPaymentStatus
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to settle payment: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback settlement transaction")
			}
		}
	}()

	// Row lock makes the pending check and the flip one atomic step;
	// concurrent or retried settlements serialise here.
	order, err := s.orderRepo.GetForSettlement(ctx, tx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to settle payment: %w", err)
	}

	if order == nil {
		err = model.ErrOrderNotFound
		return nil, err
	}

	if order.PaymentStatus != model.PaymentPending {
		s.logger.Debug().
			Str("order_id", orderID.String()).
			Str("payment_status", string(order.PaymentStatus)).
			Msg("settlement rejected, payment already processed")
		err = model.ErrPaymentAlreadySettled
		return nil, err
	}

	orderStatus := model.OrderProcessing
	if outcome == model.PaymentFailed {
		orderStatus = model.OrderCancelled
	}

	if err = s.orderRepo.SetPaymentStatus(ctx, tx, orderID, outcome, orderStatus); err != nil {
		return nil, fmt.Errorf("failed to settle payment: %w", err)
	}

	if outcome == model.PaymentFailed {
		if err = s.compensate(ctx, tx, order); err != nil {
			return nil, fmt.Errorf("failed to compensate failed payment: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to settle payment: %w", err)
	}

	s.logger.Info().
		Str("order_id", orderID.String()).
		Str("payment_status", string(outcome)).
		Str("order_status", string(orderStatus)).
		Msg("payment settled")

	return &model.SettlePaymentResponse{
		OrderID:       orderID,
		PaymentStatus: outcome,
		OrderStatus:   orderStatus,
	}, nil
}

// compensate reverses the checkout-time mutations: each order item's
// quantity goes back onto product stock, and the wallet debit is credited
// back. The single-fire guard above guarantees this runs at most once per
// order.
func (s *paymentService) compensate(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	items, err := s.orderRepo.ItemsForOrder(ctx, tx, order.ID)
	if err != nil {
		return err
	}

	for _, item := range items {
		if err := s.productRepo.IncrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}

	if order.WalletPointsUsed > 0 {
		if err := s.userRepo.CreditWallet(ctx, tx, order.UserID, order.WalletPointsUsed); err != nil {
			return err
		}
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Int("restored_items", len(items)).
		Int("restored_points", order.WalletPointsUsed).
		Msg("checkout mutations compensated")

	return nil
}
