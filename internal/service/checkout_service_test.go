package service

import (
	"context"
	"errors"
	"testing"

	"shoply/internal/coupon"
	"shoply/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type checkoutMocks struct {
	orderRepo   *MockOrderRepository
	productRepo *MockProductRepository
	cartRepo    *MockCartRepository
	userRepo    *MockUserRepository
	validator   *MockValidator
	tx          *MockTx
}

func newCheckoutService(t *testing.T) (CheckoutService, *checkoutMocks) {
	t.Helper()
	m := &checkoutMocks{
		orderRepo:   new(MockOrderRepository),
		productRepo: new(MockProductRepository),
		cartRepo:    new(MockCartRepository),
		userRepo:    new(MockUserRepository),
		validator:   new(MockValidator),
		tx:          new(MockTx),
	}
	svc := NewCheckoutService(m.orderRepo, m.productRepo, m.cartRepo, m.userRepo, m.validator, zerolog.Nop())
	return svc, m
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func strPtr(s string) *string { return &s }

func TestCheckoutService_PreviewTotal_EmptyCartIsZero(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	svc, m := newCheckoutService(t)
	m.cartRepo.On("ListLines", ctx, userID).Return([]model.CartLine{}, nil)

	breakdown, err := svc.PreviewTotal(ctx, userID, nil, 0)
	require.NoError(t, err)

	assert.True(t, breakdown.Subtotal.IsZero())
	assert.True(t, breakdown.Total.IsZero())
	assert.Equal(t, 0, breakdown.ItemCount)
	m.validator.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutService_PreviewTotal_WalletCapped(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	lines := []model.CartLine{
		{ProductID: uuid.New(), Quantity: 2, UnitPrice: dec("10.00"), Stock: 5},
	}

	svc, m := newCheckoutService(t)
	m.cartRepo.On("ListLines", ctx, userID).Return(lines, nil)
	m.validator.On("Resolve", ctx, userID, (*string)(nil), 5).Return(&coupon.Resolution{
		DiscountPercent: decimal.Zero,
		WalletPoints:    5,
	}, nil)

	breakdown, err := svc.PreviewTotal(ctx, userID, nil, 5)
	require.NoError(t, err)

	assert.True(t, dec("20.00").Equal(breakdown.Subtotal))
	assert.True(t, breakdown.Discount.IsZero())
	assert.True(t, dec("5").Equal(breakdown.WalletDeduction))
	assert.True(t, dec("15.00").Equal(breakdown.Total))
	assert.Equal(t, 1, breakdown.ItemCount)
}

func TestCheckoutService_PreviewTotal_IsRepeatable(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	lines := []model.CartLine{
		{ProductID: uuid.New(), Quantity: 3, UnitPrice: dec("7.50"), Stock: 10},
	}

	svc, m := newCheckoutService(t)
	m.cartRepo.On("ListLines", ctx, userID).Return(lines, nil)
	m.validator.On("Resolve", ctx, userID, strPtr("SAVE10"), 0).Return(&coupon.Resolution{
		DiscountPercent: dec("10"),
		CouponApplied:   true,
	}, nil)

	first, err := svc.PreviewTotal(ctx, userID, strPtr("SAVE10"), 0)
	require.NoError(t, err)
	second, err := svc.PreviewTotal(ctx, userID, strPtr("SAVE10"), 0)
	require.NoError(t, err)

	assert.True(t, first.Total.Equal(second.Total))
	assert.True(t, first.Discount.Equal(second.Discount))
}

func TestCheckoutService_PlaceOrder_Success(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	lines := []model.CartLine{
		{ProductID: productID, Quantity: 2, UnitPrice: dec("10.00"), Stock: 5},
	}

	svc, m := newCheckoutService(t)
	m.orderRepo.On("BeginTx", ctx).Return(m.tx, nil)
	m.cartRepo.On("ListLinesForUpdate", ctx, m.tx, userID).Return(lines, nil)
	m.validator.On("Resolve", ctx, userID, (*string)(nil), 5).Return(&coupon.Resolution{
		DiscountPercent: decimal.Zero,
		WalletPoints:    5,
	}, nil)
	m.orderRepo.On("CreateOrder", ctx, m.tx, mock.MatchedBy(func(o *model.Order) bool {
		return o.UserID == userID &&
			o.PaymentStatus == model.PaymentPending &&
			o.OrderStatus == model.OrderPending &&
			o.WalletPointsUsed == 5 &&
			o.TotalPrice.Equal(dec("15.00"))
	})).Return(nil)
	m.orderRepo.On("CreateOrderItems", ctx, m.tx, mock.MatchedBy(func(items []model.OrderItem) bool {
		return len(items) == 1 &&
			items[0].ProductID == productID &&
			items[0].Quantity == 2 &&
			items[0].Price.Equal(dec("10.00"))
	})).Return(nil)
	m.productRepo.On("DecrementStock", ctx, m.tx, productID, 2).Return(nil)
	m.userRepo.On("DebitWallet", ctx, m.tx, userID, 5).Return(nil)
	m.cartRepo.On("ClearTx", ctx, m.tx, userID).Return(nil)
	m.tx.On("Commit", ctx).Return(nil)

	resp, err := svc.PlaceOrder(ctx, &model.PlaceOrderRequest{
		UserID:           userID,
		WalletPointsUsed: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, model.PaymentPending, resp.PaymentStatus)
	assert.True(t, dec("15.00").Equal(resp.TotalPrice))
	assert.Equal(t, 5, resp.WalletPointsUsed)
	assert.True(t, m.tx.committed)
	m.orderRepo.AssertExpectations(t)
	m.productRepo.AssertExpectations(t)
	m.cartRepo.AssertExpectations(t)
	m.userRepo.AssertExpectations(t)
}

func TestCheckoutService_PlaceOrder_EmptyCart(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	svc, m := newCheckoutService(t)
	m.orderRepo.On("BeginTx", ctx).Return(m.tx, nil)
	m.cartRepo.On("ListLinesForUpdate", ctx, m.tx, userID).Return([]model.CartLine{}, nil)
	m.tx.On("Rollback", ctx).Return(nil)

	resp, err := svc.PlaceOrder(ctx, &model.PlaceOrderRequest{UserID: userID})
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, model.ErrEmptyCart)
	assert.True(t, m.tx.rolledBack)
	m.orderRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutService_PlaceOrder_InsufficientStock(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	lines := []model.CartLine{
		{ProductID: productID, Quantity: 3, UnitPrice: dec("10.00"), Stock: 1},
	}

	svc, m := newCheckoutService(t)
	m.orderRepo.On("BeginTx", ctx).Return(m.tx, nil)
	m.cartRepo.On("ListLinesForUpdate", ctx, m.tx, userID).Return(lines, nil)
	m.tx.On("Rollback", ctx).Return(nil)

	resp, err := svc.PlaceOrder(ctx, &model.PlaceOrderRequest{UserID: userID})
	require.Error(t, err)
	assert.Nil(t, resp)

	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeInsufficientStock, domainErr.Code)
	assert.Contains(t, domainErr.Message, productID.String())

	// Nothing was written before the abort.
	assert.True(t, m.tx.rolledBack)
	m.validator.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.productRepo.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutService_PlaceOrder_CouponIgnoredWhenInapplicable(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	lines := []model.CartLine{
		{ProductID: productID, Quantity: 1, UnitPrice: dec("10.00"), Stock: 4},
	}

	svc, m := newCheckoutService(t)
	m.orderRepo.On("BeginTx", ctx).Return(m.tx, nil)
	m.cartRepo.On("ListLinesForUpdate", ctx, m.tx, userID).Return(lines, nil)
	m.validator.On("Resolve", ctx, userID, strPtr("BOGUS"), 0).Return(&coupon.Resolution{
		DiscountPercent: decimal.Zero,
		CouponApplied:   false,
	}, nil)
	m.orderRepo.On("CreateOrder", ctx, m.tx, mock.MatchedBy(func(o *model.Order) bool {
		// An ignored coupon is not recorded on the order.
		return o.CouponCode == nil && o.DiscountAmount.IsZero() && o.TotalPrice.Equal(dec("10.00"))
	})).Return(nil)
	m.orderRepo.On("CreateOrderItems", ctx, m.tx, mock.Anything).Return(nil)
	m.productRepo.On("DecrementStock", ctx, m.tx, productID, 1).Return(nil)
	m.cartRepo.On("ClearTx", ctx, m.tx, userID).Return(nil)
	m.tx.On("Commit", ctx).Return(nil)

	resp, err := svc.PlaceOrder(ctx, &model.PlaceOrderRequest{
		UserID:     userID,
		CouponCode: strPtr("BOGUS"),
	})
	require.NoError(t, err)

	assert.Nil(t, resp.CouponCode)
	assert.True(t, resp.DiscountAmount.IsZero())
	m.userRepo.AssertNotCalled(t, "DebitWallet", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutService_PlaceOrder_RollsBackOnWriteFailure(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()
	writeErr := errors.New("connection reset")

	lines := []model.CartLine{
		{ProductID: productID, Quantity: 1, UnitPrice: dec("10.00"), Stock: 4},
	}

	svc, m := newCheckoutService(t)
	m.orderRepo.On("BeginTx", ctx).Return(m.tx, nil)
	m.cartRepo.On("ListLinesForUpdate", ctx, m.tx, userID).Return(lines, nil)
	m.validator.On("Resolve", ctx, userID, (*string)(nil), 0).Return(&coupon.Resolution{
		DiscountPercent: decimal.Zero,
	}, nil)
	m.orderRepo.On("CreateOrder", ctx, m.tx, mock.Anything).Return(nil)
	m.orderRepo.On("CreateOrderItems", ctx, m.tx, mock.Anything).Return(writeErr)
	m.tx.On("Rollback", ctx).Return(nil)

	resp, err := svc.PlaceOrder(ctx, &model.PlaceOrderRequest{UserID: userID})
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, writeErr)
	assert.True(t, m.tx.rolledBack)
	assert.False(t, m.tx.committed)
	m.cartRepo.AssertNotCalled(t, "ClearTx", mock.Anything, mock.Anything, mock.Anything)
}
