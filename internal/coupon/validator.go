// Package coupon resolves the discount inputs of a checkout: whether a
// coupon code applies to a user, and how many wallet points the user can
// actually spend.
package coupon

import (
	"context"

	"shoply/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Resolution is the server-side truth about a checkout's discount inputs.
type Resolution struct {
	// DiscountPercent is zero unless an unexpired coupon is assigned to
	// the user.
	DiscountPercent decimal.Decimal

	// WalletPoints is min(requested, balance), floored at zero.
	WalletPoints int

	// CouponApplied reports whether the submitted code produced the
	// discount. False with a non-empty code means the code was silently
	// ignored (unknown, expired, or not assigned to this user).
	CouponApplied bool
}

// Validator resolves coupon and wallet inputs against current store state.
type Validator interface {
	// Resolve re-validates the client-submitted coupon code and wallet
	// request. It never fails on an inapplicable coupon; that is a
	// zero-discount outcome, not an error.
	Resolve(ctx context.Context, userID uuid.UUID, couponCode *string, requestedPoints int) (*Resolution, error)
}

// validator implements Validator on top of the coupon and user stores.
type validator struct {
	coupons repository.CouponRepository
	users   repository.UserRepository
	logger  zerolog.Logger
}

// NewValidator creates a new coupon and wallet validator.
func NewValidator(coupons repository.CouponRepository, users repository.UserRepository, logger zerolog.Logger) Validator {
	return &validator{
		coupons: coupons,
		users:   users,
		logger:  logger.With().Str("component", "coupon-validator").Logger(),
	}
}

// Resolve recomputes the applicable discount percent and usable wallet
// points from current store state.
func (v *validator) Resolve(ctx context.Context, userID uuid.UUID, couponCode *string, requestedPoints int) (*Resolution, error) {
	res := &Resolution{DiscountPercent: decimal.Zero}

	if couponCode != nil && *couponCode != "" {
		c, err := v.coupons.ResolveForUser(ctx, userID, *couponCode)
		if err != nil {
			return nil, err
		}

		if c != nil {
			res.DiscountPercent = c.DiscountPercent
			res.CouponApplied = true
		} else {
			// Defined contract: an inapplicable code yields no discount
			// and no error. Logged so typo'd codes remain visible.
			v.logger.Warn().
				Str("user_id", userID.String()).
				Str("coupon_code", *couponCode).
				Msg("coupon code not applicable, no discount applied")
		}
	}

	if requestedPoints > 0 {
		balance, err := v.users.GetWalletBalance(ctx, userID)
		if err != nil {
			return nil, err
		}

		res.WalletPoints = requestedPoints
		if balance < requestedPoints {
			res.WalletPoints = balance
		}
	}

	return res, nil
}
