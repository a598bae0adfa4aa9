package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Coupon represents a percentage discount code. A coupon applies to a user
// only through an assignment row (UserCoupon); it is never public.
type Coupon struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	Code            string          `json:"code" db:"code"`
	DiscountPercent decimal.Decimal `json:"discountPercent" db:"discount_percent"`
	ValidUntil      *time.Time      `json:"validUntil,omitempty" db:"valid_until"`
}

// Expired reports whether the coupon is past its validity window.
// A nil ValidUntil never expires.
func (c *Coupon) Expired(now time.Time) bool {
	return c.ValidUntil != nil && !c.ValidUntil.After(now)
}
