// Package pricing computes checkout price breakdowns. It is pure: the same
// inputs always produce the same breakdown and nothing is mutated, so it can
// back a live price preview as well as the checkout itself.
package pricing

import "github.com/shopspring/decimal"

// Line is one cart line as priced at computation time.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Breakdown is the price decomposition of a cart.
//
// Wallet points are whole integers valued at one currency unit each, so the
// deduction is carried both as the applied point count and as money.
type Breakdown struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	Discount        decimal.Decimal `json:"discount"`
	WalletDeduction decimal.Decimal `json:"wallet_deduction"`
	Total           decimal.Decimal `json:"total"`
	ItemCount       int             `json:"item_count"`

	// WalletPointsApplied is WalletDeduction as an integer point count.
	WalletPointsApplied int `json:"-"`
}

var oneHundred = decimal.NewFromInt(100)

// Compute turns a cart snapshot plus resolved discount inputs into a
// breakdown:
//
//	subtotal = Σ unit_price × quantity
//	discount = subtotal × discountPercent / 100, rounded to the cent
//	total    = max(0, subtotal − discount − wallet_deduction)
//
// discountPercent must already be resolved to zero when no coupon applies,
// and walletPoints capped to the user's balance; both are the validator's
// job. An empty cart yields an all-zero breakdown, not an error.
func Compute(lines []Line, discountPercent decimal.Decimal, walletPoints int) Breakdown {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	discount := decimal.Zero
	if discountPercent.IsPositive() {
		discount = subtotal.Mul(discountPercent).Div(oneHundred).Round(2)
	}

	if walletPoints < 0 {
		walletPoints = 0
	}
	walletDeduction := decimal.NewFromInt(int64(walletPoints))

	total := subtotal.Sub(discount).Sub(walletDeduction)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Breakdown{
		Subtotal:            subtotal,
		Discount:            discount,
		WalletDeduction:     walletDeduction,
		Total:               total,
		ItemCount:           len(lines),
		WalletPointsApplied: walletPoints,
	}
}
