package cart

import "github.com/shopspring/decimal"

// Totals is derived pricing, recomputed on every read.
type Totals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	ShippingFee decimal.Decimal `json:"shippingFee"`
	Total       decimal.Decimal `json:"total"`
}

// ComputeTotals derives subtotal, the flat delivery fee, and the total.
// The fee applies only to home delivery, regardless of basket contents.
func ComputeTotals(s *State, flatFee decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, item := range s.Items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Qty))))
	}

	fee := decimal.Zero
	if s.ShippingMethod == MethodShipping {
		fee = flatFee
	}

	return Totals{
		Subtotal:    subtotal,
		ShippingFee: fee,
		Total:       subtotal.Add(fee),
	}
}

// MinorUnits converts the total to integer cents for the payment layer,
// rounding to the nearest cent.
func (t Totals) MinorUnits() int64 {
	return t.Total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
