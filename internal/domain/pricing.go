package domain

import "github.com/shopspring/decimal"

var (
	TaxRate               = decimal.RequireFromString("0.18")
	DeliveryFee           = decimal.NewFromInt(50)
	FreeDeliveryThreshold = decimal.NewFromInt(500)
)

// Totals are derived from cart lines on demand and never stored.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Delivery decimal.Decimal `json:"delivery"`
	Total    decimal.Decimal `json:"total"`
}

// CartTotals computes subtotal, tax and total without delivery.
func CartTotals(items []CartItem) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
	}
	tax := subtotal.Mul(TaxRate)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Delivery: decimal.Zero,
		Total:    subtotal.Add(tax),
	}
}

// CheckoutTotals is CartTotals plus the delivery fee, which is waived when
// the subtotal is strictly above FreeDeliveryThreshold.
func CheckoutTotals(items []CartItem) Totals {
	t := CartTotals(items)
	if t.Subtotal.LessThanOrEqual(FreeDeliveryThreshold) {
		t.Delivery = DeliveryFee
	}
	t.Total = t.Subtotal.Add(t.Tax).Add(t.Delivery)
	return t
}
