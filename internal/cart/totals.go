package cart

import "github.com/shopspring/decimal"

var (
	// freeShippingThreshold waives the shipping fee on subtotals strictly
	// above it.
	freeShippingThreshold = decimal.NewFromInt(50)
	standardShippingFee   = decimal.RequireFromString("9.99")
	taxRate               = decimal.RequireFromString("0.08")
)

// Totals is the derived money summary of a cart.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals derives the subtotal, shipping, tax, and grand total from the
// cart lines.
func ComputeTotals(items []Item) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	subtotal = subtotal.Round(2)

	shipping := standardShippingFee
	if subtotal.GreaterThan(freeShippingThreshold) {
		shipping = decimal.Zero
	}

	tax := subtotal.Mul(taxRate).Round(2)

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax).Round(2),
	}
}
