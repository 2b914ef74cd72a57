package cart

import "github.com/shopspring/decimal"

// PricingRules drive the derived totals. Defaults match the storefront's
// published policy: free shipping at 500, flat fee 49 below it, 5% tax.
type PricingRules struct {
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
	TaxRate               decimal.Decimal
}

// DefaultPricingRules returns the stock storefront pricing policy.
func DefaultPricingRules() PricingRules {
	return PricingRules{
		FreeShippingThreshold: decimal.NewFromInt(500),
		FlatShippingFee:       decimal.NewFromInt(49),
		TaxRate:               decimal.NewFromFloat(0.05),
	}
}

// Totals is a pure projection of line items plus coupon state. It is
// recomputed on every read and never stored, so it cannot go stale.
type Totals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Shipping   decimal.Decimal `json:"shipping"`
	Tax        decimal.Decimal `json:"tax"`
	Discount   decimal.Decimal `json:"discount"`
	FinalTotal decimal.Decimal `json:"final_total"`
}

// ComputeTotals derives the displayable money amounts from the cart contents.
// Each stage that feeds display is rounded half-up to two decimal places, and
// the final total is clamped so a discount can never push it negative.
func ComputeTotals(items []LineItem, discount decimal.Decimal, rules PricingRules) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		subtotal = subtotal.Add(item.UnitPrice.Mul(qty))
	}
	subtotal = subtotal.Round(2)

	shipping := decimal.Zero
	if subtotal.IsPositive() && subtotal.LessThan(rules.FreeShippingThreshold) {
		shipping = rules.FlatShippingFee
	}

	tax := subtotal.Mul(rules.TaxRate).Round(2)

	if discount.IsNegative() {
		discount = decimal.Zero
	}

	final := subtotal.Add(tax).Add(shipping).Sub(discount).Round(2)
	if final.IsNegative() {
		final = decimal.Zero
	}

	return Totals{
		Subtotal:   subtotal,
		Shipping:   shipping,
		Tax:        tax,
		Discount:   discount,
		FinalTotal: final,
	}
}
