package cart

import (
	"testing"

	"github.com/shopspring/decimal"
)

func item(price string, qty int) LineItem {
	return LineItem{
		ProductID: "p-" + price,
		UnitPrice: decimal.RequireFromString(price),
		Quantity:  qty,
	}
}

func TestComputeTotalsIsIdempotent(t *testing.T) {
	items := []LineItem{item("199.99", 2), item("50", 1)}
	rules := DefaultPricingRules()

	first := ComputeTotals(items, decimal.Zero, rules)
	second := ComputeTotals(items, decimal.Zero, rules)

	if !first.FinalTotal.Equal(second.FinalTotal) {
		t.Fatalf("expected identical totals, got %s then %s", first.FinalTotal, second.FinalTotal)
	}
	if !first.Subtotal.Equal(second.Subtotal) || !first.Tax.Equal(second.Tax) || !first.Shipping.Equal(second.Shipping) {
		t.Fatalf("expected all components stable across recomputation: %+v vs %+v", first, second)
	}
}

func TestComputeTotalsShippingBoundary(t *testing.T) {
	rules := DefaultPricingRules()
	cases := []struct {
		name     string
		subtotal string
		want     string
	}{
		{"just below threshold", "499.99", "49"},
		{"exactly at threshold", "500", "0"},
		{"above threshold", "500.01", "0"},
		{"empty cart", "0", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var items []LineItem
			if tc.subtotal != "0" {
				items = []LineItem{item(tc.subtotal, 1)}
			}
			got := ComputeTotals(items, decimal.Zero, rules)
			if !got.Shipping.Equal(decimal.RequireFromString(tc.want)) {
				t.Fatalf("subtotal %s: expected shipping %s, got %s", tc.subtotal, tc.want, got.Shipping)
			}
		})
	}
}

func TestComputeTotalsTaxRoundsToTwoPlaces(t *testing.T) {
	got := ComputeTotals([]LineItem{item("1000", 1)}, decimal.Zero, DefaultPricingRules())
	if got.Tax.String() != "50" {
		t.Fatalf("expected tax 50 on subtotal 1000, got %s", got.Tax)
	}

	// 33.33 * 0.05 = 1.6665 rounds half-up to 1.67.
	got = ComputeTotals([]LineItem{item("33.33", 1)}, decimal.Zero, DefaultPricingRules())
	if got.Tax.String() != "1.67" {
		t.Fatalf("expected tax 1.67 on subtotal 33.33, got %s", got.Tax)
	}
}

func TestComputeTotalsComposition(t *testing.T) {
	// subtotal 1200, tax 60, free shipping, discount 100 -> 1160.
	items := []LineItem{item("600", 2)}
	got := ComputeTotals(items, decimal.NewFromInt(100), DefaultPricingRules())

	if !got.Subtotal.Equal(decimal.NewFromInt(1200)) {
		t.Fatalf("expected subtotal 1200, got %s", got.Subtotal)
	}
	if !got.Tax.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("expected tax 60, got %s", got.Tax)
	}
	if !got.Shipping.IsZero() {
		t.Fatalf("expected free shipping, got %s", got.Shipping)
	}
	if !got.FinalTotal.Equal(decimal.NewFromInt(1160)) {
		t.Fatalf("expected final total 1160, got %s", got.FinalTotal)
	}
}

func TestComputeTotalsClampsNegativeFinal(t *testing.T) {
	items := []LineItem{item("10", 1)}
	got := ComputeTotals(items, decimal.NewFromInt(5000), DefaultPricingRules())
	if !got.FinalTotal.IsZero() {
		t.Fatalf("expected final total clamped to 0, got %s", got.FinalTotal)
	}
}

func TestComputeTotalsIgnoresNegativeDiscount(t *testing.T) {
	items := []LineItem{item("100", 1)}
	got := ComputeTotals(items, decimal.NewFromInt(-25), DefaultPricingRules())
	if !got.Discount.IsZero() {
		t.Fatalf("expected negative discount treated as 0, got %s", got.Discount)
	}
}
