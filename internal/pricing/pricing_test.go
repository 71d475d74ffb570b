package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/duvallglobal/getlyt/internal/models"
	"github.com/duvallglobal/getlyt/internal/pricing"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func item(price string, qty int) pricing.LineItem {
	return pricing.LineItem{ProductID: "prod-" + price, UnitPrice: dec(price), Quantity: qty}
}

func TestSubtotal(t *testing.T) {
	items := []pricing.LineItem{item("85", 1), item("95", 2)}

	subtotal, err := pricing.Subtotal(items)
	assert.NoError(t, err)
	assert.True(t, subtotal.Equal(dec("275")), "expected 275, got %s", subtotal)

	// Commutative: reversing item order yields the same subtotal.
	reversed := []pricing.LineItem{items[1], items[0]}
	subtotal2, err := pricing.Subtotal(reversed)
	assert.NoError(t, err)
	assert.True(t, subtotal.Equal(subtotal2))

	// Empty cart sums to zero.
	subtotal, err = pricing.Subtotal(nil)
	assert.NoError(t, err)
	assert.True(t, subtotal.IsZero())
}

func TestSubtotalNoFloatDrift(t *testing.T) {
	// 0.10 added a thousand times drifts under float64; decimals must not.
	items := make([]pricing.LineItem, 1000)
	for i := range items {
		items[i] = pricing.LineItem{ProductID: "p", UnitPrice: dec("0.10"), Quantity: 1}
	}
	subtotal, err := pricing.Subtotal(items)
	assert.NoError(t, err)
	assert.True(t, subtotal.Equal(dec("100.00")), "expected 100.00, got %s", subtotal)
}

func TestSubtotalRejectsInvalidLineItems(t *testing.T) {
	_, err := pricing.Subtotal([]pricing.LineItem{item("-1", 1)})
	assert.ErrorIs(t, err, models.ErrInvalidLineItem)

	_, err = pricing.Subtotal([]pricing.LineItem{item("10", 0)})
	assert.ErrorIs(t, err, models.ErrInvalidLineItem)

	_, err = pricing.Subtotal([]pricing.LineItem{item("10", -3)})
	assert.ErrorIs(t, err, models.ErrInvalidLineItem)
}

func TestShippingCost(t *testing.T) {
	tests := []struct {
		name     string
		method   pricing.ShippingMethod
		subtotal string
		want     string
	}{
		{"standard below threshold", pricing.ShippingStandard, "50", "10"},
		{"standard at threshold pays flat rate", pricing.ShippingStandard, "100.00", "10"},
		{"standard just above threshold is free", pricing.ShippingStandard, "100.01", "0"},
		{"standard well above threshold", pricing.ShippingStandard, "275", "0"},
		{"express at zero subtotal", pricing.ShippingExpress, "0", "15"},
		{"express ignores threshold", pricing.ShippingExpress, "1000", "15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pricing.ShippingCost(tt.method, dec(tt.subtotal))
			assert.True(t, got.Equal(dec(tt.want)), "expected %s, got %s", tt.want, got)
		})
	}
}

func TestValidatePromoCode(t *testing.T) {
	for _, code := range []string{"WELCOME10", "welcome10", "Welcome10", "  welcome10  "} {
		res := pricing.ValidatePromoCode(code)
		assert.True(t, res.Valid, "code %q should be valid", code)
		assert.True(t, res.DiscountRate.Equal(dec("0.10")))
	}

	for _, code := range []string{"", "SAVE20", "welcome", "welcome100"} {
		res := pricing.ValidatePromoCode(code)
		assert.False(t, res.Valid, "code %q should be invalid", code)
		assert.True(t, res.DiscountRate.IsZero())
	}

	// Idempotent: validating twice gives the same answer.
	first := pricing.ValidatePromoCode("welcome10")
	second := pricing.ValidatePromoCode("welcome10")
	assert.Equal(t, first, second)
}

func TestComputeSummaryCartExample(t *testing.T) {
	// One 85.00 item and two 95.00 items, standard shipping, no promo.
	items := []pricing.LineItem{item("85", 1), item("95", 2)}

	summary, err := pricing.ComputeSummary(items, pricing.ShippingStandard, "")
	assert.NoError(t, err)
	assert.True(t, summary.Subtotal.Equal(dec("275.00")))
	assert.True(t, summary.Shipping.IsZero(), "275 > 100 qualifies for free shipping")
	assert.True(t, summary.Discount.IsZero())
	assert.True(t, summary.TotalWithDiscount.Equal(dec("275.00")))
}

func TestComputeSummaryWithPromo(t *testing.T) {
	items := []pricing.LineItem{item("85", 1), item("95", 2)}

	summary, err := pricing.ComputeSummary(items, pricing.ShippingStandard, "WELCOME10")
	assert.NoError(t, err)
	assert.True(t, summary.Discount.Equal(dec("27.50")), "got %s", summary.Discount)
	assert.True(t, summary.TotalWithDiscount.Equal(dec("247.50")), "got %s", summary.TotalWithDiscount)

	// An unknown code never discounts.
	summary, err = pricing.ComputeSummary(items, pricing.ShippingStandard, "SAVE20")
	assert.NoError(t, err)
	assert.True(t, summary.Discount.IsZero())
	assert.True(t, summary.TotalWithDiscount.Equal(dec("275.00")))
}

func TestComputeSummaryCheckoutExample(t *testing.T) {
	// Subtotal 180.00 with express shipping: tax 14.40, checkout total 209.40.
	items := []pricing.LineItem{item("90", 2)}

	summary, err := pricing.ComputeSummary(items, pricing.ShippingExpress, "")
	assert.NoError(t, err)
	assert.True(t, summary.Subtotal.Equal(dec("180.00")))
	assert.True(t, summary.Shipping.Equal(dec("15.00")))
	assert.True(t, summary.Tax.Equal(dec("14.40")), "got %s", summary.Tax)
	assert.True(t, summary.TotalWithTax.Equal(dec("209.40")), "got %s", summary.TotalWithTax)
}

func TestComputeSummaryTaxOnPreDiscountSubtotal(t *testing.T) {
	// Tax is charged on the undiscounted subtotal even with a promo applied.
	items := []pricing.LineItem{item("100", 2)}

	summary, err := pricing.ComputeSummary(items, pricing.ShippingStandard, "welcome10")
	assert.NoError(t, err)
	assert.True(t, summary.Tax.Equal(dec("16.00")), "tax must be 0.08 * 200, got %s", summary.Tax)
	assert.True(t, summary.Discount.Equal(dec("20.00")))
	// Unified total: 200 + 0 - 20 + 16.
	assert.True(t, summary.GrandTotal.Equal(dec("196.00")), "got %s", summary.GrandTotal)
}

func TestComputeSummaryDiscountNeverAppliesToShipping(t *testing.T) {
	// Subtotal 50: standard shipping 10, discount 5 (10% of subtotal only).
	items := []pricing.LineItem{item("50", 1)}

	summary, err := pricing.ComputeSummary(items, pricing.ShippingStandard, "welcome10")
	assert.NoError(t, err)
	assert.True(t, summary.Shipping.Equal(dec("10")))
	assert.True(t, summary.Discount.Equal(dec("5.00")), "got %s", summary.Discount)
	assert.True(t, summary.TotalWithDiscount.Equal(dec("55.00")))
}

func TestParseShippingMethod(t *testing.T) {
	m, err := pricing.ParseShippingMethod("")
	assert.NoError(t, err)
	assert.Equal(t, pricing.ShippingStandard, m)

	m, err = pricing.ParseShippingMethod("express")
	assert.NoError(t, err)
	assert.Equal(t, pricing.ShippingExpress, m)

	_, err = pricing.ParseShippingMethod("overnight")
	assert.Error(t, err)
}

func TestSummaryRounded(t *testing.T) {
	// 33.333 * 3 = 99.999; rounding happens only at presentation.
	items := []pricing.LineItem{item("33.333", 3)}

	summary, err := pricing.ComputeSummary(items, pricing.ShippingStandard, "")
	assert.NoError(t, err)
	assert.True(t, summary.Subtotal.Equal(dec("99.999")))

	rounded := summary.Rounded()
	assert.True(t, rounded.Subtotal.Equal(dec("100.00")))
	assert.True(t, summary.Shipping.Equal(dec("10")), "99.999 is not strictly above 100")
}
