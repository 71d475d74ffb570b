// Package pricing derives order totals from cart line items, a shipping
// method and an optional promo code. All arithmetic runs on decimals; values
// are rounded to two places only when a summary is presented or persisted.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/duvallglobal/getlyt/internal/models"
)

// ShippingMethod selects how an order is delivered.
type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
)

var (
	// Standard shipping is free strictly above this subtotal. A subtotal of
	// exactly 100.00 still pays the flat rate.
	freeShippingThreshold = decimal.NewFromInt(100)
	standardShippingCost  = decimal.NewFromInt(10)
	expressShippingCost   = decimal.NewFromInt(15)

	// Tax is charged on the pre-discount subtotal. Intentional business
	// rule: applying a promo does not reduce the taxed amount.
	taxRate = decimal.RequireFromString("0.08")
)

// ParseShippingMethod maps a request string onto a shipping method. An empty
// string selects the default, standard.
func ParseShippingMethod(s string) (ShippingMethod, error) {
	switch ShippingMethod(s) {
	case "":
		return ShippingStandard, nil
	case ShippingStandard, ShippingExpress:
		return ShippingMethod(s), nil
	}
	return "", fmt.Errorf("unknown shipping method %q", s)
}

// LineItem is the engine's view of one cart line.
type LineItem struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Summary holds every monetary total derived from a cart. The cart page and
// the checkout page historically composed totals differently, so both views
// are kept explicit alongside the unified figure an order is persisted with.
type Summary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Discount decimal.Decimal `json:"discount"`
	Tax      decimal.Decimal `json:"tax"`

	// TotalWithDiscount is the cart view: subtotal + shipping - discount.
	TotalWithDiscount decimal.Decimal `json:"total_with_discount"`
	// TotalWithTax is the checkout view: subtotal + shipping + tax.
	TotalWithTax decimal.Decimal `json:"total_with_tax"`
	// GrandTotal applies both: subtotal + shipping - discount + tax.
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// Rounded returns the summary with every amount rounded to two places, for
// presentation and persistence.
func (s Summary) Rounded() Summary {
	return Summary{
		Subtotal:          s.Subtotal.Round(2),
		Shipping:          s.Shipping.Round(2),
		Discount:          s.Discount.Round(2),
		Tax:               s.Tax.Round(2),
		TotalWithDiscount: s.TotalWithDiscount.Round(2),
		TotalWithTax:      s.TotalWithTax.Round(2),
		GrandTotal:        s.GrandTotal.Round(2),
	}
}

// Subtotal sums unit price times quantity over all line items. Order of items
// does not affect the result. A negative price or a quantity below 1 is a
// precondition violation.
func Subtotal(items []LineItem) (decimal.Decimal, error) {
	subtotal := decimal.Zero
	for _, item := range items {
		if item.UnitPrice.IsNegative() {
			return decimal.Zero, fmt.Errorf("%w: product %s has negative unit price %s",
				models.ErrInvalidLineItem, item.ProductID, item.UnitPrice)
		}
		if item.Quantity < 1 {
			return decimal.Zero, fmt.Errorf("%w: product %s has quantity %d",
				models.ErrInvalidLineItem, item.ProductID, item.Quantity)
		}
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return subtotal, nil
}

// ShippingCost resolves the shipping charge for a method given the
// pre-discount subtotal.
func ShippingCost(method ShippingMethod, subtotal decimal.Decimal) decimal.Decimal {
	switch method {
	case ShippingExpress:
		return expressShippingCost
	default:
		if subtotal.GreaterThan(freeShippingThreshold) {
			return decimal.Zero
		}
		return standardShippingCost
	}
}

// ComputeSummary derives all totals for a cart. An empty or unknown promo
// code contributes no discount; promo validation with user feedback happens
// when the code is applied to the cart, not here.
func ComputeSummary(items []LineItem, method ShippingMethod, promoCode string) (Summary, error) {
	subtotal, err := Subtotal(items)
	if err != nil {
		return Summary{}, err
	}

	shipping := ShippingCost(method, subtotal)

	discount := decimal.Zero
	if promo := ValidatePromoCode(promoCode); promo.Valid {
		discount = subtotal.Mul(promo.DiscountRate)
	}

	tax := subtotal.Mul(taxRate)

	return Summary{
		Subtotal:          subtotal,
		Shipping:          shipping,
		Discount:          discount,
		Tax:               tax,
		TotalWithDiscount: subtotal.Add(shipping).Sub(discount),
		TotalWithTax:      subtotal.Add(shipping).Add(tax),
		GrandTotal:        subtotal.Add(shipping).Sub(discount).Add(tax),
	}, nil
}
