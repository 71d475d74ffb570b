package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// promoCodes maps known codes (lowercase) to their discount rate on subtotal.
var promoCodes = map[string]decimal.Decimal{
	"welcome10": decimal.RequireFromString("0.10"),
}

// PromoResult is the outcome of validating a promo code.
type PromoResult struct {
	Valid        bool            `json:"valid"`
	DiscountRate decimal.Decimal `json:"discount_rate"`
}

// ValidatePromoCode checks a code against the known-code table. Matching is
// case-insensitive and has no side effects; an unknown or empty code is
// simply invalid.
func ValidatePromoCode(code string) PromoResult {
	rate, ok := promoCodes[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return PromoResult{}
	}
	return PromoResult{Valid: true, DiscountRate: rate}
}
