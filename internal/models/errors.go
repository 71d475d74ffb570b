package models

import "errors"

// Domain errors surfaced by the cart and checkout flows. Handlers map these
// to HTTP statuses; everything else is treated as an internal failure.
var (
	ErrNotFound            = errors.New("record not found")
	ErrInvalidLineItem     = errors.New("invalid line item")
	ErrOutOfStock          = errors.New("product is out of stock")
	ErrProductUnavailable  = errors.New("product is unavailable")
	ErrInvalidPromoCode    = errors.New("invalid promo code")
	ErrPromoAlreadyApplied = errors.New("a promo code is already applied")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInvalidTransition   = errors.New("invalid order status transition")
)
