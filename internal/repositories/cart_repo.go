package repositories

import (
	"github.com/duvallglobal/getlyt/internal/models"
)

// CartRepository defines the interface for cart data access. Every mutation
// is confirmed by the store before the caller sees an updated cart; a failed
// write leaves the stored cart untouched.
type CartRepository interface {
	// GetByUserID loads the user's cart with its items, creating an empty
	// cart on first access.
	GetByUserID(userID string) (*models.Cart, error)
	SaveItem(item *models.CartItem) error
	DeleteItem(itemID string) error
	SetPromoCode(cartID, code string) error
	// Clear removes all items and the promo code, e.g. after checkout.
	Clear(cartID string) error
}
