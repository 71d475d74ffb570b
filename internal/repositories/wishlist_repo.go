package repositories

import "github.com/duvallglobal/getlyt/internal/models"

// WishlistRepository defines the interface for wishlist data access.
type WishlistRepository interface {
	GetByUserID(userID string) ([]models.WishlistItem, error)
	Add(item *models.WishlistItem) error
	Remove(userID, productID string) error
}
