package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/duvallglobal/getlyt/internal/models"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

// GetByUserID loads a user's cart with its items, creating it on first use.
func (r *GORMCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).First(&cart, "user_id = ?", userID).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load cart for user %s: %w", userID, err)
	}

	cart = models.Cart{UserID: userID}
	if err := r.db.Create(&cart).Error; err != nil {
		return nil, fmt.Errorf("failed to create cart for user %s: %w", userID, err)
	}
	return &cart, nil
}

// SaveItem inserts or updates a single line item.
func (r *GORMCartRepository) SaveItem(item *models.CartItem) error {
	if err := r.db.Save(item).Error; err != nil {
		return fmt.Errorf("failed to save cart item: %w", err)
	}
	return nil
}

// DeleteItem removes a line item by its ID.
func (r *GORMCartRepository) DeleteItem(itemID string) error {
	res := r.db.Delete(&models.CartItem{}, "id = ?", itemID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete cart item %s: %w", itemID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item with ID %s: %w", itemID, models.ErrNotFound)
	}
	return nil
}

// SetPromoCode stores the applied promo code on the cart (empty clears it).
func (r *GORMCartRepository) SetPromoCode(cartID, code string) error {
	res := r.db.Model(&models.Cart{}).Where("id = ?", cartID).Update("promo_code", code)
	if res.Error != nil {
		return fmt.Errorf("failed to set promo code on cart %s: %w", cartID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart with ID %s: %w", cartID, models.ErrNotFound)
	}
	return nil
}

// Clear removes every item and the promo code from a cart.
func (r *GORMCartRepository) Clear(cartID string) error {
	if err := r.db.Delete(&models.CartItem{}, "cart_id = ?", cartID).Error; err != nil {
		return fmt.Errorf("failed to clear items for cart %s: %w", cartID, err)
	}
	return r.SetPromoCode(cartID, "")
}
