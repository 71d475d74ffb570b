package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartItem is a single line in a cart: one product variant and a quantity.
// Quantity never drops below 1; an item leaves the cart only via removal.
type CartItem struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CartID    string          `json:"cart_id" gorm:"index;type:varchar(36)"`
	ProductID string          `json:"product_id" gorm:"type:varchar(36)" validate:"required"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(16,2)"`
	Quantity  int             `json:"quantity" validate:"gte=1"`
	Color     string          `json:"color"`
	Size      string          `json:"size"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BeforeCreate assigns a UUID when the item is first persisted.
func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}

// SameVariant reports whether another line refers to the same product in the
// same color and size. Adding a matching variant merges quantities instead of
// creating a second row.
func (i *CartItem) SameVariant(productID, color, size string) bool {
	return i.ProductID == productID && i.Color == color && i.Size == size
}

// Cart holds a user's line items and the promo code applied to them, if any.
// Each user owns exactly one cart.
type Cart struct {
	ID         string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string     `json:"user_id" gorm:"uniqueIndex;type:varchar(36)"`
	PromoCode  string     `json:"promo_code"`
	Items      []CartItem `json:"items" gorm:"foreignKey:CartID"`
	gorm.Model `json:"-"`
}

// BeforeCreate assigns a UUID when the cart is first persisted.
func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// FindItem returns the line item with the given ID, or nil.
func (c *Cart) FindItem(itemID string) *CartItem {
	for idx := range c.Items {
		if c.Items[idx].ID == itemID {
			return &c.Items[idx]
		}
	}
	return nil
}
