package models

import "gorm.io/gorm"

// User roles. Admin unlocks the product-management and analytics routes.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User represents a registered storefront customer.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	FirstName  string `json:"first_name" validate:"omitempty,max=100"`
	LastName   string `json:"last_name" validate:"omitempty,max=100"`
	Role       string `json:"role" validate:"omitempty,oneof=customer admin"`
	gorm.Model `json:"-"`
}

// Address is a saved shipping address belonging to a user. At most one
// address per user carries IsDefault.
type Address struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID     string `json:"user_id" gorm:"index;type:varchar(36)" validate:"required"`
	Label      string `json:"label" validate:"omitempty,max=50"`
	Street     string `json:"street" validate:"required,max=200"`
	City       string `json:"city" validate:"required,max=100"`
	State      string `json:"state" validate:"omitempty,max=100"`
	ZipCode    string `json:"zip_code" validate:"required,max=20"`
	Country    string `json:"country" validate:"required,max=100"`
	IsDefault  bool   `json:"is_default"`
	gorm.Model `json:"-"`
}

// WishlistItem marks a product a user has saved for later. Unique per
// (user, product).
type WishlistItem struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string `json:"user_id" gorm:"index:idx_wishlist_user_product,unique;type:varchar(36)"`
	ProductID  string `json:"product_id" gorm:"index:idx_wishlist_user_product,unique;type:varchar(36)"`
	gorm.Model `json:"-"`
}
