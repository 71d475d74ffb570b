package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product statuses. Inactive products stay in the catalog tables but cannot
// be added to a cart or ordered.
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// Product represents a purchasable item in the catalog.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string          `json:"name" validate:"required,min=3,max=100"`
	Description string          `json:"description" validate:"omitempty,max=500"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(16,2)" validate:"required"`
	Category    string          `json:"category" validate:"omitempty,max=100"`
	Colors      []string        `json:"colors" gorm:"serializer:json"`
	Sizes       []string        `json:"sizes" gorm:"serializer:json"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Status      string          `json:"status" validate:"omitempty,oneof=active inactive"`
	ImageURL    string          `json:"image_url" validate:"omitempty,max=500"`
	gorm.Model  `json:"-"`
}

// Available reports whether the product can currently be added to a cart.
func (p *Product) Available() bool {
	return p.Status != ProductStatusInactive
}
