package repositories

import (
	"github.com/shopspring/decimal"

	"github.com/duvallglobal/getlyt/internal/models"
)

// Product sort orders accepted by ProductFilter.
const (
	SortFeatured  = "featured"
	SortNewest    = "newest"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

// ProductFilter narrows and orders a catalog listing. Zero values mean
// "no constraint".
type ProductFilter struct {
	Category string
	Color    string
	Size     string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	SortBy   string
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(filter ProductFilter) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	// DecrementStock reduces on-hand stock after a sale; it fails if fewer
	// than qty units remain.
	DecrementStock(id string, qty int) error
}
