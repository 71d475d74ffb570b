package repositories

import (
	"github.com/shopspring/decimal"

	"github.com/duvallglobal/getlyt/internal/models"
)

// SalesSummary aggregates order history for the admin dashboard.
type SalesSummary struct {
	OrderCount   int64           `json:"order_count"`
	Revenue      decimal.Decimal `json:"revenue"`
	AverageOrder decimal.Decimal `json:"average_order"`
}

// OrderRepository defines the interface for order data access. Orders are
// never deleted; cancellation is a status change.
type OrderRepository interface {
	GetByUserID(userID string) ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error
	UpdateStatus(id string, status string) error
	SalesSummary() (*SalesSummary, error)
}
