package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order statuses and the transitions allowed between them.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

var orderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
}

// ValidStatusTransition reports whether an order may move from one status to
// another. Delivered and cancelled are terminal.
func ValidStatusTransition(from, to string) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// OrderItem captures a line at the moment of purchase, including the unit
// price charged, so later catalog edits do not rewrite order history.
type OrderItem struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string          `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductID string          `json:"product_id" gorm:"type:varchar(36)"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(16,2)"`
	Quantity  int             `json:"quantity"`
	Color     string          `json:"color"`
	Size      string          `json:"size"`
}

// BeforeCreate assigns a UUID when the item is first persisted.
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}

// Order is a completed checkout. The monetary fields are copied from the
// pricing engine's summary at placement time and never recomputed.
type Order struct {
	ID             string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID         string          `json:"user_id" gorm:"index;type:varchar(36)"`
	Items          []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
	Subtotal       decimal.Decimal `json:"subtotal" gorm:"type:decimal(16,2)"`
	Shipping       decimal.Decimal `json:"shipping" gorm:"type:decimal(16,2)"`
	Discount       decimal.Decimal `json:"discount" gorm:"type:decimal(16,2)"`
	Tax            decimal.Decimal `json:"tax" gorm:"type:decimal(16,2)"`
	Total          decimal.Decimal `json:"total" gorm:"type:decimal(16,2)"`
	ShippingMethod string          `json:"shipping_method"`
	PromoCode      string          `json:"promo_code"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `json:"-" gorm:"index"`
}
