package services

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/duvallglobal/getlyt/internal/models"
	"github.com/duvallglobal/getlyt/internal/pricing"
	"github.com/duvallglobal/getlyt/internal/repositories"
	"github.com/duvallglobal/getlyt/pkg/rabbitmq"
)

// EventPublisher publishes storefront events to the message broker. The
// rabbitmq client satisfies this; tests substitute a mock.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// CheckoutService turns a cart into an order: it re-verifies stock, prices
// the cart through the pricing engine, persists the order and notifies
// downstream consumers. Event publication is fire-and-forget; a broker
// failure is logged and never rolls back a placed order.
type CheckoutService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
	orderRepo   repositories.OrderRepository
	publisher   EventPublisher
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(
	cartRepo repositories.CartRepository,
	productRepo repositories.ProductRepository,
	orderRepo repositories.OrderRepository,
	publisher EventPublisher,
) *CheckoutService {
	return &CheckoutService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		publisher:   publisher,
	}
}

// PlaceOrder checks out the user's cart with the chosen shipping method.
func (s *CheckoutService) PlaceOrder(userID string, method pricing.ShippingMethod) (*models.Order, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, models.ErrEmptyCart
	}

	// Stock may have moved since the items were added.
	for _, item := range cart.Items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.Available() {
			return nil, fmt.Errorf("product %s: %w", item.ProductID, models.ErrProductUnavailable)
		}
		if product.Stock < item.Quantity {
			return nil, fmt.Errorf("product %s (requested %d, available %d): %w",
				item.ProductID, item.Quantity, product.Stock, models.ErrOutOfStock)
		}
	}

	summary, err := pricing.ComputeSummary(toLineItems(cart.Items), method, cart.PromoCode)
	if err != nil {
		return nil, err
	}
	summary = summary.Rounded()

	order := &models.Order{
		UserID:         userID,
		Items:          orderItems(cart.Items),
		Subtotal:       summary.Subtotal,
		Shipping:       summary.Shipping,
		Discount:       summary.Discount,
		Tax:            summary.Tax,
		Total:          summary.GrandTotal,
		ShippingMethod: string(method),
		PromoCode:      cart.PromoCode,
		Status:         models.OrderStatusPending,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	// The order stands from here on; bookkeeping failures are logged only.
	for _, item := range order.Items {
		if err := s.productRepo.DecrementStock(item.ProductID, item.Quantity); err != nil {
			log.Printf("Warning: failed to decrement stock for product %s after order %s: %v",
				item.ProductID, order.ID, err)
		}
	}
	if err := s.cartRepo.Clear(cart.ID); err != nil {
		log.Printf("Warning: failed to clear cart %s after order %s: %v", cart.ID, order.ID, err)
	}

	s.publish(rabbitmq.RouteOrderCreated, rabbitmq.OrderCreatedEvent{
		OrderID: order.ID,
		UserID:  order.UserID,
		Status:  order.Status,
		Total:   order.Total.StringFixed(2),
	})

	return order, nil
}

// GetOrder retrieves a single order.
func (s *CheckoutService) GetOrder(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// ListUserOrders retrieves a user's order history.
func (s *CheckoutService) ListUserOrders(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(userID)
}

// UpdateOrderStatus moves an order through its lifecycle. Moving to shipped
// publishes a shipping update with the tracking details.
func (s *CheckoutService) UpdateOrderStatus(id, status, trackingNumber, trackingURL string) error {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if !models.ValidStatusTransition(order.Status, status) {
		return fmt.Errorf("%w: %s -> %s", models.ErrInvalidTransition, order.Status, status)
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}

	if status == models.OrderStatusShipped {
		s.publish(rabbitmq.RouteOrderShipped, rabbitmq.OrderShippedEvent{
			OrderID:        id,
			UserID:         order.UserID,
			TrackingNumber: trackingNumber,
			TrackingURL:    trackingURL,
		})
	}
	return nil
}

// SalesSummary aggregates order history for the admin dashboard.
func (s *CheckoutService) SalesSummary() (*repositories.SalesSummary, error) {
	return s.orderRepo.SalesSummary()
}

func (s *CheckoutService) publish(routingKey string, event interface{}) {
	if s.publisher == nil {
		log.Println("Event publisher is not initialized. Skipping message publication.")
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.publisher.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}

func orderItems(items []models.CartItem) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		out = append(out, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Color:     item.Color,
			Size:      item.Size,
		})
	}
	return out
}
