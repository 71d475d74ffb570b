package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/duvallglobal/getlyt/internal/models"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	carts map[string]models.Cart     // keyed by cart ID
	items map[string]models.CartItem // keyed by item ID
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		carts: make(map[string]models.Cart),
		items: make(map[string]models.CartItem),
	}
}

// GetByUserID loads a user's cart, creating it on first use.
func (r *MockCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, cart := range r.carts {
		if cart.UserID == userID {
			loaded := cart
			loaded.Items = r.itemsForCart(cart.ID)
			return &loaded, nil
		}
	}

	cart := models.Cart{ID: uuid.New().String(), UserID: userID}
	r.carts[cart.ID] = cart
	return &cart, nil
}

func (r *MockCartRepository) itemsForCart(cartID string) []models.CartItem {
	var items []models.CartItem
	for _, item := range r.items {
		if item.CartID == cartID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items
}

// SaveItem inserts or updates a line item.
func (r *MockCartRepository) SaveItem(item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	item.UpdatedAt = time.Now()
	r.items[item.ID] = *item
	return nil
}

// DeleteItem removes a line item.
func (r *MockCartRepository) DeleteItem(itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[itemID]; !ok {
		return fmt.Errorf("cart item with ID %s: %w", itemID, models.ErrNotFound)
	}
	delete(r.items, itemID)
	return nil
}

// SetPromoCode stores the applied promo code (empty clears it).
func (r *MockCartRepository) SetPromoCode(cartID, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[cartID]
	if !ok {
		return fmt.Errorf("cart with ID %s: %w", cartID, models.ErrNotFound)
	}
	cart.PromoCode = code
	r.carts[cartID] = cart
	return nil
}

// Clear removes every item and the promo code from a cart.
func (r *MockCartRepository) Clear(cartID string) error {
	r.mu.Lock()

	cart, ok := r.carts[cartID]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("cart with ID %s: %w", cartID, models.ErrNotFound)
	}
	for id, item := range r.items {
		if item.CartID == cartID {
			delete(r.items, id)
		}
	}
	cart.PromoCode = ""
	r.carts[cartID] = cart
	r.mu.Unlock()
	return nil
}
