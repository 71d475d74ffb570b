package services

import (
	"fmt"

	"github.com/duvallglobal/getlyt/internal/models"
	"github.com/duvallglobal/getlyt/internal/pricing"
	"github.com/duvallglobal/getlyt/internal/repositories"
)

// CartService handles cart mutations. Each operation writes through the
// repository before returning the updated cart, so a failed write never
// leaves the caller looking at state the store does not have.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart loads the user's cart, creating an empty one on first access.
func (s *CartService) GetCart(userID string) (*models.Cart, error) {
	return s.cartRepo.GetByUserID(userID)
}

// Summary computes the cart's totals for the given shipping method.
func (s *CartService) Summary(userID string, method pricing.ShippingMethod) (pricing.Summary, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return pricing.Summary{}, err
	}
	summary, err := pricing.ComputeSummary(toLineItems(cart.Items), method, cart.PromoCode)
	if err != nil {
		return pricing.Summary{}, err
	}
	return summary.Rounded(), nil
}

// AddItem puts qty units of a product variant into the cart. Adding a
// variant that is already present merges into the existing line instead of
// creating a second row. The product must be active and have enough stock to
// cover the resulting line quantity.
func (s *CartService) AddItem(userID, productID, color, size string, qty int) (*models.Cart, error) {
	if qty < 1 {
		return nil, fmt.Errorf("%w: quantity %d", models.ErrInvalidLineItem, qty)
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if !product.Available() {
		return nil, fmt.Errorf("product %s: %w", productID, models.ErrProductUnavailable)
	}
	if product.Stock == 0 {
		return nil, fmt.Errorf("product %s: %w", productID, models.ErrOutOfStock)
	}

	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	var item *models.CartItem
	for idx := range cart.Items {
		if cart.Items[idx].SameVariant(productID, color, size) {
			item = &cart.Items[idx]
			break
		}
	}

	newQty := qty
	if item != nil {
		newQty = item.Quantity + qty
	}
	if product.Stock < newQty {
		return nil, fmt.Errorf("product %s (requested %d, available %d): %w",
			productID, newQty, product.Stock, models.ErrOutOfStock)
	}

	if item == nil {
		item = &models.CartItem{
			CartID:    cart.ID,
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Color:     color,
			Size:      size,
		}
	}
	item.Quantity = newQty

	if err := s.cartRepo.SaveItem(item); err != nil {
		return nil, err
	}
	return s.cartRepo.GetByUserID(userID)
}

// SetQuantity changes a line item's quantity. Values below 1 are a no-op at
// the floor: the item stays at its previous quantity and is never removed
// here. Removal goes through RemoveItem only.
func (s *CartService) SetQuantity(userID, itemID string, qty int) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	item := cart.FindItem(itemID)
	if item == nil {
		return nil, fmt.Errorf("cart item with ID %s: %w", itemID, models.ErrNotFound)
	}

	if qty < 1 || qty == item.Quantity {
		return cart, nil
	}

	item.Quantity = qty
	if err := s.cartRepo.SaveItem(item); err != nil {
		return nil, err
	}
	return s.cartRepo.GetByUserID(userID)
}

// RemoveItem deletes a line item. An empty cart afterwards is a valid state.
func (s *CartService) RemoveItem(userID, itemID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if cart.FindItem(itemID) == nil {
		return nil, fmt.Errorf("cart item with ID %s: %w", itemID, models.ErrNotFound)
	}
	if err := s.cartRepo.DeleteItem(itemID); err != nil {
		return nil, err
	}
	return s.cartRepo.GetByUserID(userID)
}

// ApplyPromo validates and applies a promo code. A cart holds at most one
// active promo; while one is applied, further applies are rejected until the
// promo is explicitly cleared.
func (s *CartService) ApplyPromo(userID, code string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if cart.PromoCode != "" {
		return nil, models.ErrPromoAlreadyApplied
	}

	promo := pricing.ValidatePromoCode(code)
	if !promo.Valid {
		return nil, fmt.Errorf("%q: %w", code, models.ErrInvalidPromoCode)
	}

	if err := s.cartRepo.SetPromoCode(cart.ID, code); err != nil {
		return nil, err
	}
	return s.cartRepo.GetByUserID(userID)
}

// ClearPromo removes the applied promo code, unlocking ApplyPromo again.
func (s *CartService) ClearPromo(userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if cart.PromoCode == "" {
		return cart, nil
	}
	if err := s.cartRepo.SetPromoCode(cart.ID, ""); err != nil {
		return nil, err
	}
	return s.cartRepo.GetByUserID(userID)
}

func toLineItems(items []models.CartItem) []pricing.LineItem {
	lineItems := make([]pricing.LineItem, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, pricing.LineItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	return lineItems
}
