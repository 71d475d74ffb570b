package services

import (
	"fmt"

	"github.com/duvallglobal/getlyt/internal/models"
	"github.com/duvallglobal/getlyt/internal/repositories"
)

// AccountService handles the signed-in user's profile, saved addresses and
// wishlist.
type AccountService struct {
	userRepo     repositories.UserRepository
	addressRepo  repositories.AddressRepository
	wishlistRepo repositories.WishlistRepository
	productRepo  repositories.ProductRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(
	userRepo repositories.UserRepository,
	addressRepo repositories.AddressRepository,
	wishlistRepo repositories.WishlistRepository,
	productRepo repositories.ProductRepository,
) *AccountService {
	return &AccountService{
		userRepo:     userRepo,
		addressRepo:  addressRepo,
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// GetProfile returns the user's profile with the password hash blanked.
func (s *AccountService) GetProfile(userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// UpdateProfile updates the user's display details.
func (s *AccountService) UpdateProfile(userID, firstName, lastName string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.FirstName = firstName
	user.LastName = lastName
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// ListAddresses returns the user's saved addresses, default first.
func (s *AccountService) ListAddresses(userID string) ([]models.Address, error) {
	return s.addressRepo.GetByUserID(userID)
}

// AddAddress saves a new address. The user's first address automatically
// becomes their default.
func (s *AccountService) AddAddress(address *models.Address) error {
	existing, err := s.addressRepo.GetByUserID(address.UserID)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		address.IsDefault = true
	}
	if err := s.addressRepo.Create(address); err != nil {
		return err
	}
	if address.IsDefault && len(existing) > 0 {
		return s.addressRepo.SetDefault(address.UserID, address.ID)
	}
	return nil
}

// UpdateAddress updates an address the user owns.
func (s *AccountService) UpdateAddress(userID string, address *models.Address) error {
	stored, err := s.addressRepo.GetByID(address.ID)
	if err != nil {
		return err
	}
	if stored.UserID != userID {
		return fmt.Errorf("address with ID %s: %w", address.ID, models.ErrNotFound)
	}
	address.UserID = userID
	return s.addressRepo.Update(address)
}

// DeleteAddress removes an address the user owns.
func (s *AccountService) DeleteAddress(userID, addressID string) error {
	stored, err := s.addressRepo.GetByID(addressID)
	if err != nil {
		return err
	}
	if stored.UserID != userID {
		return fmt.Errorf("address with ID %s: %w", addressID, models.ErrNotFound)
	}
	return s.addressRepo.Delete(addressID)
}

// SetDefaultAddress marks one of the user's addresses as their default.
func (s *AccountService) SetDefaultAddress(userID, addressID string) error {
	return s.addressRepo.SetDefault(userID, addressID)
}

// ListWishlist returns the products the user has saved.
func (s *AccountService) ListWishlist(userID string) ([]models.Product, error) {
	items, err := s.wishlistRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	products := make([]models.Product, 0, len(items))
	for _, item := range items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			// Product removed from the catalog; skip the stale entry.
			continue
		}
		products = append(products, *product)
	}
	return products, nil
}

// AddToWishlist saves a product to the user's wishlist. Re-adding the same
// product is a no-op.
func (s *AccountService) AddToWishlist(userID, productID string) error {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return err
	}
	return s.wishlistRepo.Add(&models.WishlistItem{UserID: userID, ProductID: productID})
}

// RemoveFromWishlist drops a product from the user's wishlist.
func (s *AccountService) RemoveFromWishlist(userID, productID string) error {
	return s.wishlistRepo.Remove(userID, productID)
}
