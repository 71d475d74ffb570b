package repositories

import "github.com/duvallglobal/getlyt/internal/models"

// AddressRepository defines the interface for saved-address data access.
type AddressRepository interface {
	GetByUserID(userID string) ([]models.Address, error)
	GetByID(id string) (*models.Address, error)
	Create(address *models.Address) error
	Update(address *models.Address) error
	Delete(id string) error
	// SetDefault marks one address as the user's default and clears the
	// flag on all their others.
	SetDefault(userID, addressID string) error
}
