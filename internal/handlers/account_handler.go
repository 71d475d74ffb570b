package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/duvallglobal/getlyt/internal/models"
	"github.com/duvallglobal/getlyt/internal/services"
)

// AccountHandler handles the signed-in user's profile, addresses and
// wishlist.
type AccountHandler struct {
	service  *services.AccountService
	validate *validator.Validate
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(service *services.AccountService) *AccountHandler {
	return &AccountHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the account routes. All require auth.
func (h *AccountHandler) RegisterRoutes(router fiber.Router) {
	accountRoutes := router.Group("/account")
	accountRoutes.Get("/profile", h.HandleGetProfile)
	accountRoutes.Put("/profile", h.HandleUpdateProfile)

	accountRoutes.Get("/addresses", h.HandleListAddresses)
	accountRoutes.Post("/addresses", h.HandleAddAddress)
	accountRoutes.Put("/addresses/:id", h.HandleUpdateAddress)
	accountRoutes.Delete("/addresses/:id", h.HandleDeleteAddress)
	accountRoutes.Post("/addresses/:id/default", h.HandleSetDefaultAddress)

	accountRoutes.Get("/wishlist", h.HandleListWishlist)
	accountRoutes.Post("/wishlist/:productId", h.HandleAddToWishlist)
	accountRoutes.Delete("/wishlist/:productId", h.HandleRemoveFromWishlist)
}

// HandleGetProfile returns the user's profile.
func (h *AccountHandler) HandleGetProfile(c *fiber.Ctx) error {
	user, err := h.service.GetProfile(userID(c))
	if err != nil {
		log.Printf("Error getting profile for user %s: %v", userID(c), err)
		return respondError(c, err, "Could not retrieve profile")
	}
	return c.JSON(user)
}

// UpdateProfileRequest represents the request body for a profile update.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name" validate:"omitempty,max=100"`
	LastName  string `json:"last_name" validate:"omitempty,max=100"`
}

// HandleUpdateProfile updates the user's display details.
func (h *AccountHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	user, err := h.service.UpdateProfile(userID(c), req.FirstName, req.LastName)
	if err != nil {
		log.Printf("Error updating profile for user %s: %v", userID(c), err)
		return respondError(c, err, "Could not update profile")
	}
	return c.JSON(user)
}

// HandleListAddresses returns the user's saved addresses.
func (h *AccountHandler) HandleListAddresses(c *fiber.Ctx) error {
	addresses, err := h.service.ListAddresses(userID(c))
	if err != nil {
		log.Printf("Error listing addresses for user %s: %v", userID(c), err)
		return respondError(c, err, "Could not retrieve addresses")
	}
	return c.JSON(addresses)
}

// HandleAddAddress saves a new address.
func (h *AccountHandler) HandleAddAddress(c *fiber.Ctx) error {
	var address models.Address
	if err := c.BodyParser(&address); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	address.ID = ""
	address.UserID = userID(c)
	if err := h.validate.Struct(address); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.service.AddAddress(&address); err != nil {
		log.Printf("Error adding address for user %s: %v", userID(c), err)
		return respondError(c, err, "Could not save address")
	}
	return c.Status(fiber.StatusCreated).JSON(address)
}

// HandleUpdateAddress updates one of the user's addresses.
func (h *AccountHandler) HandleUpdateAddress(c *fiber.Ctx) error {
	var address models.Address
	if err := c.BodyParser(&address); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	address.ID = c.Params("id")
	address.UserID = userID(c)
	if err := h.validate.Struct(address); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.service.UpdateAddress(userID(c), &address); err != nil {
		log.Printf("Error updating address %s: %v", address.ID, err)
		return respondError(c, err, "Could not update address")
	}
	return c.JSON(address)
}

// HandleDeleteAddress removes one of the user's addresses.
func (h *AccountHandler) HandleDeleteAddress(c *fiber.Ctx) error {
	addressID := c.Params("id")
	if err := h.service.DeleteAddress(userID(c), addressID); err != nil {
		log.Printf("Error deleting address %s: %v", addressID, err)
		return respondError(c, err, "Could not delete address")
	}
	return c.JSON(fiber.Map{"message": "Address deleted"})
}

// HandleSetDefaultAddress marks an address as the user's default.
func (h *AccountHandler) HandleSetDefaultAddress(c *fiber.Ctx) error {
	addressID := c.Params("id")
	if err := h.service.SetDefaultAddress(userID(c), addressID); err != nil {
		log.Printf("Error setting default address %s: %v", addressID, err)
		return respondError(c, err, "Could not set default address")
	}
	return c.JSON(fiber.Map{"message": "Default address updated"})
}

// HandleListWishlist returns the products on the user's wishlist.
func (h *AccountHandler) HandleListWishlist(c *fiber.Ctx) error {
	products, err := h.service.ListWishlist(userID(c))
	if err != nil {
		log.Printf("Error listing wishlist for user %s: %v", userID(c), err)
		return respondError(c, err, "Could not retrieve wishlist")
	}
	return c.JSON(products)
}

// HandleAddToWishlist saves a product to the wishlist.
func (h *AccountHandler) HandleAddToWishlist(c *fiber.Ctx) error {
	productID := c.Params("productId")
	if err := h.service.AddToWishlist(userID(c), productID); err != nil {
		log.Printf("Error adding product %s to wishlist: %v", productID, err)
		return respondError(c, err, "Could not add to wishlist")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Added to wishlist"})
}

// HandleRemoveFromWishlist drops a product from the wishlist.
func (h *AccountHandler) HandleRemoveFromWishlist(c *fiber.Ctx) error {
	productID := c.Params("productId")
	if err := h.service.RemoveFromWishlist(userID(c), productID); err != nil {
		log.Printf("Error removing product %s from wishlist: %v", productID, err)
		return respondError(c, err, "Could not remove from wishlist")
	}
	return c.JSON(fiber.Map{"message": "Removed from wishlist"})
}
