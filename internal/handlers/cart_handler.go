package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/duvallglobal/getlyt/internal/pricing"
	"github.com/duvallglobal/getlyt/internal/services"
)

// CartHandler handles the signed-in user's cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes. All of them require auth.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:id", h.HandleSetQuantity)
	cartRoutes.Delete("/items/:id", h.HandleRemoveItem)
	cartRoutes.Post("/promo", h.HandleApplyPromo)
	cartRoutes.Delete("/promo", h.HandleClearPromo)
}

// cartResponse renders the cart alongside its freshly computed totals.
func (h *CartHandler) cartResponse(c *fiber.Ctx, uid string) error {
	cart, err := h.service.GetCart(uid)
	if err != nil {
		return respondError(c, err, "Could not load cart")
	}

	method, err := pricing.ParseShippingMethod(c.Query("shipping_method"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid shipping method",
			"error":   err.Error(),
		})
	}

	summary, err := h.service.Summary(uid, method)
	if err != nil {
		return respondError(c, err, "Could not compute cart totals")
	}
	return c.JSON(fiber.Map{
		"cart":    cart,
		"summary": summary,
	})
}

// HandleGetCart returns the cart and its totals.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	return h.cartResponse(c, userID(c))
}

// AddItemRequest represents the request body for adding a product to the
// cart.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// HandleAddItem adds a product variant to the cart, merging with an existing
// line for the same variant.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	if _, err := h.service.AddItem(userID(c), req.ProductID, req.Color, req.Size, req.Quantity); err != nil {
		log.Printf("Error adding item to cart: %v", err)
		return respondError(c, err, "Could not add item to cart")
	}
	return h.cartResponse(c, userID(c))
}

// SetQuantityRequest represents the request body for a quantity change.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// HandleSetQuantity changes a line item's quantity. Quantities below 1 leave
// the line unchanged.
func (h *CartHandler) HandleSetQuantity(c *fiber.Ctx) error {
	var req SetQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if _, err := h.service.SetQuantity(userID(c), c.Params("id"), req.Quantity); err != nil {
		log.Printf("Error updating cart item quantity: %v", err)
		return respondError(c, err, "Could not update quantity")
	}
	return h.cartResponse(c, userID(c))
}

// HandleRemoveItem deletes a line item from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	if _, err := h.service.RemoveItem(userID(c), c.Params("id")); err != nil {
		log.Printf("Error removing cart item: %v", err)
		return respondError(c, err, "Could not remove item")
	}
	return h.cartResponse(c, userID(c))
}

// ApplyPromoRequest represents the request body for applying a promo code.
type ApplyPromoRequest struct {
	Code string `json:"code" validate:"required"`
}

// HandleApplyPromo applies a promo code to the cart.
func (h *CartHandler) HandleApplyPromo(c *fiber.Ctx) error {
	var req ApplyPromoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	if _, err := h.service.ApplyPromo(userID(c), req.Code); err != nil {
		log.Printf("Error applying promo code: %v", err)
		return respondError(c, err, "Could not apply promo code")
	}
	return h.cartResponse(c, userID(c))
}

// HandleClearPromo removes the applied promo code.
func (h *CartHandler) HandleClearPromo(c *fiber.Ctx) error {
	if _, err := h.service.ClearPromo(userID(c)); err != nil {
		log.Printf("Error clearing promo code: %v", err)
		return respondError(c, err, "Could not clear promo code")
	}
	return h.cartResponse(c, userID(c))
}
