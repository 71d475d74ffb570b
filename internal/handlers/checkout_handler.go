package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/duvallglobal/getlyt/internal/models"
	"github.com/duvallglobal/getlyt/internal/pricing"
	"github.com/duvallglobal/getlyt/internal/services"
)

// CheckoutHandler handles order placement and order history.
type CheckoutHandler struct {
	service *services.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// RegisterRoutes registers the checkout and order routes. All require auth.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/checkout", h.HandlePlaceOrder)
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleListOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
}

// PlaceOrderRequest represents the request body for checkout.
type PlaceOrderRequest struct {
	ShippingMethod string `json:"shipping_method"`
}

// HandlePlaceOrder checks out the user's cart.
func (h *CheckoutHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	var req PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	method, err := pricing.ParseShippingMethod(req.ShippingMethod)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid shipping method",
			"error":   err.Error(),
		})
	}

	order, err := h.service.PlaceOrder(userID(c), method)
	if err != nil {
		log.Printf("Error placing order for user %s: %v", userID(c), err)
		return respondError(c, err, "Could not place order")
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleListOrders returns the signed-in user's order history.
func (h *CheckoutHandler) HandleListOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListUserOrders(userID(c))
	if err != nil {
		log.Printf("Error listing orders for user %s: %v", userID(c), err)
		return respondError(c, err, "Could not retrieve orders")
	}
	return c.JSON(orders)
}

// HandleGetOrderByID returns one of the signed-in user's orders.
func (h *CheckoutHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetOrder(orderID)
	if err != nil {
		log.Printf("Error getting order by ID %s: %v", orderID, err)
		return respondError(c, err, "Could not retrieve order")
	}
	// Orders are private to their owner.
	if order.UserID != userID(c) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Could not retrieve order",
			"error":   models.ErrNotFound.Error(),
		})
	}
	return c.JSON(order)
}
