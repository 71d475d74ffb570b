package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/duvallglobal/getlyt/internal/models"
	"github.com/duvallglobal/getlyt/internal/services"
	"github.com/duvallglobal/getlyt/pkg/storage"
)

// AdminHandler handles product management, image upload, order fulfillment
// and the analytics dashboard.
type AdminHandler struct {
	products *services.ProductService
	orders   *services.CheckoutService
	images   storage.ImageStore
	validate *validator.Validate
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(products *services.ProductService, orders *services.CheckoutService, images storage.ImageStore) *AdminHandler {
	return &AdminHandler{
		products: products,
		orders:   orders,
		images:   images,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the admin routes. All require an admin token.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	adminRoutes := router.Group("/admin")
	adminRoutes.Post("/products", h.HandleCreateProduct)
	adminRoutes.Put("/products/:id", h.HandleUpdateProduct)
	adminRoutes.Delete("/products/:id", h.HandleDeleteProduct)
	adminRoutes.Post("/products/:id/image", h.HandleUploadProductImage)
	adminRoutes.Patch("/orders/:id/status", h.HandleUpdateOrderStatus)
	adminRoutes.Get("/analytics", h.HandleSalesSummary)
}

// HandleCreateProduct adds a product to the catalog.
func (h *AdminHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(product); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.products.CreateProduct(&product); err != nil {
		log.Printf("Error creating product: %v", err)
		return respondError(c, err, "Could not create product")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct updates an existing product.
func (h *AdminHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	product.ID = c.Params("id")
	if err := h.validate.Struct(product); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.products.UpdateProduct(&product); err != nil {
		log.Printf("Error updating product %s: %v", product.ID, err)
		return respondError(c, err, "Could not update product")
	}
	return c.JSON(product)
}

// HandleDeleteProduct removes a product from the catalog.
func (h *AdminHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	if err := h.products.DeleteProduct(productID); err != nil {
		log.Printf("Error deleting product %s: %v", productID, err)
		return respondError(c, err, "Could not delete product")
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// HandleUploadProductImage stores an uploaded image and records its URL on
// the product. The multipart field name is "image".
func (h *AdminHandler) HandleUploadProductImage(c *fiber.Ctx) error {
	productID := c.Params("id")

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "An 'image' file field is required",
			"error":   err.Error(),
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not read uploaded file",
			"error":   err.Error(),
		})
	}
	defer file.Close()

	url, err := h.images.Save(fileHeader.Filename, file)
	if err != nil {
		log.Printf("Error storing image for product %s: %v", productID, err)
		return respondError(c, err, "Could not store image")
	}

	product, err := h.products.AttachImage(productID, url)
	if err != nil {
		log.Printf("Error attaching image to product %s: %v", productID, err)
		// The product row was not updated; don't leave the file orphaned.
		if cleanupErr := h.images.Delete(url); cleanupErr != nil {
			log.Printf("Error cleaning up image %s: %v", url, cleanupErr)
		}
		return respondError(c, err, "Could not attach image to product")
	}
	return c.JSON(product)
}

// UpdateOrderStatusRequest represents the request body for an order status
// change.
type UpdateOrderStatusRequest struct {
	Status         string `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
	TrackingNumber string `json:"tracking_number"`
	TrackingURL    string `json:"tracking_url"`
}

// HandleUpdateOrderStatus moves an order through its lifecycle.
func (h *AdminHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var req UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	orderID := c.Params("id")
	if err := h.orders.UpdateOrderStatus(orderID, req.Status, req.TrackingNumber, req.TrackingURL); err != nil {
		log.Printf("Error updating order status for order %s: %v", orderID, err)
		return respondError(c, err, "Could not update order status")
	}
	return c.JSON(fiber.Map{
		"message": "Order status updated",
		"status":  req.Status,
	})
}

// HandleSalesSummary returns aggregated order metrics.
func (h *AdminHandler) HandleSalesSummary(c *fiber.Ctx) error {
	summary, err := h.orders.SalesSummary()
	if err != nil {
		log.Printf("Error aggregating sales: %v", err)
		return respondError(c, err, "Could not aggregate sales")
	}
	return c.JSON(summary)
}
