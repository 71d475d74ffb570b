package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/duvallglobal/getlyt/internal/models"
)

// respondError maps domain errors onto HTTP statuses and renders the
// standard message/error JSON body.
func respondError(c *fiber.Ctx, err error, message string) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, models.ErrOutOfStock),
		errors.Is(err, models.ErrProductUnavailable),
		errors.Is(err, models.ErrPromoAlreadyApplied):
		status = fiber.StatusConflict
	case errors.Is(err, models.ErrInvalidPromoCode),
		errors.Is(err, models.ErrInvalidLineItem),
		errors.Is(err, models.ErrEmptyCart),
		errors.Is(err, models.ErrInvalidTransition):
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// userID pulls the authenticated user's ID out of the request Locals.
func userID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
