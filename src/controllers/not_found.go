package controllers

import (
	"Coaching-Management-Backend/src/constants"
	"Coaching-Management-Backend/src/models"

	"github.com/gofiber/fiber/v2"
)

// NotFound is the catch-all for unmatched routes.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
		Status:  fiber.StatusNotFound,
		Success: false,
		Message: constants.MsgURLNotFound,
		Path:    c.OriginalURL(),
	})
}
