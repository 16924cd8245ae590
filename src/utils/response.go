package utils

import (
	"Coaching-Management-Backend/src/models"

	"github.com/gofiber/fiber/v2"
)

// SendSuccess writes the success envelope.
func SendSuccess(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(models.Response{
		Status:  status,
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SendPage writes a list with its pagination block; meta may be nil.
func SendPage(c *fiber.Ctx, message string, data interface{}, meta *models.PaginationMeta) error {
	return c.Status(fiber.StatusOK).JSON(models.Response{
		Status:  fiber.StatusOK,
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}
