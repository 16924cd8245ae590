package controllers

import (
	"errors"

	"Coaching-Management-Backend/src/constants"
	"Coaching-Management-Backend/src/logger"
	"Coaching-Management-Backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the fiber.Config ErrorHandler. Errors that escape a handler
// are logged; the client only sees the status and a generic message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := constants.MsgInternalError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		if code < fiber.StatusInternalServerError {
			message = fe.Message
		}
	}

	if code >= fiber.StatusInternalServerError {
		logger.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("unhandled error")
	}
	return utils.HandleError(c, code, message)
}
