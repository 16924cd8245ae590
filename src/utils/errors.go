package utils

import (
	"errors"

	"Coaching-Management-Backend/src/constants"
	"Coaching-Management-Backend/src/logger"
	"Coaching-Management-Backend/src/models"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicate          = errors.New("duplicate key")
	ErrMissingFields      = errors.New("required fields missing")
	ErrInvalidID          = errors.New("invalid id")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveAccount    = errors.New("account is inactive")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidToken       = errors.New("invalid token")
	ErrPasswordMismatch   = errors.New("current password does not match")
)

// HandleError writes the error envelope.
func HandleError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		Status:  status,
		Success: false,
		Message: message,
	})
}

// HandleServiceError maps a service error to a status code. notFound is the
// resource specific message used for ErrNotFound; conflict for ErrDuplicate.
func HandleServiceError(c *fiber.Ctx, err error, notFound, conflict string) error {
	switch {
	case errors.Is(err, ErrMissingFields):
		return HandleError(c, fiber.StatusBadRequest, constants.MsgMissingParameters)
	case errors.Is(err, ErrInvalidID):
		return HandleError(c, fiber.StatusBadRequest, constants.MsgInvalidID)
	case errors.Is(err, ErrValidation):
		return HandleError(c, fiber.StatusBadRequest, validationMessage(err))
	case errors.Is(err, ErrPasswordMismatch):
		return HandleError(c, fiber.StatusBadRequest, constants.MsgPasswordMismatch)
	case errors.Is(err, ErrNotFound):
		return HandleError(c, fiber.StatusNotFound, notFound)
	case errors.Is(err, ErrDuplicate):
		return HandleError(c, fiber.StatusConflict, conflict)
	case errors.Is(err, ErrInvalidCredentials):
		return HandleError(c, fiber.StatusUnauthorized, constants.MsgInvalidCredentials)
	case errors.Is(err, ErrInvalidToken):
		return HandleError(c, fiber.StatusUnauthorized, constants.MsgUnauthorized)
	case errors.Is(err, ErrInactiveAccount):
		return HandleError(c, fiber.StatusForbidden, constants.MsgInactiveAccount)
	case errors.Is(err, ErrForbidden):
		return HandleError(c, fiber.StatusForbidden, constants.MsgForbidden)
	}

	logger.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	return HandleError(c, fiber.StatusInternalServerError, constants.MsgInternalError)
}

// validationMessage keeps the field level detail of a ValidationError; anything
// else collapses to the generic message.
func validationMessage(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message()
	}
	return constants.MsgInvalidInput
}
