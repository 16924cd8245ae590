package controllers

import (
	"Coaching-Management-Backend/src/constants"
	"Coaching-Management-Backend/src/middleware"
	"Coaching-Management-Backend/src/models"
	"Coaching-Management-Backend/src/services/auth"
	"Coaching-Management-Backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	service *auth.Service
}

func NewAuthController(service *auth.Service) *AuthController {
	return &AuthController{service: service}
}

func (h *AuthController) fail(c *fiber.Ctx, err error) error {
	return utils.HandleServiceError(c, err, constants.MsgStudentNotFound, constants.MsgStudentExists)
}

// Login handles POST /student/login.
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidInput(c)
	}
	if req.Email == "" || req.Password == "" {
		return utils.HandleError(c, fiber.StatusBadRequest, constants.MsgCredentialsMissing)
	}

	resp, err := h.service.Login(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, constants.MsgLogin, resp)
}

// Refresh handles POST /student/refresh.
func (h *AuthController) Refresh(c *fiber.Ctx) error {
	var req models.RefreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return utils.HandleError(c, fiber.StatusBadRequest, constants.MsgMissingParameters)
	}

	resp, err := h.service.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, constants.MsgTokenRefreshed, resp)
}

// Logout handles POST /student/logout; it runs behind AuthJWT.
func (h *AuthController) Logout(c *fiber.Ctx) error {
	if err := h.service.Logout(c.UserContext(), middleware.Token(c), middleware.Claims(c)); err != nil {
		return h.fail(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, constants.MsgLogout, nil)
}
