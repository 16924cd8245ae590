package controllers

import (
	"Coaching-Management-Backend/src/constants"
	"Coaching-Management-Backend/src/middleware"
	"Coaching-Management-Backend/src/models"
	"Coaching-Management-Backend/src/services/students"
	"Coaching-Management-Backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

type StudentController struct {
	service *students.Service
}

func NewStudentController(service *students.Service) *StudentController {
	return &StudentController{service: service}
}

func (h *StudentController) fail(c *fiber.Ctx, err error) error {
	return utils.HandleServiceError(c, err, constants.MsgStudentNotFound, constants.MsgStudentExists)
}

// RegisterStudent handles POST /student/register.
func (h *StudentController) RegisterStudent(c *fiber.Ctx) error {
	body, err := parseBody(c)
	if err != nil {
		return invalidInput(c)
	}
	student, err := h.service.Register(c.UserContext(), middleware.Actor(c), body)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusCreated, constants.MsgStudentCreated, student)
}

// GetStudents handles GET /student/ with optional search and paging.
func (h *StudentController) GetStudents(c *fiber.Ctx) error {
	page := pageFromQuery(c, constants.SortFields.Student)
	list, total, err := h.service.List(c.UserContext(), c.Query("search"), page)
	if err != nil {
		return h.fail(c, err)
	}
	return sendList(c, constants.MsgAllStudents, list, total, page)
}

// GetStudent handles GET /student/:id. Inactive students are still returned.
func (h *StudentController) GetStudent(c *fiber.Ctx) error {
	student, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, constants.MsgSingleStudent, student)
}

// UpdateStudent handles POST /student/update; the target is body._id.
func (h *StudentController) UpdateStudent(c *fiber.Ctx) error {
	body, err := parseBody(c)
	if err != nil {
		return invalidInput(c)
	}
	student, err := h.service.Update(c.UserContext(), middleware.Actor(c), body)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, constants.MsgStudentUpdated, student)
}

// DeleteStudent deactivates; the record is kept.
func (h *StudentController) DeleteStudent(c *fiber.Ctx) error {
	student, err := h.service.Delete(c.UserContext(), middleware.Actor(c), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, constants.MsgStudentDeleted, student)
}

// GetStats handles GET /student/stats.
func (h *StudentController) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, constants.MsgStudentStats, stats)
}

// GetQualifications handles GET /student/qualification.
func (h *StudentController) GetQualifications(c *fiber.Ctx) error {
	return utils.SendSuccess(c, fiber.StatusOK, constants.MsgQualifications, h.service.Qualifications())
}

// GetProfile returns the caller's own record.
func (h *StudentController) GetProfile(c *fiber.Ctx) error {
	student, err := h.service.Profile(c.UserContext(), middleware.Actor(c).ID)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, constants.MsgProfile, student)
}

// UpdateSettings handles POST /student/settings for the caller.
func (h *StudentController) UpdateSettings(c *fiber.Ctx) error {
	var in models.NotificationSettingsInput
	if err := c.BodyParser(&in); err != nil {
		return invalidInput(c)
	}
	student, err := h.service.UpdateNotificationSettings(c.UserContext(), middleware.Actor(c), in)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, constants.MsgSettingsUpdated, student.NotificationSettings)
}

// ChangePassword handles POST /student/change-password for the caller.
func (h *StudentController) ChangePassword(c *fiber.Ctx) error {
	var req models.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidInput(c)
	}
	if err := h.service.ChangePassword(c.UserContext(), middleware.Actor(c), req); err != nil {
		return h.fail(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, constants.MsgPasswordChanged, nil)
}
