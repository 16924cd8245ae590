package controllers

import (
	"Coaching-Management-Backend/src/constants"
	"Coaching-Management-Backend/src/middleware"
	"Coaching-Management-Backend/src/services/courses"
	"Coaching-Management-Backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

type CourseController struct {
	service *courses.Service
}

func NewCourseController(service *courses.Service) *CourseController {
	return &CourseController{service: service}
}

func (h *CourseController) fail(c *fiber.Ctx, err error) error {
	return utils.HandleServiceError(c, err, constants.MsgCourseNotFound, constants.MsgInvalidInput)
}

// CreateCourse handles POST /course/addcourse.
func (h *CourseController) CreateCourse(c *fiber.Ctx) error {
	body, err := parseBody(c)
	if err != nil {
		return invalidInput(c)
	}
	course, err := h.service.CreateCourse(c.UserContext(), middleware.Actor(c), body)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusCreated, constants.MsgCourseCreated, course)
}

// GetAllCourses handles GET /course/ with optional search and paging.
func (h *CourseController) GetAllCourses(c *fiber.Ctx) error {
	page := pageFromQuery(c, constants.SortFields.Course)
	list, total, err := h.service.GetAllCourses(c.UserContext(), c.Query("search"), page)
	if err != nil {
		return h.fail(c, err)
	}
	return sendList(c, constants.MsgAllCourses, list, total, page)
}

// GetCourseByID handles GET /course/:id.
func (h *CourseController) GetCourseByID(c *fiber.Ctx) error {
	course, err := h.service.GetCourseByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, constants.MsgSingleCourse, course)
}

// UpdateCourse handles POST /course/update; the target is body._id.
func (h *CourseController) UpdateCourse(c *fiber.Ctx) error {
	body, err := parseBody(c)
	if err != nil {
		return invalidInput(c)
	}
	course, err := h.service.UpdateCourse(c.UserContext(), middleware.Actor(c), body)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, constants.MsgCourseUpdated, course)
}

// DeleteCourse removes the course for good. Its chapters are left in place.
func (h *CourseController) DeleteCourse(c *fiber.Ctx) error {
	if err := h.service.DeleteCourse(c.UserContext(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, constants.MsgCourseDeleted, nil)
}
