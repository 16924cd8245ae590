package controllers

import (
	"Coaching-Management-Backend/src/constants"
	"Coaching-Management-Backend/src/middleware"
	"Coaching-Management-Backend/src/services/chapters"
	"Coaching-Management-Backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

type ChapterController struct {
	service *chapters.Service
}

func NewChapterController(service *chapters.Service) *ChapterController {
	return &ChapterController{service: service}
}

func (h *ChapterController) fail(c *fiber.Ctx, err error) error {
	return utils.HandleServiceError(c, err, constants.MsgChapterNotFound, constants.MsgInvalidInput)
}

// CreateChapter handles POST /chapter/addchapter.
func (h *ChapterController) CreateChapter(c *fiber.Ctx) error {
	body, err := parseBody(c)
	if err != nil {
		return invalidInput(c)
	}
	chapter, err := h.service.CreateChapter(c.UserContext(), middleware.Actor(c), body)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusCreated, constants.MsgChapterCreated, chapter)
}

// GetAllChapters accepts ?courseId= to list one course's chapters.
func (h *ChapterController) GetAllChapters(c *fiber.Ctx) error {
	page := pageFromQuery(c, constants.SortFields.Chapter)
	list, total, err := h.service.GetAllChapters(c.UserContext(), c.Query("courseId"), c.Query("search"), page)
	if err != nil {
		return h.fail(c, err)
	}
	return sendList(c, constants.MsgAllChapters, list, total, page)
}

// GetChapterByID handles GET /chapter/:id.
func (h *ChapterController) GetChapterByID(c *fiber.Ctx) error {
	chapter, err := h.service.GetChapterByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, constants.MsgSingleChapter, chapter)
}

// UpdateChapter handles POST /chapter/update; the target is body._id.
func (h *ChapterController) UpdateChapter(c *fiber.Ctx) error {
	body, err := parseBody(c)
	if err != nil {
		return invalidInput(c)
	}
	chapter, err := h.service.UpdateChapter(c.UserContext(), middleware.Actor(c), body)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, constants.MsgChapterUpdated, chapter)
}

// DeleteChapter handles DELETE /chapter/:id.
func (h *ChapterController) DeleteChapter(c *fiber.Ctx) error {
	if err := h.service.DeleteChapter(c.UserContext(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, constants.MsgChapterDeleted, nil)
}
