package controllers

import (
	"Coaching-Management-Backend/src/constants"
	"Coaching-Management-Backend/src/models"
	"Coaching-Management-Backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

// parseBody decodes a JSON object body into a loose field map.
func parseBody(c *fiber.Ctx) (map[string]interface{}, error) {
	body := map[string]interface{}{}
	if err := c.BodyParser(&body); err != nil {
		return nil, err
	}
	return body, nil
}

func invalidInput(c *fiber.Ctx) error {
	return utils.HandleError(c, fiber.StatusBadRequest, constants.MsgInvalidInput)
}

// pageFromQuery returns nil unless the caller asked for a page or a limit.
func pageFromQuery(c *fiber.Ctx, sortable []string) *models.PaginationParams {
	if c.Query("page") == "" && c.Query("limit") == "" {
		return nil
	}
	page := &models.PaginationParams{
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", models.DefaultPageLimit),
		SortBy: c.Query("sortBy"),
		Order:  c.Query("order", "desc"),
	}
	page.Normalize(sortable, "createdDate")
	return page
}

func sendList(c *fiber.Ctx, message string, items interface{}, total int64, page *models.PaginationParams) error {
	var meta *models.PaginationMeta
	if page != nil {
		meta = models.NewPaginationMeta(total, *page)
	}
	return utils.SendPage(c, message, items, meta)
}
