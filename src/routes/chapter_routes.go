package routes

import (
	"Coaching-Management-Backend/src/controllers"

	"github.com/gofiber/fiber/v2"
)

func chapterRoutes(router fiber.Router, h *controllers.ChapterController, g guards) {
	chapterGroup := router.Group("/chapter", g.bearer)
	chapterGroup.Post("/addchapter", g.staff, h.CreateChapter)
	chapterGroup.Get("/", h.GetAllChapters)
	chapterGroup.Post("/update", g.staff, h.UpdateChapter)
	chapterGroup.Get("/:id", h.GetChapterByID)
	chapterGroup.Delete("/:id", g.superAdmin, h.DeleteChapter)
}
