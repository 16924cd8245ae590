package routes

import (
	"Coaching-Management-Backend/src/controllers"

	"github.com/gofiber/fiber/v2"
)

func courseRoutes(router fiber.Router, h *controllers.CourseController, g guards) {
	courseGroup := router.Group("/course", g.bearer)
	courseGroup.Post("/addcourse", g.staff, h.CreateCourse)
	courseGroup.Get("/", h.GetAllCourses)
	courseGroup.Post("/update", g.staff, h.UpdateCourse)
	courseGroup.Get("/:id", h.GetCourseByID)
	courseGroup.Delete("/:id", g.superAdmin, h.DeleteCourse)
}
