package routes

import (
	"github.com/gofiber/fiber/v2"
)

func studentRoutes(router fiber.Router, h Handlers, g guards) {
	studentGroup := router.Group("/student")

	studentGroup.Post("/login", g.login, h.Auth.Login)
	studentGroup.Post("/refresh", h.Auth.Refresh)
	studentGroup.Get("/qualification", h.Student.GetQualifications)

	studentGroup.Post("/logout", g.bearer, h.Auth.Logout)
	studentGroup.Get("/profile", g.bearer, h.Student.GetProfile)
	studentGroup.Post("/settings", g.bearer, h.Student.UpdateSettings)
	studentGroup.Post("/change-password", g.bearer, h.Student.ChangePassword)

	studentGroup.Post("/register", g.bearer, g.staff, h.Student.RegisterStudent)
	studentGroup.Get("/", g.bearer, g.staff, h.Student.GetStudents)
	studentGroup.Get("/stats", g.bearer, g.staff, h.Student.GetStats)
	studentGroup.Post("/update", g.bearer, g.staff, h.Student.UpdateStudent)
	studentGroup.Get("/:id", g.bearer, g.staff, h.Student.GetStudent)
	studentGroup.Delete("/:id", g.bearer, g.superAdmin, h.Student.DeleteStudent)
}
