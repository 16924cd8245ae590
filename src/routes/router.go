package routes

import (
	"time"

	"Coaching-Management-Backend/src/controllers"
	"Coaching-Management-Backend/src/middleware"
	"Coaching-Management-Backend/src/models"
	"Coaching-Management-Backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Auth    *controllers.AuthController
	Student *controllers.StudentController
	Course  *controllers.CourseController
	Chapter *controllers.ChapterController
	Health  *controllers.HealthController
}

type Options struct {
	JWT         *utils.JWTManager
	Blacklist   middleware.Blacklist
	LoginLimit  int
	LoginWindow time.Duration
}

// guards bundles the middleware chains shared by the resource groups.
type guards struct {
	bearer     fiber.Handler
	staff      fiber.Handler
	superAdmin fiber.Handler
	login      fiber.Handler
}

// InitRoutes mounts every resource group, the health check and the 404 fallback.
func InitRoutes(app *fiber.App, h Handlers, opts Options) {
	g := guards{
		bearer:     middleware.AuthJWT(opts.JWT, opts.Blacklist),
		staff:      middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin),
		superAdmin: middleware.RequireRole(models.RoleSuperAdmin),
		login:      middleware.LoginLimiter(opts.LoginLimit, opts.LoginWindow),
	}

	if h.Health != nil {
		app.Get("/health", h.Health.Health)
	}

	studentRoutes(app, h, g)
	courseRoutes(app, h.Course, g)
	chapterRoutes(app, h.Chapter, g)

	app.Use(controllers.NotFound)
}
