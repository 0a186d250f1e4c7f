package routes

import (
	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/handlers"
	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/middleware"
	"github.com/gofiber/fiber/v2"
)

func StudentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	student := api.Group("/student", middleware.Protected())
	student.Get("/dashboard", handlers.StudentDashboard)
	student.Get("/courses", handlers.ListMyEnrollments)
	student.Get("/certificates", handlers.ListMyCertificates)

	// Public credential verification.
	api.Get("/certificates/verify/:number", handlers.VerifyCertificate)
}
