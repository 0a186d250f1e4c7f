package routes

import (
	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/handlers"
	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/students", handlers.ListStudents)
	admin.Get("/exams", handlers.ListExams)
	admin.Get("/enrollments", handlers.ListPendingEnrollments)
	admin.Put("/enrollments/:enrollmentId", handlers.DecideEnrollment)
}
