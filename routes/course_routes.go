package routes

import (
	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/handlers"
	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/middleware"
	"github.com/gofiber/fiber/v2"
)

func CourseRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	courses := api.Group("/courses")
	courses.Get("", handlers.ListCourses)
	courses.Get("/:courseId", handlers.GetCourse)
	courses.Post("/:courseId/enroll", middleware.Protected(), handlers.EnrollInCourse)

	lessons := api.Group("/lessons", middleware.Protected())
	lessons.Post("/:lessonId/complete", handlers.CompleteLesson)

	admin := api.Group("/admin/courses", middleware.Protected(), middleware.AdminRequired())
	admin.Post("", handlers.CreateCourse)
	admin.Put("/:courseId", handlers.UpdateCourse)
	admin.Delete("/:courseId", handlers.DeleteCourse)
	admin.Post("/:courseId/lessons", handlers.CreateLesson)
	admin.Delete("/lessons/:lessonId", handlers.DeleteLesson)
}
