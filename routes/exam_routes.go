package routes

import (
	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/handlers"
	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/middleware"
	ws "github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func ExamRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin/exams", middleware.Protected(), middleware.AdminRequired())
	admin.Post("", handlers.CreateExam)
	admin.Put("/:examId", handlers.UpdateExam)
	admin.Delete("/:examId", handlers.DeleteExam)
	admin.Post("/:examId/questions", handlers.CreateQuestion)
	admin.Delete("/questions/:questionId", handlers.DeleteQuestion)

	exams := api.Group("/exams", middleware.Protected())
	exams.Get("/:examId", handlers.GetExamForStudent)
	exams.Post("/:examId/start", handlers.StartExamAttempt)

	attempts := api.Group("/attempts", middleware.Protected())
	attempts.Post("/:attemptId/answers", handlers.RecordAttemptAnswer)
	attempts.Post("/:attemptId/violation", handlers.ReportAttemptViolation)
	attempts.Post("/:attemptId/submit", handlers.SubmitExamAttempt)

	// Live channel: server pushes the authoritative countdown and
	// accepts integrity signals.
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/attempts/:id", middleware.Protected(), websocket.New(ws.AttemptSocket))
}
