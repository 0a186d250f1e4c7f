package main

import (
	"log"
	"time"

	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/database"
	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/jobs"
	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/notifications"
	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/routes"
	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	notifications.InitEmailService()

	store := services.NewExamStore(database.DB)
	certs := services.NewCertificateService(store, &services.PDFCertificateDelivery{})
	services.InitExamEngine(store, certs)

	// The exam clock is enforced server-side: expired attempts are
	// timed out every minute whether or not the client is still there.
	c := cron.New()
	c.AddFunc("* * * * *", jobs.SweepExpiredAttempts)
	go c.Start()
	log.Println("✅ Cron job for attempt expiry scheduled successfully.")

	app := fiber.New(fiber.Config{
		AppName:       "EcoLearn",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to EcoLearn API",
		})
	})

	routes.AuthRoutes(app)
	routes.ProfileRoutes(app)
	routes.CourseRoutes(app)
	routes.ExamRoutes(app)
	routes.StudentRoutes(app)
	routes.AdminRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	log.Println("✅ Server is running on port 8080")
	if err := app.Listen(":8080"); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
