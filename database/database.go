package database

import (
	"fmt"
	"log"

	config "github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/configs"
	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:            false,
		SkipDefaultTransaction: true,
		// Unique-constraint violations must surface as
		// gorm.ErrDuplicatedKey for the certificate number retry.
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Lesson{},
		&models.LessonCompletion{},
		&models.Enrollment{},
		&models.ActivityLog{},
		&models.Exam{},
		&models.Question{},
		&models.ExamAttempt{},
		&models.AttemptAnswer{},
		&models.Certificate{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

func SeedAdmin() {
	adminEmail := config.ConfigOr("ADMIN_EMAIL", "admin@ecolearn.com")
	adminPassword := config.Config("ADMIN_PASSWORD")
	if adminPassword == "" {
		log.Println("⚠️ ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	var count int64
	if err := DB.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error; err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
	}
	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
	}

	adminUser := models.User{
		Name:     config.ConfigOr("ADMIN_NAME", "Admin User"),
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     "admin",
	}
	if err := DB.Create(&adminUser).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
	}
	log.Println("✅ Admin user seeded successfully")

	seedCourses(adminUser)
}

func seedCourses(instructor models.User) {
	var count int64
	if err := DB.Model(&models.Course{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	img1 := "https://images.unsplash.com/photo-1542601906990-b4d3fb778b09?ixlib=rb-4.0.3"
	img2 := "https://images.unsplash.com/photo-1532996122724-e3c354a0b15b?ixlib=rb-4.0.3"
	courses := []models.Course{
		{
			Title:        "Introduction to Sustainable Living",
			Description:  "Learn the basics of sustainable living and how to reduce your environmental impact.",
			ImageURL:     &img1,
			Category:     "sustainability",
			Duration:     8,
			InstructorID: instructor.ID,
		},
		{
			Title:        "Zero Waste Living",
			Description:  "Discover practical ways to reduce waste and live a more sustainable lifestyle.",
			ImageURL:     &img2,
			Category:     "waste-management",
			Duration:     6,
			InstructorID: instructor.ID,
		},
	}
	if err := DB.Create(&courses).Error; err != nil {
		log.Printf("🔥 Failed to seed sample courses: %v", err)
		return
	}
	log.Println("✅ Sample courses created successfully")
}
