package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/database"
	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/middleware"
	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	ImageURL    *string `json:"image_url"`
	VideoURL    *string `json:"video_url"`
	Category    string  `json:"category" validate:"required"`
	Duration    int     `json:"duration" validate:"required,gt=0"`
}

func ListCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := database.DB.Preload("Instructor").Order("created_at DESC").Find(&courses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch courses"})
	}
	return c.JSON(courses)
}

func GetCourse(c *fiber.Ctx) error {
	var course models.Course
	err := database.DB.
		Preload("Instructor").
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		First(&course, "id = ?", c.Params("courseId")).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}
	return c.JSON(course)
}

func CreateCourse(c *fiber.Ctx) error {
	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	instructorID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	course := models.Course{
		Title:        req.Title,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		VideoURL:     req.VideoURL,
		Category:     req.Category,
		Duration:     req.Duration,
		InstructorID: instructorID,
	}
	if err := database.DB.Create(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create course"})
	}
	return c.Status(fiber.StatusCreated).JSON(course)
}

func UpdateCourse(c *fiber.Ctx) error {
	var course models.Course
	if err := database.DB.First(&course, "id = ?", c.Params("courseId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	course.Title = req.Title
	course.Description = req.Description
	course.ImageURL = req.ImageURL
	course.VideoURL = req.VideoURL
	course.Category = req.Category
	course.Duration = req.Duration
	if err := database.DB.Save(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update course"})
	}
	return c.JSON(course)
}

func DeleteCourse(c *fiber.Ctx) error {
	result := database.DB.Delete(&models.Course{}, "id = ?", c.Params("courseId"))
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete course"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type LessonRequest struct {
	Title      string `json:"title" validate:"required"`
	Content    string `json:"content" validate:"required"`
	Duration   int    `json:"duration" validate:"required,gt=0"`
	OrderIndex int    `json:"order_index"`
}

func CreateLesson(c *fiber.Ctx) error {
	var course models.Course
	if err := database.DB.First(&course, "id = ?", c.Params("courseId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	var req LessonRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	lesson := models.Lesson{
		CourseID:   course.ID,
		Title:      req.Title,
		Content:    req.Content,
		Duration:   req.Duration,
		OrderIndex: req.OrderIndex,
	}
	if err := database.DB.Create(&lesson).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create lesson"})
	}
	return c.Status(fiber.StatusCreated).JSON(lesson)
}

func DeleteLesson(c *fiber.Ctx) error {
	result := database.DB.Delete(&models.Lesson{}, "id = ?", c.Params("lessonId"))
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete lesson"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Lesson not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// EnrollInCourse creates a pending enrollment; an admin approves it
// before the student can progress.
func EnrollInCourse(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var course models.Course
	if err := database.DB.First(&course, "id = ?", c.Params("courseId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	enrollment := models.Enrollment{
		UserID:   userID,
		CourseID: course.ID,
		Status:   "pending",
	}
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}
		return tx.Model(&course).Update("enrollment_count", gorm.Expr("enrollment_count + 1")).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Already enrolled in this course"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to enroll"})
	}

	logActivity(userID, "enrollment", "Requested enrollment in "+course.Title, &course.ID)
	return c.Status(fiber.StatusCreated).JSON(enrollment)
}

type EnrollmentDecisionRequest struct {
	Status string `json:"status" validate:"required,oneof=in_progress failed"`
}

func DecideEnrollment(c *fiber.Ctx) error {
	var req EnrollmentDecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var enrollment models.Enrollment
	if err := database.DB.First(&enrollment, "id = ?", c.Params("enrollmentId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Enrollment not found"})
	}
	if enrollment.Status != "pending" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Enrollment has already been decided"})
	}

	enrollment.Status = req.Status
	if err := database.DB.Save(&enrollment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update enrollment"})
	}
	return c.JSON(enrollment)
}

// CompleteLesson records a lesson completion and refreshes the
// enrollment progress percentage.
func CompleteLesson(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var lesson models.Lesson
	if err := database.DB.First(&lesson, "id = ?", c.Params("lessonId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Lesson not found"})
	}

	var enrollment models.Enrollment
	err = database.DB.First(&enrollment,
		"user_id = ? AND course_id = ? AND status = ?", userID, lesson.CourseID, "in_progress").Error
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not actively enrolled in this course"})
	}

	completion := models.LessonCompletion{UserID: userID, LessonID: lesson.ID}
	if err := database.DB.Create(&completion).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record completion"})
	}

	var totalLessons, completedLessons int64
	database.DB.Model(&models.Lesson{}).Where("course_id = ?", lesson.CourseID).Count(&totalLessons)
	database.DB.Model(&models.LessonCompletion{}).
		Joins("JOIN lessons ON lessons.id = lesson_completions.lesson_id").
		Where("lesson_completions.user_id = ? AND lessons.course_id = ?", userID, lesson.CourseID).
		Count(&completedLessons)

	progress := 0
	if totalLessons > 0 {
		progress = int(completedLessons * 100 / totalLessons)
	}
	enrollment.Progress = progress
	if progress == 100 {
		now := time.Now()
		enrollment.Status = "completed"
		enrollment.CompletedAt = &now
	}
	if err := database.DB.Save(&enrollment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update progress"})
	}

	logActivity(userID, "lesson", "Completed lesson "+lesson.Title, &lesson.CourseID)
	return c.JSON(fiber.Map{"progress": progress, "status": enrollment.Status})
}

func logActivity(userID uuid.UUID, activityType, description string, courseID *uuid.UUID) {
	entry := models.ActivityLog{
		UserID:      userID,
		Type:        activityType,
		Description: description,
		CourseID:    courseID,
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		log.Printf("Failed to log activity for user %s: %v", userID, err)
	}
}
