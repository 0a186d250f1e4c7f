package handlers

import (
	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/database"
	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/models"
	"github.com/gofiber/fiber/v2"
)

type studentRow struct {
	models.User
	EnrolledCourses int64 `json:"enrolled_courses"`
	CompletedExams  int64 `json:"completed_exams"`
}

// ListStudents returns all students with enrollment and exam counts.
func ListStudents(c *fiber.Ctx) error {
	var students []models.User
	if err := database.DB.Where("role = ?", "student").Order("created_at DESC").Find(&students).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch students"})
	}

	rows := make([]studentRow, len(students))
	for i, s := range students {
		rows[i].User = s
		database.DB.Model(&models.Enrollment{}).
			Where("user_id = ?", s.ID).Count(&rows[i].EnrolledCourses)
		database.DB.Model(&models.ExamAttempt{}).
			Where("user_id = ? AND status = ?", s.ID, models.AttemptSubmitted).Count(&rows[i].CompletedExams)
	}
	return c.JSON(rows)
}

type examRow struct {
	models.Exam
	CourseTitle   string `json:"course_title"`
	QuestionCount int64  `json:"question_count"`
	AttemptCount  int64  `json:"attempt_count"`
}

// ListExams returns all exams with course, question, and attempt
// counts for the admin dashboard.
func ListExams(c *fiber.Ctx) error {
	var exams []models.Exam
	if err := database.DB.Order("created_at DESC").Find(&exams).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch exams"})
	}

	rows := make([]examRow, len(exams))
	for i, e := range exams {
		rows[i].Exam = e
		var course models.Course
		if err := database.DB.Select("title").First(&course, "id = ?", e.CourseID).Error; err == nil {
			rows[i].CourseTitle = course.Title
		}
		database.DB.Model(&models.Question{}).Where("exam_id = ?", e.ID).Count(&rows[i].QuestionCount)
		database.DB.Model(&models.ExamAttempt{}).Where("exam_id = ?", e.ID).Count(&rows[i].AttemptCount)
	}
	return c.JSON(rows)
}

// ListPendingEnrollments returns enrollments awaiting approval.
func ListPendingEnrollments(c *fiber.Ctx) error {
	var enrollments []models.Enrollment
	if err := database.DB.
		Preload("User").
		Preload("Course").
		Where("status = ?", "pending").
		Order("enrolled_at ASC").
		Find(&enrollments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch enrollments"})
	}
	return c.JSON(enrollments)
}
