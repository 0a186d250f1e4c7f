package handlers

import (
	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/database"
	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/middleware"
	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/models"
	"github.com/gofiber/fiber/v2"
)

// StudentDashboard aggregates the signed-in student's course counts,
// hours, and recent activity.
func StudentDashboard(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var activeCourses, completedCourses int64
	database.DB.Model(&models.Enrollment{}).
		Where("user_id = ? AND status = ?", userID, "in_progress").Count(&activeCourses)
	database.DB.Model(&models.Enrollment{}).
		Where("user_id = ? AND status = ?", userID, "completed").Count(&completedCourses)

	var totalMinutes int64
	database.DB.Model(&models.Lesson{}).
		Select("COALESCE(SUM(lessons.duration), 0)").
		Joins("JOIN enrollments ON enrollments.course_id = lessons.course_id").
		Where("enrollments.user_id = ?", userID).
		Scan(&totalMinutes)

	var recent []models.ActivityLog
	database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(10).
		Find(&recent)

	return c.JSON(fiber.Map{
		"active_courses":    activeCourses,
		"completed_courses": completedCourses,
		"hours_spent":       totalMinutes / 60,
		"recent_activity":   recent,
	})
}

// ListMyEnrollments returns the student's enrollments with courses.
func ListMyEnrollments(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var enrollments []models.Enrollment
	if err := database.DB.
		Preload("Course").
		Preload("Course.Instructor").
		Where("user_id = ?", userID).
		Order("enrolled_at DESC").
		Find(&enrollments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch enrollments"})
	}
	return c.JSON(enrollments)
}

// ListMyCertificates returns the student's issued certificates.
func ListMyCertificates(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var certs []models.Certificate
	if err := database.DB.
		Preload("Course").
		Where("user_id = ?", userID).
		Order("issued_at DESC").
		Find(&certs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch certificates"})
	}
	return c.JSON(certs)
}

// VerifyCertificate is the public lookup of a certificate by its
// number, so third parties can confirm a credential.
func VerifyCertificate(c *fiber.Ctx) error {
	var cert models.Certificate
	err := database.DB.
		Preload("User").
		Preload("Course").
		First(&cert, "certificate_number = ?", c.Params("number")).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Certificate not found"})
	}

	return c.JSON(fiber.Map{
		"certificate_number": cert.CertificateNumber,
		"student_name":       cert.User.Name,
		"course_title":       cert.Course.Title,
		"exam_score":         cert.ExamScore,
		"issued_at":          cert.IssuedAt,
	})
}
