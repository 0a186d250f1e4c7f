package handlers

import (
	"errors"

	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/database"
	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/middleware"
	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/models"
	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExamRequest struct {
	CourseID        string `json:"course_id" validate:"required,uuid4"`
	Title           string `json:"title" validate:"required"`
	Description     string `json:"description"`
	PassingScore    int    `json:"passing_score" validate:"gte=0,lte=100"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gt=0"`
}

func CreateExam(c *fiber.Ctx) error {
	var req ExamRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	courseID, _ := uuid.Parse(req.CourseID)
	if err := database.DB.First(&models.Course{}, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	passingScore := req.PassingScore
	if passingScore == 0 {
		passingScore = 65
	}
	exam := models.Exam{
		CourseID:        courseID,
		Title:           req.Title,
		Description:     req.Description,
		PassingScore:    passingScore,
		DurationMinutes: req.DurationMinutes,
	}
	if err := database.DB.Create(&exam).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create exam"})
	}
	return c.Status(fiber.StatusCreated).JSON(exam)
}

func UpdateExam(c *fiber.Ctx) error {
	var exam models.Exam
	if err := database.DB.First(&exam, "id = ?", c.Params("examId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exam not found"})
	}

	var req ExamRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	exam.Title = req.Title
	exam.Description = req.Description
	if req.PassingScore > 0 {
		exam.PassingScore = req.PassingScore
	}
	exam.DurationMinutes = req.DurationMinutes
	if err := database.DB.Save(&exam).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update exam"})
	}
	return c.JSON(exam)
}

func DeleteExam(c *fiber.Ctx) error {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var exam models.Exam
		if err := tx.First(&exam, "id = ?", c.Params("examId")).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Question{}, "exam_id = ?", exam.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&exam).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exam not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete exam"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type QuestionRequest struct {
	Prompt        string `json:"prompt" validate:"required"`
	OptionA       string `json:"option_a" validate:"required"`
	OptionB       string `json:"option_b" validate:"required"`
	OptionC       string `json:"option_c" validate:"required"`
	OptionD       string `json:"option_d" validate:"required"`
	CorrectOption string `json:"correct_option" validate:"required,oneof=a b c d"`
	Points        int    `json:"points" validate:"omitempty,gte=1"`
}

func CreateQuestion(c *fiber.Ctx) error {
	var exam models.Exam
	if err := database.DB.First(&exam, "id = ?", c.Params("examId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exam not found"})
	}

	var req QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	points := req.Points
	if points == 0 {
		points = 1
	}
	question := models.Question{
		ExamID:        exam.ID,
		Prompt:        req.Prompt,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectOption: req.CorrectOption,
		Points:        points,
	}
	if err := database.DB.Create(&question).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create question"})
	}
	return c.Status(fiber.StatusCreated).JSON(question)
}

func DeleteQuestion(c *fiber.Ctx) error {
	result := database.DB.Delete(&models.Question{}, "id = ?", c.Params("questionId"))
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete question"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Question not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// QuestionForStudent is the projection served while an attempt is
// running: never the correct option, never the weights key.
type QuestionForStudent struct {
	ID      uuid.UUID `json:"id"`
	Prompt  string    `json:"prompt"`
	OptionA string    `json:"option_a"`
	OptionB string    `json:"option_b"`
	OptionC string    `json:"option_c"`
	OptionD string    `json:"option_d"`
}

func sanitizeQuestions(questions []models.Question) []QuestionForStudent {
	out := make([]QuestionForStudent, len(questions))
	for i, q := range questions {
		out[i] = QuestionForStudent{
			ID:      q.ID,
			Prompt:  q.Prompt,
			OptionA: q.OptionA,
			OptionB: q.OptionB,
			OptionC: q.OptionC,
			OptionD: q.OptionD,
		}
	}
	return out
}

// GetExamForStudent returns the exam metadata and sanitized questions.
func GetExamForStudent(c *fiber.Ctx) error {
	var exam models.Exam
	err := database.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&exam, "id = ?", c.Params("examId")).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exam not found"})
	}

	return c.JSON(fiber.Map{
		"id":               exam.ID,
		"course_id":        exam.CourseID,
		"title":            exam.Title,
		"description":      exam.Description,
		"passing_score":    exam.PassingScore,
		"duration_minutes": exam.DurationMinutes,
		"questions":        sanitizeQuestions(exam.Questions),
	})
}

// StartExamAttempt opens a timed session for the authenticated student.
func StartExamAttempt(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	examID, err := uuid.Parse(c.Params("examId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid exam id"})
	}

	started, err := services.Engine.StartAttempt(userID, examID)
	if err != nil {
		return examError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"attempt_id":       started.Attempt.ID,
		"exam_title":       started.Exam.Title,
		"duration_seconds": started.DurationSeconds,
		"expires_at":       started.Attempt.ExpiresAt,
		"questions":        sanitizeQuestions(started.Exam.Questions),
	})
}

type RecordAnswerRequest struct {
	QuestionID string `json:"question_id" validate:"required,uuid4"`
	Selected   string `json:"selected_option" validate:"required"`
}

func RecordAttemptAnswer(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	attemptID, err := uuid.Parse(c.Params("attemptId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid attempt id"})
	}

	var req RecordAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	questionID, _ := uuid.Parse(req.QuestionID)

	if err := services.Engine.RecordAnswer(userID, attemptID, questionID, req.Selected); err != nil {
		return examError(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

type ViolationRequest struct {
	Kind string `json:"kind" validate:"required,oneof=tab_hidden window_blur clipboard"`
}

// ReportAttemptViolation disqualifies the attempt on the first
// client-reported integrity signal and auto-submits it.
func ReportAttemptViolation(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	attemptID, err := uuid.Parse(c.Params("attemptId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid attempt id"})
	}

	var req ViolationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	res, err := services.Engine.ReportViolation(userID, attemptID, req.Kind)
	if err != nil {
		return examError(c, err)
	}
	return c.JSON(fiber.Map{
		"compromised":    true,
		"auto_submitted": true,
		"result":         res,
	})
}

func SubmitExamAttempt(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	attemptID, err := uuid.Parse(c.Params("attemptId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid attempt id"})
	}

	res, err := services.Engine.Submit(userID, attemptID)
	if err != nil {
		return examError(c, err)
	}
	return c.JSON(res)
}

// examError maps the engine's error taxonomy to HTTP statuses.
func examError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyActiveAttempt),
		errors.Is(err, services.ErrAlreadySubmitted),
		errors.Is(err, services.ErrNotEligible):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrSessionNotActive),
		errors.Is(err, services.ErrInvalidAnswer):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrMisconfiguredExam):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}
}
