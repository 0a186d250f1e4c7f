package services

import (
	"errors"
	"time"

	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ExamStore is the persistence boundary of the exam session engine.
// The production implementation is backed by gorm; tests use an
// in-memory implementation.
type ExamStore interface {
	// LoadExam returns the exam with its ordered questions, including
	// the correct-answer key. Callers serving students must sanitize
	// the questions before responding.
	LoadExam(examID uuid.UUID) (models.Exam, error)

	// LoadActiveAttempt returns the in-progress attempt for the
	// (user, exam) pair, or nil when there is none.
	LoadActiveAttempt(userID, examID uuid.UUID) (*models.ExamAttempt, error)

	// LoadAttempt returns the attempt with its recorded answers.
	LoadAttempt(attemptID uuid.UUID) (models.ExamAttempt, error)

	CreateAttempt(attempt *models.ExamAttempt) error

	// SaveAnswer upserts one answer row; a later answer for the same
	// question overwrites the earlier one.
	SaveAnswer(attemptID, questionID uuid.UUID, label string) error

	// FinalizeAttempt persists the terminal fields (status, score,
	// passed, compromised, cause, completed_at) atomically.
	FinalizeAttempt(attempt *models.ExamAttempt) error

	CourseIDForExam(examID uuid.UUID) (uuid.UUID, error)

	// InsertCertificate returns ErrDuplicateCertificate when a unique
	// constraint rejects the row, whether the number collided or the
	// (user, course) certificate already exists.
	InsertCertificate(cert *models.Certificate) error

	// CertificateForUserCourse returns the certificate already issued
	// for the (user, course) pair, or nil.
	CertificateForUserCourse(userID, courseID uuid.UUID) (*models.Certificate, error)

	// ExpiredAttempts lists in-progress attempts whose deadline has
	// passed.
	ExpiredAttempts(now time.Time) ([]models.ExamAttempt, error)
}

type gormExamStore struct {
	db *gorm.DB
}

func NewExamStore(db *gorm.DB) ExamStore {
	return &gormExamStore{db: db}
}

func (s *gormExamStore) LoadExam(examID uuid.UUID) (models.Exam, error) {
	var exam models.Exam
	err := s.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&exam, "id = ?", examID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Exam{}, ErrNotFound
	}
	return exam, err
}

func (s *gormExamStore) LoadActiveAttempt(userID, examID uuid.UUID) (*models.ExamAttempt, error) {
	var attempt models.ExamAttempt
	err := s.db.
		Preload("Answers").
		First(&attempt, "user_id = ? AND exam_id = ? AND status = ?", userID, examID, models.AttemptInProgress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (s *gormExamStore) LoadAttempt(attemptID uuid.UUID) (models.ExamAttempt, error) {
	var attempt models.ExamAttempt
	err := s.db.Preload("Answers").First(&attempt, "id = ?", attemptID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ExamAttempt{}, ErrNotFound
	}
	return attempt, err
}

func (s *gormExamStore) CreateAttempt(attempt *models.ExamAttempt) error {
	return s.db.Create(attempt).Error
}

func (s *gormExamStore) SaveAnswer(attemptID, questionID uuid.UUID, label string) error {
	answer := models.AttemptAnswer{
		AttemptID:      attemptID,
		QuestionID:     questionID,
		SelectedOption: label,
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"selected_option"}),
	}).Create(&answer).Error
}

func (s *gormExamStore) FinalizeAttempt(attempt *models.ExamAttempt) error {
	return s.db.Model(&models.ExamAttempt{}).
		Where("id = ?", attempt.ID).
		Updates(map[string]interface{}{
			"status":       attempt.Status,
			"score":        attempt.Score,
			"passed":       attempt.Passed,
			"compromised":  attempt.Compromised,
			"cause":        attempt.Cause,
			"completed_at": attempt.CompletedAt,
		}).Error
}

func (s *gormExamStore) CourseIDForExam(examID uuid.UUID) (uuid.UUID, error) {
	var exam models.Exam
	err := s.db.Select("course_id").First(&exam, "id = ?", examID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, ErrNotFound
	}
	return exam.CourseID, err
}

func (s *gormExamStore) InsertCertificate(cert *models.Certificate) error {
	err := s.db.Create(cert).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateCertificate
	}
	return err
}

func (s *gormExamStore) CertificateForUserCourse(userID, courseID uuid.UUID) (*models.Certificate, error) {
	var cert models.Certificate
	err := s.db.First(&cert, "user_id = ? AND course_id = ?", userID, courseID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

func (s *gormExamStore) ExpiredAttempts(now time.Time) ([]models.ExamAttempt, error) {
	var attempts []models.ExamAttempt
	err := s.db.
		Where("status = ? AND expires_at <= ?", models.AttemptInProgress, now).
		Find(&attempts).Error
	return attempts, err
}
