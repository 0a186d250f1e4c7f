package models

import (
	"time"

	"github.com/google/uuid"
)

// Attempt statuses.
const (
	AttemptInProgress = "in_progress"
	AttemptSubmitted  = "submitted"
)

// Submission causes.
const (
	CauseManual    = "manual"
	CauseTimeout   = "timeout"
	CauseViolation = "violation"
)

type ExamAttempt struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID uuid.UUID `gorm:"not null;index:idx_attempt_user_exam" json:"user_id"`
	ExamID uuid.UUID `gorm:"not null;index:idx_attempt_user_exam" json:"exam_id"`
	Status string    `gorm:"size:20;not null;default:'in_progress'" json:"status"`

	StartedAt   time.Time  `gorm:"not null" json:"started_at"`
	ExpiresAt   time.Time  `gorm:"not null" json:"expires_at"`
	CompletedAt *time.Time `json:"completed_at"`

	Score       *int    `json:"score"`
	Passed      *bool   `json:"passed"`
	Compromised bool    `gorm:"not null;default:false" json:"compromised"`
	Cause       *string `gorm:"size:20" json:"cause"`

	Answers []AttemptAnswer `gorm:"foreignkey:AttemptID" json:"answers,omitempty"`
}

type AttemptAnswer struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AttemptID      uuid.UUID `gorm:"not null;uniqueIndex:idx_attempt_question" json:"attempt_id"`
	QuestionID     uuid.UUID `gorm:"not null;uniqueIndex:idx_attempt_question" json:"question_id"`
	SelectedOption string    `gorm:"size:1;not null" json:"selected_option"`
}
