package models

import (
	"time"

	"github.com/google/uuid"
)

type Exam struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CourseID        uuid.UUID `gorm:"not null;index" json:"course_id"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	PassingScore    int       `gorm:"not null;default:65" json:"passing_score"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`

	Questions []Question `gorm:"foreignkey:ExamID" json:"questions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
