package models

import (
	"time"

	"github.com/google/uuid"
)

type Lesson struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CourseID   uuid.UUID `gorm:"not null;index" json:"course_id"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Duration   int       `gorm:"not null" json:"duration"`
	OrderIndex int       `gorm:"not null" json:"order_index"`

	CreatedAt time.Time `json:"created_at"`
}

type LessonCompletion struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID   uuid.UUID `gorm:"not null;uniqueIndex:idx_lesson_completion" json:"user_id"`
	LessonID uuid.UUID `gorm:"not null;uniqueIndex:idx_lesson_completion" json:"lesson_id"`

	Lesson Lesson `gorm:"foreignkey:LessonID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
