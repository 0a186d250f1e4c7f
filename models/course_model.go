package models

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Description     string    `gorm:"type:text;not null" json:"description"`
	ImageURL        *string   `gorm:"size:255" json:"image_url"`
	VideoURL        *string   `gorm:"size:255" json:"video_url"`
	Category        string    `gorm:"size:50;not null" json:"category"`
	Duration        int       `gorm:"not null" json:"duration"`
	InstructorID    uuid.UUID `gorm:"not null" json:"instructor_id"`
	EnrollmentCount int       `gorm:"default:0" json:"enrollment_count"`

	Instructor User     `gorm:"foreignkey:InstructorID" json:"instructor,omitempty"`
	Lessons    []Lesson `gorm:"foreignkey:CourseID" json:"lessons,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
