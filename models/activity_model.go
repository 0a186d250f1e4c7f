package models

import (
	"time"

	"github.com/google/uuid"
)

type ActivityLog struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID  `gorm:"not null;index" json:"user_id"`
	Type        string     `gorm:"size:50;not null" json:"type"`
	Description string     `gorm:"type:text;not null" json:"description"`
	CourseID    *uuid.UUID `json:"course_id"`

	Course *Course `gorm:"foreignkey:CourseID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
