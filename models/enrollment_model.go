package models

import (
	"time"

	"github.com/google/uuid"
)

type Enrollment struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID   uuid.UUID `gorm:"not null;uniqueIndex:idx_user_course" json:"user_id"`
	CourseID uuid.UUID `gorm:"not null;uniqueIndex:idx_user_course" json:"course_id"`
	Status   string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	Progress int       `gorm:"default:0" json:"progress"`

	User   User   `gorm:"foreignkey:UserID" json:"-"`
	Course Course `gorm:"foreignkey:CourseID" json:"course,omitempty"`

	EnrolledAt  time.Time  `gorm:"autoCreateTime" json:"enrolled_at"`
	CompletedAt *time.Time `json:"completed_at"`
}
