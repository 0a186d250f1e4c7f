package models

import (
	"time"

	"github.com/google/uuid"
)

type Certificate struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID            uuid.UUID `gorm:"not null;uniqueIndex:idx_user_course_certificate" json:"user_id"`
	CourseID          uuid.UUID `gorm:"not null;uniqueIndex:idx_user_course_certificate" json:"course_id"`
	AttemptID         uuid.UUID `gorm:"not null" json:"attempt_id"`
	ExamScore         int       `gorm:"not null" json:"exam_score"`
	CertificateNumber string    `gorm:"size:50;not null;unique" json:"certificate_number"`
	PDFURL            *string   `gorm:"type:text" json:"pdf_url"`

	User   User   `gorm:"foreignkey:UserID" json:"-"`
	Course Course `gorm:"foreignkey:CourseID" json:"course,omitempty"`

	IssuedAt time.Time `gorm:"autoCreateTime" json:"issued_at"`
}
