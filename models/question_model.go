package models

import (
	"time"

	"github.com/google/uuid"
)

type Question struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ExamID        uuid.UUID `gorm:"not null;index" json:"exam_id"`
	Prompt        string    `gorm:"type:text;not null" json:"prompt"`
	OptionA       string    `gorm:"type:text;not null" json:"option_a"`
	OptionB       string    `gorm:"type:text;not null" json:"option_b"`
	OptionC       string    `gorm:"type:text;not null" json:"option_c"`
	OptionD       string    `gorm:"type:text;not null" json:"option_d"`
	CorrectOption string    `gorm:"size:1;not null" json:"-"`
	Points        int       `gorm:"not null;default:1" json:"points"`

	CreatedAt time.Time `json:"created_at"`
}

// ValidOption reports whether label is one of the four answer labels.
func ValidOption(label string) bool {
	switch label {
	case "a", "b", "c", "d":
		return true
	}
	return false
}
