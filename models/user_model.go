package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name     string    `gorm:"size:255;not null" json:"name"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"size:20;not null;default:'student'" json:"role"`

	AvatarURL *string `gorm:"size:255" json:"avatar_url"`
	Location  *string `gorm:"size:255" json:"location"`
	Phone     *string `gorm:"size:50" json:"phone"`
	Website   *string `gorm:"size:255" json:"website"`
	Bio       *string `gorm:"type:text" json:"bio"`

	LastLogin *time.Time `json:"last_login"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
