package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Name         string    `gorm:"size:120;not null" json:"name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:12;not null;default:user" json:"role"`
	Phone        string    `gorm:"size:30" json:"phone"`
	AddressLine1 string    `gorm:"size:255" json:"address_line1"`
	Locality     string    `gorm:"size:120" json:"locality"`
	City         string    `gorm:"size:120" json:"city"`
	Postcode     string    `gorm:"size:12" json:"postcode"`
	UserCode     string    `gorm:"size:16;uniqueIndex" json:"user_code"`
	CreatedAt    time.Time `json:"created_at"`

	Orders []Order `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
