package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SupportStatusOpen    = "open"
	SupportStatusPending = "pending"
	SupportStatusClosed  = "closed"
)

func ValidSupportStatus(s string) bool {
	return s == SupportStatusOpen || s == SupportStatusPending || s == SupportStatusClosed
}

type SupportMessage struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index" json:"user_id"`
	Subject   string    `gorm:"size:160;not null" json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Response  string    `gorm:"type:text" json:"response"`
	Status    string    `gorm:"size:12;not null;default:open" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (m *SupportMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
