package models

import "time"

// SiteSetting is a generic string key/value row. The delivery-window
// configuration lives here as a JSON blob.
type SiteSetting struct {
	Key       string    `gorm:"size:120;primaryKey" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
