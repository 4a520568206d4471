package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Name        string    `gorm:"size:120;uniqueIndex;not null" json:"name"`
	Slug        string    `gorm:"size:140;uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	IsActive    bool      `gorm:"not null" json:"is_active"`

	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Product struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Name        string    `gorm:"size:160;not null" json:"name"`
	Slug        string    `gorm:"size:180;uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	PricePerKg  float64   `gorm:"not null" json:"price_per_kg"`
	ImageURL    string    `gorm:"size:500" json:"image_url"`
	StockKg     float64   `gorm:"default:0" json:"stock_kg"`
	IsDry       bool      `gorm:"not null" json:"is_dry"`
	IsActive    bool      `gorm:"not null" json:"is_active"`
	CategoryID  uuid.UUID `gorm:"type:char(36);not null;index" json:"category_id"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// CutCleanOption is a preparation choice (gutted, filleted, steaks, ...)
// customers can pick per line item when ordering fish.
type CutCleanOption struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Label     string    `gorm:"size:120;not null" json:"label"`
	IsActive  bool      `gorm:"not null" json:"is_active"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
}

func (o *CutCleanOption) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
