package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	OrderStatusPending        = "pending"
	OrderStatusPaid           = "paid"
	OrderStatusProcessing     = "processing"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known order states.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusProcessing,
		OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:char(36);not null;index" json:"user_id"`
	TotalAmount float64   `gorm:"not null" json:"total_amount"`
	Status      string    `gorm:"size:20;default:pending" json:"status"`
	// Free text like "2025-06-14 08:00-12:00"; the vendor report filters on
	// it by substring.
	DeliverySlot string    `gorm:"size:50" json:"delivery_slot"`
	AddressLine  string    `gorm:"size:255;not null" json:"address_line"`
	City         string    `gorm:"size:120;default:Edinburgh" json:"city"`
	Postcode     string    `gorm:"size:12;not null" json:"postcode"`
	CreatedAt    time.Time `json:"created_at"`

	User  *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderItem snapshots the per-kg price (and cut & clean choices) at order
// time; later product edits never change historical orders.
type OrderItem struct {
	ID         uuid.UUID      `gorm:"type:char(36);primaryKey" json:"id"`
	OrderID    uuid.UUID      `gorm:"type:char(36);not null;index" json:"order_id"`
	ProductID  uuid.UUID      `gorm:"type:char(36);not null;index" json:"product_id"`
	QtyKg      float64        `gorm:"not null" json:"qty_kg"`
	PricePerKg float64        `gorm:"not null" json:"price_per_kg"`
	CutClean   datatypes.JSON `json:"cut_clean,omitempty"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
