package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Booking represents a customer order. Only bookings in a confirmed status
// count towards sales figures.
type Booking struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	OrderID      string           `gorm:"size:100;index" json:"order_id"`
	District     *string          `gorm:"size:255;index" json:"district,omitempty"`
	Status       string           `gorm:"size:50;index" json:"status"`
	TotalAmount  *decimal.Decimal `gorm:"type:numeric(15,2)" json:"total_amount"`
	AmountPaid   *decimal.Decimal `gorm:"type:numeric(15,2)" json:"amount_paid"`
	CustomerType *string          `gorm:"size:100" json:"customer_type,omitempty"`
	Products     datatypes.JSON   `gorm:"type:jsonb" json:"products"`
	CreatedAt    time.Time        `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new booking
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}
