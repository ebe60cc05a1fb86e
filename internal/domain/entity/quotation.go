package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quotation represents a price quotation that has not yet become a booking
type Quotation struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	QuotationID string           `gorm:"size:100;index" json:"quotation_id"`
	District    *string          `gorm:"size:255;index" json:"district,omitempty"`
	Status      string           `gorm:"size:50;index" json:"status"`
	TotalAmount *decimal.Decimal `gorm:"type:numeric(15,2)" json:"total_amount"`
	Products    datatypes.JSON   `gorm:"type:jsonb" json:"products"`
	CreatedAt   time.Time        `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new quotation
func (q *Quotation) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Quotation model
func (Quotation) TableName() string {
	return "quotations"
}
