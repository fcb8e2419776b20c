package entity

import (
	"time"
)

// PaymentMethod is a receipt-type reference (boleta, factura, ...). An order
// pointing at one of these is considered paid. The default method drives the
// "B" receipt-number prefix; all others use "F".
type PaymentMethod struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"size:100;not null" json:"name"`
	ReceiptPrefix string    `gorm:"size:5;not null;default:F" json:"receipt_prefix"`
	Default       bool      `gorm:"not null;default:false" json:"default"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName returns the table name for the PaymentMethod model
func (PaymentMethod) TableName() string {
	return "payment_methods"
}
