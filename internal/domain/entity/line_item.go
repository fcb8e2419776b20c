package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Modifier is one selected extra on a line item, e.g. {12, "Nutella", 500}.
// The surcharge is already folded into the line item's UnitPrice at add time;
// the list is retained only so tickets can show the customization.
type Modifier struct {
	AttributeID uint   `json:"id"`
	Label       string `json:"label"`
	ExtraPrice  int64  `json:"extra_price"`
}

// ModifierList is stored as a JSON column on line_items.
type ModifierList []Modifier

func (m ModifierList) Value() (driver.Value, error) {
	if len(m) == 0 {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *ModifierList) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	}
	return fmt.Errorf("cannot scan %T into ModifierList", value)
}

// LineItem is one product position on an order. UnitPrice is a snapshot taken
// when the item was added, not a live reference to the product's current
// price, and includes any modifier surcharges. An item with quantity <= 0
// must not exist: callers delete the row instead of zeroing it.
type LineItem struct {
	ID        uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint         `gorm:"not null;index" json:"order_id"`
	ProductID uint         `gorm:"not null;index" json:"product_id"`
	Quantity  int          `gorm:"not null" json:"quantity"`
	UnitPrice int64        `gorm:"not null" json:"unit_price"`
	Discount  int64        `gorm:"not null;default:0" json:"discount"`
	Modifiers ModifierList `gorm:"type:json" json:"modifiers,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName returns the table name for the LineItem model
func (LineItem) TableName() string {
	return "line_items"
}

// Subtotal returns quantity times the snapshot unit price.
func (li *LineItem) Subtotal() int64 {
	return int64(li.Quantity) * li.UnitPrice
}
