package entity

import (
	"time"

	"github.com/comandero/pos-api/internal/domain/enum"
)

// Order is the aggregate root for both counter and delivery sales.
//
// Total is derived: it is re-summed over the current line items after every
// mutation, never adjusted incrementally. PaymentMethodID doubles as the paid
// flag; it is independent of the fulfillment status. Orders are never
// physically deleted; a cancelled order keeps its row with Total zero.
type Order struct {
	ID                uint                   `gorm:"primaryKey;autoIncrement" json:"id"`
	Channel           enum.Channel           `gorm:"not null;index" json:"channel"`
	OccurredAt        time.Time              `gorm:"not null" json:"occurred_at"`
	TaxRate           float64                `gorm:"not null;default:0.19" json:"tax_rate"`
	ReceiptNumber     string                 `gorm:"size:255" json:"receipt_number"`
	Total             int64                  `gorm:"not null;default:0" json:"total"`
	FulfillmentStatus enum.FulfillmentStatus `gorm:"not null;default:1;index" json:"fulfillment_status"`
	PaymentMethodID   *uint                  `gorm:"index" json:"payment_method_id,omitempty"`

	// Delivery channel only.
	ShippingCost  int64  `gorm:"not null;default:0" json:"shipping_cost"`
	CourierID     *uint  `gorm:"index" json:"courier_id,omitempty"`
	CustomerID    *uint  `gorm:"index" json:"customer_id,omitempty"`
	EstimatedTime string `gorm:"size:15" json:"estimated_time,omitempty"`
	Comment       string `gorm:"size:50" json:"comment,omitempty"`

	// Counter channel only: free-text label, no formal customer link.
	CustomerLabel string `gorm:"size:100" json:"customer_label,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Items         []LineItem     `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Customer      *Customer      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Courier       *Courier       `gorm:"foreignKey:CourierID" json:"courier,omitempty"`
	PaymentMethod *PaymentMethod `gorm:"foreignKey:PaymentMethodID" json:"payment_method,omitempty"`
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// Paid reports whether a payment reference has been recorded. This is the
// sole paid flag; fulfillment status never implies payment.
func (o *Order) Paid() bool {
	return o.PaymentMethodID != nil
}

// Cancelled follows the reporting convention: an order with no monetary value
// was cancelled, since rows are never deleted.
func (o *Order) Cancelled() bool {
	return o.Total == 0
}

// ReportingState classifies an order as active, cancelled, or closed.
// The classification is derived, never stored.
func (o *Order) ReportingState() string {
	if o.Cancelled() {
		return "cancelled"
	}
	switch o.Channel {
	case enum.ChannelDelivery:
		if o.FulfillmentStatus < enum.FulfillmentDelivered {
			return "active"
		}
	case enum.ChannelCounter:
		if o.FulfillmentStatus < enum.FulfillmentReady {
			return "active"
		}
	}
	return "closed"
}

// TotalWithShipping returns the grand total the customer pays. Shipping cost
// is tracked outside Total so that item-level re-sums never touch it.
func (o *Order) TotalWithShipping() int64 {
	return o.Total + o.ShippingCost
}

// RecomputeTotal re-sums the given line items and stores the result. Always a
// full re-sum over current items; incremental arithmetic drifts under
// concurrent edits.
func (o *Order) RecomputeTotal(items []LineItem) {
	var total int64
	for i := range items {
		total += items[i].Subtotal()
	}
	o.Total = total
}
