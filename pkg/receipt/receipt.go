package receipt

// Snapshot types carried across the print-dispatch boundary. Both the local
// dispatch path and the relay agent render from these, so a ticket looks the
// same no matter which machine produced it. Never pass untyped maps here.

// OrderSnapshot is the order data a printable document needs.
type OrderSnapshot struct {
	ID            uint   `json:"id"`
	Channel       string `json:"channel"`
	OccurredAt    string `json:"occurred_at"` // RFC 3339
	ReceiptNumber string `json:"receipt_number,omitempty"`
	Total         int64  `json:"total"`
	ShippingCost  int64  `json:"shipping_cost"`
	StatusLabel   string `json:"status_label,omitempty"`
	CustomerLabel string `json:"customer_label,omitempty"`
	Comment       string `json:"comment,omitempty"`
	EstimatedTime string `json:"estimated_time,omitempty"`
}

// ModifierSnapshot is a selected extra shown under its item line.
type ModifierSnapshot struct {
	Label      string `json:"label"`
	ExtraPrice int64  `json:"extra_price"`
}

// ItemSnapshot is one item line of a printable document.
type ItemSnapshot struct {
	Name      string             `json:"name"`
	Quantity  int                `json:"quantity"`
	UnitPrice int64              `json:"unit_price"`
	Modifiers []ModifierSnapshot `json:"modifiers,omitempty"`
}

// Subtotal returns quantity times unit price.
func (s ItemSnapshot) Subtotal() int64 {
	return int64(s.Quantity) * s.UnitPrice
}

// CustomerSnapshot is the customer block on delivery documents.
type CustomerSnapshot struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// JobPayload is the structured body of a print job, shared by the dispatcher
// and the relay wire format. Content is only set for raw/pre-rendered jobs.
type JobPayload struct {
	Order    OrderSnapshot     `json:"order"`
	Customer *CustomerSnapshot `json:"customer,omitempty"`
	Items    []ItemSnapshot    `json:"items,omitempty"`
	Content  string            `json:"content,omitempty"`
}
