package entity

import (
	"strconv"

	"github.com/comandero/pos-api/internal/domain/enum"
	"github.com/google/uuid"
)

// CartEntry is one staged position in a cart. UnitPrice already includes the
// selected modifier surcharges.
type CartEntry struct {
	ProductID uint         `json:"product_id"`
	Name      string       `json:"name"`
	UnitPrice int64        `json:"unit_price"`
	Quantity  int          `json:"quantity"`
	Modifiers ModifierList `json:"modifiers,omitempty"`
}

// Subtotal returns quantity times the staged unit price.
func (e CartEntry) Subtotal() int64 {
	return int64(e.Quantity) * e.UnitPrice
}

// Cart is the transient staging area where line items are assembled before
// they are committed to an order. It lives in the session store only; there
// is no durability guarantee.
//
// Entry keys: the bare product id when no modifiers are selected, so repeated
// adds merge into one entry; a fresh unique key when modifiers are selected,
// so each customization stays individually editable even when two selections
// are identical.
type Cart struct {
	Channel enum.Channel         `json:"channel"`
	Entries map[string]CartEntry `json:"entries"`

	// Counter metadata.
	CustomerLabel string `json:"customer_label,omitempty"`

	// Delivery metadata captured when the cart is started.
	CustomerID    *uint  `json:"customer_id,omitempty"`
	CourierID     *uint  `json:"courier_id,omitempty"`
	ShippingCost  int64  `json:"shipping_cost,omitempty"`
	EstimatedTime string `json:"estimated_time,omitempty"`
	Comment       string `json:"comment,omitempty"`
}

// NewCart creates an empty cart for the channel.
func NewCart(channel enum.Channel) *Cart {
	return &Cart{Channel: channel, Entries: make(map[string]CartEntry)}
}

// Add stages a product. Without modifiers the entry is keyed by product id
// and repeated adds increment the quantity in place. With modifiers a new
// entry is always inserted under a generated key, never merged, even for an
// identical modifier set.
func (c *Cart) Add(productID uint, name string, unitPrice int64, qty int, modifiers ModifierList) string {
	if qty < 1 {
		qty = 1
	}
	if len(modifiers) == 0 {
		key := strconv.FormatUint(uint64(productID), 10)
		if entry, ok := c.Entries[key]; ok {
			entry.Quantity += qty
			c.Entries[key] = entry
			return key
		}
		c.Entries[key] = CartEntry{ProductID: productID, Name: name, UnitPrice: unitPrice, Quantity: qty}
		return key
	}

	key := uuid.New().String()
	c.Entries[key] = CartEntry{
		ProductID: productID,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  qty,
		Modifiers: modifiers,
	}
	return key
}

// Adjust changes an entry's quantity by delta. An entry reaching zero or
// below is removed, never kept at quantity zero.
func (c *Cart) Adjust(key string, delta int) bool {
	entry, ok := c.Entries[key]
	if !ok {
		return false
	}
	entry.Quantity += delta
	if entry.Quantity <= 0 {
		delete(c.Entries, key)
		return true
	}
	c.Entries[key] = entry
	return true
}

// Remove deletes an entry unconditionally.
func (c *Cart) Remove(key string) {
	delete(c.Entries, key)
}

// Empty reports whether nothing is staged.
func (c *Cart) Empty() bool {
	return len(c.Entries) == 0
}

// Subtotal sums the staged entries, shipping excluded.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, e := range c.Entries {
		total += e.Subtotal()
	}
	return total
}

// Items returns the staged entries as line items ready for commit.
func (c *Cart) Items() []LineItem {
	items := make([]LineItem, 0, len(c.Entries))
	for _, e := range c.Entries {
		items = append(items, LineItem{
			ProductID: e.ProductID,
			Quantity:  e.Quantity,
			UnitPrice: e.UnitPrice,
			Modifiers: e.Modifiers,
		})
	}
	return items
}
