package service

import (
	"time"

	"github.com/comandero/pos-api/internal/domain/entity"
	"github.com/comandero/pos-api/pkg/receipt"
)

// Snapshot builders bridge persisted entities and the print wire format.
// Everything a document renders must be captured here; the formatter and the
// relay agent never see entities.

func orderSnapshot(o *entity.Order) receipt.OrderSnapshot {
	return receipt.OrderSnapshot{
		ID:            o.ID,
		Channel:       o.Channel.String(),
		OccurredAt:    o.OccurredAt.Format(time.RFC3339),
		ReceiptNumber: o.ReceiptNumber,
		Total:         o.Total,
		ShippingCost:  o.ShippingCost,
		StatusLabel:   o.FulfillmentStatus.Label(o.Channel),
		CustomerLabel: o.CustomerLabel,
		Comment:       o.Comment,
		EstimatedTime: o.EstimatedTime,
	}
}

func itemSnapshots(items []entity.LineItem) []receipt.ItemSnapshot {
	out := make([]receipt.ItemSnapshot, 0, len(items))
	for _, item := range items {
		name := item.Product.Name
		if name == "" {
			name = "Producto"
		}
		out = append(out, receipt.ItemSnapshot{
			Name:      name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Modifiers: modifierSnapshots(item.Modifiers),
		})
	}
	return out
}

func entrySnapshots(entries []entity.CartEntry) []receipt.ItemSnapshot {
	out := make([]receipt.ItemSnapshot, 0, len(entries))
	for _, e := range entries {
		out = append(out, receipt.ItemSnapshot{
			Name:      e.Name,
			Quantity:  e.Quantity,
			UnitPrice: e.UnitPrice,
			Modifiers: modifierSnapshots(e.Modifiers),
		})
	}
	return out
}

func modifierSnapshots(mods entity.ModifierList) []receipt.ModifierSnapshot {
	if len(mods) == 0 {
		return nil
	}
	out := make([]receipt.ModifierSnapshot, 0, len(mods))
	for _, m := range mods {
		out = append(out, receipt.ModifierSnapshot{Label: m.Label, ExtraPrice: m.ExtraPrice})
	}
	return out
}

func customerSnapshot(c *entity.Customer) *receipt.CustomerSnapshot {
	if c == nil {
		return nil
	}
	return &receipt.CustomerSnapshot{Name: c.Name, Phone: c.Phone, Address: c.Address}
}

// buildPayload assembles the full print payload for an order loaded with its
// items and relations.
func buildPayload(o *entity.Order) receipt.JobPayload {
	return receipt.JobPayload{
		Order:    orderSnapshot(o),
		Customer: customerSnapshot(o.Customer),
		Items:    itemSnapshots(o.Items),
	}
}
