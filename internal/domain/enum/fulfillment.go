package enum

import (
	"database/sql/driver"
	"fmt"
)

// FulfillmentStatus tracks how far an order has progressed toward handover.
// The meaning of each value depends on the order's channel:
//
//	counter:  preparing(1) -> ready(2)
//	delivery: preparing(1) -> dispatched(2) -> delivered(3)
//
// Payment is a separate dimension (an order's payment reference), not part of
// this enum. The two are coupled only through CanTransition.
type FulfillmentStatus int

const (
	FulfillmentPreparing  FulfillmentStatus = 1
	FulfillmentReady      FulfillmentStatus = 2 // counter terminal display state
	FulfillmentDispatched FulfillmentStatus = 2 // delivery: handed to courier
	FulfillmentDelivered  FulfillmentStatus = 3 // delivery terminal state
)

// Label returns the human label for the status under the given channel.
func (s FulfillmentStatus) Label(channel Channel) string {
	if channel == ChannelCounter {
		switch s {
		case FulfillmentPreparing:
			return "preparing"
		case FulfillmentReady:
			return "ready"
		}
		return "unknown"
	}
	switch s {
	case FulfillmentPreparing:
		return "preparing"
	case FulfillmentDispatched:
		return "dispatched"
	case FulfillmentDelivered:
		return "delivered"
	}
	return "unknown"
}

// ValidFor reports whether s is a legal status value for the channel.
func (s FulfillmentStatus) ValidFor(channel Channel) bool {
	if channel == ChannelCounter {
		return s == FulfillmentPreparing || s == FulfillmentReady
	}
	return s >= FulfillmentPreparing && s <= FulfillmentDelivered
}

// CanTransition decides whether an order on the given channel, with the given
// payment state, may move from one fulfillment status to another. Counter
// orders cannot be marked ready before payment; delivery orders cannot be
// dispatched before payment. Other moves are deliberately unrestricted: the
// floor staff may jump straight to delivered when a courier self-reports late.
func CanTransition(channel Channel, paid bool, from, to FulfillmentStatus) error {
	if !to.ValidFor(channel) {
		return fmt.Errorf("status %d is not valid for %s orders", to, channel)
	}
	if channel == ChannelCounter && to == FulfillmentReady && !paid {
		return fmt.Errorf("order must be paid before it can be marked ready")
	}
	if channel == ChannelDelivery && to == FulfillmentDispatched && !paid {
		return fmt.Errorf("order must be paid before it can be dispatched")
	}
	return nil
}

func (s FulfillmentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *FulfillmentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = FulfillmentPreparing
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = FulfillmentStatus(v)
	case int:
		*s = FulfillmentStatus(v)
	}
	return nil
}
