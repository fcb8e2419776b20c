package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionCounter(t *testing.T) {
	// Unpaid counter orders stay in preparation.
	err := CanTransition(ChannelCounter, false, FulfillmentPreparing, FulfillmentReady)
	assert.Error(t, err)

	// Payment unlocks ready.
	assert.NoError(t, CanTransition(ChannelCounter, true, FulfillmentPreparing, FulfillmentReady))

	// Moving back to preparing needs no payment.
	assert.NoError(t, CanTransition(ChannelCounter, false, FulfillmentReady, FulfillmentPreparing))

	// Delivered is not a counter status.
	assert.Error(t, CanTransition(ChannelCounter, true, FulfillmentPreparing, FulfillmentDelivered))
}

func TestCanTransitionDelivery(t *testing.T) {
	// Unpaid delivery orders cannot leave with the courier.
	assert.Error(t, CanTransition(ChannelDelivery, false, FulfillmentPreparing, FulfillmentDispatched))
	assert.NoError(t, CanTransition(ChannelDelivery, true, FulfillmentPreparing, FulfillmentDispatched))

	// Jumping straight to delivered is allowed, paid or not.
	assert.NoError(t, CanTransition(ChannelDelivery, false, FulfillmentPreparing, FulfillmentDelivered))
	assert.NoError(t, CanTransition(ChannelDelivery, true, FulfillmentDispatched, FulfillmentDelivered))

	// And so is going backwards.
	assert.NoError(t, CanTransition(ChannelDelivery, true, FulfillmentDelivered, FulfillmentPreparing))
}

func TestFulfillmentLabels(t *testing.T) {
	assert.Equal(t, "preparing", FulfillmentPreparing.Label(ChannelCounter))
	assert.Equal(t, "ready", FulfillmentReady.Label(ChannelCounter))
	assert.Equal(t, "dispatched", FulfillmentDispatched.Label(ChannelDelivery))
	assert.Equal(t, "delivered", FulfillmentDelivered.Label(ChannelDelivery))
	assert.Equal(t, "unknown", FulfillmentDelivered.Label(ChannelCounter))
}
