package request

// AddOrderItemRequest is the request body for appending a product to a
// committed order, directly or via the additions stash.
type AddOrderItemRequest struct {
	ProductID uint              `json:"product_id" binding:"required"`
	Quantity  int               `json:"quantity"`
	Modifiers []ModifierRequest `json:"modifiers"`
}

// AdjustOrderItemRequest is the request body for changing a line quantity.
type AdjustOrderItemRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// RecordPaymentRequest is the request body for recording a payment.
type RecordPaymentRequest struct {
	PaymentMethodID uint `json:"payment_method_id" binding:"required"`
}

// TransitionRequest is the request body for a fulfillment status change.
type TransitionRequest struct {
	Status int `json:"status" binding:"required"`
}

// StageRemovalRequest is the request body for staging a removal.
type StageRemovalRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// ReprintRequest is the request body for manually reprinting a document.
type ReprintRequest struct {
	Kind string `json:"kind" binding:"required,oneof=raw pedido comanda agregados eliminados delivery"`
}
