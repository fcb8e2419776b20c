package request

// ModifierRequest is one selected extra on an item being staged.
type ModifierRequest struct {
	AttributeID uint   `json:"attribute_id"`
	Label       string `json:"label" binding:"required"`
	ExtraPrice  int64  `json:"extra_price"`
}

// StartCartRequest is the request body for opening a cart.
type StartCartRequest struct {
	Channel       int    `json:"channel" binding:"required,oneof=1 2"`
	CustomerLabel string `json:"customer_label"`

	CustomerID      *uint  `json:"customer_id"`
	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone"`
	CustomerAddress string `json:"customer_address"`

	CourierID     *uint  `json:"courier_id"`
	ShippingCost  int64  `json:"shipping_cost"`
	EstimatedTime string `json:"estimated_time"`
	Comment       string `json:"comment"`
}

// AddCartItemRequest is the request body for staging a product.
type AddCartItemRequest struct {
	ProductID uint              `json:"product_id" binding:"required"`
	Quantity  int               `json:"quantity"`
	Modifiers []ModifierRequest `json:"modifiers"`
}

// AdjustCartItemRequest is the request body for changing a staged quantity.
type AdjustCartItemRequest struct {
	Delta int `json:"delta" binding:"required"`
}
