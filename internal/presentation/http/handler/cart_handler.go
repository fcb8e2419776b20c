package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/comandero/pos-api/internal/application/service"
	"github.com/comandero/pos-api/internal/domain/enum"
	"github.com/comandero/pos-api/internal/presentation/http/dto/request"
	"github.com/comandero/pos-api/internal/presentation/http/dto/response"
)

// CartHandler handles the session cart endpoints.
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

func (h *CartHandler) session(c *gin.Context) (string, bool) {
	key := SessionKey(c)
	if key == "" {
		response.BadRequest(c, "X-Session-ID header is required")
		return "", false
	}
	return key, true
}

// Start opens a fresh cart for the session.
func (h *CartHandler) Start(c *gin.Context) {
	key, ok := h.session(c)
	if !ok {
		return
	}

	var req request.StartCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	cart, err := h.cartService.Start(c.Request.Context(), key, service.StartCartInput{
		Channel:         enum.Channel(req.Channel),
		CustomerLabel:   req.CustomerLabel,
		CustomerID:      req.CustomerID,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		CourierID:       req.CourierID,
		ShippingCost:    req.ShippingCost,
		EstimatedTime:   req.EstimatedTime,
		Comment:         req.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Cart started", cart)
}

// Get returns the session's cart.
func (h *CartHandler) Get(c *gin.Context) {
	key, ok := h.session(c)
	if !ok {
		return
	}

	cart, err := h.cartService.Get(c.Request.Context(), key)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart retrieved", cart)
}

// AddItem stages a product in the cart.
func (h *CartHandler) AddItem(c *gin.Context) {
	key, ok := h.session(c)
	if !ok {
		return
	}

	var req request.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), key, req.ProductID, req.Quantity, toModifiers(req.Modifiers))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item staged", cart)
}

// AdjustItem changes a staged entry's quantity.
func (h *CartHandler) AdjustItem(c *gin.Context) {
	key, ok := h.session(c)
	if !ok {
		return
	}

	var req request.AdjustCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	cart, err := h.cartService.AdjustItem(c.Request.Context(), key, c.Param("entry"), req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Entry adjusted", cart)
}

// RemoveItem drops a staged entry.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	key, ok := h.session(c)
	if !ok {
		return
	}

	cart, err := h.cartService.RemoveItem(c.Request.Context(), key, c.Param("entry"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Entry removed", cart)
}

// Clear discards the session's cart.
func (h *CartHandler) Clear(c *gin.Context) {
	key, ok := h.session(c)
	if !ok {
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), key); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Commit turns the cart into a persisted order.
func (h *CartHandler) Commit(c *gin.Context) {
	key, ok := h.session(c)
	if !ok {
		return
	}

	order, err := h.cartService.Commit(c.Request.Context(), key)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created", order)
}
