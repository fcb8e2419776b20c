package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comandero/pos-api/internal/application/service"
	"github.com/comandero/pos-api/internal/domain/enum"
	"github.com/comandero/pos-api/internal/domain/repository"
	"github.com/comandero/pos-api/internal/presentation/http/dto/request"
	"github.com/comandero/pos-api/internal/presentation/http/dto/response"
	"github.com/comandero/pos-api/pkg/pagination"
)

// OrderHandler handles the order lifecycle endpoints.
type OrderHandler struct {
	orderService *service.OrderService
	cartService  *service.CartService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orderService *service.OrderService, cartService *service.CartService) *OrderHandler {
	return &OrderHandler{orderService: orderService, cartService: cartService}
}

// List returns orders filtered by channel, status, payment and date range.
func (h *OrderHandler) List(c *gin.Context) {
	params := &repository.OrderFilterParams{Pagination: pagination.DefaultPagination()}

	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		params.Pagination.Page = page
	}
	if perPage, err := strconv.Atoi(c.Query("per_page")); err == nil {
		params.Pagination.PerPage = perPage
	}
	if v := c.Query("channel"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || !enum.Channel(n).Valid() {
			response.BadRequest(c, "Invalid channel")
			return
		}
		ch := enum.Channel(n)
		params.Channel = &ch
	}
	if v := c.Query("status"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(c, "Invalid status")
			return
		}
		st := enum.FulfillmentStatus(n)
		params.Fulfillment = &st
	}
	if v := c.Query("paid"); v != "" {
		paid := v == "true" || v == "1"
		params.Paid = &paid
	}
	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
			return
		}
		params.StartDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
			return
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		params.EndDate = &end
	}

	orders, total, err := h.orderService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(orders,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Orders retrieved", result)
}

// Get returns a single order with its items.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved", order)
}

// Board returns the orders in one fulfillment state for the prep screens.
func (h *OrderHandler) Board(c *gin.Context) {
	channel, err := strconv.Atoi(c.Query("channel"))
	if err != nil || !enum.Channel(channel).Valid() {
		response.BadRequest(c, "Invalid channel")
		return
	}
	status, err := strconv.Atoi(c.Query("status"))
	if err != nil {
		response.BadRequest(c, "Invalid status")
		return
	}

	orders, err := h.orderService.Board(c.Request.Context(), enum.Channel(channel), enum.FulfillmentStatus(status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Board retrieved", orders)
}

// AddItem appends a product to a committed order immediately.
func (h *OrderHandler) AddItem(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}

	var req request.AddOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	order, err := h.orderService.AddItem(c.Request.Context(), id, req.ProductID, req.Quantity, toModifiers(req.Modifiers))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item added", order)
}

// AdjustItem changes a line's quantity.
func (h *OrderHandler) AdjustItem(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}
	itemID, ok := ParamID(c, "itemID")
	if !ok {
		response.BadRequest(c, "Invalid item id")
		return
	}

	var req request.AdjustOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	order, err := h.orderService.AdjustItem(c.Request.Context(), id, itemID, req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item adjusted", order)
}

// RemoveItem deletes a line.
func (h *OrderHandler) RemoveItem(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}
	itemID, ok := ParamID(c, "itemID")
	if !ok {
		response.BadRequest(c, "Invalid item id")
		return
	}

	order, err := h.orderService.RemoveItem(c.Request.Context(), id, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item removed", order)
}

// RecordPayment attaches a payment method and prints the receipt.
func (h *OrderHandler) RecordPayment(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}

	var req request.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	order, err := h.orderService.RecordPayment(c.Request.Context(), id, req.PaymentMethodID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded", order)
}

// Transition moves the order to a new fulfillment status.
func (h *OrderHandler) Transition(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}

	var req request.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	order, err := h.orderService.Transition(c.Request.Context(), id, enum.FulfillmentStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Status updated", order)
}

// Cancel voids the order.
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}

	order, err := h.orderService.Cancel(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order cancelled", order)
}

// StageAddition stages a product for later confirmation.
func (h *OrderHandler) StageAddition(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}

	var req request.AddOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	cart, err := h.cartService.StageAddition(c.Request.Context(), id, req.ProductID, req.Quantity, toModifiers(req.Modifiers))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Addition staged", cart)
}

// StagedAdditions returns the pending additions.
func (h *OrderHandler) StagedAdditions(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}

	cart, err := h.cartService.StagedAdditions(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staged additions retrieved", cart)
}

// UnstageAddition drops one pending addition entry.
func (h *OrderHandler) UnstageAddition(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}

	cart, err := h.cartService.UnstageAddition(c.Request.Context(), id, c.Param("entry"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Addition unstaged", cart)
}

// ConfirmAdditions applies the pending additions and prints the slip.
func (h *OrderHandler) ConfirmAdditions(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}

	order, err := h.cartService.ConfirmAdditions(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Additions confirmed", order)
}

// StageRemoval stages units of a product for removal.
func (h *OrderHandler) StageRemoval(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}

	var req request.StageRemovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	entries, err := h.cartService.StageRemoval(c.Request.Context(), id, req.ProductID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Removal staged", entries)
}

// StagedRemovals returns the pending removals.
func (h *OrderHandler) StagedRemovals(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}

	entries, err := h.cartService.StagedRemovals(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staged removals retrieved", entries)
}

// UnstageRemoval drops the pending removal for a product.
func (h *OrderHandler) UnstageRemoval(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}
	productID, ok := ParamID(c, "productID")
	if !ok {
		response.BadRequest(c, "Invalid product id")
		return
	}

	entries, err := h.cartService.UnstageRemoval(c.Request.Context(), id, productID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Removal unstaged", entries)
}

// ConfirmRemovals applies the pending removals and prints the slip.
func (h *OrderHandler) ConfirmRemovals(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}

	order, err := h.cartService.ConfirmRemovals(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Removals confirmed", order)
}

// PrintPayload returns the wire payload a client needs to render the order's
// documents locally.
func (h *OrderHandler) PrintPayload(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}

	payload, err := h.orderService.PrintPayload(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Print payload built", payload)
}

// Reprint re-dispatches one of the order's documents.
func (h *OrderHandler) Reprint(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}

	var req request.ReprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.orderService.Reprint(c.Request.Context(), id, enum.DocumentKind(req.Kind)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Document sent to printer", nil)
}
