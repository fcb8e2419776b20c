package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/comandero/pos-api/internal/application/service"
	"github.com/comandero/pos-api/internal/domain/entity"
	"github.com/comandero/pos-api/internal/presentation/http/dto/request"
	"github.com/comandero/pos-api/internal/presentation/http/dto/response"
)

// CustomerHandler handles the delivery customer directory endpoints.
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// Search finds customers by partial phone match.
func (h *CustomerHandler) Search(c *gin.Context) {
	customers, err := h.customerService.SearchByPhone(c.Request.Context(), c.Query("phone"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customers retrieved", customers)
}

// Get returns a customer by id.
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid customer id")
		return
	}

	customer, err := h.customerService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer retrieved", customer)
}

// Create registers a customer.
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	customer := &entity.Customer{Name: req.Name, Phone: req.Phone, Address: req.Address}
	if err := h.customerService.Create(c.Request.Context(), customer); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Customer created", customer)
}

// Update edits a customer.
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid customer id")
		return
	}

	var req request.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	customer := &entity.Customer{ID: id, Name: req.Name, Phone: req.Phone, Address: req.Address}
	if err := h.customerService.Update(c.Request.Context(), customer); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer updated", customer)
}
