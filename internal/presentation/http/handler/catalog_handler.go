package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/comandero/pos-api/internal/application/service"
	"github.com/comandero/pos-api/internal/presentation/http/dto/response"
)

// CatalogHandler serves the lookup endpoints the POS screens load on start.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// Products returns the sellable products.
func (h *CatalogHandler) Products(c *gin.Context) {
	products, err := h.catalogService.Products(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Products retrieved", products)
}

// Couriers returns the active couriers.
func (h *CatalogHandler) Couriers(c *gin.Context) {
	couriers, err := h.catalogService.Couriers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Couriers retrieved", couriers)
}

// PaymentMethods returns the configured payment methods.
func (h *CatalogHandler) PaymentMethods(c *gin.Context) {
	methods, err := h.catalogService.PaymentMethods(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment methods retrieved", methods)
}
