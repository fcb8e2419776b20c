package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/comandero/pos-api/internal/application/service"
	"github.com/comandero/pos-api/internal/domain/entity"
	"github.com/comandero/pos-api/internal/presentation/http/dto/request"
	"github.com/comandero/pos-api/internal/presentation/http/dto/response"
	"github.com/comandero/pos-api/pkg/printer"
	"github.com/comandero/pos-api/pkg/receipt"
)

// PrinterHandler handles printer target administration and relay probing.
type PrinterHandler struct {
	adminService *service.PrinterAdminService
	printService *service.PrintService
	registry     *printer.Registry
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(adminService *service.PrinterAdminService, printService *service.PrintService, registry *printer.Registry) *PrinterHandler {
	return &PrinterHandler{adminService: adminService, printService: printService, registry: registry}
}

// List returns all printer targets.
func (h *PrinterHandler) List(c *gin.Context) {
	targets, err := h.adminService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Printer targets retrieved", targets)
}

// Get returns a single printer target.
func (h *PrinterHandler) Get(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid printer id")
		return
	}

	target, err := h.adminService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Printer target retrieved", target)
}

func targetFromRequest(req *request.PrinterTargetRequest) *entity.PrinterTarget {
	target := &entity.PrinterTarget{
		Name:          req.Name,
		DriverName:    req.DriverName,
		DocumentKinds: entity.StringList(req.DocumentKinds),
		Profiles:      entity.StringList(req.Profiles),
		Width:         req.Width,
		RelayURL:      req.RelayURL,
		CutPaper:      true,
		FeedLines:     3,
		Active:        true,
	}
	if target.Width <= 0 {
		target.Width = receipt.DefaultWidth
	}
	if req.CutPaper != nil {
		target.CutPaper = *req.CutPaper
	}
	if req.FeedLines != nil {
		target.FeedLines = *req.FeedLines
	}
	if req.Active != nil {
		target.Active = *req.Active
	}
	return target
}

// Create registers a printer target.
func (h *PrinterHandler) Create(c *gin.Context) {
	var req request.PrinterTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	target := targetFromRequest(&req)
	if err := h.adminService.Create(c.Request.Context(), target); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Printer target created", target)
}

// Update edits a printer target.
func (h *PrinterHandler) Update(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid printer id")
		return
	}

	var req request.PrinterTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	target := targetFromRequest(&req)
	target.ID = id
	if err := h.adminService.Update(c.Request.Context(), target); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Printer target updated", target)
}

// Delete removes a printer target.
func (h *PrinterHandler) Delete(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid printer id")
		return
	}

	if err := h.adminService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Drivers lists the locally attached printer drivers.
func (h *PrinterHandler) Drivers(c *gin.Context) {
	response.OK(c, "Local drivers retrieved", gin.H{
		"drivers": h.registry.Drivers(),
		"default": h.registry.Default(),
	})
}

// RelayHealth probes the relay agent behind a remote target.
func (h *PrinterHandler) RelayHealth(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid printer id")
		return
	}

	info, err := h.printService.RelayHealth(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Relay health retrieved", info)
}

// RelayPrinters lists the drivers known to a remote target's relay agent.
func (h *PrinterHandler) RelayPrinters(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid printer id")
		return
	}

	printers, err := h.printService.RelayPrinters(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Relay printers retrieved", gin.H{"printers": printers})
}
