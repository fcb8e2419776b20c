// Package printhost implements the relay agent: a small HTTP server running
// on the machine printers are plugged into. It accepts structured jobs from
// the POS server, renders them with the shared formatter and spools the bytes
// to a local driver.
package printhost

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/comandero/pos-api/internal/domain/enum"
	"github.com/comandero/pos-api/pkg/printer"
	"github.com/comandero/pos-api/pkg/receipt"
	"github.com/comandero/pos-api/pkg/relay"
)

const (
	defaultFeed = 3
	defaultCut  = true
)

// Server is the relay agent's HTTP surface.
type Server struct {
	registry  *printer.Registry
	formatter *receipt.Formatter
	version   string
	logger    zerolog.Logger
}

// NewServer creates a relay agent over a driver registry.
func NewServer(registry *printer.Registry, formatter *receipt.Formatter, version string, logger zerolog.Logger) *Server {
	return &Server{registry: registry, formatter: formatter, version: version, logger: logger}
}

// Router builds the Gin engine with every relay endpoint registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.CustomRecovery(func(c *gin.Context, _ interface{}) {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Error interno del servidor"})
	}))

	router.GET("/health", s.health)
	router.GET("/printers", s.printers)
	router.POST("/print/job", s.printJob)
	router.POST("/print/raw", s.printRaw)
	router.POST("/print/pedido", s.printPedido)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Endpoint no encontrado"})
	})

	return router
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, relay.HealthInfo{
		Status:         "ok",
		Version:        s.version,
		DefaultPrinter: s.registry.Default(),
		Printers:       s.registry.Drivers(),
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) printers(c *gin.Context) {
	drivers := s.registry.Drivers()
	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"printers": drivers,
		"count":    len(drivers),
	})
}

func (s *Server) spool(c *gin.Context, driver, content string, feed int, cut bool) {
	p, resolved, err := s.registry.Resolve(driver)
	if err != nil {
		s.fail(c, http.StatusNotFound, err.Error())
		return
	}
	if err := printer.Spool(p, content, feed, cut); err != nil {
		s.logger.Error().Err(err).Str("driver", resolved).Msg("spool failed")
		s.fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, relay.Result{OK: true, Driver: resolved})
}

func (s *Server) fail(c *gin.Context, status int, msg string) {
	c.JSON(status, relay.Result{OK: false, Error: msg})
}

func (s *Server) printJob(c *gin.Context) {
	var job relay.Job
	if err := c.ShouldBindJSON(&job); err != nil {
		s.fail(c, http.StatusBadRequest, "cuerpo de la solicitud invalido")
		return
	}
	if !job.Type.Valid() {
		s.fail(c, http.StatusBadRequest, "tipo de documento desconocido")
		return
	}

	content := s.render(job.Type, job.Payload)
	if content == "" {
		s.fail(c, http.StatusBadRequest, "documento vacio")
		return
	}

	feed := defaultFeed
	if job.Feed != nil {
		feed = *job.Feed
	}
	cut := defaultCut
	if job.Cut != nil {
		cut = *job.Cut
	}
	s.spool(c, job.Driver, content, feed, cut)
}

func (s *Server) render(kind enum.DocumentKind, payload receipt.JobPayload) string {
	switch kind {
	case enum.DocumentRaw:
		return payload.Content
	case enum.DocumentComanda:
		return s.formatter.KitchenTicket(payload.Order, payload.Items)
	case enum.DocumentPedido:
		return s.formatter.CashReceipt(payload.Order, payload.Items, payload.Customer)
	case enum.DocumentDelivery:
		return s.formatter.DeliveryVoucher(payload.Order, payload.Items, payload.Customer)
	case enum.DocumentAgregados:
		return s.formatter.Delta("AGREGADOS", payload.Order.ID, payload.Items)
	case enum.DocumentEliminados:
		return s.formatter.Delta("ELIMINADOS", payload.Order.ID, payload.Items)
	}
	return ""
}

type rawRequest struct {
	Driver  string `json:"driver"`
	Content string `json:"content"`
	Feed    *int   `json:"feed"`
	Cut     *bool  `json:"cut"`
}

// printRaw keeps the legacy endpoint alive for clients that render locally.
func (s *Server) printRaw(c *gin.Context) {
	var req rawRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Content == "" {
		s.fail(c, http.StatusBadRequest, "contenido requerido")
		return
	}
	feed := defaultFeed
	if req.Feed != nil {
		feed = *req.Feed
	}
	cut := defaultCut
	if req.Cut != nil {
		cut = *req.Cut
	}
	s.spool(c, req.Driver, req.Content, feed, cut)
}

type pedidoRequest struct {
	Driver    string `json:"driver"`
	PedidoID  uint   `json:"pedido_id"`
	Contenido string `json:"contenido"`
}

// printPedido keeps the legacy order-document endpoint alive.
func (s *Server) printPedido(c *gin.Context) {
	var req pedidoRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Contenido == "" {
		s.fail(c, http.StatusBadRequest, "contenido requerido")
		return
	}
	s.logger.Info().Uint("pedido_id", req.PedidoID).Msg("legacy pedido print")
	s.spool(c, req.Driver, req.Contenido, defaultFeed, defaultCut)
}
