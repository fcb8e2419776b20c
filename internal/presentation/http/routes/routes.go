package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/comandero/pos-api/internal/config"
	"github.com/comandero/pos-api/internal/presentation/http/handler"
	"github.com/comandero/pos-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
	Printer  *handler.PrinterHandler
	Customer *handler.CustomerHandler
	Catalog  *handler.CatalogHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg    *config.Config
	Logger zerolog.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		rateLimiter := middleware.NewIPRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())

		registerCartRoutes(v1, h)
		registerOrderRoutes(v1, h)
		registerPrinterRoutes(v1, h)
		registerCustomerRoutes(v1, h)
		registerCatalogRoutes(v1, h)
	}

	return router
}

func registerCartRoutes(v1 *gin.RouterGroup, h *Handlers) {
	cart := v1.Group("/cart")
	{
		cart.POST("", h.Cart.Start)
		cart.GET("", h.Cart.Get)
		cart.DELETE("", h.Cart.Clear)
		cart.POST("/items", h.Cart.AddItem)
		cart.PATCH("/items/:entry", h.Cart.AdjustItem)
		cart.DELETE("/items/:entry", h.Cart.RemoveItem)
		cart.POST("/commit", h.Cart.Commit)
	}
}

func registerOrderRoutes(v1 *gin.RouterGroup, h *Handlers) {
	orders := v1.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.GET("/board", h.Order.Board)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/cancel", h.Order.Cancel)
		orders.POST("/:id/payment", h.Order.RecordPayment)
		orders.POST("/:id/status", h.Order.Transition)

		orders.POST("/:id/items", h.Order.AddItem)
		orders.PATCH("/:id/items/:itemID", h.Order.AdjustItem)
		orders.DELETE("/:id/items/:itemID", h.Order.RemoveItem)

		orders.GET("/:id/additions", h.Order.StagedAdditions)
		orders.POST("/:id/additions", h.Order.StageAddition)
		orders.DELETE("/:id/additions/:entry", h.Order.UnstageAddition)
		orders.POST("/:id/additions/confirm", h.Order.ConfirmAdditions)

		orders.GET("/:id/removals", h.Order.StagedRemovals)
		orders.POST("/:id/removals", h.Order.StageRemoval)
		orders.DELETE("/:id/removals/:productID", h.Order.UnstageRemoval)
		orders.POST("/:id/removals/confirm", h.Order.ConfirmRemovals)

		orders.GET("/:id/print/payload", h.Order.PrintPayload)
		orders.POST("/:id/print", h.Order.Reprint)
	}
}

func registerPrinterRoutes(v1 *gin.RouterGroup, h *Handlers) {
	printers := v1.Group("/printers")
	{
		printers.GET("", h.Printer.List)
		printers.POST("", h.Printer.Create)
		printers.GET("/drivers", h.Printer.Drivers)
		printers.GET("/:id", h.Printer.Get)
		printers.PUT("/:id", h.Printer.Update)
		printers.DELETE("/:id", h.Printer.Delete)
		printers.GET("/:id/relay/health", h.Printer.RelayHealth)
		printers.GET("/:id/relay/printers", h.Printer.RelayPrinters)
	}
}

func registerCustomerRoutes(v1 *gin.RouterGroup, h *Handlers) {
	customers := v1.Group("/customers")
	{
		customers.GET("/search", h.Customer.Search)
		customers.GET("/:id", h.Customer.Get)
		customers.POST("", h.Customer.Create)
		customers.PUT("/:id", h.Customer.Update)
	}
}

func registerCatalogRoutes(v1 *gin.RouterGroup, h *Handlers) {
	v1.GET("/products", h.Catalog.Products)
	v1.GET("/couriers", h.Catalog.Couriers)
	v1.GET("/payment-methods", h.Catalog.PaymentMethods)
}
