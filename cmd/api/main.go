package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/comandero/pos-api/internal/application/service"
	"github.com/comandero/pos-api/internal/config"
	"github.com/comandero/pos-api/internal/domain/repository"
	"github.com/comandero/pos-api/internal/infrastructure/database"
	infraRepo "github.com/comandero/pos-api/internal/infrastructure/repository"
	"github.com/comandero/pos-api/internal/infrastructure/session"
	"github.com/comandero/pos-api/internal/presentation/http/handler"
	"github.com/comandero/pos-api/internal/presentation/http/routes"
	"github.com/comandero/pos-api/pkg/printer"
	"github.com/comandero/pos-api/pkg/receipt"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", cfg.App.Name).Logger()
	if cfg.App.Debug {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}
	log.Logger = logger

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		logger.Warn().Err(err).Msg("failed to seed default data")
	}

	// Initialize repositories
	orderRepo := infraRepo.NewOrderRepository(db)
	itemRepo := infraRepo.NewLineItemRepository(db)
	productRepo := infraRepo.NewProductRepository(db)
	paymentRepo := infraRepo.NewPaymentMethodRepository(db)
	customerRepo := infraRepo.NewCustomerRepository(db)
	courierRepo := infraRepo.NewCourierRepository(db)
	targetRepo := infraRepo.NewPrinterTargetRepository(db)
	txManager := infraRepo.NewTxManager(db)

	// Initialize cart store
	var cartStore repository.CartStore
	switch cfg.Session.Store {
	case "redis":
		cartStore, err = session.NewRedisStore(cfg.Session.RedisAddr, cfg.Session.RedisPassword, cfg.Session.RedisDB, cfg.Session.TTL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
	default:
		cartStore = session.NewMemoryStore(cfg.Session.TTL)
	}

	// Initialize local printer registry
	registry := printer.NewRegistry()
	localPrinter, err := printer.NewPrinterFromConfig(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to initialize printer, using null printer")
		localPrinter = printer.NewNullPrinter()
	}
	registry.Register(cfg.Printer.DefaultDriver, localPrinter)
	registry.SetDefault(cfg.Printer.DefaultDriver)

	formatter := receipt.NewFormatter(cfg.App.Business)

	// Initialize services
	printService := service.NewPrintService(targetRepo, registry, formatter, logger)
	if err := printService.RebuildIndex(context.Background()); err != nil {
		logger.Warn().Err(err).Msg("failed to build printer routing index")
	}
	printerAdminService := service.NewPrinterAdminService(targetRepo, printService)
	orderService := service.NewOrderService(orderRepo, itemRepo, productRepo, paymentRepo, txManager, printService)
	cartService := service.NewCartService(cartStore, productRepo, customerRepo, courierRepo, orderService)
	customerService := service.NewCustomerService(customerRepo)
	catalogService := service.NewCatalogService(productRepo, courierRepo, paymentRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Cart:     handler.NewCartHandler(cartService),
		Order:    handler.NewOrderHandler(orderService, cartService),
		Printer:  handler.NewPrinterHandler(printerAdminService, printService, registry),
		Customer: handler.NewCustomerHandler(customerService),
		Catalog:  handler.NewCatalogHandler(catalogService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:    cfg,
		Logger: logger,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	logger.Info().Str("port", port).Str("env", cfg.App.Env).Msg("starting server")

	if err := router.Run(":" + port); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
