package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/comandero/pos-api/internal/config"
	"github.com/comandero/pos-api/internal/printhost"
	"github.com/comandero/pos-api/pkg/receipt"
)

func main() {
	cfg := config.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "printhost").Logger()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	registry, err := printhost.BuildRegistry(cfg.PrintHost.Printers, cfg.PrintHost.DefaultDriver)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid printer inventory")
	}

	formatter := receipt.NewFormatter(cfg.App.Business)
	server := printhost.NewServer(registry, formatter, cfg.PrintHost.Version, logger)
	router := server.Router()

	logger.Info().
		Str("port", cfg.PrintHost.Port).
		Strs("printers", registry.Drivers()).
		Str("default", registry.Default()).
		Msg("starting relay agent")

	if err := router.Run(":" + cfg.PrintHost.Port); err != nil {
		logger.Fatal().Err(err).Msg("failed to start relay agent")
	}
}
