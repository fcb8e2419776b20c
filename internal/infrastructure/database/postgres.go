package database

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/comandero/pos-api/internal/config"
	"github.com/comandero/pos-api/internal/domain/entity"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Info().Msg("connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Info().Msg("running database migrations")

	err := db.AutoMigrate(
		// Catalog entities
		&entity.Product{},

		// Order entities
		&entity.Order{},
		&entity.LineItem{},
		&entity.PaymentMethod{},

		// Delivery entities
		&entity.Customer{},
		&entity.Courier{},

		// Printing entities
		&entity.PrinterTarget{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info().Msg("database migrations completed")
	return nil
}

// SeedDefaultData seeds the database with the default payment methods
func SeedDefaultData(db *gorm.DB) error {
	methods := []entity.PaymentMethod{
		{Name: "Boleta", ReceiptPrefix: "B", Default: true},
		{Name: "Factura", ReceiptPrefix: "F"},
	}

	for i := range methods {
		var existing entity.PaymentMethod
		if err := db.Where("name = ?", methods[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&methods[i]).Error; err != nil {
				log.Warn().Err(err).Str("method", methods[i].Name).Msg("failed to seed payment method")
			}
		}
	}

	return nil
}
