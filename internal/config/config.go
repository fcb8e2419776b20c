package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Session   SessionConfig
	Printer   PrinterConfig
	PrintHost PrintHostConfig
}

type AppConfig struct {
	Name     string
	Env      string
	Port     string
	Debug    bool
	Business string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

// SessionConfig selects where staged carts live. Store is "memory" or
// "redis"; redis keeps carts across restarts and between instances.
type SessionConfig struct {
	Store         string
	TTL           time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// PrinterConfig describes the printer attached to this process, if any.
type PrinterConfig struct {
	Type          string // usb, network or none
	USBPath       string
	Address       string
	DefaultDriver string
}

// PrintHostConfig configures the relay agent binary. Printers is a comma
// separated list of name=device pairs, a device being a USB path or a
// host:port address.
type PrintHostConfig struct {
	Port          string
	Version       string
	Printers      string
	DefaultDriver string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "pos-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("APP_BUSINESS_NAME", "Mundo Waffles")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "pos")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "America/Santiago")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("SESSION_STORE", "memory")
	viper.SetDefault("SESSION_TTL_MINUTES", 240)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_DEFAULT_DRIVER", "local")
	viper.SetDefault("PRINTHOST_PORT", "8765")
	viper.SetDefault("PRINTHOST_VERSION", "1.0.0")
	viper.SetDefault("PRINTHOST_PRINTERS", "")
	viper.SetDefault("PRINTHOST_DEFAULT_DRIVER", "")

	return &Config{
		App: AppConfig{
			Name:     viper.GetString("APP_NAME"),
			Env:      viper.GetString("APP_ENV"),
			Port:     viper.GetString("APP_PORT"),
			Debug:    viper.GetBool("APP_DEBUG"),
			Business: viper.GetString("APP_BUSINESS_NAME"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Session: SessionConfig{
			Store:         viper.GetString("SESSION_STORE"),
			TTL:           time.Duration(viper.GetInt("SESSION_TTL_MINUTES")) * time.Minute,
			RedisAddr:     viper.GetString("REDIS_ADDR"),
			RedisPassword: viper.GetString("REDIS_PASSWORD"),
			RedisDB:       viper.GetInt("REDIS_DB"),
		},
		Printer: PrinterConfig{
			Type:          viper.GetString("PRINTER_TYPE"),
			USBPath:       viper.GetString("PRINTER_USB_PATH"),
			Address:       viper.GetString("PRINTER_ADDRESS"),
			DefaultDriver: viper.GetString("PRINTER_DEFAULT_DRIVER"),
		},
		PrintHost: PrintHostConfig{
			Port:          viper.GetString("PRINTHOST_PORT"),
			Version:       viper.GetString("PRINTHOST_VERSION"),
			Printers:      viper.GetString("PRINTHOST_PRINTERS"),
			DefaultDriver: viper.GetString("PRINTHOST_DEFAULT_DRIVER"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
