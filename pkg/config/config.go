package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/adilet-dev/campus-inventory/pkg/database"
)

// Config holds all service configuration loaded from the environment
type Config struct {
	ServiceName string
	Environment string
	LogLevel    string
	HTTPPort    string

	Database database.Config

	JWTSecret    string
	KafkaBrokers []string
}

// Load reads configuration from the environment. A .env file is loaded
// first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServiceName: getEnv("OTEL_SERVICE_NAME", "campus-inventory"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		Database: database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "inventorydb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWTSecret:    getEnv("JWT_SECRET", ""),
		KafkaBrokers: splitCSV(os.Getenv("KAFKA_BROKERS")),
	}
}

// IsDevelopment reports whether the service runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
