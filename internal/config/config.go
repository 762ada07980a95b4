package config

import (
	"os"
	"strconv"

	"cleanframe/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Session  SessionConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds the optional snapshot store settings. An empty URL
// disables persistence entirely.
type DatabaseConfig struct {
	URL string
}

// SessionConfig holds defaults for new cleaning sessions
type SessionConfig struct {
	MaxNumCategories int
	MinMissingRatio  float64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Session: SessionConfig{
			MaxNumCategories: getEnvIntOrDefault("MAX_NUM_CATEGORIES", 10),
			MinMissingRatio:  getEnvFloatOrDefault("MIN_MISSING_RATIO", 0.05),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Session.MaxNumCategories <= 0 {
		return errors.ConfigInvalid("MAX_NUM_CATEGORIES must be a positive integer")
	}
	if cfg.Session.MinMissingRatio < 0 || cfg.Session.MinMissingRatio > 1 {
		return errors.ConfigInvalid("MIN_MISSING_RATIO must be between 0 and 1")
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvIntOrDefault(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloatOrDefault(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
