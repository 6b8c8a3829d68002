package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Gateway     GatewayConfig
	Mongo       MongoConfig
	LogLevel    string
}

// GatewayConfig holds the billing gateway endpoint and credential pair.
// The gateway authenticates with custom `username`/`password` headers,
// not standard HTTP basic auth. Read-only after Load.
type GatewayConfig struct {
	BaseURL          string // e.g. https://gateway.example.com/api
	Username         string
	Password         string
	EntityActivityID string // fixed biller activity identifier sent on every upload
}

// MongoConfig is used to reach the document store for callback records
type MongoConfig struct {
	URI      string
	Database string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "5001")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "gopay")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "5001"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Gateway: GatewayConfig{
			BaseURL:          strings.TrimSpace(getEnvOrViper("GATEWAY_BASE_URL", "")),
			Username:         strings.TrimSpace(getEnvOrViper("GATEWAY_USERNAME", "")),
			Password:         strings.TrimSpace(getEnvOrViper("GATEWAY_PASSWORD", "")),
			EntityActivityID: strings.TrimSpace(getEnvOrViper("ENTITY_ACTIVITY_ID", "")),
		},
		Mongo: MongoConfig{
			URI:      getEnvOrViper("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnvOrViper("MONGO_DATABASE", "gopay"),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.Gateway.BaseURL == "" {
		return nil, fmt.Errorf("GATEWAY_BASE_URL is required")
	}
	if cfg.Gateway.Username == "" {
		return nil, fmt.Errorf("GATEWAY_USERNAME is required")
	}
	if cfg.Gateway.Password == "" {
		return nil, fmt.Errorf("GATEWAY_PASSWORD is required")
	}

	return cfg, nil
}

// getEnvOrViper prefers a real environment variable over the .env file value
func getEnvOrViper(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	return defaultValue
}
