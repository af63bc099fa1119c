package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the CLI.
type Config struct {
	LogLevel    string
	LogFormat   string
	MetricsAddr string
	PushURL     string
	Workers     int
	PushRetries uint64
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "console"),
		MetricsAddr: getEnv("METRICS_ADDR", ""),
		PushURL:     getEnv("PUSHGATEWAY_URL", ""),
	}

	workers, err := strconv.Atoi(getEnv("STAFFING_WORKERS", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid STAFFING_WORKERS: %w", err)
	}
	if workers < 1 {
		return nil, fmt.Errorf("invalid STAFFING_WORKERS: must be at least 1 (got %d)", workers)
	}
	config.Workers = workers

	retries, err := strconv.ParseUint(getEnv("PUSH_RETRIES", "3"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PUSH_RETRIES: %w", err)
	}
	config.PushRetries = retries

	return config, nil
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
