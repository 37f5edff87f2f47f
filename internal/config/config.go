package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Server struct {
		Port         string
		MetricsPort  string
		ReadTimeout  time.Duration
		WriteTimeout time.Duration
	}

	AirNow struct {
		APIKey        string
		DistanceMiles int
	}

	Table struct {
		Path            string
		RefreshInterval time.Duration
		RefreshTimeout  time.Duration
	}

	Cache struct {
		Duration time.Duration
		MaxSize  int
	}

	CircuitBreaker struct {
		Timeout time.Duration
	}

	Retry struct {
		MaxRetries int
		Delay      time.Duration
		Multiplier float64
	}

	HTTPTimeout time.Duration
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		zap.L().Info("No .env file found, using environment variables")
	}

	cfg := &Config{}

	// Server configuration
	cfg.Server.Port = getEnv("FIBER_PORT", "8080")
	cfg.Server.MetricsPort = getEnv("METRICS_PORT", "9090")
	cfg.Server.ReadTimeout = parseDuration(getEnv("FIBER_READ_TIMEOUT", "10s"))
	cfg.Server.WriteTimeout = parseDuration(getEnv("FIBER_WRITE_TIMEOUT", "10s"))

	// AirNow API configuration
	cfg.AirNow.APIKey = getEnv("AIRNOW_API_KEY", "")
	if cfg.AirNow.APIKey == "" {
		return nil, fmt.Errorf("AIRNOW_API_KEY is required")
	}
	cfg.AirNow.DistanceMiles = parseInt(getEnv("SEARCH_RADIUS_MILES", "25"))

	// Reference table configuration
	cfg.Table.Path = getEnv("ZIP_TABLE_PATH", "data/california_zip_codes.csv")
	cfg.Table.RefreshInterval = parseDuration(getEnv("REFRESH_INTERVAL", "30m"))
	cfg.Table.RefreshTimeout = parseDuration(getEnv("REFRESH_TIMEOUT", "5m"))

	// Cache configuration
	cfg.Cache.Duration = parseDuration(getEnv("CACHE_DURATION", "1h"))
	cfg.Cache.MaxSize = parseInt(getEnv("MAX_CACHE_SIZE", "1000"))

	// Circuit breaker configuration
	cfg.CircuitBreaker.Timeout = parseDuration(getEnv("CIRCUIT_BREAKER_TIMEOUT", "30s"))

	// Retry configuration
	cfg.Retry.MaxRetries = parseInt(getEnv("MAX_RETRIES", "3"))
	cfg.Retry.Delay = parseDuration(getEnv("RETRY_DELAY", "1s"))
	cfg.Retry.Multiplier = parseFloat(getEnv("RETRY_MULTIPLIER", "2"))

	cfg.HTTPTimeout = parseDuration(getEnv("HTTP_TIMEOUT", "10s"))

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(value string) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		zap.L().Warn("Failed to parse duration", zap.String("value", value), zap.Error(err))
		return 0
	}
	return duration
}

func parseInt(value string) int {
	intValue, err := strconv.Atoi(value)
	if err != nil {
		zap.L().Warn("Failed to parse int", zap.String("value", value), zap.Error(err))
		return 0
	}
	return intValue
}

func parseFloat(value string) float64 {
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		zap.L().Warn("Failed to parse float", zap.String("value", value), zap.Error(err))
		return 0
	}
	return floatValue
}
