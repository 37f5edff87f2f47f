package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aqi-dashboard/internal/api"
	"aqi-dashboard/internal/config"
	"aqi-dashboard/internal/observability"
	"aqi-dashboard/internal/reftable"
	"aqi-dashboard/internal/scheduler"
	"aqi-dashboard/internal/services"
	"aqi-dashboard/pkg/client"
	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	zap.ReplaceGlobals(logger)
	logger.Info("Starting AQI Dashboard Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Load the static city/ZIP reference table; a broken table is fatal.
	table, err := reftable.Load(cfg.Table.Path)
	if err != nil {
		logger.Fatal("Failed to load reference table",
			zap.String("path", cfg.Table.Path),
			zap.Error(err))
	}
	logger.Info("Reference table loaded",
		zap.String("path", cfg.Table.Path),
		zap.Int("rows", len(table)))

	// Metrics
	metrics := observability.NewMetrics()

	// AirNow gateway with a TTL cache in front
	clientConfig := client.ClientConfig{
		Timeout:        cfg.HTTPTimeout,
		MaxRetries:     cfg.Retry.MaxRetries,
		RetryDelay:     cfg.Retry.Delay,
		Multiplier:     cfg.Retry.Multiplier,
		BreakerTimeout: cfg.CircuitBreaker.Timeout,
	}
	airNowClient := client.NewAirNowClient(cfg.AirNow.APIKey, cfg.AirNow.DistanceMiles, clientConfig, logger)
	gateway := services.NewCachedGateway(
		airNowClient,
		cfg.Cache.Duration,
		cfg.Cache.MaxSize,
		clockwork.NewRealClock(),
		metrics,
		logger,
	)

	// Enricher and refresh scheduler
	enricher := services.NewEnricher(table, gateway, metrics, logger)
	refreshScheduler := scheduler.NewScheduler(
		enricher,
		cfg.Table.RefreshInterval,
		cfg.Table.RefreshTimeout,
		logger,
	)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: errorHandler,
	})

	// Setup handlers and routes
	handler := api.NewHandler(enricher, logger)
	api.SetupRoutes(app, handler, logger)

	// Start scheduler
	if err := refreshScheduler.Start(); err != nil {
		logger.Fatal("Failed to start scheduler", zap.Error(err))
	}

	// Start metrics sidecar
	metricsServer := observability.NewServer(":"+cfg.Server.MetricsPort, logger)
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Metrics server failed", zap.Error(err))
		}
	}()

	// Start server in goroutine
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("Starting server", zap.String("address", addr))

		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Stop scheduler and cache cleanup
	refreshScheduler.Stop()
	gateway.Stop()

	// Shutdown Fiber app and metrics sidecar
	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	if err := metricsServer.Shutdown(ctx); err != nil {
		logger.Error("Metrics server shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}

func errorHandler(c *fiber.Ctx, err error) error {
	zap.L().Error("HTTP error",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err))

	// Default to 500 status code
	code := fiber.StatusInternalServerError

	// Check if it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   err.Error(),
		"success": false,
	})
}
