package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/airpulse/aqi-prediction-service/internal/api/http"
	"github.com/airpulse/aqi-prediction-service/internal/aqi"
	"github.com/airpulse/aqi-prediction-service/internal/aqi/providers"
	"github.com/airpulse/aqi-prediction-service/internal/config"
	"github.com/airpulse/aqi-prediction-service/internal/geo"
	"github.com/airpulse/aqi-prediction-service/internal/logging"
	"github.com/airpulse/aqi-prediction-service/internal/predict"
	"github.com/airpulse/aqi-prediction-service/internal/scheduler"
	"github.com/airpulse/aqi-prediction-service/internal/store"
)

const appName = "aqi-prediction-service"

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLogger := logging.New(cfg.AppEnv, cfg.LogLevel, appName)

	// Shared HTTP client for outbound provider and model-server calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory reading history with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	// Open-Meteo providers with resilience (backoff + circuit breaker).
	airQuality := providers.NewAirQualityProvider(httpClient)
	forecast := providers.NewForecastProvider(httpClient)

	// Core service orchestrating providers, store, and fallback.
	service := aqi.NewService(memStore, airQuality, forecast, appLogger, aqi.Options{
		SyntheticFallback: cfg.SyntheticFallback,
		FreshFor:          cfg.FetchInterval,
		Labeler:           geo.New(cfg.GeocoderAPIKey),
	})

	// Model registry: builtins, shadowed by remote models when a model
	// server is configured.
	modelSet := predict.Builtin()
	if cfg.ModelServerURL != "" {
		for _, m := range predict.Builtin() {
			modelSet = append(modelSet, predict.NewRemoteModel(m.Name(), m.Description(), cfg.ModelServerURL, httpClient))
		}
	}
	registry := predict.NewRegistry(modelSet...)

	// Scheduler keeping the fallback location warm.
	sched := scheduler.New(cfg.FallbackLocation, cfg.FetchInterval, service, appLogger)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Health endpoints
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":           "healthy",
			"timestamp":        time.Now().UTC(),
			"service":          appName,
			"version":          httpapi.Version,
			"models_loaded":    len(registry.Names()),
			"available_models": registry.Names(),
		})
	})
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, registry, cfg.FallbackLocation)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			appLogger.Error("fiber server stopped", "err", err)
		}
	}()
	appLogger.Info("listening", "port", cfg.Port, "env", cfg.AppEnv)

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("error during shutdown", "err", err)
	}
}
