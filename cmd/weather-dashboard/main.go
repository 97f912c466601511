package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/weather-dashboard/internal/api/http"
	"github.com/i474232898/weather-dashboard/internal/config"
	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/metrics"
	"github.com/i474232898/weather-dashboard/internal/notification"
	"github.com/i474232898/weather-dashboard/internal/scheduler"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
	"github.com/i474232898/weather-dashboard/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	m := metrics.New()

	// Notifications with configured retention.
	center := notification.NewCenter(cfg.NotificationMaxHistory, cfg.NotificationTTL)
	defer center.Close()

	counted, unsubscribe, err := center.Subscribe()
	if err != nil {
		log.Fatalf("failed to subscribe metrics to notifications: %v", err)
	}
	defer unsubscribe()
	go m.CountNotifications(counted)

	// Immutable sample data behind a circuit breaker.
	sample := store.NewSampleStore()
	source := providers.NewBreakerSource(sample, providers.DefaultBreakerConfig())

	latency := cfg.SimulatedLatency
	if latency == 0 {
		latency = -1 // explicitly disabled
	}
	service := weather.NewService(source, center, weather.ServiceConfig{
		DefaultLocation: cfg.DefaultLocation,
		Latency:         latency,
		Recorder:        m,
	})

	dash := dashboard.New(service, center, dashboard.Config{
		MinQueryLength:   cfg.MinQueryLength,
		SlowLoadingAfter: cfg.SlowLoadingAfter,
		Stale:            m,
	})
	defer dash.Close()

	if _, err := dash.Search(cfg.DefaultLocation); err != nil {
		log.Printf("WARN: initial search for %q failed: %v", cfg.DefaultLocation, err)
	}

	// Housekeeping jobs.
	sched := scheduler.New(center, cfg.NotificationPruneEvery, dash, cfg.RefreshInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
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

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-dashboard",
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	// API routes.
	httpapi.RegisterRoutes(app, httpapi.Dependencies{
		Weather:       service,
		Dashboard:     dash,
		Locations:     sample,
		Notifications: center,
	})

	go func() {
		log.Printf("INFO: listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
