package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/praharilabs/prahari-backend/internal/config"
	"github.com/praharilabs/prahari-backend/internal/database"
	"github.com/praharilabs/prahari-backend/internal/evidence"
	"github.com/praharilabs/prahari-backend/internal/handlers"
	"github.com/praharilabs/prahari-backend/internal/logging"
	"github.com/praharilabs/prahari-backend/internal/middleware"
	"github.com/praharilabs/prahari-backend/internal/policy"
	"github.com/praharilabs/prahari-backend/internal/routes"
	"github.com/praharilabs/prahari-backend/internal/scorer"
	"github.com/praharilabs/prahari-backend/internal/services"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// Persist ERROR+ logs now that the database is up
	pgLogHandler := logging.AttachDB(database.DB)

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Immutable lookup tables: category points, SLA deadlines, rewards
	tables := policy.Default()

	// Credibility scorer: AI-backed when configured, local heuristic otherwise
	var reportScorer scorer.Scorer
	if cfg.OpenAIAPIKey != "" {
		reportScorer = scorer.NewAIScorer(cfg.OpenAIAPIURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.AITimeout)
	} else {
		slog.Info("no scoring API key configured, using heuristic scorer")
		reportScorer = scorer.NewHeuristicScorer()
	}

	evidenceStore := evidence.NewDiskStore(cfg.UploadDir, cfg.UploadURL)
	evidenceProcessor := evidence.NewProcessor(evidenceStore)

	// Services
	authService := services.NewAuthService(database.DB, cfg)
	reportService := services.NewReportService(database.DB, evidenceProcessor, reportScorer, tables, cfg.AITimeout)
	userService := services.NewUserService(database.DB)
	statsService := services.NewStatsService(database.DB)
	rewardService := services.NewRewardService(database.DB, tables)
	slaService := services.NewSLAService(database.DB, tables)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	reportHandler := handlers.NewReportHandler(reportService)
	userHandler := handlers.NewUserHandler(userService)
	statsHandler := handlers.NewStatsHandler(statsService)
	rewardHandler := handlers.NewRewardHandler(rewardService)
	healthHandler := handlers.NewHealthHandler()

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app; body limit covers 5 evidence files of 10MB plus form fields
	app := fiber.New(fiber.Config{
		BodyLimit:    52 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Processed evidence is served statically
	app.Static(cfg.UploadURL, cfg.UploadDir)

	// Routes
	routes.Setup(app, cfg, database.DB, authHandler, reportHandler, userHandler, statsHandler, rewardHandler, healthHandler)

	// Hourly RTI escalation sweep
	slaService.Start()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	slaService.Stop()
	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
