package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"esolve-collections/internal/adapters/http/handlers"
	"esolve-collections/internal/adapters/http/middleware"
	"esolve-collections/internal/adapters/http/routes"
	"esolve-collections/internal/adapters/persistence/models"
	"esolve-collections/internal/adapters/persistence/repositories"
	"esolve-collections/internal/config"
	"esolve-collections/internal/core/services"
	"esolve-collections/internal/pkg/credential"
	"esolve-collections/internal/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	_ "esolve-collections/docs" // Swagger docs
)

// @title eSolve Collections API
// @version 1.0
// @description Debt-collection case management admin API
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@esolve.com

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session credential.

func main() {
	logger := newLogger(os.Getenv("APP_MODE"))
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()

	// Persisted session state
	kv, healthChecks, closeKV := openKeyValueStore(ctx, cfg)
	defer closeKV()

	// Account directory
	accounts, err := config.LoadAccounts(cfg.Credential.DirectoryFile)
	if err != nil {
		zap.L().Fatal("Failed to load account directory", zap.Error(err))
	}
	directory, err := services.NewDirectory(accounts, cfg.Credential.SharedPassword, cfg.Credential.HashCost)
	if err != nil {
		zap.L().Fatal("Failed to build account directory", zap.Error(err))
	}

	m := metrics.New()

	// Core services
	store := services.NewDataStore(config.NewSeeder(cfg.Seed, nil), m)
	store.Initialize()

	codec := credential.NewCodec(cfg.Credential.TTL, nil)
	authService := services.NewAuthService(directory, codec, kv, cfg.Credential.LoginDelay, m)
	sessionService := services.NewSessionService(authService, kv, store)
	sessionService.Initialize(ctx)

	dashboardService := services.NewDashboardService(store, nil)

	cronService, err := services.NewCronService(services.CronSchedules{
		DailySummary: cfg.Cron.DailySummary,
		SessionCheck: cfg.Cron.SessionCheck,
	}, store, dashboardService, sessionService)
	if err != nil {
		zap.L().Fatal("Failed to configure cron jobs", zap.Error(err))
	}
	cronService.Start()
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "eSolve Collections API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, routes.Dependencies{
		Config:       cfg,
		Auth:         authService,
		Session:      sessionService,
		Store:        store,
		Dashboard:    dashboardService,
		Metrics:      m,
		HealthChecks: healthChecks,
	})

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	zap.L().Info("Server starting", zap.String("port", cfg.Port), zap.String("mode", cfg.AppMode))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zap.L().Error("Server stopped with error", zap.Error(err))
	}
}

// newLogger builds a development logger unless mode is prod
func newLogger(mode string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if strings.TrimSpace(mode) == "prod" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// openKeyValueStore selects the session state backend from config
func openKeyValueStore(ctx context.Context, cfg *config.Config) (repositories.KeyValueStore, map[string]handlers.HealthCheck, func()) {
	switch cfg.Session.Backend {
	case "redis":
		client, err := config.ConnectRedis(ctx, cfg)
		if err != nil {
			zap.L().Fatal("Failed to connect to redis", zap.Error(err))
		}
		checks := map[string]handlers.HealthCheck{
			"redis": func(ctx context.Context) error { return client.Ping(ctx).Err() },
		}
		return repositories.NewRedisKeyValueStore(client, cfg.Redis.KeyPrefix), checks, func() {
			if err := client.Close(); err != nil {
				zap.L().Warn("Failed to close redis", zap.Error(err))
			}
		}

	case "memory":
		zap.L().Warn("Session state is kept in memory and will not survive a restart")
		return repositories.NewMemoryKeyValueStore(), map[string]handlers.HealthCheck{}, func() {}

	default:
		db, err := config.ConnectDatabase(cfg)
		if err != nil {
			zap.L().Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := models.AutoMigrate(db); err != nil {
			zap.L().Fatal("Failed to auto migrate", zap.Error(err))
		}
		zap.L().Info("Database migration completed")

		checks := map[string]handlers.HealthCheck{
			"database": func(context.Context) error { return config.HealthCheck(db) },
		}
		return repositories.NewGormKeyValueStore(db), checks, func() {
			if err := config.CloseDatabase(db); err != nil {
				zap.L().Warn("Failed to close database", zap.Error(err))
			}
		}
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("Shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zap.L().Error("Error during shutdown", zap.Error(err))
	}
	zap.L().Info("Server stopped gracefully")
}
