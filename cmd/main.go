package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/caching"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/config"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/events"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/handlers"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/jobs"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/metrics"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/middleware"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/repositories"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/services"
	"github.com/louis0604/auto-parts-inventory-sub000/pkg/database"
	"github.com/louis0604/auto-parts-inventory-sub000/pkg/logger"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger.Init(config.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Logger.Fatal().Err(err).Msg("failed to apply schema")
	}

	// Cache
	var cacheSvc caching.CacheService
	if cfg.RedisAddr != "" {
		cacheSvc = caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL)
	} else {
		logger.Logger.Warn().Msg("REDIS_ADDR not set, caching disabled")
		cacheSvc = caching.NewNoopCacheService()
	}

	// Events
	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers)
		if err != nil {
			logger.Logger.Error().Err(err).Strs("brokers", cfg.KafkaBrokers).Msg("kafka unavailable, events disabled")
		} else {
			publisher = kafkaPublisher
		}
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Logger.Error().Err(err).Msg("failed to close event publisher")
		}
	}()

	m := metrics.New(prometheus.DefaultRegisterer)

	// Repositories and services
	repos := repositories.NewRepositories(pool)
	transactor := repositories.NewTransactor(pool)

	alertSvc := services.NewAlertService(repos, publisher, m)
	stockSvc := services.NewStockService(transactor, alertSvc, cacheSvc, publisher, m)
	ledgerSvc := services.NewLedgerService(repos, m)
	documentSvc := services.NewDocumentService(repos, transactor, stockSvc, cacheSvc, publisher, m)
	cascadeSvc := services.NewCascadeService(transactor, cacheSvc, m)
	salesHistorySvc := services.NewSalesHistoryService(repos.Documents, cacheSvc)
	partSvc := services.NewPartService(repos, transactor, stockSvc, alertSvc, cacheSvc)

	apiHandlers := &handlers.Handlers{
		Parts: handlers.NewPartHandlers(partSvc, stockSvc, ledgerSvc, salesHistorySvc, cascadeSvc),
		Catalog: handlers.NewCatalogHandlers(
			services.NewSupplierService(repos.Suppliers),
			services.NewCustomerService(repos.Customers, cacheSvc),
			services.NewLineCodeService(repos.LineCodes),
			services.NewCategoryService(repos.Categories),
			cascadeSvc,
		),
		Documents: handlers.NewDocumentHandlers(documentSvc),
		Ledger:    handlers.NewLedgerHandlers(ledgerSvc, alertSvc),
	}

	// Background jobs
	scheduler, err := jobs.NewJobScheduler(alertSvc, ledgerSvc, cfg.LowStockSweepInterval, cfg.LedgerAuditInterval)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("failed to create job scheduler")
	}
	scheduler.Start()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = middleware.NewRequestValidator()

	// Global middleware
	e.Use(echoMiddleware.RequestIDWithConfig(echoMiddleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(logger.RequestContext())
	e.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			event := logger.Logger.Info()
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				event = logger.Logger.Error().Err(v.Error)
			}
			event.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health and metrics endpoints (no auth required)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc, version)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// API routes
	versionMiddleware := middleware.NewVersionMiddleware()
	v1 := versionMiddleware.VersionRoute(e, versionMiddleware.GetCurrentVersion())
	if cfg.JWTSecret == "" {
		logger.Logger.Warn().Msg("JWT_SECRET not set, API is open and operations carry no operator")
	}
	v1.Use(middleware.OperatorIdentity(cfg.JWTSecret, repos.Users))
	handlers.RegisterRoutes(v1, apiHandlers)

	go func() {
		logger.Logger.Info().Str("version", version).Str("port", cfg.Port).Msg("auto parts inventory server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("server shutdown failed")
	}
	if err := scheduler.Stop(); err != nil {
		logger.Logger.Error().Err(err).Msg("job scheduler shutdown failed")
	}
}
