package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/trainer-planning-api/api/swagger"
	"github.com/noah-isme/trainer-planning-api/internal/handler"
	"github.com/noah-isme/trainer-planning-api/internal/middleware"
	"github.com/noah-isme/trainer-planning-api/internal/repository"
	"github.com/noah-isme/trainer-planning-api/internal/service"
	"github.com/noah-isme/trainer-planning-api/pkg/cache"
	"github.com/noah-isme/trainer-planning-api/pkg/config"
	"github.com/noah-isme/trainer-planning-api/pkg/database"
	"github.com/noah-isme/trainer-planning-api/pkg/export"
	"github.com/noah-isme/trainer-planning-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/trainer-planning-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/trainer-planning-api/pkg/middleware/requestid"
)

// @title Trainer Planning API
// @version 0.1.0
// @description Trainer availability planning grid: availability records, matrix and weekly views, drag-select bulk creation.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer db.Close()

	deps := map[string]handler.Pinger{"postgres": db}

	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Planning.CacheEnabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, availability cache disabled", zap.Error(err))
		} else {
			defer client.Close()
			cacheRepo = repository.NewCacheRepository(client, logr)
			deps["redis"] = cache.Pinger{Client: client}
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Planning.CacheTTL, logr, cacheRepo != nil)

	validate := validator.New()

	authSvc := service.NewAuthService(logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		Issuer:            cfg.JWT.Issuer,
		Audience:          cfg.JWT.Audience,
	})

	availabilitySvc := service.NewAvailabilityService(
		repository.NewAvailabilityRepository(db),
		repository.NewTrainerRepository(db),
		cacheSvc,
		metricsSvc,
		validate,
		logr,
		service.AvailabilityServiceConfig{CacheTTL: cfg.Planning.CacheTTL, MaxRangeDays: cfg.Planning.MaxRangeDays},
	)
	planningSvc := service.NewPlanningService(
		availabilitySvc,
		availabilitySvc,
		export.NewCSVExporter(),
		export.NewPDFExporter(),
		validate,
		logr,
		service.PlanningServiceConfig{
			WeekStart:      cfg.Planning.WeekStart,
			ExportsEnabled: cfg.Exports.Enabled,
			ExportTitle:    cfg.Exports.Title,
		},
	)

	metricsHandler := handler.NewMetricsHandler(metricsSvc, deps)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(authSvc))
	handler.RegisterRoutes(api, handler.Handlers{
		Trainers:     handler.NewTrainerHandler(availabilitySvc),
		Availability: handler.NewAvailabilityHandler(availabilitySvc),
		Planning:     handler.NewPlanningHandler(planningSvc),
		WriteLimit:   middleware.NewRateLimiter(cfg.Planning.WritesPerMinute, cfg.Planning.WriteBurst, logr),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}
