package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/motodesk/backend/internal/application/catalog"
	directoryapp "github.com/motodesk/backend/internal/application/directory"
	inventoryapp "github.com/motodesk/backend/internal/application/inventory"
	ledgerapp "github.com/motodesk/backend/internal/application/ledger"
	"github.com/motodesk/backend/internal/infrastructure/ai"
	"github.com/motodesk/backend/internal/infrastructure/auth"
	"github.com/motodesk/backend/internal/infrastructure/config"
	"github.com/motodesk/backend/internal/infrastructure/logger"
	"github.com/motodesk/backend/internal/infrastructure/persistence"
	"github.com/motodesk/backend/internal/infrastructure/telemetry"
	"github.com/motodesk/backend/internal/interfaces/http/handler"
	"github.com/motodesk/backend/internal/interfaces/http/middleware"
	"github.com/motodesk/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting MotoDesk Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if tracerProvider.IsEnabled() {
		dbTracing := telemetry.NewDBTracingPlugin(telemetry.DefaultDBTracingConfig(), log)
		if err := dbTracing.Register(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}

	// Token blacklist backed by Redis
	blacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	jwtService := auth.NewJWTService(cfg.JWT)

	// Repositories
	vehicleRepo := persistence.NewGormVehicleRepository(db.DB)
	ledgerRepo := persistence.NewGormCashTransactionRepository(db.DB)
	actorRepo := persistence.NewGormActorRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)
	dirScope := persistence.NewGormDirectoryScope(db.DB)

	// Application services
	lifecycleService := inventoryapp.NewLifecycleService(txScope, vehicleRepo)
	ledgerService := ledgerapp.NewService(ledgerRepo)
	directoryService := directoryapp.NewService(actorRepo, log)
	authService := directoryapp.NewAuthService(dirScope, actorRepo, jwtService, blacklist, log)

	var generator catalogapp.Generator
	if cfg.AI.Enabled {
		textClient, err := ai.NewTextClient(cfg.AI)
		if err != nil {
			log.Fatal("Failed to initialize text generation client", zap.Error(err))
		}
		generator = textClient
		log.Info("Description generation enabled", zap.String("model", cfg.AI.Model))
	}
	descriptionService := catalogapp.NewDescriptionService(generator, cfg.AI.Timeout, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	rateLimit := router.RateLimitSettings{}
	if cfg.HTTP.RateLimitEnabled {
		rateLimit = router.RateLimitSettings{
			RequestsPerWindow: cfg.HTTP.RateLimitRequests,
			Window:            cfg.HTTP.RateLimitWindow,
		}
	}
	engine := router.NewEngine(router.MiddlewareConfig{
		Logger:         log,
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		CORSOrigins:    cfg.HTTP.CORSAllowOrigins,
		TracingEnabled: tracerProvider.IsEnabled(),
		BodyLimitBytes: cfg.HTTP.MaxBodySize,
		RateLimit:      rateLimit,
	})

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Auth endpoints carry a stricter per-IP rate limit
	authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
	authGroup := engine.Group("/api/v1")
	authGroup.Use(middleware.AuthRateLimit(authLimiter))
	handler.NewAuthHandler(authService).RegisterRoutes(authGroup)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewVehicleHandler(lifecycleService, ledgerService, descriptionService)).
		Register(handler.NewLedgerHandler(ledgerService)).
		Register(handler.NewDirectoryHandler(directoryService)).
		Register(handler.NewSystemHandler(db.DB))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
