// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/plantsim/internal/admin"
	"github.com/carterperez-dev/plantsim/internal/auth"
	"github.com/carterperez-dev/plantsim/internal/catalog"
	"github.com/carterperez-dev/plantsim/internal/config"
	"github.com/carterperez-dev/plantsim/internal/core"
	"github.com/carterperez-dev/plantsim/internal/gardener"
	"github.com/carterperez-dev/plantsim/internal/health"
	"github.com/carterperez-dev/plantsim/internal/middleware"
	"github.com/carterperez-dev/plantsim/internal/plant"
	"github.com/carterperez-dev/plantsim/internal/server"
	"github.com/carterperez-dev/plantsim/internal/simulation"
)

const (
	drainDelay   = 5 * time.Second
	migrateLimit = 30 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	if _, err := os.Stat(configPath); err != nil {
		configPath = ""
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	telemetry, err := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
	if err != nil {
		logger.Warn("failed to initialize telemetry", "error", err)
	} else if cfg.Otel.Enabled {
		logger.Info("OpenTelemetry tracer initialized",
			"endpoint", cfg.Otel.Endpoint,
		)
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	migrateCtx, cancelMigrate := context.WithTimeout(ctx, migrateLimit)
	err = core.Migrate(migrateCtx, db.DB)
	cancelMigrate()
	if err != nil {
		return err
	}
	logger.Info("schema migrated")

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	metrics := core.NewMetrics()
	hasher := core.NewPasswordHasher(core.DefaultPasswordParams)

	gardenerSvc := gardener.NewService(gardener.NewRepository(db.DB))
	gardenerHandler := gardener.NewHandler(gardenerSvc)

	authSvc := auth.NewService(
		jwtManager,
		gardenerSvc,
		auth.NewRedisDenylist(redis.Client),
		hasher,
	)
	authHandler := auth.NewHandler(authSvc)

	catalogSvc := catalog.NewService(
		catalog.NewRepository(db.DB),
		redis,
		cfg.Redis.CatalogTTL,
	)
	catalogHandler := catalog.NewHandler(catalogSvc)

	engine := simulation.NewEngine(
		simulation.NewWeatherGenerator(cfg.Sim.WeatherSeed),
	)
	plantSvc := plant.NewService(
		plant.NewRepository(db.DB),
		catalogSvc,
		engine,
		metrics,
	)
	plantHandler := plant.NewHandler(plantSvc)

	healthHandler := health.NewHandler(
		health.Dependency{Name: "database", Checker: db},
		health.Dependency{Name: "redis", Checker: redis},
	)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		PlantStats: plantSvc.CountByStage,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	globalLimiter := middleware.NewRateLimiter(
		redis.Client,
		middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		},
	)
	defer globalLimiter.Close()

	actionLimiter := middleware.NewRateLimiter(
		redis.Client,
		middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.ActionRequests,
				cfg.RateLimit.ActionRequests,
			),
			KeyFunc:  middleware.KeyByGardenerAndRoute,
			FailOpen: true,
		},
	)
	defer actionLimiter.Close()

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Tracing)
	router.Use(middleware.Logger(logger))
	router.Use(globalLimiter.Handler)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())
	router.Method("GET", "/metrics", metrics.Handler())

	authenticator := middleware.Authenticator(authSvc)
	adminOnly := middleware.RequireAdmin

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator)
		catalogHandler.RegisterRoutes(r)
		plantHandler.RegisterRoutes(r, authenticator, actionLimiter.Handler)

		gardenerHandler.RegisterRoutes(r, authenticator)
		gardenerHandler.RegisterAdminRoutes(r, authenticator, adminOnly)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		logger.Error("telemetry shutdown error", "error", err)
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
