package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HammerMeetNail/socialexplorer/internal/config"
	"github.com/HammerMeetNail/socialexplorer/internal/database"
	"github.com/HammerMeetNail/socialexplorer/internal/database/sqlite"
	"github.com/HammerMeetNail/socialexplorer/internal/handlers"
	"github.com/HammerMeetNail/socialexplorer/internal/logging"
	"github.com/HammerMeetNail/socialexplorer/internal/middleware"
	"github.com/HammerMeetNail/socialexplorer/internal/services"
)

func main() {
	if err := run(); err != nil {
		logging.Error("Application error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	logger := logging.New()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cfg.Server.Debug {
		logger.SetLevel(logging.LevelDebug)
		logging.SetDefaultLevel(logging.LevelDebug)
		logger.Debug("Debug logging enabled", map[string]interface{}{"env": cfg.Server.Environment})
	}

	logger.Info("Starting social explorer server...", map[string]interface{}{"driver": cfg.Database.Driver})

	store, err := openStore(context.Background(), cfg.Database, logger)
	if err != nil {
		return err
	}
	defer store.close()

	// Redis only backs rate limiting, so the server runs without it.
	var limiterClient middleware.ScriptRunner
	var redisHealth handlers.Pinger
	if cfg.Redis.Enabled {
		logger.Info("Connecting to Redis", map[string]interface{}{"addr": cfg.Redis.Addr()})
		redisDB, err := database.NewRedisDB(cfg.Redis)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer func() { _ = redisDB.Close() }()
		limiterClient = redisDB.Client
		redisHealth = redisDB
		logger.Info("Connected to Redis")
	}

	explorer := services.NewExplorerService(store.provider)
	healthHandler := handlers.NewHealthHandler(store.health, redisHealth)
	rateLimit := resolveDashboardRateLimit(cfg, logger)

	handler := newHandler(cfg, explorer, healthHandler, limiterClient, rateLimit, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan struct{})
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Could not gracefully shutdown the server", map[string]interface{}{
				"error": err.Error(),
			})
		}
		close(done)
	}()

	logger.Info("Server listening", map[string]interface{}{"addr": addr})
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	logger.Info("Server stopped")
	return nil
}

// snapshotStore bundles whichever backend serves snapshots with its health check
// and cleanup.
type snapshotStore struct {
	provider services.SnapshotProvider
	health   handlers.Pinger
	close    func()
}

func openStore(ctx context.Context, cfg config.DatabaseConfig, logger *logging.Logger) (*snapshotStore, error) {
	if cfg.Driver == config.DriverSQLite {
		logger.Info("Opening SQLite store", map[string]interface{}{"path": cfg.SQLitePath})
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite: %w", err)
		}
		if cfg.SeedDemo {
			seeded, err := store.Seed(ctx)
			if err != nil {
				_ = store.Close()
				return nil, err
			}
			logger.Info("Demo data checked", map[string]interface{}{"seeded": seeded})
		}
		return &snapshotStore{
			provider: store,
			health:   store,
			close:    func() { _ = store.Close() },
		}, nil
	}

	logger.Info("Connecting to PostgreSQL", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
	})
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	logger.Info("Connected to PostgreSQL")

	logger.Info("Running database migrations...")
	migrator, err := database.NewMigrator(cfg.DSN(), cfg.Migrations)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating migrator: %w", err)
	}
	if err := migrator.Up(); err != nil {
		_ = migrator.Close()
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	_ = migrator.Close()
	logger.Info("Migrations completed")

	return &snapshotStore{
		provider: services.NewSnapshotService(services.NewPoolAdapter(db.Pool)),
		health:   db,
		close:    db.Close,
	}, nil
}

func newHandler(cfg *config.Config, explorer services.ExplorerServiceInterface, healthHandler *handlers.HealthHandler, limiterClient middleware.ScriptRunner, rateLimit int64, logger *logging.Logger) http.Handler {
	dashboardHandler := handlers.NewDashboardHandler(explorer, cfg.Dashboard)
	exploreHandler := handlers.NewExploreHandler(explorer)

	securityHeaders := middleware.NewSecurityHeaders(cfg.Server.Secure)
	requestLogger := middleware.NewRequestLogger(logger)
	apiRateLimiter := middleware.NewRateLimiter(limiterClient, rateLimit, time.Minute, "ratelimit:api:", nil, true)
	limited := func(h http.HandlerFunc) http.Handler {
		return apiRateLimiter.Middleware(h)
	}

	mux := http.NewServeMux()

	// Health endpoints (no rate limit)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /live", healthHandler.Live)

	mux.Handle("GET /api/dashboard", limited(dashboardHandler.Dashboard))
	mux.Handle("GET /api/dashboard/modes", http.HandlerFunc(dashboardHandler.Modes))
	mux.Handle("GET /api/metrics", limited(dashboardHandler.Metrics))
	mux.Handle("GET /api/explore/{mode}", limited(exploreHandler.Explore))
	mux.Handle("GET /api/users/{name}/posts", limited(exploreHandler.PostsByUser))

	var handler http.Handler = mux
	handler = securityHeaders.Apply(handler)
	handler = requestLogger.Apply(handler)
	return handler
}

func resolveDashboardRateLimit(cfg *config.Config, logger *logging.Logger) int64 {
	limit := int64(120)
	if cfg.Server.Environment == "development" {
		limit = 1000
		logger.Info("Using development API rate limit", map[string]interface{}{"limit": limit})
	}
	if cfg.Dashboard.RateLimit > 0 {
		limit = cfg.Dashboard.RateLimit
		logger.Info("Using API rate limit from config", map[string]interface{}{"limit": limit})
	} else if cfg.Dashboard.RateLimit < 0 {
		logger.Warn("Invalid DASHBOARD_RATE_LIMIT; using default", map[string]interface{}{
			"value": cfg.Dashboard.RateLimit,
			"limit": limit,
		})
	}
	return limit
}
