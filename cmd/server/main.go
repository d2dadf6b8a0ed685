package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/nekogravitycat/transfer-booking-backend/internal/admin"
	"github.com/nekogravitycat/transfer-booking-backend/internal/app"
	"github.com/nekogravitycat/transfer-booking-backend/internal/config"
	"github.com/nekogravitycat/transfer-booking-backend/internal/db"
	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/logger"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.IsProduction, cfg.LogLevel)
	slog.SetDefault(log)

	// Connect DB when configured; records stay in memory otherwise
	var pool *pgxpool.Pool
	if cfg.DBDSN != "" {
		pool, err = db.Open(ctx, db.PoolConfig{DSN: cfg.DBDSN, MaxConns: int32(cfg.DBMaxConns)})
		if err != nil {
			log.Error("failed to connect to db", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := db.EnsureSchema(ctx, pool); err != nil {
			log.Error("failed to prepare database", "error", err)
			os.Exit(1)
		}
	} else {
		log.Warn("DB_DSN not set, bookings and messages are kept in memory")
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = admin.NewRedisClient(cfg.RedisAddr)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Error("failed to connect to redis", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
	}

	container, err := app.NewContainer(app.Config{
		IsProduction:          cfg.IsProduction,
		ProdOrigins:           cfg.ProdOrigins,
		Logger:                log,
		DBPool:                pool,
		Redis:                 rdb,
		AdminAccessKey:        cfg.AdminAccessKey,
		JWTSecret:             cfg.JWTSecret,
		AdminSessionTTL:       cfg.AdminSessionTTL,
		AdminMaxAttempts:      cfg.AdminMaxAttempts,
		AdminLockout:          cfg.AdminLockout,
		BcryptCost:            cfg.BcryptCost,
		NotificationPhone:     cfg.NotificationPhone,
		NotificationSendDelay: cfg.NotificationSendDelay,
		StatusPolicy:          cfg.StatusPolicy,
		StoragePath:           cfg.StoragePath,
		MaxUploadBytes:        cfg.MaxUploadBytes,
		CatalogPath:           cfg.CatalogPath,
	})
	if err != nil {
		log.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           container.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server in separate goroutine
	go func() {
		log.Info("server running", "addr", cfg.HTTPAddr, "status_policy", cfg.StatusPolicy.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	log.Info("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	// Let queued notifications finish
	if err := container.Notifier.Wait(shutdownCtx); err != nil {
		log.Warn("notifications still in flight at exit", "error", err)
	}

	log.Info("server exited gracefully")
}
