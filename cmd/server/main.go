package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/garnizeh/quickgig/api"
	dbfs "github.com/garnizeh/quickgig/db"
	"github.com/garnizeh/quickgig/internal/config"
	"github.com/garnizeh/quickgig/internal/db"
	"github.com/garnizeh/quickgig/internal/logging"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)
	api.SetLogger(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "err", err)
		os.Exit(1)
	}

	logger.Info("starting quickgig server", "version", version, "build_time", buildTime, "env", cfg.Env)

	ctx := context.Background()

	// Open database connection
	db, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to prepare database", "path", cfg.DatabasePath, "err", err)
		os.Exit(1)
	}

	handler := api.SetupRoutes(cfg, version, buildTime, db)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed to start", "err", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "err", err)
	}

	// Close database connection
	if err := db.Close(); err != nil {
		logger.Error("error closing db", "err", err)
	}

	logger.Info("server exited")
}

// openStore opens the database, applies pending migrations and seeds the
// bootstrap admin. Any failure here stops startup.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*db.DB, error) {
	conn, err := db.New(ctx, cfg.DSN(), logger)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(ctx, conn, dbfs.Migrations); err != nil {
		_ = conn.Close()
		return nil, err
	}

	admin := db.AdminAccount{Email: cfg.Admin.Email, Password: cfg.Admin.Password, Name: cfg.Admin.Name}
	if _, err := db.SeedAdmin(ctx, conn, admin); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return conn, nil
}
