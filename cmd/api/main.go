package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/01moynul/flowershop-golang/internal/config"
	"github.com/01moynul/flowershop-golang/internal/database"
	"github.com/01moynul/flowershop-golang/internal/handlers"
	"github.com/01moynul/flowershop-golang/internal/logging"
	"github.com/01moynul/flowershop-golang/internal/orders"
	"github.com/01moynul/flowershop-golang/internal/routes"
	"github.com/01moynul/flowershop-golang/internal/users"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 0. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logging.NewJSONLogger(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. --- Database Connection (single managed handle) ---
	dsn := cfg.DB.DSN()
	dialer := database.NewMySQLDialer(dsn)
	defer dialer.Close()

	manager := database.NewManager(dialer, database.Options{
		PingInterval: cfg.PingInterval,
		Logger:       logger,
	})
	defer manager.Close()

	// Block until the first handle is live. Retries every
	// database.ConnectionRetryTimeout until the server answers.
	if _, err := manager.Acquire(ctx); err != nil {
		log.Fatalf("Gave up waiting for the database: %v", err)
	}

	// 2. --- Schema Migrations ---
	if err := database.Migrate(ctx, dsn); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Application Setup ---
	app := &handlers.Handlers{
		Orders: orders.NewRepository(manager),
		Users:  users.NewService(users.NewRepository(manager), cfg.JWTSecret, cfg.TokenTTL),
		Logger: logger.With("component", "http"),
	}

	if err := handlers.ConfigureBinding(); err != nil {
		log.Fatalf("Failed to configure request binding: %v", err)
	}

	// --- Router Setup ---
	// gin picks up GIN_MODE from the environment on its own.
	router := routes.SetupRouter(app, cfg.JWTSecret, cfg.CORSOrigin)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// --- Start Server ---
	go func() {
		logger.Info(ctx, "starting flowershop API server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info(context.Background(), "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(shutdownCtx, "server shutdown failed", "error", err)
	}
}
