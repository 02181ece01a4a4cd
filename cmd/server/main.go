package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hillcrest-auto/dealer-backend/internal/config"
	"github.com/hillcrest-auto/dealer-backend/internal/infrastructure/database"
	httpServer "github.com/hillcrest-auto/dealer-backend/internal/infrastructure/http"
	"github.com/hillcrest-auto/dealer-backend/internal/infrastructure/scheduler"
	"github.com/hillcrest-auto/dealer-backend/internal/usecase"
	"github.com/hillcrest-auto/dealer-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Output:      cfg.Log.Output,
		Development: cfg.Log.Development,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// Initialize database connection
	db, err := database.NewConnection(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	// Run database migrations
	if err := database.Migrate(db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize repositories
	repos := database.NewRepositories(db, zapLogger)

	// Start the nightly NEW-banner cleanup
	bannerService := usecase.NewBannerService(repos.Vehicle, zapLogger)
	sched := scheduler.New(bannerService, zapLogger)
	if err := sched.Start(cfg.Banner.CronSpec); err != nil {
		zapLogger.Fatal("Failed to start scheduler", zap.Error(err))
	}

	// Start the HTTP server
	srv := httpServer.NewServer(cfg, zapLogger, repos)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zapLogger.Info("Shutting down...")

	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	zapLogger.Info("Server shut down successfully")
}
