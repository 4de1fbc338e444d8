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

	"github.com/BerylCAtieno/document-metadata-api/internal/app"
	"github.com/BerylCAtieno/document-metadata-api/internal/config"
	"github.com/BerylCAtieno/document-metadata-api/internal/db"
	"github.com/BerylCAtieno/document-metadata-api/internal/repository"
	"github.com/BerylCAtieno/document-metadata-api/internal/router"
	"github.com/BerylCAtieno/document-metadata-api/internal/services"
	"github.com/BerylCAtieno/document-metadata-api/internal/storage"
	"github.com/BerylCAtieno/document-metadata-api/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := utils.NewLogger(cfg.LogLevel)

	// Run migrations
	if err := db.RunMigrations(cfg.DatabasePath); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	// Initialize database
	database, err := db.NewSQLiteDB(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close()

	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := storage.NewS3Storage(initCtx, cfg)
	initCancel()
	if err != nil {
		logger.Fatal("Failed to initialize S3 storage", "error", err)
	}
	if store == nil {
		logger.Info("S3 archive disabled")
	}

	pipe, err := app.NewPipeline(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to build analysis pipeline", "error", err)
	}

	// Initialize document service
	docRepo := repository.NewRepository(database)
	docService := services.NewService(docRepo, store, pipe, logger)

	// Setup HTTP router
	handler := router.NewRouter(docService, logger)

	// Uploads up to the size limit plus OCR and LLM calls need long timeouts
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       5 * time.Minute,
		WriteTimeout:      10 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("Starting server",
			"port", cfg.Port,
			"insights", cfg.InsightsEnabled,
			"max_file_size_mb", cfg.MaxFileSizeMB)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
