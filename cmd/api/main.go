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

	"nexus-backend/interfaces/http/rest"
	"nexus-backend/internal/application/services"
	"nexus-backend/internal/config"
	"nexus-backend/internal/domain/document"
	"nexus-backend/internal/infrastructure/persistence/jsonfile"
	"nexus-backend/internal/infrastructure/settings"
	"nexus-backend/pkg/observability"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	metrics := observability.NewCollector("nexus")

	store, err := jsonfile.New(cfg.DataDir, logger, metrics)
	if err != nil {
		logger.Fatal("Failed to open document store", zap.Error(err))
	}

	settingsWatcher, err := settings.NewWatcher(store, logger)
	if err != nil {
		logger.Fatal("Failed to start settings watcher", zap.Error(err))
	}
	defer settingsWatcher.Stop()
	settingsWatcher.OnChange(func(s *document.Settings) {
		logger.Info("retention settings changed", zap.Int("maxVersions", s.MaxVersions))
	})

	vaultService := services.NewVaultService(store, logger, metrics)
	versionService := services.NewVersionService(store, settingsWatcher.Current, logger, metrics)
	settingsService := services.NewSettingsService(store, settingsWatcher, logger)

	router := rest.NewRouter(
		vaultService,
		versionService,
		settingsService,
		logger,
		metrics,
		cfg.AllowedOrigins,
		cfg.EnableMetrics,
	)

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      router.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
			zap.String("dataDir", cfg.DataDir),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	if err := logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	log.Println("Server stopped")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
