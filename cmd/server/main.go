package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	httpadapter "github.com/afgalvez/madrid-accidents/internal/adapter/http"
	"github.com/afgalvez/madrid-accidents/internal/config"
	"github.com/afgalvez/madrid-accidents/internal/dataset"
	"github.com/afgalvez/madrid-accidents/internal/geo"
	"github.com/afgalvez/madrid-accidents/internal/observability"
)

func main() {
	// Local development convenience; absence of a .env file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	loader := dataset.NewLoader(geo.NewProjector(), logger, metrics)
	cache := dataset.NewCache(loader, cfg.DatasetCacheSize, metrics)
	provider := dataset.NewProvider(cache, cfg.DataPath, cfg.FallbackDataPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Prepare the table up front: a missing dataset is fatal to startup,
	// not something to discover on the first request.
	table, err := provider.Table(ctx)
	if err != nil {
		logger.Error("dataset unavailable", "error", err,
			"primary", cfg.DataPath, "fallback", cfg.FallbackDataPath)
		os.Exit(1)
	}
	logger.Info("dataset ready", "path", table.SourcePath(), "rows", table.Len(), "year", table.Year())

	srv := httpadapter.NewServer(cfg.HTTPAddr, provider, logger, metrics)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
