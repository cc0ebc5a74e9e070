// Command devserver runs the local stand-in commerce backend.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/pkannaiyan/sk-organic-farms/internal/config"
	"github.com/pkannaiyan/sk-organic-farms/internal/devserver"
)

func main() {
	cfg := config.FromEnv()

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	catalog := devserver.SeedCatalog()
	if cfg.CatalogFile != "" {
		catalog, err = devserver.LoadCatalog(cfg.CatalogFile)
		if err != nil {
			logger.Fatal("load catalog", zap.Error(err))
		}
	}

	backend := devserver.NewBackend(cfg.ProjectKey, catalog)
	srv := devserver.New(cfg.DevServerAddr, backend, logger)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting devserver",
			zap.String("addr", cfg.DevServerAddr),
			zap.String("project", cfg.ProjectKey))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}
