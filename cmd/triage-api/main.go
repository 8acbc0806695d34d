// cmd/triage-api/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"medassist-workers/internal/api"
	"medassist-workers/internal/app"
	"medassist-workers/internal/common/config"
	"medassist-workers/internal/common/logger"
	"medassist-workers/internal/common/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "console").Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	obs, err := observability.New("triage-api")
	if err != nil {
		zapLog.Warn("otel metrics exporter unavailable", zap.Error(err))
	}
	defer obs.Shutdown()

	ctx := context.Background()
	svc, err := app.Build(ctx, cfg, obs, log)
	if err != nil {
		zapLog.Fatal("service backends failed", zap.Error(err))
	}
	defer svc.Close()

	server := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           api.NewRouter(svc, log),
		ReadTimeout:       config.GetDuration(cfg.HTTP.ReadTimeout),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		zapLog.Info("Triage API listening",
			zap.String("address", server.Addr),
			zap.String("store", cfg.Store.Backend),
			zap.String("catalog", cfg.Catalog.Backend),
			zap.String("genai", cfg.GenAI.Provider),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping HTTP server", zap.Error(err))
	}
	zapLog.Info("Triage API stopped gracefully")
}
