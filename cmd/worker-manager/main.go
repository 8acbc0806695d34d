// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"medassist-workers/internal/app"
	"medassist-workers/internal/common/camunda"
	"medassist-workers/internal/common/config"
	"medassist-workers/internal/common/logger"
	"medassist-workers/internal/common/observability"
	"medassist-workers/pkg/registry"

	// Triage Workers (3)
	as "medassist-workers/internal/workers/triage/analyze-symptoms"
	ce "medassist-workers/internal/workers/triage/check-emergency"
	gmr "medassist-workers/internal/workers/triage/get-medicine-recommendations"

	// Pharmacy Workers (4)
	cp "medassist-workers/internal/workers/pharmacy/check-prescription"
	po "medassist-workers/internal/workers/pharmacy/place-order"
	sm "medassist-workers/internal/workers/pharmacy/search-medicine"
	to "medassist-workers/internal/workers/pharmacy/track-order"

	// Records Workers (3)
	dr "medassist-workers/internal/workers/records/deactivate-reminder"
	qhr "medassist-workers/internal/workers/records/query-health-records"
	sr "medassist-workers/internal/workers/records/set-reminder"

	// Communication Workers (1)
	sn "medassist-workers/internal/workers/communication/send-notification"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "console").Fatal("config load failed", zap.Error(err))
	}
	if err := config.ValidateForWorkers(cfg); err != nil {
		logger.New("info", "console").Fatal("invalid worker configuration", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...", zap.String("environment", cfg.App.Environment))

	obs, err := observability.New("worker-manager")
	if err != nil {
		zapLog.Warn("otel metrics exporter unavailable", zap.Error(err))
	}
	defer obs.Shutdown()

	reg, err := registry.LoadRegistry(cfg.Registry.Path)
	if err != nil {
		zapLog.Fatal("activity registry load failed", zap.Error(err))
	}
	if err := reg.Validate(); err != nil {
		zapLog.Fatal("activity registry invalid", zap.Error(err))
	}

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(ctx, &camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init service backends with retry ---
	var svc *app.Services
	err = retryWithBackoff(func() error {
		var err error
		svc, err = app.Build(ctx, cfg, obs, log)
		if err != nil {
			return err
		}
		if err := svc.Ready(ctx); err != nil {
			svc.Close()
			return err
		}
		return nil
	}, 15, 2*time.Second, zapLog, "Service backends")
	if err != nil {
		zapLog.Fatal("service backends failed after retries", zap.Error(err))
	}
	defer svc.Close()

	// --- Register workers ---
	handlers := map[string]camunda.JobHandler{
		as.TaskType: as.NewHandler(
			&as.Config{Timeout: jobTimeout(cfg, as.TaskType), SaveByDefault: true},
			svc.Analyzer, svc.Records, log,
		),
		ce.TaskType:  ce.NewHandler(&ce.Config{Timeout: jobTimeout(cfg, ce.TaskType)}, svc.Analyzer, log),
		gmr.TaskType: gmr.NewHandler(&gmr.Config{Timeout: jobTimeout(cfg, gmr.TaskType)}, svc.Catalog, log),

		sm.TaskType: sm.NewHandler(&sm.Config{Timeout: jobTimeout(cfg, sm.TaskType)}, svc.Pharmacy, log),
		cp.TaskType: cp.NewHandler(&cp.Config{}, log),
		po.TaskType: po.NewHandler(&po.Config{Timeout: jobTimeout(cfg, po.TaskType)}, svc.Orders, log),
		to.TaskType: to.NewHandler(&to.Config{Timeout: jobTimeout(cfg, to.TaskType)}, svc.Orders, log),

		qhr.TaskType: qhr.NewHandler(&qhr.Config{Timeout: jobTimeout(cfg, qhr.TaskType)}, svc.Records, log),
		sr.TaskType:  sr.NewHandler(&sr.Config{Timeout: jobTimeout(cfg, sr.TaskType)}, svc.Records, log),
		dr.TaskType:  dr.NewHandler(&dr.Config{Timeout: jobTimeout(cfg, dr.TaskType)}, svc.Records, log),

		sn.TaskType: sn.NewHandler(&sn.Config{Timeout: jobTimeout(cfg, sn.TaskType)}, svc.Notifications, log),
	}

	taskTypes := make([]string, 0, len(handlers))
	for taskType := range handlers {
		taskTypes = append(taskTypes, taskType)
	}
	sort.Strings(taskTypes)

	var jobWorkers []worker.JobWorker
	for _, taskType := range taskTypes {
		jw, err := startWorker(zeebe.Zeebe(), reg, taskType, config.GetWorkerConfig(cfg, taskType), handlers[taskType], obs, log)
		if err != nil {
			zapLog.Fatal("failed to start worker", zap.String("taskType", taskType), zap.Error(err))
		}
		if jw != nil {
			jobWorkers = append(jobWorkers, jw)
		}
	}
	zapLog.Info("Workers registered", zap.Int("started", len(jobWorkers)), zap.Int("known", len(handlers)))

	// --- Health & Metrics Server ---
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy", nil)
	})
	http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		err := svc.Ready(ctx)
		if err == nil {
			err = zeebe.HealthCheck(ctx)
		}
		if err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "not ready", err)
			return
		}
		writeStatus(w, http.StatusOK, "ready", nil)
	})
	http.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              cfg.HTTP.HealthAddress,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, jw := range jobWorkers {
		jw.Close()
	}
	for _, jw := range jobWorkers {
		jw.AwaitClose()
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func jobTimeout(cfg *config.Config, taskType string) time.Duration {
	return config.GetDuration(config.GetWorkerConfig(cfg, taskType).Timeout)
}

// startWorker opens a job worker for a registered task type. Disabled workers
// return a nil JobWorker.
func startWorker(
	client zbc.Client,
	reg *registry.ActivityRegistry,
	taskType string,
	wcfg config.WorkerConfig,
	handler camunda.JobHandler,
	obs *observability.Observability,
	log logger.Logger,
) (worker.JobWorker, error) {
	if !wcfg.Enabled {
		log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return nil, nil
	}

	activity, ok := reg.Find(taskType)
	if !ok {
		return nil, fmt.Errorf("task type %s is not in the activity registry", taskType)
	}
	schema, err := activity.CompileInputSchema()
	if err != nil {
		return nil, err
	}

	w := camunda.NewWorker(taskType, handler, log,
		camunda.WithInputSchema(schema),
		camunda.WithObservability(obs),
	)
	return w.Open(client, wcfg), nil
}

func writeStatus(w http.ResponseWriter, code int, status string, err error) {
	body := map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	}
	if err != nil {
		body["error"] = err.Error()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
