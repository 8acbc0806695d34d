// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"medassist-workers/internal/common/config"
	apperrors "medassist-workers/internal/common/errors"
	"medassist-workers/internal/common/logger"
	"medassist-workers/internal/common/metrics"
	"medassist-workers/internal/common/observability"
	"medassist-workers/internal/common/validation"
)

// JobHandler processes one activated job. It completes or fails the job with
// the engine itself and returns the error it reported, if any.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job) error
}

type JobHandlerFunc func(client worker.JobClient, job entities.Job) error

func (f JobHandlerFunc) Handle(client worker.JobClient, job entities.Job) error {
	return f(client, job)
}

// Worker decorates a JobHandler with input-schema validation, Prometheus job
// metrics and otel job counters.
type Worker struct {
	taskType string
	handler  JobHandler
	schema   *validation.Schema
	errors   *apperrors.ErrorHandler
	obs      *observability.Observability
	logger   logger.Logger
}

type WorkerOption func(*Worker)

// WithInputSchema rejects jobs whose variables do not match schema with PARSE_ERROR.
func WithInputSchema(schema *validation.Schema) WorkerOption {
	return func(w *Worker) { w.schema = schema }
}

func WithObservability(obs *observability.Observability) WorkerOption {
	return func(w *Worker) { w.obs = obs }
}

func NewWorker(taskType string, handler JobHandler, log logger.Logger, opts ...WorkerOption) *Worker {
	log = log.WithFields(map[string]interface{}{"taskType": taskType})
	w := &Worker{
		taskType: taskType,
		handler:  handler,
		errors:   apperrors.NewErrorHandler(log),
		logger:   log,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Worker) TaskType() string {
	return w.taskType
}

// Handle matches the Zeebe client's handler signature.
func (w *Worker) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	active := metrics.WorkerJobsActive.WithLabelValues(w.taskType)
	active.Inc()
	defer active.Dec()

	err := w.Validate(job)
	if err != nil {
		w.errors.HandleJobError(context.Background(), client, job, err)
	} else {
		err = w.handler.Handle(client, job)
	}
	w.record(start, err)
}

// Validate checks the job variables against the input schema, if one is set.
func (w *Worker) Validate(job entities.Job) error {
	if w.schema == nil {
		return nil
	}
	result := w.schema.ValidateJSON([]byte(job.Variables))
	if result.Valid {
		return nil
	}
	return apperrors.NewParseError(errors.New(strings.Join(result.Messages(), "; ")))
}

func (w *Worker) record(start time.Time, err error) {
	ctx := context.Background()
	elapsed := time.Since(start)

	status := "completed"
	if err != nil {
		status = "failed"
		code := apperrors.Normalize(err).Code
		metrics.WorkerJobsFailed.WithLabelValues(w.taskType, string(code)).Inc()
	} else {
		metrics.WorkerJobsCompleted.WithLabelValues(w.taskType).Inc()
	}
	metrics.WorkerJobDuration.WithLabelValues(w.taskType).Observe(elapsed.Seconds())

	w.obs.RecordJobProcessed(ctx, w.taskType, status)
	w.obs.RecordJobDuration(ctx, w.taskType, elapsed, status)
}

// Open starts polling for the worker's task type.
func (w *Worker) Open(client zbc.Client, cfg config.WorkerConfig) worker.JobWorker {
	jobWorker := client.NewJobWorker().
		JobType(w.taskType).
		Handler(w.Handle).
		MaxJobsActive(cfg.MaxJobsActive).
		Timeout(config.GetDuration(cfg.Timeout)).
		Open()

	w.logger.Info("worker started", map[string]interface{}{
		"maxJobsActive": cfg.MaxJobsActive,
		"timeout_ms":    cfg.Timeout,
	})
	return jobWorker
}

// CompleteJob completes job with output as its variables.
func CompleteJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		return apperrors.NewInternalError(fmt.Errorf("encode job variables: %w", err))
	}
	if _, err := cmd.Send(ctx); err != nil {
		return apperrors.NewExternalServiceError("zeebe", err)
	}
	return nil
}
