// internal/workers/triage/check-emergency/handler.go
package checkemergency

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"medassist-workers/internal/common/camunda"
	apperrors "medassist-workers/internal/common/errors"
	"medassist-workers/internal/common/logger"
	"medassist-workers/internal/common/metrics"
)

const (
	TaskType = "check-emergency"
)

type EmergencyChecker interface {
	CheckEmergency(ctx context.Context, text string) bool
}

type Handler struct {
	config  *Config
	checker EmergencyChecker
	errors  *apperrors.ErrorHandler
	logger  logger.Logger
}

func NewHandler(config *Config, checker EmergencyChecker, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  config,
		checker: checker,
		errors:  apperrors.NewErrorHandler(log),
		logger:  log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.errors.HandleJobError(context.Background(), client, job, apperrors.NewParseError(err))
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.errors.HandleJobError(context.Background(), client, job, err)
		return err
	}
	return camunda.CompleteJob(context.Background(), client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, apperrors.NewInputEmptyError("text")
	}

	emergency := h.checker.CheckEmergency(ctx, input.Text)
	if emergency {
		metrics.TriageEmergencies.Inc()
		h.logger.Warn("emergency detected", nil)
	}
	return &Output{IsEmergency: emergency}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
