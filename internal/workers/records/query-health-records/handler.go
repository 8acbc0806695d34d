// internal/workers/records/query-health-records/handler.go
package queryhealthrecords

import (
	"context"
	"encoding/json"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"medassist-workers/internal/common/camunda"
	apperrors "medassist-workers/internal/common/errors"
	"medassist-workers/internal/common/logger"
	"medassist-workers/internal/models"
)

const (
	TaskType = "query-health-records"
)

type RecordQuerier interface {
	QueryHealthRecords(ctx context.Context, q models.RecordQuery) (*models.RecordSummary, error)
}

type Handler struct {
	config  *Config
	records RecordQuerier
	errors  *apperrors.ErrorHandler
	logger  logger.Logger
}

func NewHandler(config *Config, records RecordQuerier, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  config,
		records: records,
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
	summary, err := h.records.QueryHealthRecords(ctx, input.query())
	if err != nil {
		return nil, err
	}
	return &Output{
		Records:        summary.Records,
		Total:          summary.Total,
		CommonSymptoms: summary.CommonSymptoms,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
