// internal/workers/triage/analyze-symptoms/handler.go
package analyzesymptoms

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
	TaskType = "analyze-symptoms"
)

type Analyzer interface {
	Analyze(ctx context.Context, report models.SymptomReport) (*models.AnalysisResult, error)
}

type RecordSaver interface {
	SaveAnalysis(ctx context.Context, report models.SymptomReport, result *models.AnalysisResult) (*models.HealthRecord, error)
}

type Handler struct {
	config   *Config
	analyzer Analyzer
	records  RecordSaver
	errors   *apperrors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, analyzer Analyzer, records RecordSaver, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		analyzer: analyzer,
		records:  records,
		errors:   apperrors.NewErrorHandler(log),
		logger:   log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		return h.failJob(client, job, apperrors.NewParseError(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		return h.failJob(client, job, err)
	}
	return camunda.CompleteJob(context.Background(), client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	report := input.report()
	result, err := h.analyzer.Analyze(ctx, report)
	if err != nil {
		return nil, err
	}

	output := &Output{
		Analysis:    result,
		IsEmergency: result.IsEmergency,
		Severity:    result.Severity,
	}

	save := h.config.SaveByDefault
	if input.SaveRecord != nil {
		save = *input.SaveRecord
	}
	if !save || h.records == nil {
		return output, nil
	}

	rec, err := h.records.SaveAnalysis(ctx, report, result)
	if err != nil {
		return nil, err
	}
	output.RecordID = rec.ID

	h.logger.Info("analysis saved", map[string]interface{}{
		"recordId": rec.ID,
		"severity": result.Severity,
	})
	return output, nil
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error) error {
	h.errors.HandleJobError(context.Background(), client, job, err)
	return err
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
