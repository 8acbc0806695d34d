// internal/workers/pharmacy/search-medicine/handler.go
package searchmedicine

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"medassist-workers/internal/common/camunda"
	apperrors "medassist-workers/internal/common/errors"
	"medassist-workers/internal/common/logger"
	"medassist-workers/internal/models"
)

const (
	TaskType = "search-medicine"
)

type Searcher interface {
	SearchWithPrescription(name, prescriptionID string) ([]models.Quote, error)
}

type Handler struct {
	config   *Config
	searcher Searcher
	errors   *apperrors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, searcher Searcher, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		searcher: searcher,
		errors:   apperrors.NewErrorHandler(log),
		logger:   log,
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

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	quotes, err := h.searcher.SearchWithPrescription(input.Name, input.PrescriptionID)
	if err != nil {
		return nil, err
	}

	output := &Output{
		Medicine: strings.TrimSpace(input.Name),
		Quotes:   quotes,
	}
	if len(quotes) > 0 {
		cheapest := quotes[0]
		output.Cheapest = &cheapest
	}
	return output, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
