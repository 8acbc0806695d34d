// internal/workers/triage/get-medicine-recommendations/handler.go
package getmedicinerecommendations

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"medassist-workers/internal/common/camunda"
	apperrors "medassist-workers/internal/common/errors"
	"medassist-workers/internal/common/logger"
	"medassist-workers/internal/medicine"
	"medassist-workers/internal/models"
)

const (
	TaskType = "get-medicine-recommendations"
)

type Handler struct {
	config  *Config
	catalog medicine.Catalog
	errors  *apperrors.ErrorHandler
	logger  logger.Logger
}

func NewHandler(config *Config, catalog medicine.Catalog, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  config,
		catalog: catalog,
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

// execute returns an empty list for a null, empty or unknown category.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	output := &Output{Medicines: []models.Medicine{}}
	if input.Category == nil || strings.TrimSpace(*input.Category) == "" {
		return output, nil
	}

	output.Category = strings.TrimSpace(*input.Category)
	meds, err := h.catalog.ForCategory(ctx, models.Category(output.Category))
	if err != nil {
		return nil, err
	}
	output.Medicines = meds

	h.logger.Debug("medicines resolved", map[string]interface{}{
		"category": output.Category,
		"count":    len(meds),
	})
	return output, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
