// internal/workers/pharmacy/check-prescription/handler.go
package checkprescription

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"medassist-workers/internal/common/camunda"
	apperrors "medassist-workers/internal/common/errors"
	"medassist-workers/internal/common/logger"
	"medassist-workers/internal/pharmacy"
)

const (
	TaskType = "check-prescription"
)

type Handler struct {
	config *Config
	errors *apperrors.ErrorHandler
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		errors: apperrors.NewErrorHandler(log),
		logger: log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.errors.HandleJobError(context.Background(), client, job, apperrors.NewParseError(err))
		return err
	}

	output, err := h.execute(&input)
	if err != nil {
		h.errors.HandleJobError(context.Background(), client, job, err)
		return err
	}
	return camunda.CompleteJob(context.Background(), client, job, output)
}

func (h *Handler) execute(input *Input) (*Output, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "medicine name is required")
	}

	check := pharmacy.CheckPrescriptionRequired(name)
	return &Output{
		Medicine:             check.Medicine,
		PrescriptionRequired: check.Required,
		Category:             check.Category,
		Message:              check.Message,
	}, nil
}

func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	return h.execute(input)
}
