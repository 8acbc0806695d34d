// internal/workers/pharmacy/track-order/handler.go
package trackorder

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
	TaskType = "track-order"
)

type OrderTracker interface {
	TrackOrder(ctx context.Context, orderID string) (*models.TrackingStatus, error)
}

type Handler struct {
	config  *Config
	tracker OrderTracker
	errors  *apperrors.ErrorHandler
	logger  logger.Logger
}

func NewHandler(config *Config, tracker OrderTracker, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  config,
		tracker: tracker,
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
	tracking, err := h.tracker.TrackOrder(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	return &Output{
		Tracking:  tracking,
		Status:    tracking.Status,
		Delivered: tracking.Status == models.OrderDelivered,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
