// internal/workers/pharmacy/place-order/handler.go
package placeorder

import (
	"context"
	"encoding/json"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"medassist-workers/internal/common/camunda"
	apperrors "medassist-workers/internal/common/errors"
	"medassist-workers/internal/common/logger"
	"medassist-workers/internal/models"
	"medassist-workers/internal/pharmacy"
)

const (
	TaskType = "place-order"
)

type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req pharmacy.OrderRequest) (*models.Order, error)
}

type Handler struct {
	config *Config
	orders OrderPlacer
	errors *apperrors.ErrorHandler
	logger logger.Logger
}

func NewHandler(config *Config, orders OrderPlacer, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		orders: orders,
		errors: apperrors.NewErrorHandler(log),
		logger: log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

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
	order, err := h.orders.PlaceOrder(ctx, input.request())
	if err != nil {
		return nil, err
	}
	return &Output{
		Order:   order,
		OrderID: order.OrderID,
		Total:   order.Total,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
