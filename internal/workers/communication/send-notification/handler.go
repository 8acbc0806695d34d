// internal/workers/communication/send-notification/handler.go
package sendnotification

import (
	"context"
	"encoding/json"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"medassist-workers/internal/common/camunda"
	apperrors "medassist-workers/internal/common/errors"
	"medassist-workers/internal/common/logger"
	"medassist-workers/internal/notification"
)

const (
	TaskType = "send-notification"
)

type Notifier interface {
	Send(ctx context.Context, req notification.Request) (*notification.Result, error)
}

type Handler struct {
	config   *Config
	notifier Notifier
	errors   *apperrors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, notifier Notifier, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		notifier: notifier,
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

// execute fails the job when a channel errors so the engine retries the
// delivery; disabled channels complete with status "disabled".
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	result, err := h.notifier.Send(ctx, input.request())
	if err != nil {
		return nil, err
	}
	return &Output{
		NotificationID: result.NotificationID,
		Status:         result.Status,
		Channels:       result.Channels,
		SentAt:         result.SentAt,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
