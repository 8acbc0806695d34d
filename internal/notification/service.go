// internal/notification/service.go
package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"medassist-workers/internal/common/config"
	apperrors "medassist-workers/internal/common/errors"
	"medassist-workers/internal/common/logger"
	"medassist-workers/internal/common/sms"
	"medassist-workers/internal/models"
)

// Statuses
const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, text, html string) error
}

type Request struct {
	Type  string                 `json:"notificationType"`
	Email string                 `json:"email,omitempty"`
	Phone string                 `json:"phone,omitempty"`
	Data  map[string]interface{} `json:"data,omitempty"`
}

type Result struct {
	NotificationID string   `json:"notificationId"`
	Status         string   `json:"status"`
	Channels       []string `json:"channels,omitempty"`
	SentAt         string   `json:"sentAt"`
}

// Service renders a template and fans it out over email and SMS.
// SMS only goes out for reminders and emergency alerts.
type Service struct {
	cfg       config.NotificationConfig
	email     EmailSender
	sms       sms.Sender
	templates map[string]models.NotificationTemplate
	now       func() time.Time
	logger    logger.Logger
}

func NewService(cfg config.NotificationConfig, email EmailSender, smsSender sms.Sender, log logger.Logger) *Service {
	return &Service{
		cfg:       cfg,
		email:     email,
		sms:       smsSender,
		templates: defaultTemplates,
		now:       time.Now,
		logger:    log.With(map[string]interface{}{"component": "notification"}),
	}
}

func smsAllowed(notificationType string) bool {
	return notificationType == models.NotificationReminder || notificationType == models.NotificationEmergencyAlert
}

func (s *Service) Send(ctx context.Context, req Request) (*Result, error) {
	tmpl, ok := s.templates[req.Type]
	if !ok {
		return nil, apperrors.NewValidationError("notificationType", fmt.Sprintf("unknown notification type %q", req.Type))
	}

	result := &Result{
		NotificationID: uuid.New().String(),
		Status:         StatusDisabled,
		SentAt:         s.now().UTC().Format(time.RFC3339),
	}

	subject := render(tmpl.Subject, req.Data)
	body := render(tmpl.Body, req.Data)

	if s.cfg.Email.Enabled && s.email != nil && req.Email != "" {
		if err := s.email.SendEmail(ctx, req.Email, subject, body, render(tmpl.HTMLBody, req.Data)); err != nil {
			s.logger.Error("email send failed", map[string]interface{}{
				"notificationId": result.NotificationID,
				"error":          err.Error(),
			})
			result.Status = StatusFailed
			return result, apperrors.NewNotificationSendFailedError("email", err)
		}
		result.Channels = append(result.Channels, "email")
	}

	if s.cfg.SMS.Enabled && s.sms != nil && req.Phone != "" && smsAllowed(req.Type) {
		text := render(tmpl.SMSBody, req.Data)
		if text == "" {
			text = body
		}
		if err := s.sms.SendSMS(ctx, req.Phone, text); err != nil {
			s.logger.Error("sms send failed", map[string]interface{}{
				"notificationId": result.NotificationID,
				"error":          err.Error(),
			})
			result.Status = StatusFailed
			return result, apperrors.NewNotificationSendFailedError("sms", err)
		}
		result.Channels = append(result.Channels, "sms")
	}

	if len(result.Channels) > 0 {
		result.Status = StatusSent
	}
	s.logger.Info("notification processed", map[string]interface{}{
		"notificationId": result.NotificationID,
		"type":           req.Type,
		"status":         result.Status,
	})
	return result, nil
}
