// internal/workers/communication/send-notification/models.go
package sendnotification

import "medassist-workers/internal/notification"

type Input struct {
	NotificationType string                 `json:"notificationType"`
	Email            string                 `json:"email,omitempty"`
	Phone            string                 `json:"phone,omitempty"`
	Data             map[string]interface{} `json:"data,omitempty"`
}

func (i *Input) request() notification.Request {
	return notification.Request{
		Type:  i.NotificationType,
		Email: i.Email,
		Phone: i.Phone,
		Data:  i.Data,
	}
}

type Output struct {
	NotificationID string   `json:"notificationId"`
	Status         string   `json:"status"`
	Channels       []string `json:"channels,omitempty"`
	SentAt         string   `json:"sentAt"`
}
