// internal/models/notification.go
package models

// Notification types
const (
	NotificationOrderConfirmation = "order_confirmation"
	NotificationReminder          = "reminder"
	NotificationEmergencyAlert    = "emergency_alert"
)

type Notification struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Channel   string                 `json:"channel"` // "email", "sms"
	Status    string                 `json:"status"`  // "sent", "failed", "disabled"
	Payload   map[string]interface{} `json:"payload"`
	SentAt    string                 `json:"sentAt"`
	CreatedAt string                 `json:"createdAt"`
}

type NotificationTemplate struct {
	Type     string `json:"type"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	SMSBody  string `json:"smsBody"`
	HTMLBody string `json:"htmlBody,omitempty"`
}
