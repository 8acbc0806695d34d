// internal/workers/records/deactivate-reminder/models.go
package deactivatereminder

type Input struct {
	ReminderID string `json:"reminderId"`
}

type Output struct {
	ReminderID string `json:"reminderId"`
	Active     bool   `json:"active"`
}
