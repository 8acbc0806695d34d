// internal/workers/records/set-reminder/models.go
package setreminder

import "medassist-workers/internal/models"

type Input struct {
	Medicine     string   `json:"medicine"`
	Dosage       string   `json:"dosage,omitempty"`
	Frequency    string   `json:"frequency"`
	Times        []string `json:"times"`
	DurationDays int      `json:"durationDays"`
	Notes        string   `json:"notes,omitempty"`
	Phone        string   `json:"phone,omitempty"`
}

func (i *Input) reminder() models.Reminder {
	return models.Reminder{
		Medicine:     i.Medicine,
		Dosage:       i.Dosage,
		Frequency:    i.Frequency,
		Times:        i.Times,
		DurationDays: i.DurationDays,
		Notes:        i.Notes,
		Phone:        i.Phone,
	}
}

type Output struct {
	Reminder   *models.Reminder `json:"reminder"`
	ReminderID string           `json:"reminderId"`
}
