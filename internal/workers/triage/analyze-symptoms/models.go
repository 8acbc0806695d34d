// internal/workers/triage/analyze-symptoms/models.go
package analyzesymptoms

import "medassist-workers/internal/models"

type Input struct {
	Text       string `json:"text"`
	Age        *int   `json:"age,omitempty"`
	Gender     string `json:"gender,omitempty"`
	Duration   string `json:"duration,omitempty"`
	SaveRecord *bool  `json:"saveRecord,omitempty"`
}

func (i *Input) report() models.SymptomReport {
	return models.SymptomReport{
		Text:     i.Text,
		Age:      i.Age,
		Gender:   i.Gender,
		Duration: i.Duration,
	}
}

// Output flattens the fields gateways branch on next to the full analysis.
type Output struct {
	Analysis    *models.AnalysisResult `json:"analysis"`
	IsEmergency bool                   `json:"isEmergency"`
	Severity    models.Severity        `json:"severity"`
	RecordID    string                 `json:"recordId,omitempty"`
}
