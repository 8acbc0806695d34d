// internal/models/records.go
package models

// Record types
const (
	RecordTypeSymptomCheck = "symptom_check"
	RecordTypeManual       = "manual"
)

type HealthRecord struct {
	ID              string          `json:"id"`
	Type            string          `json:"type"`
	Symptoms        string          `json:"symptoms"`
	Age             *int            `json:"age,omitempty"`
	Gender          string          `json:"gender,omitempty"`
	Duration        string          `json:"duration,omitempty"`
	Severity        Severity        `json:"severity"`
	Analysis        *AnalysisResult `json:"analysis,omitempty"`
	Recommendations []string        `json:"recommendations,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Timestamp       string          `json:"timestamp"`
}

// RecordQuery filters health records. Zero values disable a filter.
type RecordQuery struct {
	Limit      int        `json:"limit,omitempty"`
	SinceDays  int        `json:"sinceDays,omitempty"`
	Severities []Severity `json:"severities,omitempty"`
	Search     string     `json:"search,omitempty"`
}

type RecordSummary struct {
	Records        []HealthRecord `json:"records"`
	Total          int            `json:"total"`
	CommonSymptoms map[string]int `json:"commonSymptoms"`
}

type Reminder struct {
	ID           string   `json:"id"`
	Medicine     string   `json:"medicine"`
	Dosage       string   `json:"dosage,omitempty"`
	Frequency    string   `json:"frequency"`
	Times        []string `json:"times"`
	DurationDays int      `json:"durationDays"`
	Notes        string   `json:"notes,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	Active       bool     `json:"active"`
	CreatedAt    string   `json:"createdAt"`
}
