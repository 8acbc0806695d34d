// internal/workers/records/query-health-records/models.go
package queryhealthrecords

import "medassist-workers/internal/models"

type Input struct {
	Limit      int      `json:"limit,omitempty"`
	SinceDays  int      `json:"sinceDays,omitempty"`
	Severities []string `json:"severities,omitempty"`
	Search     string   `json:"search,omitempty"`
}

func (i *Input) query() models.RecordQuery {
	q := models.RecordQuery{
		Limit:     i.Limit,
		SinceDays: i.SinceDays,
		Search:    i.Search,
	}
	for _, s := range i.Severities {
		q.Severities = append(q.Severities, models.ParseSeverity(s))
	}
	return q
}

type Output struct {
	Records        []models.HealthRecord `json:"records"`
	Total          int                   `json:"total"`
	CommonSymptoms map[string]int        `json:"commonSymptoms"`
}
