// internal/records/service.go
package records

import (
	"context"
	"sort"
	"strings"
	"time"

	apperrors "medassist-workers/internal/common/errors"
	"medassist-workers/internal/common/logger"
	"medassist-workers/internal/models"
	"medassist-workers/internal/store"
)

const defaultRecordLimit = 10

// commonSymptoms are counted across every stored record for the summary.
var commonSymptoms = []string{"headache", "fever", "pain", "cough"}

// Service manages health records and medication reminders.
type Service struct {
	store  store.DocumentStore
	now    func() time.Time
	logger logger.Logger
}

type options struct {
	now func() time.Time
}

type Option func(*options)

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func NewService(docs store.DocumentStore, log logger.Logger, opts ...Option) *Service {
	o := buildOptions(opts)
	return &Service{
		store:  docs,
		now:    o.now,
		logger: log.With(map[string]interface{}{"component": "records"}),
	}
}

// ValidateAge accepts a missing age or one in (0, 150).
func ValidateAge(age *int) error {
	if age != nil && (*age <= 0 || *age >= 150) {
		return apperrors.NewValidationError("age", "age must be between 1 and 149")
	}
	return nil
}

func (s *Service) AddHealthRecord(ctx context.Context, rec models.HealthRecord) (*models.HealthRecord, error) {
	if strings.TrimSpace(rec.Symptoms) == "" {
		return nil, apperrors.NewInputEmptyError("symptoms")
	}
	if err := ValidateAge(rec.Age); err != nil {
		return nil, err
	}
	if rec.Type == "" {
		rec.Type = models.RecordTypeManual
	}
	if rec.Severity == "" {
		rec.Severity = models.SeverityUnknown
	}
	rec.ID = ""
	rec.Timestamp = s.now().Format(time.RFC3339)

	doc, err := store.ToDocument(rec)
	if err != nil {
		return nil, apperrors.NewStoreOperationError("encode", err)
	}
	delete(doc, "id")

	stored, err := s.store.Append(ctx, store.CollectionHealthRecords, doc)
	if err != nil {
		return nil, err
	}
	rec.ID = stored.ID()

	s.logger.Info("health record added", map[string]interface{}{
		"recordId": rec.ID,
		"type":     rec.Type,
		"severity": rec.Severity,
	})
	return &rec, nil
}

// SaveAnalysis records a completed symptom check.
func (s *Service) SaveAnalysis(ctx context.Context, report models.SymptomReport, result *models.AnalysisResult) (*models.HealthRecord, error) {
	return s.AddHealthRecord(ctx, models.HealthRecord{
		Type:            models.RecordTypeSymptomCheck,
		Symptoms:        report.Text,
		Age:             report.Age,
		Gender:          report.Gender,
		Duration:        report.Duration,
		Severity:        result.Severity,
		Analysis:        result,
		Recommendations: result.Recommendations,
	})
}

// QueryHealthRecords filters newest first. Common-symptom counts always cover
// the whole history.
func (s *Service) QueryHealthRecords(ctx context.Context, q models.RecordQuery) (*models.RecordSummary, error) {
	if q.Limit < 0 || q.SinceDays < 0 {
		return nil, apperrors.NewValidationError("query", "limit and sinceDays cannot be negative")
	}
	docs, err := s.store.QueryAll(ctx, store.CollectionHealthRecords)
	if err != nil {
		return nil, err
	}

	all := make([]models.HealthRecord, 0, len(docs))
	for _, d := range docs {
		var rec models.HealthRecord
		if err := store.Decode(d, &rec); err != nil {
			s.logger.Warn("skipping undecodable record", map[string]interface{}{"id": d.ID(), "error": err.Error()})
			continue
		}
		all = append(all, rec)
	}

	var cutoff string
	if q.SinceDays > 0 {
		cutoff = s.now().AddDate(0, 0, -q.SinceDays).Format(time.RFC3339)
	}
	search := strings.ToLower(strings.TrimSpace(q.Search))

	filtered := make([]models.HealthRecord, 0, len(all))
	for _, rec := range all {
		if cutoff != "" && rec.Timestamp < cutoff {
			continue
		}
		if len(q.Severities) > 0 && !containsSeverity(q.Severities, rec.Severity) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(rec.Symptoms), search) {
			continue
		}
		filtered = append(filtered, rec)
	}

	sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Timestamp > filtered[j].Timestamp })

	total := len(filtered)
	limit := q.Limit
	if limit == 0 {
		limit = defaultRecordLimit
	}
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	return &models.RecordSummary{
		Records:        filtered,
		Total:          total,
		CommonSymptoms: countSymptoms(all),
	}, nil
}

func containsSeverity(list []models.Severity, s models.Severity) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func countSymptoms(recs []models.HealthRecord) map[string]int {
	parts := make([]string, len(recs))
	for i, r := range recs {
		parts[i] = r.Symptoms
	}
	text := strings.ToLower(strings.Join(parts, " "))

	counts := map[string]int{}
	for _, word := range commonSymptoms {
		if n := strings.Count(text, word); n > 0 {
			counts[word] = n
		}
	}
	return counts
}
