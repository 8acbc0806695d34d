// internal/triage/classifier.go
package triage

import (
	"context"
	"strings"

	"medassist-workers/internal/models"
)

// Assessment is everything the rule layer derives from one symptom text.
type Assessment struct {
	TemperatureF *float64
	Fever        *FeverAssessment
	Emergency    bool
	Severity     models.Severity
	Category     models.Category
	HasCategory  bool
}

// Classifier turns free text into an Assessment. The orchestrator depends only
// on this interface so the keyword heuristics can be swapped for a model.
type Classifier interface {
	Classify(ctx context.Context, text string) Assessment
}

// KeywordClassifier is the substring and pattern based Classifier.
type KeywordClassifier struct{}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

func (c *KeywordClassifier) Classify(_ context.Context, text string) Assessment {
	lower := strings.ToLower(text)
	var a Assessment

	temp, hasTemp := ExtractTemperature(lower)
	if hasTemp {
		a.TemperatureF = &temp
		fever := AssessFeverSeverity(temp)
		a.Fever = &fever
	}

	if isEmergency(lower, temp, hasTemp) {
		a.Emergency = true
		a.Severity = models.SeverityEmergency
		return a
	}

	a.Severity = DetectSeverityFromText(lower)
	if a.Fever != nil {
		a.Severity = models.MaxSeverity(a.Severity, a.Fever.Severity)
	}
	a.Category, a.HasCategory = DetectCategory(lower, hasTemp)
	return a
}
