// internal/triage/severity.go
package triage

import (
	"strings"

	"medassist-workers/internal/models"
)

// Fever thresholds, °F.
const (
	CriticalFeverF = 105.0
	HighFeverF     = 103.0
	ModerateFeverF = 101.0
	MildFeverF     = 99.5
)

type FeverAssessment struct {
	Severity  models.Severity `json:"severity"`
	Emergency bool            `json:"emergency"`
	Status    string          `json:"status"`
}

func AssessFeverSeverity(tempF float64) FeverAssessment {
	switch {
	case tempF >= CriticalFeverF:
		return FeverAssessment{models.SeverityEmergency, true, "🚨 CRITICAL FEVER - IMMEDIATE MEDICAL ATTENTION REQUIRED!"}
	case tempF >= HighFeverF:
		return FeverAssessment{models.SeveritySevere, false, "⚠️ HIGH FEVER - See doctor immediately"}
	case tempF >= ModerateFeverF:
		return FeverAssessment{models.SeverityModerate, false, "Moderate fever - Monitor closely"}
	case tempF >= MildFeverF:
		return FeverAssessment{models.SeverityMild, false, "Mild fever"}
	default:
		return FeverAssessment{models.SeverityMild, false, "Low-grade or no fever"}
	}
}

type severityTier struct {
	severity models.Severity
	words    []string
}

// most severe tier first
var severityTiers = []severityTier{
	{models.SeveritySevere, []string{"unbearable", "worst", "extreme", "excruciating", "10/10", "9/10"}},
	{models.SeveritySevere, []string{"severe", "bad", "intense", "terrible", "7/10", "8/10"}},
	{models.SeverityModerate, []string{"moderate", "painful", "5/10", "6/10"}},
}

func DetectSeverityFromText(text string) models.Severity {
	lower := strings.ToLower(text)
	for _, tier := range severityTiers {
		if containsAny(lower, tier.words) {
			return tier.severity
		}
	}
	return models.SeverityMild
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
