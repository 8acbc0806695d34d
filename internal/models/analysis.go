// internal/models/analysis.go
package models

import "strings"

// Severity is the ordinal urgency of a symptom report.
type Severity string

const (
	SeverityUnknown   Severity = "unknown"
	SeverityMild      Severity = "mild"
	SeverityModerate  Severity = "moderate"
	SeveritySevere    Severity = "severe"
	SeverityEmergency Severity = "emergency"
)

// Rank orders severities mild < moderate < severe < emergency. Unknown ranks lowest.
func (s Severity) Rank() int {
	switch s {
	case SeverityMild:
		return 1
	case SeverityModerate:
		return 2
	case SeveritySevere:
		return 3
	case SeverityEmergency:
		return 4
	default:
		return 0
	}
}

// MaxSeverity returns the more severe of a and b.
func MaxSeverity(a, b Severity) Severity {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// ParseSeverity accepts any case; unrecognised values map to unknown.
func ParseSeverity(s string) Severity {
	sev := Severity(strings.ToLower(strings.TrimSpace(s)))
	if sev.Rank() == 0 {
		return SeverityUnknown
	}
	return sev
}

// Category is an OTC medicine category.
type Category string

const (
	CategoryPainFever Category = "pain_fever"
	CategoryColdCough Category = "cold_cough"
	CategoryAcidity   Category = "acidity"
	CategoryDigestive Category = "digestive"
	CategorySkin      Category = "skin"
)

// Categories is the fixed enumeration order, also used to break scoring ties.
var Categories = []Category{
	CategoryPainFever,
	CategoryColdCough,
	CategoryAcidity,
	CategoryDigestive,
	CategorySkin,
}

func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

type Probability string

const (
	ProbabilityLow    Probability = "low"
	ProbabilityMedium Probability = "medium"
	ProbabilityHigh   Probability = "high"
)

// Result sources
const (
	SourceGenAI     = "genai"
	SourceRules     = "rules"
	SourceEmergency = "emergency"
)

// SymptomReport is the transient analysis input.
type SymptomReport struct {
	Text     string `json:"text"`
	Age      *int   `json:"age,omitempty"`
	Gender   string `json:"gender,omitempty"`
	Duration string `json:"duration,omitempty"`
}

type Condition struct {
	Name        string      `json:"name"`
	Probability Probability `json:"probability"`
	Description string      `json:"description"`
}

// AnalysisResult is the orchestrator output. Emergency results carry Message
// and Action and never an OTC category.
type AnalysisResult struct {
	IsEmergency         bool        `json:"isEmergency"`
	Severity            Severity    `json:"severity"`
	TemperatureF        *float64    `json:"temperatureF,omitempty"`
	TemperatureStatus   string      `json:"temperatureStatus,omitempty"`
	PossibleConditions  []Condition `json:"possibleConditions"`
	Recommendations     []string    `json:"recommendations"`
	RedFlags            []string    `json:"redFlags"`
	HomeCare            []string    `json:"homeCare"`
	SeeDoctorIf         []string    `json:"seeDoctorIf"`
	OTCMedicineCategory *Category   `json:"otcMedicineCategory,omitempty"`
	Message             string      `json:"message,omitempty"`
	Action              string      `json:"action,omitempty"`
	Disclaimer          string      `json:"disclaimer"`
	Source              string      `json:"source"`
}
