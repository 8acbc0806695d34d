// internal/analysis/prompt.go
package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"medassist-workers/internal/common/validation"
	"medassist-workers/internal/models"
)

var (
	ErrNoJSONObject     = errors.New("no JSON object in generated text")
	ErrContractMismatch = errors.New("generated analysis does not match contract")
)

const responseContract = `{
  "emergency": false,
  "severity": "mild" | "moderate" | "severe",
  "possible_conditions": [
    {
      "name": "condition name",
      "probability": "low" | "medium" | "high",
      "description": "detailed description"
    }
  ],
  "recommendations": ["specific recommendation 1", "recommendation 2", "recommendation 3", "recommendation 4"],
  "red_flags": ["warning sign 1", "warning sign 2", "warning sign 3"],
  "home_care": ["home care tip 1", "tip 2", "tip 3"],
  "see_doctor_if": ["condition 1", "condition 2", "condition 3"],
  "otc_medicine_category": "pain_fever" | "cold_cough" | "acidity" | "digestive" | "skin" | null
}`

// responseSchema is the JSON schema every generated analysis must satisfy.
var responseSchema = validation.MustCompile(`{
  "type": "object",
  "required": ["severity", "possible_conditions", "recommendations"],
  "properties": {
    "emergency": {"type": "boolean"},
    "severity": {"type": "string", "enum": ["mild", "moderate", "severe", "emergency"]},
    "possible_conditions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "probability"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "probability": {"type": "string", "enum": ["low", "medium", "high"]},
          "description": {"type": "string"}
        }
      }
    },
    "recommendations": {"type": "array", "minItems": 1, "items": {"type": "string"}},
    "red_flags": {"type": "array", "items": {"type": "string"}},
    "home_care": {"type": "array", "items": {"type": "string"}},
    "see_doctor_if": {"type": "array", "items": {"type": "string"}},
    "otc_medicine_category": {
      "type": ["string", "null"],
      "enum": ["pain_fever", "cold_cough", "acidity", "digestive", "skin", null]
    }
  }
}`)

// generatedAnalysis is the wire shape requested from the generative service.
type generatedAnalysis struct {
	Emergency           bool               `json:"emergency"`
	Severity            string             `json:"severity"`
	PossibleConditions  []models.Condition `json:"possible_conditions"`
	Recommendations     []string           `json:"recommendations"`
	RedFlags            []string           `json:"red_flags"`
	HomeCare            []string           `json:"home_care"`
	SeeDoctorIf         []string           `json:"see_doctor_if"`
	OTCMedicineCategory *string            `json:"otc_medicine_category"`
}

// BuildPrompt renders the generation prompt for a report.
func BuildPrompt(report models.SymptomReport, tempF *float64) string {
	var preamble strings.Builder
	if tempF != nil {
		fmt.Fprintf(&preamble, "IMPORTANT: Patient reports temperature of %s°F. ", formatTemp(*tempF))
	}
	if report.Age != nil {
		fmt.Fprintf(&preamble, "Patient age: %d years. ", *report.Age)
	}
	if report.Gender != "" {
		fmt.Fprintf(&preamble, "Gender: %s. ", report.Gender)
	}
	if report.Duration != "" {
		fmt.Fprintf(&preamble, "Duration: %s. ", report.Duration)
	}

	return fmt.Sprintf(`You are a medical AI assistant. Analyze these symptoms carefully.

%s
Symptoms: %s

CRITICAL: If temperature is mentioned and is above 103°F, classify as SEVERE.
If temperature is above 105°F, classify as EMERGENCY.

Provide analysis in EXACT JSON format (no markdown, just pure JSON):
%s`, preamble.String(), report.Text, responseContract)
}

// extractJSON strips markdown fences and keeps the outermost {...} span.
func extractJSON(text string) (string, error) {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", ErrNoJSONObject
	}
	return text[start : end+1], nil
}

// parseGenerated decodes and validates a generated analysis.
func parseGenerated(text string) (*generatedAnalysis, error) {
	raw, err := extractJSON(text)
	if err != nil {
		return nil, err
	}

	if result := responseSchema.ValidateJSON([]byte(raw)); !result.Valid {
		return nil, fmt.Errorf("%w: %s", ErrContractMismatch, strings.Join(result.Messages(), "; "))
	}

	var out generatedAnalysis
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContractMismatch, err)
	}
	return &out, nil
}

func (g *generatedAnalysis) claimsEmergency() bool {
	return g.Emergency || models.ParseSeverity(g.Severity) == models.SeverityEmergency
}

func (g *generatedAnalysis) toResult() *models.AnalysisResult {
	result := &models.AnalysisResult{
		Severity:           models.ParseSeverity(g.Severity),
		PossibleConditions: g.PossibleConditions,
		Recommendations:    g.Recommendations,
		RedFlags:           g.RedFlags,
		HomeCare:           g.HomeCare,
		SeeDoctorIf:        g.SeeDoctorIf,
		Disclaimer:         Disclaimer,
		Source:             models.SourceGenAI,
	}
	if g.OTCMedicineCategory != nil {
		if cat, ok := models.ParseCategory(*g.OTCMedicineCategory); ok {
			result.OTCMedicineCategory = &cat
		}
	}
	if result.PossibleConditions == nil {
		result.PossibleConditions = []models.Condition{}
	}
	for _, list := range []*[]string{&result.RedFlags, &result.HomeCare, &result.SeeDoctorIf} {
		if *list == nil {
			*list = []string{}
		}
	}
	return result
}
