// internal/triage/emergency.go
package triage

import "strings"

var emergencyKeywords = []string{
	"chest pain", "heart attack", "can't breathe", "difficulty breathing",
	"severe bleeding", "heavy bleeding", "unconscious", "passed out",
	"seizure", "convulsion", "stroke", "face drooping", "arm weakness",
	"severe headache", "worst headache", "blurred vision", "double vision",
	"severe abdominal pain", "stomach pain severe", "coughing blood", "vomiting blood",
	"suicidal", "want to die", "kill myself", "severe burn",
	"choking", "poisoning", "overdose",
}

var (
	severeCompanions = []string{"pain", "bleeding", "headache"}
	maxPainTokens    = []string{"10/10", "9/10", "unbearable", "worst"}
)

// CheckEmergency reports whether text describes a medical emergency.
func CheckEmergency(text string) bool {
	temp, ok := ExtractTemperature(text)
	return isEmergency(strings.ToLower(text), temp, ok)
}

func isEmergency(lower string, tempF float64, hasTemp bool) bool {
	if hasTemp && tempF >= CriticalFeverF {
		return true
	}
	if containsAny(lower, emergencyKeywords) {
		return true
	}
	if strings.Contains(lower, "severe") && containsAny(lower, severeCompanions) {
		return true
	}
	return containsAny(lower, maxPainTokens)
}
