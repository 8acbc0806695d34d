// internal/analysis/templates.go
package analysis

import (
	"fmt"
	"strconv"

	"medassist-workers/internal/models"
	"medassist-workers/internal/triage"
)

const (
	Disclaimer          = "⚠️ This is NOT a medical diagnosis. Consult a doctor for proper medical advice."
	EmergencyDisclaimer = "🚨 MEDICAL EMERGENCY - Professional help required immediately."
	EmergencyMessage    = "⚠️ MEDICAL EMERGENCY DETECTED"
	EmergencyAction     = "Call emergency services (911/108) immediately or go to nearest ER"
)

var emergencyRecommendations = []string{
	"🚨 DO NOT DELAY - This is a medical emergency",
	"Call 911/108 NOW",
	"Go to nearest emergency room immediately",
	"If unable to transport, call ambulance",
}

type template struct {
	conditions      []models.Condition
	recommendations []string
	redFlags        []string
	homeCare        []string
	seeDoctorIf     []string
}

func formatTemp(tempF float64) string {
	return strconv.FormatFloat(tempF, 'f', 1, 64)
}

// EmergencyResult is the terminal result for any detected emergency.
func EmergencyResult(tempF *float64) *models.AnalysisResult {
	message := EmergencyMessage
	if tempF != nil && *tempF >= triage.CriticalFeverF {
		message += fmt.Sprintf(" (Temperature: %s°F)", formatTemp(*tempF))
	}
	return &models.AnalysisResult{
		IsEmergency:        true,
		Severity:           models.SeverityEmergency,
		TemperatureF:       tempF,
		PossibleConditions: []models.Condition{},
		Recommendations:    append([]string(nil), emergencyRecommendations...),
		RedFlags:           []string{},
		HomeCare:           []string{},
		SeeDoctorIf:        []string{},
		Message:            message,
		Action:             EmergencyAction,
		Disclaimer:         EmergencyDisclaimer,
		Source:             models.SourceEmergency,
	}
}

// FallbackResult builds the rule-based analysis for a non-emergency assessment.
func FallbackResult(a triage.Assessment) *models.AnalysisResult {
	tpl := genericTemplate()
	var category *models.Category
	if a.HasCategory {
		cat := a.Category
		category = &cat
		tpl = templateFor(cat, a.TemperatureF)
	}

	result := &models.AnalysisResult{
		Severity:            a.Severity,
		TemperatureF:        a.TemperatureF,
		PossibleConditions:  tpl.conditions,
		Recommendations:     tpl.recommendations,
		RedFlags:            tpl.redFlags,
		HomeCare:            tpl.homeCare,
		SeeDoctorIf:         tpl.seeDoctorIf,
		OTCMedicineCategory: category,
		Disclaimer:          Disclaimer,
		Source:              models.SourceRules,
	}
	if a.Fever != nil {
		result.TemperatureStatus = a.Fever.Status
	}
	return result
}

func templateFor(cat models.Category, tempF *float64) template {
	switch cat {
	case models.CategoryPainFever:
		return painFeverTemplate(tempF)
	case models.CategoryColdCough:
		return template{
			conditions: []models.Condition{{
				Name:        "Common Cold",
				Probability: models.ProbabilityHigh,
				Description: "Viral upper respiratory infection. Usually self-limiting in 7-10 days.",
			}},
			recommendations: []string{"Take Cetirizine 10mg once daily", "Gargle with warm salt water", "Use steam inhalation", "Stay hydrated with warm fluids"},
			redFlags:        []string{"Difficulty breathing", "Chest pain", "Coughing up blood", "Symptoms lasting >10 days"},
			homeCare:        []string{"Drink warm tea with honey", "Use humidifier", "Rest adequately", "Avoid cold beverages"},
			seeDoctorIf:     []string{"Breathing difficulty", "High fever develops", "Symptoms worsen after a week"},
		}
	case models.CategoryAcidity:
		return template{
			conditions: []models.Condition{{
				Name:        "Acid Reflux (GERD)",
				Probability: models.ProbabilityHigh,
				Description: "Stomach acid backing up into esophagus causing burning sensation.",
			}},
			recommendations: []string{"Take Omeprazole 20mg before breakfast", "Avoid spicy and oily foods", "Eat smaller meals", "Don't lie down right after eating"},
			redFlags:        []string{"Severe chest pain (could be heart-related)", "Difficulty swallowing", "Vomiting blood", "Black stools"},
			homeCare:        []string{"Drink cold milk", "Eat banana", "Avoid late-night meals", "Elevate head while sleeping"},
			seeDoctorIf:     []string{"Severe chest pain", "Symptoms persist despite medication", "Weight loss"},
		}
	case models.CategoryDigestive:
		return template{
			conditions: []models.Condition{{
				Name:        "Gastroenteritis",
				Probability: models.ProbabilityHigh,
				Description: "Stomach flu causing diarrhea and stomach upset.",
			}},
			recommendations: []string{"Take ORS (Oral Rehydration Solution)", "Take Loperamide 2mg if needed", "Eat bland foods (rice, banana)", "Avoid dairy and spicy foods"},
			redFlags:        []string{"Severe dehydration (dark urine, dizziness)", "Blood in stool", "High fever", "Severe abdominal pain"},
			homeCare:        []string{"Drink plenty of fluids", "BRAT diet", "Rest", "Maintain hygiene"},
			seeDoctorIf:     []string{"Symptoms last >2 days", "Severe dehydration", "Blood in vomit or stool"},
		}
	case models.CategorySkin:
		return template{
			conditions: []models.Condition{{
				Name:        "Allergic Dermatitis",
				Probability: models.ProbabilityMedium,
				Description: "Skin irritation or allergic reaction causing rash, redness or itching.",
			}},
			recommendations: []string{"Take Cetirizine 10mg once daily", "Apply Calamine Lotion to the affected area", "Avoid scratching", "Stop using any new soap, cream or detergent"},
			redFlags:        []string{"Swelling of face, lips or tongue", "Difficulty breathing", "Rash spreading rapidly", "Fever with rash"},
			homeCare:        []string{"Apply cool compress", "Wear loose cotton clothing", "Use mild fragrance-free soap", "Keep skin moisturized"},
			seeDoctorIf:     []string{"Rash lasts more than a week", "Blisters or signs of infection", "Symptoms worsen despite medication"},
		}
	default:
		return genericTemplate()
	}
}

func painFeverTemplate(tempF *float64) template {
	name, probability := "Viral Fever", models.ProbabilityMedium
	description := "Common in viral infections. Needs medical evaluation if high or persistent."
	if tempF != nil {
		if *tempF >= 102 {
			name, probability = "High Fever (Possible Infection)", models.ProbabilityHigh
		}
		description = fmt.Sprintf("Fever of %s°F with headache. %s", formatTemp(*tempF), description)
	}

	tpl := template{
		conditions: []models.Condition{{Name: name, Probability: probability, Description: description}},
		homeCare: []string{
			"Drink 8-10 glasses of water daily",
			"Rest in cool, comfortable environment",
			"Wear light clothing",
			"Take lukewarm bath if fever is high",
		},
		seeDoctorIf: []string{
			"Fever above 103°F",
			"Fever lasts more than 3 days",
			"Severe headache or body pain",
			"Difficulty breathing",
			"Persistent vomiting",
		},
	}

	if tempF != nil && *tempF >= triage.HighFeverF {
		tpl.recommendations = []string{
			"🚨 SEE A DOCTOR IMMEDIATELY - Fever is too high",
			"Take Paracetamol 500mg ONLY if doctor not available soon",
			"Cool body with wet towels",
			"Drink plenty of water",
			"Do NOT delay medical care",
		}
		tpl.redFlags = []string{
			fmt.Sprintf("Fever of %s°F requires urgent medical attention", formatTemp(*tempF)),
			"High risk of complications",
			"May need IV fluids or antibiotics",
		}
		return tpl
	}

	tpl.recommendations = []string{
		"Take Paracetamol 500mg for fever and pain relief",
		"Rest and stay hydrated",
		"Use cold compress on forehead",
		"Monitor temperature every 4 hours",
		"See doctor if fever lasts >3 days or worsens",
	}
	tpl.redFlags = []string{
		"Fever above 103°F",
		"Fever lasting more than 3 days",
		"Severe headache with stiff neck",
		"Confusion or extreme drowsiness",
	}
	return tpl
}

func genericTemplate() template {
	return template{
		conditions: []models.Condition{{
			Name:        "Requires Medical Evaluation",
			Probability: models.ProbabilityLow,
			Description: "Symptoms require professional assessment.",
		}},
		recommendations: []string{"Consult a healthcare provider", "Monitor symptoms", "Keep track of any changes", "Stay hydrated and rest"},
		redFlags:        []string{"Symptoms worsen", "New symptoms develop", "Severe pain"},
		homeCare:        []string{"Rest adequately", "Stay hydrated", "Monitor condition"},
		seeDoctorIf:     []string{"Symptoms persist", "You're concerned", "Symptoms worsen"},
	}
}
