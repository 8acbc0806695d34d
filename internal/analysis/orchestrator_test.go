// internal/analysis/orchestrator_test.go
package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	apperrors "medassist-workers/internal/common/errors"
	"medassist-workers/internal/common/logger"
	"medassist-workers/internal/genai"
	"medassist-workers/internal/models"
	"medassist-workers/internal/triage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock generator
// ==========================

type mockGenerator struct {
	GenerateFunc func(ctx context.Context, prompt string) (string, error)
	prompts      []string
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.GenerateFunc(ctx, prompt)
}

func returning(text string, err error) *mockGenerator {
	return &mockGenerator{GenerateFunc: func(context.Context, string) (string, error) { return text, err }}
}

const validGenerated = `{
  "emergency": false,
  "severity": "mild",
  "possible_conditions": [{"name": "Tension Headache", "probability": "medium", "description": "Stress related"}],
  "recommendations": ["Rest", "Hydrate"],
  "red_flags": ["Vision changes"],
  "home_care": ["Sleep"],
  "see_doctor_if": ["Lasts a week"],
  "otc_medicine_category": "pain_fever"
}`

func newTestOrchestrator(t *testing.T, gen genai.Generator) *Orchestrator {
	var opts []Option
	if gen != nil {
		opts = append(opts, WithGenerator(gen, time.Second))
	}
	return NewOrchestrator(triage.NewKeywordClassifier(), logger.NewTestLogger(t), opts...)
}

func intPtr(v int) *int { return &v }

// ==========================
// Validation
// ==========================

func TestAnalyze_InputValidation(t *testing.T) {
	o := newTestOrchestrator(t, nil)

	tests := []struct {
		name   string
		report models.SymptomReport
		code   apperrors.ErrorCode
	}{
		{"empty text", models.SymptomReport{Text: ""}, apperrors.ErrCodeInputEmpty},
		{"whitespace text", models.SymptomReport{Text: "   \n\t"}, apperrors.ErrCodeInputEmpty},
		{"zero age", models.SymptomReport{Text: "cough", Age: intPtr(0)}, apperrors.ErrCodeValidation},
		{"age too high", models.SymptomReport{Text: "cough", Age: intPtr(150)}, apperrors.ErrCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := o.Analyze(context.Background(), tt.report)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, apperrors.HasCode(err, tt.code))
		})
	}
}

// ==========================
// Emergency path
// ==========================

func TestAnalyze_Emergency(t *testing.T) {
	gen := returning(validGenerated, nil)
	o := newTestOrchestrator(t, gen)

	tests := []struct {
		name        string
		text        string
		wantMessage string
	}{
		{"chest pain", "crushing chest pain and sweating", EmergencyMessage},
		{"critical fever", "temperature is 105.5", EmergencyMessage + " (Temperature: 105.5°F)"},
		{"celsius critical fever", "41 degrees and shivering", EmergencyMessage + " (Temperature: 105.8°F)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := o.Analyze(context.Background(), models.SymptomReport{Text: tt.text})
			require.NoError(t, err)

			assert.True(t, result.IsEmergency)
			assert.Equal(t, models.SeverityEmergency, result.Severity)
			assert.Equal(t, tt.wantMessage, result.Message)
			assert.Equal(t, EmergencyAction, result.Action)
			assert.Contains(t, result.Recommendations, "Call 911/108 NOW")
			assert.Empty(t, result.PossibleConditions)
			assert.Nil(t, result.OTCMedicineCategory)
			assert.Equal(t, EmergencyDisclaimer, result.Disclaimer)
			assert.Equal(t, models.SourceEmergency, result.Source)
		})
	}

	assert.Empty(t, gen.prompts, "emergencies never reach the generator")
}

func TestAnalyze_EmergencyForAllCriticalTemperatures(t *testing.T) {
	o := newTestOrchestrator(t, nil)
	for v := 105.0; v <= 110; v += 0.25 {
		result, err := o.Analyze(context.Background(), models.SymptomReport{Text: fmt.Sprintf("fever of %.2f", v)})
		require.NoError(t, err)
		assert.Equal(t, models.SeverityEmergency, result.Severity, v)
	}
}

// ==========================
// Fallback path
// ==========================

func TestAnalyze_FallbackTemplates(t *testing.T) {
	o := newTestOrchestrator(t, nil)

	tests := []struct {
		name      string
		text      string
		category  *models.Category
		condition string
		severity  models.Severity
	}{
		{"pain_fever", "headache and body ache", catPtr(models.CategoryPainFever), "Viral Fever", models.SeverityMild},
		{"cold_cough", "I have a runny nose and sore throat", catPtr(models.CategoryColdCough), "Common Cold", models.SeverityMild},
		{"acidity", "burning chest and acid reflux", catPtr(models.CategoryAcidity), "Acid Reflux (GERD)", models.SeverityMild},
		{"digestive", "bad diarrhea and nausea", catPtr(models.CategoryDigestive), "Gastroenteritis", models.SeveritySevere},
		{"skin", "itching and hives on arms", catPtr(models.CategorySkin), "Allergic Dermatitis", models.SeverityMild},
		{"generic", "I feel a bit off", nil, "Requires Medical Evaluation", models.SeverityMild},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := o.Analyze(context.Background(), models.SymptomReport{Text: tt.text})
			require.NoError(t, err)

			assert.False(t, result.IsEmergency)
			assert.Equal(t, tt.severity, result.Severity)
			assert.Equal(t, tt.category, result.OTCMedicineCategory)
			require.Len(t, result.PossibleConditions, 1)
			assert.Equal(t, tt.condition, result.PossibleConditions[0].Name)
			assert.NotEmpty(t, result.Recommendations)
			assert.NotEmpty(t, result.RedFlags)
			assert.NotEmpty(t, result.HomeCare)
			assert.NotEmpty(t, result.SeeDoctorIf)
			assert.Equal(t, Disclaimer, result.Disclaimer)
			assert.Equal(t, models.SourceRules, result.Source)
		})
	}
}

func TestAnalyze_FeverWording(t *testing.T) {
	o := newTestOrchestrator(t, nil)

	t.Run("celsius converted and moderate", func(t *testing.T) {
		result, err := o.Analyze(context.Background(), models.SymptomReport{Text: "temperature is 39°F"})
		require.NoError(t, err)
		require.NotNil(t, result.TemperatureF)
		assert.InDelta(t, 102.2, *result.TemperatureF, 0.01)
		assert.Equal(t, models.SeverityModerate, result.Severity)
		assert.Equal(t, "Moderate fever - Monitor closely", result.TemperatureStatus)
		assert.Equal(t, "High Fever (Possible Infection)", result.PossibleConditions[0].Name)
		assert.Equal(t, models.ProbabilityHigh, result.PossibleConditions[0].Probability)
		assert.Equal(t, "Take Paracetamol 500mg for fever and pain relief", result.Recommendations[0])
	})

	t.Run("urgent wording at 103", func(t *testing.T) {
		result, err := o.Analyze(context.Background(), models.SymptomReport{Text: "fever of 103.4 with chills"})
		require.NoError(t, err)
		assert.Equal(t, models.SeveritySevere, result.Severity)
		assert.Equal(t, "🚨 SEE A DOCTOR IMMEDIATELY - Fever is too high", result.Recommendations[0])
		assert.Equal(t, "Fever of 103.4°F requires urgent medical attention", result.RedFlags[0])
		assert.True(t, strings.HasPrefix(result.PossibleConditions[0].Description, "Fever of 103.4°F with headache."))
	})

	t.Run("low fever is viral", func(t *testing.T) {
		result, err := o.Analyze(context.Background(), models.SymptomReport{Text: "fever of 100.5"})
		require.NoError(t, err)
		assert.Equal(t, "Viral Fever", result.PossibleConditions[0].Name)
		assert.Equal(t, models.ProbabilityMedium, result.PossibleConditions[0].Probability)
		assert.Equal(t, "Mild fever", result.TemperatureStatus)
	})
}

// ==========================
// Generative path
// ==========================

func TestAnalyze_GenerativeSuccess(t *testing.T) {
	gen := returning("```json\n"+validGenerated+"\n```", nil)
	o := newTestOrchestrator(t, gen)

	age := 34
	result, err := o.Analyze(context.Background(), models.SymptomReport{Text: "dull headache", Age: &age, Gender: "female"})
	require.NoError(t, err)

	assert.Equal(t, models.SourceGenAI, result.Source)
	assert.Equal(t, models.SeverityMild, result.Severity)
	assert.Equal(t, "Tension Headache", result.PossibleConditions[0].Name)
	assert.Equal(t, catPtr(models.CategoryPainFever), result.OTCMedicineCategory)
	assert.Equal(t, Disclaimer, result.Disclaimer)
	assert.Nil(t, result.TemperatureF)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Patient age: 34 years. ")
	assert.Contains(t, gen.prompts[0], "Gender: female. ")
	assert.Contains(t, gen.prompts[0], "Symptoms: dull headache")
	assert.NotContains(t, gen.prompts[0], "IMPORTANT: Patient reports temperature")
}

func TestAnalyze_TemperatureOverridesMildModel(t *testing.T) {
	gen := returning(validGenerated, nil)
	o := newTestOrchestrator(t, gen)

	result, err := o.Analyze(context.Background(), models.SymptomReport{Text: "fever of 104 and tired"})
	require.NoError(t, err)

	assert.Equal(t, models.SourceGenAI, result.Source)
	assert.Equal(t, models.SeveritySevere, result.Severity)
	require.NotNil(t, result.TemperatureF)
	assert.InDelta(t, 104, *result.TemperatureF, 0.01)
	assert.Equal(t, "⚠️ HIGH FEVER - See doctor immediately", result.TemperatureStatus)
	assert.Contains(t, gen.prompts[0], "IMPORTANT: Patient reports temperature of 104.0°F. ")
}

func TestAnalyze_ModerateFeverKeepsMildModel(t *testing.T) {
	o := newTestOrchestrator(t, returning(validGenerated, nil))

	result, err := o.Analyze(context.Background(), models.SymptomReport{Text: "fever of 101.5"})
	require.NoError(t, err)
	assert.Equal(t, models.SeverityMild, result.Severity)
	assert.Equal(t, "Moderate fever - Monitor closely", result.TemperatureStatus)
}

func TestAnalyze_GenerativeClaimsEmergency(t *testing.T) {
	o := newTestOrchestrator(t, returning(strings.Replace(validGenerated, `"emergency": false`, `"emergency": true`, 1), nil))

	result, err := o.Analyze(context.Background(), models.SymptomReport{Text: "dizzy and weak"})
	require.NoError(t, err)
	assert.True(t, result.IsEmergency)
	assert.Equal(t, models.SeverityEmergency, result.Severity)
	assert.Nil(t, result.OTCMedicineCategory)
}

func TestAnalyze_GenerativeFailuresFallBack(t *testing.T) {
	tests := []struct {
		name string
		gen  *mockGenerator
	}{
		{"transport error", returning("", fmt.Errorf("%w: connection refused", genai.ErrLLMSynthesisFailed))},
		{"timeout", returning("", genai.ErrLLMTimeout)},
		{"plain prose", returning("You probably have a cold.", nil)},
		{"broken json", returning(`{"severity": "mild", `, nil)},
		{"bad severity", returning(strings.Replace(validGenerated, `"severity": "mild"`, `"severity": "catastrophic"`, 1), nil)},
		{"missing recommendations", returning(`{"severity": "mild", "possible_conditions": []}`, nil)},
		{"unexpected error", returning("", errors.New("boom"))},
		{
			"deadline respected",
			&mockGenerator{GenerateFunc: func(ctx context.Context, _ string) (string, error) {
				<-ctx.Done()
				return "", ctx.Err()
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOrchestrator(triage.NewKeywordClassifier(), logger.NewTestLogger(t), WithGenerator(tt.gen, 50*time.Millisecond))

			result, err := o.Analyze(context.Background(), models.SymptomReport{Text: "I have a runny nose and sore throat"})
			require.NoError(t, err)
			assert.Equal(t, models.SourceRules, result.Source)
			assert.Equal(t, "Common Cold", result.PossibleConditions[0].Name)
			assert.Equal(t, Disclaimer, result.Disclaimer)
		})
	}
}

// ==========================
// Emergency check
// ==========================

func TestCheckEmergency(t *testing.T) {
	o := newTestOrchestrator(t, nil)
	assert.True(t, o.CheckEmergency(context.Background(), "chest pain"))
	assert.False(t, o.CheckEmergency(context.Background(), "sneezing"))
	assert.False(t, o.CheckEmergency(context.Background(), ""))
}

func catPtr(c models.Category) *models.Category { return &c }

func TestFallbackError_Codes(t *testing.T) {
	cause := errors.New("boom")
	assert.Equal(t, apperrors.ErrCodeLLMTimeout, fallbackError("timeout", cause).Code)
	assert.Equal(t, apperrors.ErrCodeLLMSynthesisFailed, fallbackError("parse", cause).Code)
	assert.Equal(t, apperrors.ErrCodeExternalServiceFailure, fallbackError("error", cause).Code)
}
