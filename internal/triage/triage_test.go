// internal/triage/triage_test.go
package triage

import (
	"context"
	"fmt"
	"testing"

	"medassist-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Temperature extraction
// ==========================

func TestExtractTemperature(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  float64
		found bool
	}{
		{"fahrenheit with degree sign", "I have 102°F and chills", 102, true},
		{"fahrenheit without sign", "fever 101.5 F since morning", 101.5, true},
		{"celsius read from F pattern", "temperature is 39°F", 102.2, true},
		{"bare degree mention", "it's 38.5 degrees", 101.3, true},
		{"temperature is", "my temperature is 100", 100, true},
		{"temperature without is", "temperature 99.8 today", 99.8, true},
		{"fever of", "fever of 103", 103, true},
		{"above", "temp above 104", 104, true},
		{"more than", "more than 40", 104, true},
		{"boundary 35 is not celsius", "temperature is 35", 35, true},
		{"boundary 50 is not celsius", "temperature is 50", 50, true},
		{"no temperature", "runny nose and sore throat", 0, false},
		{"first pattern wins", "fever of 100 and now 104f", 104, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractTemperature(tt.text)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.InDelta(t, tt.want, got, 0.01)
			}
		})
	}
}

func TestExtractTemperature_RoundTrip(t *testing.T) {
	for _, v := range []float64{50, 68.4, 98.6, 99.5, 101, 102.2, 103.75, 105, 107.1} {
		t.Run(fmt.Sprintf("%.2f", v), func(t *testing.T) {
			got, ok := ExtractTemperature(fmt.Sprintf("temperature is %.2f°F", v))
			require.True(t, ok)
			again, ok := ExtractTemperature(fmt.Sprintf("temperature is %.2f°F", got))
			require.True(t, ok)
			assert.InDelta(t, got, again, 0.01)
			assert.InDelta(t, v, got, 0.01)
		})
	}
}

// ==========================
// Severity
// ==========================

func TestAssessFeverSeverity(t *testing.T) {
	tests := []struct {
		temp      float64
		severity  models.Severity
		emergency bool
		status    string
	}{
		{106, models.SeverityEmergency, true, "🚨 CRITICAL FEVER - IMMEDIATE MEDICAL ATTENTION REQUIRED!"},
		{105, models.SeverityEmergency, true, "🚨 CRITICAL FEVER - IMMEDIATE MEDICAL ATTENTION REQUIRED!"},
		{104.9, models.SeveritySevere, false, "⚠️ HIGH FEVER - See doctor immediately"},
		{103, models.SeveritySevere, false, "⚠️ HIGH FEVER - See doctor immediately"},
		{102.2, models.SeverityModerate, false, "Moderate fever - Monitor closely"},
		{101, models.SeverityModerate, false, "Moderate fever - Monitor closely"},
		{99.5, models.SeverityMild, false, "Mild fever"},
		{98.6, models.SeverityMild, false, "Low-grade or no fever"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%.1f", tt.temp), func(t *testing.T) {
			got := AssessFeverSeverity(tt.temp)
			assert.Equal(t, tt.severity, got.Severity)
			assert.Equal(t, tt.emergency, got.Emergency)
			assert.Equal(t, tt.status, got.Status)
		})
	}
}

func TestDetectSeverityFromText(t *testing.T) {
	tests := []struct {
		text string
		want models.Severity
	}{
		{"Excruciating toothache", models.SeveritySevere},
		{"pain is 9/10", models.SeveritySevere},
		{"intense cramps", models.SeveritySevere},
		{"feeling terrible", models.SeveritySevere},
		{"pain 8/10", models.SeveritySevere},
		{"moderate cough", models.SeverityModerate},
		{"painful joints", models.SeverityModerate},
		{"about 5/10", models.SeverityModerate},
		{"slight sniffles", models.SeverityMild},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectSeverityFromText(tt.text))
		})
	}
}

// ==========================
// Category detection
// ==========================

func TestDetectCategory(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		hasTemp bool
		want    models.Category
		found   bool
	}{
		{"cold", "I have a runny nose and sore throat", false, models.CategoryColdCough, true},
		{"acidity", "burning chest and acid reflux", false, models.CategoryAcidity, true},
		{"digestive", "nausea and loose motion", false, models.CategoryDigestive, true},
		{"skin", "itching rash on my arm", false, models.CategorySkin, true},
		{"pain", "migraine and back pain", false, models.CategoryPainFever, true},
		{"temperature forces pain_fever", "itchy skin rash with hives", true, models.CategoryPainFever, true},
		{"occurrences counted", "cough cough cough with a headache", false, models.CategoryColdCough, true},
		{"tie goes to enum order", "headache and cough", false, models.CategoryPainFever, true},
		{"no match", "I feel a bit off today", false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DetectCategory(tt.text, tt.hasTemp)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ==========================
// Emergency detection
// ==========================

func TestCheckEmergency(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"chest pain after running", true},
		{"mild cold but also CHEST PAIN", true},
		{"I can't breathe properly", true},
		{"temperature is 105", true},
		{"temperature is 41°C", true}, // 105.8°F
		{"fever of 106", true},
		{"severe cramps and pain", true},
		{"severe bleeding from a cut", true},
		{"headache is unbearable", true},
		{"pain is 10/10", true},
		{"the worst cough ever", true},
		{"accidental overdose of pills", true},
		{"severe itching", false},
		{"fever of 104", false},
		{"runny nose", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckEmergency(tt.text))
		})
	}
}

func TestCheckEmergency_AllTemperaturesAbove105(t *testing.T) {
	for v := 105.0; v <= 115; v += 0.5 {
		assert.True(t, CheckEmergency(fmt.Sprintf("my temperature is %.1f and I feel fine", v)), v)
	}
}

// ==========================
// Classifier
// ==========================

func TestKeywordClassifier_Classify(t *testing.T) {
	c := NewKeywordClassifier()
	ctx := context.Background()

	t.Run("emergency skips category", func(t *testing.T) {
		a := c.Classify(ctx, "chest pain and a cough")
		assert.True(t, a.Emergency)
		assert.Equal(t, models.SeverityEmergency, a.Severity)
		assert.False(t, a.HasCategory)
	})

	t.Run("celsius fever combined with text", func(t *testing.T) {
		a := c.Classify(ctx, "temperature is 39°F")
		require.NotNil(t, a.TemperatureF)
		assert.InDelta(t, 102.2, *a.TemperatureF, 0.01)
		assert.Equal(t, models.SeverityModerate, a.Severity)
		assert.Equal(t, models.CategoryPainFever, a.Category)
		assert.Equal(t, "Moderate fever - Monitor closely", a.Fever.Status)
	})

	t.Run("text dominates low fever", func(t *testing.T) {
		a := c.Classify(ctx, "intense body ache, fever of 100")
		assert.Equal(t, models.SeveritySevere, a.Severity)
	})

	t.Run("no temperature", func(t *testing.T) {
		a := c.Classify(ctx, "sneeze and congestion")
		assert.Nil(t, a.TemperatureF)
		assert.Nil(t, a.Fever)
		assert.Equal(t, models.SeverityMild, a.Severity)
		assert.Equal(t, models.CategoryColdCough, a.Category)
	})
}
