// internal/triage/category.go
package triage

import (
	"strings"

	"medassist-workers/internal/models"
)

var categoryKeywords = map[models.Category][]string{
	models.CategoryPainFever: {"headache", "head pain", "fever", "temperature", "body pain", "body ache", "muscle pain", "joint pain", "back pain", "migraine"},
	models.CategoryColdCough: {"cold", "cough", "sneeze", "runny nose", "stuffy nose", "sore throat", "throat pain", "congestion", "phlegm"},
	models.CategoryAcidity:   {"acidity", "heartburn", "acid reflux", "burning chest", "sour taste", "indigestion", "bloating", "gas"},
	models.CategoryDigestive: {"diarrhea", "loose motion", "stomach pain", "stomach ache", "nausea", "vomiting", "constipation", "cramping"},
	models.CategorySkin:      {"rash", "itching", "skin rash", "allergy", "hives", "red spots", "swelling", "skin irritation"},
}

// DetectCategory scores each category by keyword occurrences. A known
// temperature forces pain_fever. Ties go to the earlier category in
// models.Categories; no match at all returns false.
func DetectCategory(text string, hasTemperature bool) (models.Category, bool) {
	if hasTemperature {
		return models.CategoryPainFever, true
	}

	lower := strings.ToLower(text)
	best, bestScore := models.Category(""), 0
	for _, cat := range models.Categories {
		score := 0
		for _, kw := range categoryKeywords[cat] {
			score += strings.Count(lower, kw)
		}
		if score > bestScore {
			best, bestScore = cat, score
		}
	}
	return best, bestScore > 0
}
