// internal/workers/triage/get-medicine-recommendations/models.go
package getmedicinerecommendations

import "medassist-workers/internal/models"

// Input takes the category straight from an analysis result, where it may be null.
type Input struct {
	Category *string `json:"category"`
}

type Output struct {
	Category  string            `json:"category"`
	Medicines []models.Medicine `json:"medicines"`
}
