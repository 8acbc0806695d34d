// internal/workers/pharmacy/search-medicine/models.go
package searchmedicine

import "medassist-workers/internal/models"

type Input struct {
	Name           string `json:"name"`
	PrescriptionID string `json:"prescriptionId,omitempty"`
}

type Output struct {
	Medicine string         `json:"medicine"`
	Quotes   []models.Quote `json:"quotes"`
	// Cheapest is the first quote, since quotes are sorted by price.
	Cheapest *models.Quote `json:"cheapest,omitempty"`
}
