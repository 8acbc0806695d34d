// internal/pharmacy/prescription.go
package pharmacy

import (
	"strings"

	"medassist-workers/internal/models"
)

var prescriptionKeywords = []string{"antibiotic", "azithromycin", "amoxicillin", "steroid", "prednis"}

// CheckPrescriptionRequired flags prescription-only drug classes by name.
func CheckPrescriptionRequired(medicine string) models.PrescriptionCheck {
	lower := strings.ToLower(medicine)
	required := false
	for _, kw := range prescriptionKeywords {
		if strings.Contains(lower, kw) {
			required = true
			break
		}
	}

	if required {
		return models.PrescriptionCheck{
			Medicine: medicine,
			Required: true,
			Category: "Prescription Medicine",
			Message:  "Upload prescription to proceed",
		}
	}
	return models.PrescriptionCheck{
		Medicine: medicine,
		Required: false,
		Category: "Over-the-Counter (OTC)",
		Message:  "Can be ordered without prescription",
	}
}
