// internal/workers/pharmacy/check-prescription/models.go
package checkprescription

type Input struct {
	Name string `json:"name"`
}

type Output struct {
	Medicine             string `json:"medicine"`
	PrescriptionRequired bool   `json:"prescriptionRequired"`
	Category             string `json:"category"`
	Message              string `json:"message"`
}
