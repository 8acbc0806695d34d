// internal/models/medicine.go
package models

type Medicine struct {
	Name        string   `json:"name"`
	GenericName string   `json:"genericName"`
	Brands      []string `json:"brands"`
	Dosage      string   `json:"dosage"`
	MaxDaily    string   `json:"maxDaily"`
	Use         string   `json:"use"`
	SideEffects []string `json:"sideEffects"`
	Warnings    []string `json:"warnings"`
	PriceRange  string   `json:"priceRange"`
	Category    Category `json:"category"`
}
