// internal/pharmacy/catalog.go
package pharmacy

import "medassist-workers/internal/models"

// defaultPharmacies is the fixed marketplace. It is never mutated.
var defaultPharmacies = []models.Pharmacy{
	{ID: "ph_001", Name: "Apollo Pharmacy", Location: "Near You", Distance: "0.5 km", Rating: 4.5, DeliveryTime: "15-20 min", DeliveryFee: 0},
	{ID: "ph_002", Name: "MedPlus", Location: "City Center", Distance: "1.2 km", Rating: 4.3, DeliveryTime: "25-30 min", DeliveryFee: 20},
	{ID: "ph_003", Name: "1mg", Location: "Online", Distance: "N/A", Rating: 4.7, DeliveryTime: "60-90 min", DeliveryFee: 0},
	{ID: "ph_004", Name: "PharmEasy", Location: "Online", Distance: "N/A", Rating: 4.6, DeliveryTime: "2-4 hours", DeliveryFee: 0},
}
