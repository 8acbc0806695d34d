// internal/pharmacy/tracking.go
package pharmacy

import "medassist-workers/internal/models"

var timelineSteps = []models.TrackingStep{
	{Status: models.OrderConfirmed, Label: "Order Confirmed", Time: "10:30 AM"},
	{Status: models.OrderPreparing, Label: "Pharmacy Preparing", Time: "10:45 AM"},
	{Status: models.OrderOutForDelivery, Label: "Out for Delivery", Time: "11:15 AM"},
	{Status: models.OrderDelivered, Label: "Delivered", Time: "12:00 PM"},
}

// BuildTimeline marks every stage up to and including current as completed.
func BuildTimeline(current models.OrderStatus) []models.TrackingStep {
	rank := current.Rank()
	out := make([]models.TrackingStep, len(timelineSteps))
	for i, step := range timelineSteps {
		step.Completed = i <= rank
		out[i] = step
	}
	return out
}
