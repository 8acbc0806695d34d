// internal/workers/pharmacy/track-order/models.go
package trackorder

import "medassist-workers/internal/models"

type Input struct {
	OrderID string `json:"orderId"`
}

type Output struct {
	Tracking  *models.TrackingStatus `json:"tracking"`
	Status    models.OrderStatus     `json:"orderStatus"`
	Delivered bool                   `json:"delivered"`
}
