// internal/models/pharmacy.go
package models

type Pharmacy struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Location     string  `json:"location"`
	Distance     string  `json:"distance"`
	Rating       float64 `json:"rating"`
	DeliveryTime string  `json:"deliveryTime"`
	DeliveryFee  int     `json:"deliveryFee"`
}

// Quote is one pharmacy's offer for a searched medicine.
type Quote struct {
	Pharmacy        Pharmacy `json:"pharmacy"`
	Medicine        string   `json:"medicine"`
	Price           int      `json:"price"`
	InStock         bool     `json:"inStock"`
	AvailableQty    int      `json:"availableQty"`
	DiscountPercent int      `json:"discountPercent"`
	FinalPrice      int      `json:"finalPrice"`
}

type OrderStatus string

const (
	OrderConfirmed      OrderStatus = "confirmed"
	OrderPreparing      OrderStatus = "preparing"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
)

// OrderStatuses lists the stages in delivery order.
var OrderStatuses = []OrderStatus{OrderConfirmed, OrderPreparing, OrderOutForDelivery, OrderDelivered}

// Rank is the stage index, or -1 for an unknown status.
func (s OrderStatus) Rank() int {
	for i, st := range OrderStatuses {
		if st == s {
			return i
		}
	}
	return -1
}

type Order struct {
	OrderID           string      `json:"orderId"`
	Medicine          string      `json:"medicine"`
	Quantity          int         `json:"quantity"`
	PharmacyID        string      `json:"pharmacyId"`
	PharmacyName      string      `json:"pharmacyName"`
	UnitPrice         int         `json:"unitPrice"`
	DeliveryFee       int         `json:"deliveryFee"`
	Total             int         `json:"total"`
	EstimatedDelivery string      `json:"estimatedDelivery"`
	Status            OrderStatus `json:"status"`
	RecordID          string      `json:"recordId,omitempty"`
	OrderDate         string      `json:"orderDate,omitempty"`
	UpdatedAt         string      `json:"updatedAt,omitempty"`
}

type TrackingStep struct {
	Status    OrderStatus `json:"status"`
	Label     string      `json:"label"`
	Time      string      `json:"time"`
	Completed bool        `json:"completed"`
}

type TrackingStatus struct {
	OrderID     string         `json:"orderId"`
	Status      OrderStatus    `json:"status"`
	Timeline    []TrackingStep `json:"timeline"`
	LastUpdated string         `json:"lastUpdated"`
}

type PrescriptionCheck struct {
	Medicine string `json:"medicine"`
	Required bool   `json:"required"`
	Category string `json:"category"`
	Message  string `json:"message"`
}
