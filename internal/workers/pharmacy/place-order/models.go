// internal/workers/pharmacy/place-order/models.go
package placeorder

import (
	"medassist-workers/internal/models"
	"medassist-workers/internal/pharmacy"
)

type Input struct {
	Medicine   string `json:"medicine"`
	PharmacyID string `json:"pharmacyId"`
	Quantity   int    `json:"quantity"`
	// UnitPrice is the quoted final price; 0 lets the simulator quote one.
	UnitPrice int `json:"unitPrice,omitempty"`
}

func (i *Input) request() pharmacy.OrderRequest {
	return pharmacy.OrderRequest{
		Medicine:   i.Medicine,
		PharmacyID: i.PharmacyID,
		Quantity:   i.Quantity,
		UnitPrice:  i.UnitPrice,
	}
}

type Output struct {
	Order   *models.Order `json:"order"`
	OrderID string        `json:"orderId"`
	Total   int           `json:"total"`
}
