// internal/pharmacy/simulator.go
package pharmacy

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	apperrors "medassist-workers/internal/common/errors"
	"medassist-workers/internal/common/logger"
	"medassist-workers/internal/common/metrics"
	"medassist-workers/internal/models"
)

const (
	minBasePrice   = 50
	maxBasePrice   = 500
	minQuantity    = 1
	maxQuantity    = 10
	deliveryWindow = 2 * time.Hour
	orderIDDraws   = 20
	clockLayout    = "03:04 PM"
)

var discountChoices = []int{0, 5, 10, 15}

// RandFactory returns a new, unshared source for one call.
type RandFactory func() *rand.Rand

type Clock func() time.Time

// Simulator is the mock pharmacy marketplace. It keeps no mutable state
// besides the optional seed counter, so it is safe for concurrent use.
type Simulator struct {
	pharmacies []models.Pharmacy
	byID       map[string]models.Pharmacy
	newRand    RandFactory
	now        Clock
	logger     logger.Logger
}

type Option func(*Simulator)

func WithRandFactory(f RandFactory) Option {
	return func(s *Simulator) { s.newRand = f }
}

// WithSeed makes successive calls reproducible: call n draws from PCG(seed, n).
func WithSeed(seed uint64) Option {
	var calls atomic.Uint64
	return WithRandFactory(func() *rand.Rand {
		return rand.New(rand.NewPCG(seed, calls.Add(1)))
	})
}

func WithClock(c Clock) Option {
	return func(s *Simulator) { s.now = c }
}

func NewSimulator(log logger.Logger, opts ...Option) *Simulator {
	s := &Simulator{
		pharmacies: defaultPharmacies,
		byID:       make(map[string]models.Pharmacy, len(defaultPharmacies)),
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
		now:    time.Now,
		logger: log.With(map[string]interface{}{"component": "pharmacy"}),
	}
	for _, p := range s.pharmacies {
		s.byID[p.ID] = p
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Pharmacies returns a copy of the catalog.
func (s *Simulator) Pharmacies() []models.Pharmacy {
	return append([]models.Pharmacy(nil), s.pharmacies...)
}

func (s *Simulator) Pharmacy(id string) (models.Pharmacy, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// SearchMedicine quotes every pharmacy from one fresh base price, cheapest first.
func (s *Simulator) SearchMedicine(name string) ([]models.Quote, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "medicine name is required")
	}

	r := s.newRand()
	base := basePrice(r)

	quotes := make([]models.Quote, 0, len(s.pharmacies))
	for _, p := range s.pharmacies {
		quotes = append(quotes, quote(r, p, name, base))
	}
	sort.SliceStable(quotes, func(i, j int) bool { return quotes[i].Price < quotes[j].Price })

	metrics.PharmacySearches.Inc()
	return quotes, nil
}

// SearchWithPrescription refuses prescription-only medicines unless a
// prescription id accompanies the search.
func (s *Simulator) SearchWithPrescription(name, prescriptionID string) ([]models.Quote, error) {
	if check := CheckPrescriptionRequired(name); check.Required && strings.TrimSpace(prescriptionID) == "" {
		return nil, apperrors.NewPrescriptionRequiredError(name)
	}
	return s.SearchMedicine(name)
}

// OrderRequest places an order. A zero UnitPrice asks the simulator to quote one.
type OrderRequest struct {
	Medicine   string `json:"medicine"`
	PharmacyID string `json:"pharmacyId"`
	Quantity   int    `json:"quantity"`
	UnitPrice  int    `json:"unitPrice,omitempty"`
}

// ValidateOrder checks the request shape without touching the catalog.
func ValidateOrder(req OrderRequest) error {
	if strings.TrimSpace(req.Medicine) == "" {
		return apperrors.NewValidationError("medicine", "medicine name is required")
	}
	if req.Quantity < minQuantity || req.Quantity > maxQuantity {
		return apperrors.NewValidationError("quantity", fmt.Sprintf("quantity must be between %d and %d", minQuantity, maxQuantity))
	}
	if req.UnitPrice < 0 {
		return apperrors.NewValidationError("unitPrice", "unit price cannot be negative")
	}
	return nil
}

func (s *Simulator) PlaceOrder(req OrderRequest) (*models.Order, error) {
	return s.PlaceOrderExcluding(req, nil)
}

// PlaceOrderExcluding redraws the ORD id while taken reports it in use. A nil
// taken accepts the first draw.
func (s *Simulator) PlaceOrderExcluding(req OrderRequest, taken func(orderID string) bool) (*models.Order, error) {
	if err := ValidateOrder(req); err != nil {
		return nil, err
	}
	p, ok := s.byID[req.PharmacyID]
	if !ok {
		return nil, apperrors.NewPharmacyNotFoundError(req.PharmacyID)
	}

	r := s.newRand()
	unit := req.UnitPrice
	if unit == 0 {
		unit = quote(r, p, req.Medicine, basePrice(r)).FinalPrice
	}

	orderID, err := drawOrderID(r, taken)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		OrderID:           orderID,
		Medicine:          strings.TrimSpace(req.Medicine),
		Quantity:          req.Quantity,
		PharmacyID:        p.ID,
		PharmacyName:      p.Name,
		UnitPrice:         unit,
		DeliveryFee:       p.DeliveryFee,
		Total:             unit*req.Quantity + p.DeliveryFee,
		EstimatedDelivery: s.now().Add(deliveryWindow).Format(clockLayout),
		Status:            models.OrderConfirmed,
	}

	s.logger.Info("order drafted", map[string]interface{}{
		"orderId":  order.OrderID,
		"pharmacy": p.ID,
		"quantity": order.Quantity,
		"total":    order.Total,
	})
	return order, nil
}

func drawOrderID(r *rand.Rand, taken func(string) bool) (string, error) {
	for i := 0; i < orderIDDraws; i++ {
		id := fmt.Sprintf("ORD%d", 10000+r.IntN(90000))
		if taken == nil || !taken(id) {
			return id, nil
		}
	}
	return "", apperrors.NewInternalError(fmt.Errorf("no free order id after %d draws", orderIDDraws))
}

// TrackOrder picks a status uniformly at random.
func (s *Simulator) TrackOrder(orderID string) (*models.TrackingStatus, error) {
	return s.TrackOrderFrom(orderID, models.OrderConfirmed)
}

// TrackOrderFrom never reports a status earlier than floor.
func (s *Simulator) TrackOrderFrom(orderID string, floor models.OrderStatus) (*models.TrackingStatus, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, apperrors.NewValidationError("orderId", "order id is required")
	}

	status := models.OrderStatuses[s.newRand().IntN(len(models.OrderStatuses))]
	if floor.Rank() > status.Rank() {
		status = floor
	}

	return &models.TrackingStatus{
		OrderID:     orderID,
		Status:      status,
		Timeline:    BuildTimeline(status),
		LastUpdated: s.now().Format(clockLayout),
	}, nil
}

func basePrice(r *rand.Rand) int {
	return minBasePrice + r.IntN(maxBasePrice-minBasePrice+1)
}

func quote(r *rand.Rand, p models.Pharmacy, medicine string, base int) models.Quote {
	jitter := 0.8 + r.Float64()*0.4
	price := int(float64(base) * jitter)
	discount := discountChoices[r.IntN(len(discountChoices))]
	return models.Quote{
		Pharmacy:        p,
		Medicine:        medicine,
		Price:           price,
		InStock:         r.IntN(4) != 0,
		AvailableQty:    5 + r.IntN(46),
		DiscountPercent: discount,
		FinalPrice:      price * (100 - discount) / 100,
	}
}
