// internal/records/orders.go
package records

import (
	"context"
	"strings"
	"sync"
	"time"

	apperrors "medassist-workers/internal/common/errors"
	"medassist-workers/internal/common/logger"
	"medassist-workers/internal/common/metrics"
	"medassist-workers/internal/models"
	"medassist-workers/internal/pharmacy"
	"medassist-workers/internal/store"
)

// OrderService places orders through the simulator and keeps them in the
// orders collection so tracking never moves a stored order backwards.
// Order ids are unique among stored orders.
type OrderService struct {
	mu        sync.Mutex
	store     store.DocumentStore
	simulator *pharmacy.Simulator
	now       func() time.Time
	logger    logger.Logger
}

func NewOrderService(docs store.DocumentStore, sim *pharmacy.Simulator, log logger.Logger, opts ...Option) *OrderService {
	o := buildOptions(opts)
	return &OrderService{
		store:     docs,
		simulator: sim,
		now:       o.now,
		logger:    log.With(map[string]interface{}{"component": "orders"}),
	}
}

func (s *OrderService) PlaceOrder(ctx context.Context, req pharmacy.OrderRequest) (*models.Order, error) {
	if err := pharmacy.ValidateOrder(req); err != nil {
		return nil, err
	}

	// held from the id check until the order is stored
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	used := make(map[string]bool, len(existing))
	for _, o := range existing {
		used[o.OrderID] = true
	}

	order, err := s.simulator.PlaceOrderExcluding(req, func(id string) bool { return used[id] })
	if err != nil {
		return nil, err
	}
	order.OrderDate = s.now().Format(time.RFC3339)

	doc, err := store.ToDocument(order)
	if err != nil {
		return nil, apperrors.NewStoreOperationError("encode", err)
	}
	delete(doc, "recordId")

	stored, err := s.store.Append(ctx, store.CollectionOrders, doc)
	if err != nil {
		return nil, err
	}
	order.RecordID = stored.ID()

	metrics.PharmacyOrders.WithLabelValues(order.PharmacyName).Inc()
	s.logger.Info("order placed", map[string]interface{}{
		"orderId":  order.OrderID,
		"recordId": order.RecordID,
		"pharmacy": order.PharmacyID,
	})
	return order, nil
}

// ListOrders returns stored orders, oldest first.
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	docs, err := s.store.QueryAll(ctx, store.CollectionOrders)
	if err != nil {
		return nil, err
	}
	out := make([]models.Order, 0, len(docs))
	for _, d := range docs {
		var o models.Order
		if err := store.Decode(d, &o); err != nil {
			s.logger.Warn("skipping undecodable order", map[string]interface{}{"id": d.ID(), "error": err.Error()})
			continue
		}
		o.RecordID = d.ID()
		out = append(out, o)
	}
	return out, nil
}

// TrackOrder accepts either the simulator order id or the stored record id.
// Unknown ids are simulated without writing anything.
func (s *OrderService) TrackOrder(ctx context.Context, orderID string) (*models.TrackingStatus, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, apperrors.NewInputEmptyError("orderId")
	}

	stored, err := s.find(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return s.simulator.TrackOrder(orderID)
	}

	status, err := s.simulator.TrackOrderFrom(stored.OrderID, stored.Status)
	if err != nil {
		return nil, err
	}

	if status.Status.Rank() > stored.Status.Rank() {
		if err := s.store.UpdateField(ctx, store.CollectionOrders, stored.RecordID, "status", status.Status); err != nil {
			return nil, err
		}
		if err := s.store.UpdateField(ctx, store.CollectionOrders, stored.RecordID, "updatedAt", s.now().Format(time.RFC3339)); err != nil {
			return nil, err
		}
		s.logger.Info("order advanced", map[string]interface{}{
			"orderId": stored.OrderID,
			"from":    stored.Status,
			"to":      status.Status,
		})
	}
	return status, nil
}

func (s *OrderService) find(ctx context.Context, id string) (*models.Order, error) {
	orders, err := s.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].OrderID == id || orders[i].RecordID == id {
			return &orders[i], nil
		}
	}
	return nil, nil
}
