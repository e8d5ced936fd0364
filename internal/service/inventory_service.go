package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"orderflow/internal/model"
)

// InventoryService is the shared product store plus the two stages that touch
// it: the availability check and the reservation.
//
// All mutations of the product map happen under a single coarse lock, so
// concurrent reservations never interleave their read-modify-write. The span
// between an availability check and the matching reservation is deliberately
// NOT covered by that lock: the check reads a snapshot that may be stale by
// the time the reservation runs. DecrementStock trusts the caller's prior
// check and does not re-validate sufficiency.
type InventoryService struct {
	mu           sync.RWMutex
	products     map[string]model.Product
	reservations map[string]model.Reservation

	checkLatency   time.Duration
	reserveLatency time.Duration

	logger *zap.Logger
}

func NewInventoryService(logger *zap.Logger) *InventoryService {
	return &InventoryService{
		products:       make(map[string]model.Product),
		reservations:   make(map[string]model.Reservation),
		checkLatency:   DefaultCheckLatency,
		reserveLatency: DefaultReserveLatency,
		logger:         logger,
	}
}

// SetLatencies overrides the simulated stage latencies.
func (s *InventoryService) SetLatencies(check, reserve time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkLatency = check
	s.reserveLatency = reserve
}

// SetProduct seeds or replaces a catalog record.
func (s *InventoryService) SetProduct(product model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[product.ID] = product
}

// GetProduct returns a snapshot of the current record for productID.
func (s *InventoryService) GetProduct(productID string) (model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, exists := s.products[productID]
	if !exists {
		return model.Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}

	return product, nil
}

// Stock reports the current stock level, 0 for unknown products.
func (s *InventoryService) Stock(productID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products[productID].Stock
}

// DecrementStock replaces the record for productID with a copy whose stock is
// reduced by quantity. Sufficiency is not re-checked here: the caller is
// expected to have validated it via a prior GetProduct or CheckAvailability.
func (s *InventoryService) DecrementStock(productID string, quantity int) (model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, exists := s.products[productID]
	if !exists {
		return model.Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}

	updated := model.Product{
		ID:    product.ID,
		Name:  product.Name,
		Price: product.Price,
		Stock: product.Stock - quantity,
	}
	s.products[productID] = updated

	return updated, nil
}

// CheckAvailability is the first pipeline stage: it verifies the ordered
// product exists and has enough stock, returning a snapshot of the record.
func (s *InventoryService) CheckAvailability(ctx context.Context, order model.Order) (model.Product, error) {
	s.logger.Info("checking product availability", zap.String("orderId", order.ID))

	s.mu.RLock()
	latency := s.checkLatency
	s.mu.RUnlock()

	if err := simulateWork(ctx, latency); err != nil {
		return model.Product{}, err
	}

	product, err := s.GetProduct(order.ProductID)
	if err != nil {
		return model.Product{}, err
	}

	if product.Stock < order.Quantity {
		return model.Product{}, fmt.Errorf("%w: requested %d, available %d",
			ErrInsufficientStock, order.Quantity, product.Stock)
	}

	s.logger.Info("product available",
		zap.String("orderId", order.ID),
		zap.String("product", product.String()))

	return product, nil
}

// Reserve is the reservation stage: it decrements stock under the coarse lock
// and records the reservation. It assumes the availability check passed.
func (s *InventoryService) Reserve(ctx context.Context, order model.Order, product model.Product) error {
	s.logger.Info("reserving product",
		zap.String("orderId", order.ID),
		zap.String("productName", product.Name))

	s.mu.RLock()
	latency := s.reserveLatency
	s.mu.RUnlock()

	if err := simulateWork(ctx, latency); err != nil {
		return err
	}

	updated, err := s.DecrementStock(order.ProductID, order.Quantity)
	if err != nil {
		return err
	}

	reservation := model.Reservation{
		ID:        uuid.New().String(),
		OrderID:   order.ID,
		ProductID: order.ProductID,
		Quantity:  order.Quantity,
	}

	s.mu.Lock()
	s.reservations[reservation.ID] = reservation
	s.mu.Unlock()

	s.logger.Info("product reserved",
		zap.String("orderId", order.ID),
		zap.Int("remainingStock", updated.Stock))

	return nil
}

// Reservations returns the reservations recorded for orderID.
func (s *InventoryService) Reservations(orderID string) []model.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Reservation
	for _, r := range s.reservations {
		if r.OrderID == orderID {
			out = append(out, r)
		}
	}
	return out
}
