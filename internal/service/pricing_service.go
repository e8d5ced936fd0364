package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"orderflow/internal/model"
)

// Pricing policy defaults: orders above the threshold get the bulk discount,
// tax is applied to the discounted subtotal.
const (
	DefaultDiscountThreshold = 5
	DefaultDiscountRate      = 0.10
	DefaultTaxRate           = 0.12
)

// PricingService computes the total charge for an order.
type PricingService struct {
	mu                sync.RWMutex
	latency           time.Duration
	discountThreshold int
	discountRate      float64
	taxRate           float64

	logger *zap.Logger
}

func NewPricingService(logger *zap.Logger) *PricingService {
	return &PricingService{
		latency:           DefaultPriceLatency,
		discountThreshold: DefaultDiscountThreshold,
		discountRate:      DefaultDiscountRate,
		taxRate:           DefaultTaxRate,
		logger:            logger,
	}
}

func (s *PricingService) SetLatency(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latency = d
}

func (s *PricingService) SetPolicy(discountThreshold int, discountRate, taxRate float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discountThreshold = discountThreshold
	s.discountRate = discountRate
	s.taxRate = taxRate
}

// Calculate is the pricing stage: base price, bulk discount on the base, tax
// on the discounted subtotal. The operand order matters and is fixed.
func (s *PricingService) Calculate(ctx context.Context, order model.Order, product model.Product) (float64, error) {
	s.logger.Info("calculating price", zap.String("orderId", order.ID))

	s.mu.RLock()
	latency := s.latency
	threshold := s.discountThreshold
	discountRate := s.discountRate
	taxRate := s.taxRate
	s.mu.RUnlock()

	if err := simulateWork(ctx, latency); err != nil {
		return 0, err
	}

	basePrice := product.Price * float64(order.Quantity)

	discount := 0.0
	if order.Quantity > threshold {
		discount = basePrice * discountRate
	}

	subtotal := basePrice - discount
	total := subtotal * (1 + taxRate)

	s.logger.Info("price calculated",
		zap.String("orderId", order.ID),
		zap.Float64("total", total))

	return total, nil
}
