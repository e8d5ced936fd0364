package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"orderflow/internal/model"
)

// DefaultDeclineProbability is the chance a simulated payment is declined.
const DefaultDeclineProbability = 0.10

// PaymentService simulates charging the customer. Declines are driven by an
// injectable random source so tests can pin the outcome.
type PaymentService struct {
	mu                 sync.RWMutex
	payments           map[string]model.Payment
	latency            time.Duration
	declineProbability float64
	randomSource       func() float64

	logger *zap.Logger
}

func NewPaymentService(logger *zap.Logger) *PaymentService {
	return &PaymentService{
		payments:           make(map[string]model.Payment),
		latency:            DefaultPaymentLatency,
		declineProbability: DefaultDeclineProbability,
		randomSource:       rand.Float64,
		logger:             logger,
	}
}

func (s *PaymentService) SetLatency(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latency = d
}

func (s *PaymentService) SetDeclineProbability(p float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.declineProbability = p
}

// SetRandomSource replaces the randomness behind decline decisions.
func (s *PaymentService) SetRandomSource(source func() float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.randomSource = source
}

// Process is the payment stage. It records a ledger entry either way and
// returns ErrPaymentDeclined on a simulated decline.
func (s *PaymentService) Process(ctx context.Context, order model.Order, amount float64) (bool, error) {
	s.logger.Info("processing payment",
		zap.String("orderId", order.ID),
		zap.Float64("amount", amount))

	s.mu.RLock()
	latency := s.latency
	declineProbability := s.declineProbability
	randomSource := s.randomSource
	s.mu.RUnlock()

	if err := simulateWork(ctx, latency); err != nil {
		return false, err
	}

	payment := model.Payment{
		ID:        uuid.New().String(),
		OrderID:   order.ID,
		Amount:    amount,
		Status:    model.PaymentStatusApproved,
		CreatedAt: time.Now(),
	}

	if randomSource() < declineProbability {
		payment.Status = model.PaymentStatusDeclined
		s.record(payment)
		return false, ErrPaymentDeclined
	}

	s.record(payment)
	s.logger.Info("payment approved", zap.String("orderId", order.ID))

	return true, nil
}

func (s *PaymentService) record(payment model.Payment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments[payment.ID] = payment
}

// Payments returns the ledger entries recorded for orderID.
func (s *PaymentService) Payments(orderID string) []model.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Payment
	for _, p := range s.payments {
		if p.OrderID == orderID {
			out = append(out, p)
		}
	}
	return out
}
