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

// NotificationService simulates customer messaging. Messages are recorded so
// callers can inspect what was sent; delivery itself is just a log line.
type NotificationService struct {
	mu            sync.RWMutex
	notifications map[string]model.Notification
	latency       time.Duration

	logger *zap.Logger
}

func NewNotificationService(logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notifications: make(map[string]model.Notification),
		latency:       DefaultNotifyLatency,
		logger:        logger,
	}
}

func (s *NotificationService) SetLatency(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latency = d
}

// Send is the notification stage: it composes the customer message for the
// order's outcome and records it.
func (s *NotificationService) Send(ctx context.Context, order model.Order, success bool, amount float64) error {
	s.logger.Info("sending notification",
		zap.String("orderId", order.ID),
		zap.String("recipient", order.CustomerEmail))

	s.mu.RLock()
	latency := s.latency
	s.mu.RUnlock()

	if err := simulateWork(ctx, latency); err != nil {
		return err
	}

	message := "We could not process your order. Please contact support."
	if success {
		message = fmt.Sprintf("Your order has been placed for a total of %.2f!", amount)
	}

	notification := model.Notification{
		ID:        uuid.New().String(),
		OrderID:   order.ID,
		Recipient: order.CustomerEmail,
		Message:   message,
	}

	s.mu.Lock()
	s.notifications[notification.ID] = notification
	s.mu.Unlock()

	s.logger.Info("notification sent",
		zap.String("orderId", order.ID),
		zap.String("message", message))

	return nil
}

// Sent returns the notifications recorded for orderID.
func (s *NotificationService) Sent(orderID string) []model.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Notification
	for _, n := range s.notifications {
		if n.OrderID == orderID {
			out = append(out, n)
		}
	}
	return out
}
