package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"orderflow/internal/model"
)

func TestNotificationService_Send(t *testing.T) {
	notifications := NewNotificationService(zap.NewNop())
	notifications.SetLatency(time.Millisecond)
	order := model.Order{ID: "order-1", ProductID: "PROD001", Quantity: 1, CustomerEmail: "a@example.com"}

	if err := notifications.Send(context.Background(), order, true, 224.0); err != nil {
		t.Fatalf("expected notification, got error: %v", err)
	}

	sent := notifications.Sent("order-1")
	if len(sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(sent))
	}
	if sent[0].Recipient != "a@example.com" {
		t.Errorf("expected recipient a@example.com, got %s", sent[0].Recipient)
	}
	if !strings.Contains(sent[0].Message, "224.00") {
		t.Errorf("expected message to carry the amount, got %q", sent[0].Message)
	}
}

func TestNotificationService_SendFailureMessage(t *testing.T) {
	notifications := NewNotificationService(zap.NewNop())
	notifications.SetLatency(time.Millisecond)
	order := model.Order{ID: "order-1", ProductID: "PROD001", Quantity: 1, CustomerEmail: "a@example.com"}

	if err := notifications.Send(context.Background(), order, false, 0); err != nil {
		t.Fatalf("expected notification, got error: %v", err)
	}

	sent := notifications.Sent("order-1")
	if len(sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(sent))
	}
	if !strings.Contains(sent[0].Message, "could not process") {
		t.Errorf("unexpected failure message: %q", sent[0].Message)
	}
}
