package model

import "time"

type Payment struct {
	ID        string
	OrderID   string
	Amount    float64
	Status    PaymentStatus
	CreatedAt time.Time
}

type PaymentStatus string

const (
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusDeclined PaymentStatus = "declined"
)
