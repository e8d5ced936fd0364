package model

import "fmt"

// Order is a caller-supplied purchase request. It is a read-only input to the
// pipeline and never mutated after construction.
type Order struct {
	ID            string
	ProductID     string
	Quantity      int
	CustomerEmail string
}

func (o Order) String() string {
	return fmt.Sprintf("Order (id=%q, product=%q, qty=%d)", o.ID, o.ProductID, o.Quantity)
}

// OrderResult is the terminal outcome of one pipeline run. TotalAmount is 0
// when Success is false.
type OrderResult struct {
	OrderID     string
	Success     bool
	Message     string
	TotalAmount float64
}

func (r OrderResult) String() string {
	return fmt.Sprintf("OrderResult{id=%q, success=%t, message=%q, amount=%.2f}",
		r.OrderID, r.Success, r.Message, r.TotalAmount)
}
