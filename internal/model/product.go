package model

import "fmt"

// Product is an inventory record. The store replaces the whole record on
// every stock change; a Product value held by a caller is a snapshot and is
// never mutated in place.
type Product struct {
	ID    string
	Name  string
	Price float64
	Stock int
}

func (p Product) String() string {
	return fmt.Sprintf("%s (%.2f, in stock: %d)", p.Name, p.Price, p.Stock)
}
