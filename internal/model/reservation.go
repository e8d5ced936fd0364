package model

type Reservation struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
}

type Notification struct {
	ID        string
	OrderID   string
	Recipient string
	Message   string
}
