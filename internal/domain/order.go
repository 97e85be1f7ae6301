package domain

import "time"

type Order struct {
	ID        uint
	ProductID int64
	Quantity  int64
	Amount    int64
	Status    string
	OrderDate time.Time
}

const (
	OrderStatusCreated       = "CREATED"
	OrderStatusPlaced        = "PLACED"
	OrderStatusPaymentFailed = "PAYMENT_FAILED"
)

// IsTerminal reports whether the order reached a final status.
// A terminal status is never overwritten.
func (o Order) IsTerminal() bool {
	return o.Status == OrderStatusPlaced || o.Status == OrderStatusPaymentFailed
}
