package dto

import "time"

type PaymentRequest struct {
	OrderID         uint        `json:"orderId"`
	Amount          int64       `json:"amount"`
	ReferenceNumber string      `json:"referenceNumber"`
	PaymentMode     PaymentMode `json:"paymentMode"`
}

// PaymentDetails is a read-only projection from the payment service.
type PaymentDetails struct {
	PaymentID   int64       `json:"paymentId"`
	Status      string      `json:"status"`
	PaymentMode PaymentMode `json:"paymentMode"`
	Amount      int64       `json:"amount"`
	PaymentDate time.Time   `json:"paymentDate"`
	OrderID     uint        `json:"orderId"`
}

// PaymentStatusUnavailable is the sentinel status carried by the
// placeholder PaymentDetails returned when the payment service cannot
// be reached or its circuit is open.
const PaymentStatusUnavailable = "Unavailable"
