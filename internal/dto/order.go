package dto

import "time"

type PaymentMode string

const (
	PaymentModeCash PaymentMode = "CASH"
	PaymentModeCard PaymentMode = "CARD"
	PaymentModeUPI  PaymentMode = "UPI"
)

type OrderRequest struct {
	ProductID   int64       `json:"productId"`
	Quantity    int64       `json:"quantity"`
	TotalAmount int64       `json:"totalAmount"`
	PaymentMode PaymentMode `json:"paymentMode"`
}

type PlaceOrderResponse struct {
	OrderID uint `json:"orderId"`
}

// OrderDetailsResponse is assembled fresh on every read from the order
// record plus the two downstream projections. It is never persisted.
type OrderDetailsResponse struct {
	OrderID        uint            `json:"orderId"`
	OrderDate      time.Time       `json:"orderDate"`
	OrderStatus    string          `json:"orderStatus"`
	Amount         int64           `json:"amount"`
	ProductDetails *ProductDetails `json:"productDetails"`
	PaymentDetails *PaymentDetails `json:"paymentDetails"`
}
