package dto

// ProductDetails is a read-only projection from the product-catalog
// service. It is fetched per request and never cached.
type ProductDetails struct {
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Price       int64  `json:"price"`
	Quantity    int64  `json:"quantity"`
}
