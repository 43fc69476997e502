package dto

// CartItemPayload is one order line.
type CartItemPayload struct {
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
}

// CreateOrderRequest describes the order creation payload.
type CreateOrderRequest struct {
	IdempotencyKey string            `json:"idempotencyKey"`
	CustomerID     string            `json:"customerId"`
	CartContent    []CartItemPayload `json:"cartContent"`
}

// CreateOrderResponse carries the id of the created (or previously
// created) order.
type CreateOrderResponse struct {
	OrderID string `json:"orderId"`
}

// OrderResponse describes a stored order, state included.
type OrderResponse struct {
	ID               string            `json:"id"`
	CustomerID       string            `json:"customerId"`
	CartContent      []CartItemPayload `json:"cartContent"`
	State            string            `json:"state"`
	LastModification int64             `json:"lastModification"`
}
