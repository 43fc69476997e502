package model

// CartItem is one line of an order's cart. Quantity is always positive.
type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
}

// Order is the persisted order document driven through the fulfillment
// state machine. CartContent is immutable after creation; State and
// LastModification (epoch milliseconds) change together in one atomic write.
type Order struct {
	ID               string
	IdempotencyKey   string
	CustomerID       string
	CartContent      []CartItem
	State            State
	LastModification int64
}
