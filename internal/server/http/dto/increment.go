package dto

// CreditIncrementRequest describes the idempotent credit mutation payload.
type CreditIncrementRequest struct {
	IdempotencyKey string  `json:"idempotencyKey"`
	CustomerID     string  `json:"customerId"`
	Increment      float64 `json:"increment"`
}

// QuantityIncrementRequest describes the idempotent stock mutation payload.
type QuantityIncrementRequest struct {
	IdempotencyKey string  `json:"idempotencyKey"`
	ProductID      string  `json:"productId"`
	Increment      float64 `json:"increment"`
}

// UndoIncrementRequest reverses all increments recorded under the key.
type UndoIncrementRequest struct {
	IdempotencyKey string `json:"idempotencyKey"`
}

// IncrementResponse reports the number of entities actually modified.
// A deduplicated request reports zero.
type IncrementResponse struct {
	Modified int64 `json:"modified"`
}
