package model

import "encoding/json"

// IncrementRequest is one externally visible attempt to change a numeric
// field of a remote entity. The payload is recorded in the idempotency
// ledger so the inverse can be computed during undo.
type IncrementRequest struct {
	IdempotencyKey string  `json:"idempotencyKey"`
	EntityID       string  `json:"entityId"`
	Increment      float64 `json:"increment"`
}

// IdempotentRequest is a ledger record of an applied increment. The pair
// (IdempotencyKey, EntityID) is unique; Timestamp is epoch milliseconds.
type IdempotentRequest struct {
	IdempotencyKey string
	EntityID       string
	Request        json.RawMessage
	Timestamp      int64
}
