package remote

import (
	"context"
	"log/slog"
	"net/http"
)

// CustomerClient talks to the customer service's idempotent credit
// endpoints. Every call carries the caller-supplied idempotency key, which
// the remote side records in its ledger, so repeated delivery applies the
// debit at most once.
type CustomerClient struct {
	client
}

// NewCustomerClient creates a customer service client with default timeout.
func NewCustomerClient(baseURL string, logger *slog.Logger) (*CustomerClient, error) {
	c, err := newClient(baseURL, logger)
	if err != nil {
		return nil, err
	}
	return &CustomerClient{client: c}, nil
}

type creditIncrementPayload struct {
	IdempotencyKey string  `json:"idempotencyKey"`
	CustomerID     string  `json:"customerId"`
	Increment      float64 `json:"increment"`
}

type undoPayload struct {
	IdempotencyKey string `json:"idempotencyKey"`
}

// DecrementCredit debits amount from the customer's credit.
func (c *CustomerClient) DecrementCredit(ctx context.Context, idempotencyKey, customerID string, amount float64) error {
	payload := creditIncrementPayload{
		IdempotencyKey: idempotencyKey,
		CustomerID:     customerID,
		Increment:      -amount,
	}
	return c.send(ctx, http.MethodPost, c.endpoint("/customer/credit/increment"), payload)
}

// UndoDecrementCredit reverses the debit recorded under the key.
func (c *CustomerClient) UndoDecrementCredit(ctx context.Context, idempotencyKey string) error {
	return c.send(ctx, http.MethodDelete, c.endpoint("/customer/credit/increment"), undoPayload{IdempotencyKey: idempotencyKey})
}
