package repository

import (
	"context"
	"time"

	"github.com/webshoplab/orders/internal/domain/model"
)

// IncrementRepository applies idempotent increments to one numeric entity
// field (customer credit or product quantity) and their inverses. Each
// applied increment is recorded in the idempotency ledger inside the same
// transaction; a repeated request is a no-op reporting zero modified rows.
type IncrementRepository interface {
	Increment(ctx context.Context, req model.IncrementRequest) (int64, error)

	// UndoIncrement reads and deletes every ledger record stored under key
	// and applies the inverse of each recorded increment.
	UndoIncrement(ctx context.Context, idempotencyKey string) (int64, error)

	// DeleteOlderThan garbage-collects ledger records beyond the retention
	// window, regardless of whether they were consumed.
	DeleteOlderThan(ctx context.Context, retention time.Duration) (int64, error)
}
