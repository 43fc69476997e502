package repository

import (
	"context"
	"time"

	"github.com/webshoplab/orders/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// Create inserts a new order in state NEW, deduplicated by idempotency
	// key: a second request with the same key returns the stored order and
	// created=false without inserting anything.
	Create(ctx context.Context, idempotencyKey, customerID string, cart []model.CartItem) (*model.Order, bool, error)
	GetByID(ctx context.Context, id string) (*model.Order, error)
	ListIDs(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id string) error

	// ClaimOldest atomically flips the order with matching state and the
	// smallest (lastModification, id) pair to the next state and returns the
	// pre-update document. Returns ErrNoneEligible when no order matches.
	ClaimOldest(ctx context.Context, from, to model.State) (*model.Order, error)

	// SweepExpired moves every order that stayed in from longer than
	// olderThan back to to, refreshing lastModification. Returns the number
	// of orders affected.
	SweepExpired(ctx context.Context, from, to model.State, olderThan time.Duration) (int64, error)

	// SetState updates the order's state guarded by the expected current
	// state. Returns ErrStateConflict when the guard does not match.
	SetState(ctx context.Context, id string, from, to model.State) error
}
