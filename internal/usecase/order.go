package usecase

import (
	"context"
	"time"

	"github.com/webshoplab/orders/internal/domain/model"
	"github.com/webshoplab/orders/internal/domain/repository"
)

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders repository.OrderRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders}
}

// Create registers a new order in state NEW. Returns whether a document was
// actually created: a repeated idempotency key yields the stored order.
func (u *OrderUseCase) Create(ctx context.Context, idempotencyKey, customerID string, cart []model.CartItem) (*model.Order, bool, error) {
	if err := validateNewOrder(idempotencyKey, customerID, cart); err != nil {
		return nil, false, err
	}

	return u.orders.Create(ctx, idempotencyKey, customerID, cart)
}

// Get returns the order with the given id.
func (u *OrderUseCase) Get(ctx context.Context, id string) (*model.Order, error) {
	if err := validateEntityID(id); err != nil {
		return nil, err
	}
	return u.orders.GetByID(ctx, id)
}

// ListIDs returns the ids of all stored orders.
func (u *OrderUseCase) ListIDs(ctx context.Context) ([]string, error) {
	return u.orders.ListIDs(ctx)
}

// Delete removes the order document. The saga itself never deletes orders.
func (u *OrderUseCase) Delete(ctx context.Context, id string) error {
	if err := validateEntityID(id); err != nil {
		return err
	}
	return u.orders.Delete(ctx, id)
}

// ClaimOldest leases the oldest order in from to the worker.
func (u *OrderUseCase) ClaimOldest(ctx context.Context, from, to model.State) (*model.Order, error) {
	return u.orders.ClaimOldest(ctx, from, to)
}

// SweepExpired recovers orders abandoned longer than olderThan.
func (u *OrderUseCase) SweepExpired(ctx context.Context, from, to model.State, olderThan time.Duration) (int64, error) {
	return u.orders.SweepExpired(ctx, from, to, olderThan)
}

// SetState persists a state transition guarded by the expected current state.
func (u *OrderUseCase) SetState(ctx context.Context, id string, from, to model.State) error {
	return u.orders.SetState(ctx, id, from, to)
}
