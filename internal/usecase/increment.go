package usecase

import (
	"context"

	"github.com/webshoplab/orders/internal/domain/model"
	"github.com/webshoplab/orders/internal/domain/repository"
)

// IncrementUseCase drives the idempotent increment operation of the
// service's numeric entity field.
type IncrementUseCase struct {
	increments repository.IncrementRepository
}

// NewIncrementUseCase constructs IncrementUseCase.
func NewIncrementUseCase(increments repository.IncrementRepository) *IncrementUseCase {
	return &IncrementUseCase{increments: increments}
}

// Increment applies the request once per (key, entity) pair. A repeated
// request reports zero modified rows and is still a success.
func (u *IncrementUseCase) Increment(ctx context.Context, req model.IncrementRequest) (int64, error) {
	if err := validateIncrement(req); err != nil {
		return 0, err
	}
	return u.increments.Increment(ctx, req)
}

// UndoIncrement reverses everything recorded under the key.
func (u *IncrementUseCase) UndoIncrement(ctx context.Context, idempotencyKey string) (int64, error) {
	if err := validateEntityID(idempotencyKey); err != nil {
		return 0, err
	}
	return u.increments.UndoIncrement(ctx, idempotencyKey)
}
