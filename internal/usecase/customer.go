package usecase

import (
	"context"
	"fmt"

	domainErrors "github.com/webshoplab/orders/internal/domain/errors"
	"github.com/webshoplab/orders/internal/domain/model"
	"github.com/webshoplab/orders/internal/domain/repository"
)

// CustomerUseCase encapsulates customer entity operations.
type CustomerUseCase struct {
	customers repository.CustomerRepository
}

// NewCustomerUseCase constructs CustomerUseCase.
func NewCustomerUseCase(customers repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{customers: customers}
}

// Create registers a customer, deduplicated by idempotency key.
func (u *CustomerUseCase) Create(ctx context.Context, idempotencyKey, name string, credit float64) (*model.Customer, bool, error) {
	if idempotencyKey == "" || name == "" {
		return nil, false, fmt.Errorf("%w: idempotency key and name must not be empty", domainErrors.ErrInvalidRequest)
	}
	if credit < 0 {
		return nil, false, fmt.Errorf("%w: credit must not be negative", domainErrors.ErrInvalidRequest)
	}
	return u.customers.Create(ctx, idempotencyKey, name, credit)
}

// Get returns the customer with the given id.
func (u *CustomerUseCase) Get(ctx context.Context, id string) (*model.Customer, error) {
	if err := validateEntityID(id); err != nil {
		return nil, err
	}
	return u.customers.GetByID(ctx, id)
}

// ListIDs returns the ids of all stored customers.
func (u *CustomerUseCase) ListIDs(ctx context.Context) ([]string, error) {
	return u.customers.ListIDs(ctx)
}

// Delete removes the customer document.
func (u *CustomerUseCase) Delete(ctx context.Context, id string) error {
	if err := validateEntityID(id); err != nil {
		return err
	}
	return u.customers.Delete(ctx, id)
}
