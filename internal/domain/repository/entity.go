package repository

import (
	"context"

	"github.com/webshoplab/orders/internal/domain/model"
)

// CustomerRepository describes persistence operations for customers.
// Creation is deduplicated by idempotency key like order creation.
type CustomerRepository interface {
	Create(ctx context.Context, idempotencyKey, name string, credit float64) (*model.Customer, bool, error)
	GetByID(ctx context.Context, id string) (*model.Customer, error)
	ListIDs(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id string) error
}

// ProductRepository describes persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, idempotencyKey, name string, price float64, quantity int64) (*model.Product, bool, error)
	GetByID(ctx context.Context, id string) (*model.Product, error)
	ListIDs(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id string) error
}
