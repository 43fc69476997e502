package handlers

import (
	"context"

	"github.com/webshoplab/orders/internal/domain/model"
)

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, idempotencyKey, customerID string, cart []model.CartItem) (*model.Order, bool, error)
	Order(ctx context.Context, id string) (*model.Order, error)
	OrderIDs(ctx context.Context) ([]string, error)
	DeleteOrder(ctx context.Context, id string) error
}

// CustomerFacade encapsulates customer operations exposed via HTTP.
type CustomerFacade interface {
	CreateCustomer(ctx context.Context, idempotencyKey, name string, credit float64) (*model.Customer, bool, error)
	Customer(ctx context.Context, id string) (*model.Customer, error)
	CustomerIDs(ctx context.Context) ([]string, error)
	DeleteCustomer(ctx context.Context, id string) error
	IncrementFacade
}

// ProductFacade encapsulates product operations exposed via HTTP.
type ProductFacade interface {
	CreateProduct(ctx context.Context, idempotencyKey, name string, price float64, quantity int64) (*model.Product, bool, error)
	Product(ctx context.Context, id string) (*model.Product, error)
	ProductIDs(ctx context.Context) ([]string, error)
	DeleteProduct(ctx context.Context, id string) error
	IncrementFacade
}

// IncrementFacade provides the idempotent field mutation operations.
type IncrementFacade interface {
	Increment(ctx context.Context, req model.IncrementRequest) (int64, error)
	UndoIncrement(ctx context.Context, idempotencyKey string) (int64, error)
}
