package usecase

import (
	"context"
	"fmt"

	domainErrors "github.com/webshoplab/orders/internal/domain/errors"
	"github.com/webshoplab/orders/internal/domain/model"
	"github.com/webshoplab/orders/internal/domain/repository"
)

// ProductUseCase encapsulates product entity operations.
type ProductUseCase struct {
	products repository.ProductRepository
}

// NewProductUseCase constructs ProductUseCase.
func NewProductUseCase(products repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{products: products}
}

// Create registers a product, deduplicated by idempotency key.
func (u *ProductUseCase) Create(ctx context.Context, idempotencyKey, name string, price float64, quantity int64) (*model.Product, bool, error) {
	if idempotencyKey == "" || name == "" {
		return nil, false, fmt.Errorf("%w: idempotency key and name must not be empty", domainErrors.ErrInvalidRequest)
	}
	if price < 0 || quantity < 0 {
		return nil, false, fmt.Errorf("%w: price and quantity must not be negative", domainErrors.ErrInvalidRequest)
	}
	return u.products.Create(ctx, idempotencyKey, name, price, quantity)
}

// Get returns the product with the given id.
func (u *ProductUseCase) Get(ctx context.Context, id string) (*model.Product, error) {
	if err := validateEntityID(id); err != nil {
		return nil, err
	}
	return u.products.GetByID(ctx, id)
}

// ListIDs returns the ids of all stored products.
func (u *ProductUseCase) ListIDs(ctx context.Context) ([]string, error) {
	return u.products.ListIDs(ctx)
}

// Delete removes the product document.
func (u *ProductUseCase) Delete(ctx context.Context, id string) error {
	if err := validateEntityID(id); err != nil {
		return err
	}
	return u.products.Delete(ctx, id)
}
