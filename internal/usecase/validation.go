package usecase

import (
	"fmt"

	domainErrors "github.com/webshoplab/orders/internal/domain/errors"
	"github.com/webshoplab/orders/internal/domain/model"
)

func validateNewOrder(idempotencyKey, customerID string, cart []model.CartItem) error {
	if idempotencyKey == "" {
		return fmt.Errorf("%w: idempotency key must not be empty", domainErrors.ErrInvalidRequest)
	}
	if customerID == "" {
		return fmt.Errorf("%w: customer id must not be empty", domainErrors.ErrInvalidRequest)
	}
	if len(cart) == 0 {
		return fmt.Errorf("%w: cart content must not be empty", domainErrors.ErrInvalidRequest)
	}
	for _, item := range cart {
		if item.ProductID == "" {
			return fmt.Errorf("%w: product id must not be empty", domainErrors.ErrInvalidRequest)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: quantity of product %s must be positive", domainErrors.ErrInvalidRequest, item.ProductID)
		}
	}
	return nil
}

func validateEntityID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: id must not be empty", domainErrors.ErrInvalidRequest)
	}
	return nil
}

func validateIncrement(req model.IncrementRequest) error {
	if req.IdempotencyKey == "" {
		return fmt.Errorf("%w: idempotency key must not be empty", domainErrors.ErrInvalidRequest)
	}
	if req.EntityID == "" {
		return fmt.Errorf("%w: entity id must not be empty", domainErrors.ErrInvalidRequest)
	}
	return nil
}
