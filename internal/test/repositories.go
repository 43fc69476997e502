package test

import (
	"context"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/webshoplab/orders/internal/domain/errors"
	"github.com/webshoplab/orders/internal/domain/model"
)

// StateChange records one SetState invocation.
type StateChange struct {
	OrderID string
	From    model.State
	To      model.State
}

// OrderRepositoryStub allows tests to customize order persistence behaviour.
type OrderRepositoryStub struct {
	CreateFn      func(context.Context, string, string, []model.CartItem) (*model.Order, bool, error)
	GetByIDFn     func(context.Context, string) (*model.Order, error)
	ListIDsFn     func(context.Context) ([]string, error)
	DeleteFn      func(context.Context, string) error
	ClaimOldestFn func(context.Context, model.State, model.State) (*model.Order, error)
	SweepFn       func(context.Context, model.State, model.State, time.Duration) (int64, error)
	SetStateFn    func(context.Context, string, model.State, model.State) error

	Orders  []model.Order
	Changes []StateChange
	Deleted []string
}

// Create tracks invocations and returns configured responses.
func (s *OrderRepositoryStub) Create(ctx context.Context, idempotencyKey, customerID string, cart []model.CartItem) (*model.Order, bool, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, idempotencyKey, customerID, cart)
	}
	for _, o := range s.Orders {
		if o.IdempotencyKey == idempotencyKey {
			order := o
			return &order, false, nil
		}
	}
	order := model.Order{
		ID:             uuid.NewString(),
		IdempotencyKey: idempotencyKey,
		CustomerID:     customerID,
		CartContent:    cart,
		State:          model.StateNew,
	}
	s.Orders = append(s.Orders, order)
	return &order, true, nil
}

// GetByID returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, o := range s.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListIDs returns ids of the stored orders.
func (s *OrderRepositoryStub) ListIDs(ctx context.Context) ([]string, error) {
	if s.ListIDsFn != nil {
		return s.ListIDsFn(ctx)
	}
	ids := make([]string, 0, len(s.Orders))
	for _, o := range s.Orders {
		ids = append(ids, o.ID)
	}
	return ids, nil
}

// Delete records deletion requests.
func (s *OrderRepositoryStub) Delete(ctx context.Context, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	s.Deleted = append(s.Deleted, id)
	return nil
}

// ClaimOldest returns the first stored order in from, or none eligible.
func (s *OrderRepositoryStub) ClaimOldest(ctx context.Context, from, to model.State) (*model.Order, error) {
	if s.ClaimOldestFn != nil {
		return s.ClaimOldestFn(ctx, from, to)
	}
	for i, o := range s.Orders {
		if o.State == from {
			order := o
			s.Orders[i].State = to
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNoneEligible
}

// SweepExpired delegates to the override or reports nothing swept.
func (s *OrderRepositoryStub) SweepExpired(ctx context.Context, from, to model.State, olderThan time.Duration) (int64, error) {
	if s.SweepFn != nil {
		return s.SweepFn(ctx, from, to, olderThan)
	}
	return 0, nil
}

// SetState records transition invocations.
func (s *OrderRepositoryStub) SetState(ctx context.Context, id string, from, to model.State) error {
	if s.SetStateFn != nil {
		return s.SetStateFn(ctx, id, from, to)
	}
	s.Changes = append(s.Changes, StateChange{OrderID: id, From: from, To: to})
	for i, o := range s.Orders {
		if o.ID == id && o.State == from {
			s.Orders[i].State = to
			return nil
		}
	}
	return nil
}

// CustomerRepositoryStub stores customers in-memory for tests.
type CustomerRepositoryStub struct {
	CreateFn  func(context.Context, string, string, float64) (*model.Customer, bool, error)
	GetByIDFn func(context.Context, string) (*model.Customer, error)

	Customers []model.Customer
	Deleted   []string
	Err       error
}

// Create registers a customer unless the key was already used.
func (s *CustomerRepositoryStub) Create(ctx context.Context, idempotencyKey, name string, credit float64) (*model.Customer, bool, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, idempotencyKey, name, credit)
	}
	if s.Err != nil {
		return nil, false, s.Err
	}
	for _, c := range s.Customers {
		if c.IdempotencyKey == idempotencyKey {
			customer := c
			return &customer, false, nil
		}
	}
	customer := model.Customer{
		ID:             uuid.NewString(),
		IdempotencyKey: idempotencyKey,
		Name:           name,
		Credit:         credit,
	}
	s.Customers = append(s.Customers, customer)
	return &customer, true, nil
}

// GetByID fetches a customer by id or returns not found.
func (s *CustomerRepositoryStub) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	for _, c := range s.Customers {
		if c.ID == id {
			customer := c
			return &customer, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListIDs returns ids of the stored customers.
func (s *CustomerRepositoryStub) ListIDs(ctx context.Context) ([]string, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	ids := make([]string, 0, len(s.Customers))
	for _, c := range s.Customers {
		ids = append(ids, c.ID)
	}
	return ids, nil
}

// Delete records deletion requests.
func (s *CustomerRepositoryStub) Delete(ctx context.Context, id string) error {
	if s.Err != nil {
		return s.Err
	}
	s.Deleted = append(s.Deleted, id)
	return nil
}

// ProductRepositoryStub stores products in-memory for tests.
type ProductRepositoryStub struct {
	CreateFn  func(context.Context, string, string, float64, int64) (*model.Product, bool, error)
	GetByIDFn func(context.Context, string) (*model.Product, error)

	Products []model.Product
	Deleted  []string
	Err      error
}

// Create registers a product unless the key was already used.
func (s *ProductRepositoryStub) Create(ctx context.Context, idempotencyKey, name string, price float64, quantity int64) (*model.Product, bool, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, idempotencyKey, name, price, quantity)
	}
	if s.Err != nil {
		return nil, false, s.Err
	}
	for _, p := range s.Products {
		if p.IdempotencyKey == idempotencyKey {
			product := p
			return &product, false, nil
		}
	}
	product := model.Product{
		ID:             uuid.NewString(),
		IdempotencyKey: idempotencyKey,
		Name:           name,
		Price:          price,
		Quantity:       quantity,
	}
	s.Products = append(s.Products, product)
	return &product, true, nil
}

// GetByID fetches a product by id or returns not found.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	for _, p := range s.Products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListIDs returns ids of the stored products.
func (s *ProductRepositoryStub) ListIDs(ctx context.Context) ([]string, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	ids := make([]string, 0, len(s.Products))
	for _, p := range s.Products {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

// Delete records deletion requests.
func (s *ProductRepositoryStub) Delete(ctx context.Context, id string) error {
	if s.Err != nil {
		return s.Err
	}
	s.Deleted = append(s.Deleted, id)
	return nil
}

// IncrementCall records one increment invocation.
type IncrementCall struct {
	Request model.IncrementRequest
}

// IncrementRepositoryStub lets tests control increment outcomes.
type IncrementRepositoryStub struct {
	IncrementFn       func(context.Context, model.IncrementRequest) (int64, error)
	UndoFn            func(context.Context, string) (int64, error)
	DeleteOlderThanFn func(context.Context, time.Duration) (int64, error)

	Calls    []IncrementCall
	UndoKeys []string
	Err      error
}

// Increment records the request and reports one modified entity.
func (s *IncrementRepositoryStub) Increment(ctx context.Context, req model.IncrementRequest) (int64, error) {
	if s.IncrementFn != nil {
		return s.IncrementFn(ctx, req)
	}
	if s.Err != nil {
		return 0, s.Err
	}
	s.Calls = append(s.Calls, IncrementCall{Request: req})
	return 1, nil
}

// UndoIncrement records the key and reports one reversed record.
func (s *IncrementRepositoryStub) UndoIncrement(ctx context.Context, idempotencyKey string) (int64, error) {
	if s.UndoFn != nil {
		return s.UndoFn(ctx, idempotencyKey)
	}
	if s.Err != nil {
		return 0, s.Err
	}
	s.UndoKeys = append(s.UndoKeys, idempotencyKey)
	return 1, nil
}

// DeleteOlderThan delegates to the override or reports nothing removed.
func (s *IncrementRepositoryStub) DeleteOlderThan(ctx context.Context, retention time.Duration) (int64, error) {
	if s.DeleteOlderThanFn != nil {
		return s.DeleteOlderThanFn(ctx, retention)
	}
	if s.Err != nil {
		return 0, s.Err
	}
	return 0, nil
}
