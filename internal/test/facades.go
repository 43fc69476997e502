package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/webshoplab/orders/internal/domain/errors"
	"github.com/webshoplab/orders/internal/domain/model"
)

// CreditCall records one credit mutation issued by the saga.
type CreditCall struct {
	IdempotencyKey string
	CustomerID     string
	Amount         float64
}

// StockCall records one stock mutation issued by the saga.
type StockCall struct {
	IdempotencyKey string
	ProductID      string
	Quantity       int64
}

// SweepCall records one timeout sweep issued by the saga.
type SweepCall struct {
	From      model.State
	To        model.State
	OlderThan time.Duration
}

// SagaFacadeStub mimics the saga worker's view of the application: order
// claiming plus remote credit and stock calls. Orders queued in NewOrders
// and UndoOrders are handed out one per claim.
type SagaFacadeStub struct {
	NewOrders  []*model.Order
	UndoOrders []*model.Order
	Products   map[string]*model.Product

	ClaimFn    func(context.Context, model.State, model.State) (*model.Order, error)
	SweepFn    func(context.Context, model.State, model.State, time.Duration) (int64, error)
	SetStateFn func(context.Context, string, model.State, model.State) error
	FetchFn    func(context.Context, string) (*model.Product, error)
	CreditFn   func(context.Context, string, string, float64) error
	StockFn    func(context.Context, string, string, int64) error

	Changes        []StateChange
	CreditCalls    []CreditCall
	StockCalls     []StockCall
	UndoCreditKeys []string
	UndoStockKeys  []string
	Sweeps         []SweepCall

	mu sync.Mutex
}

// Lock exposes internal mutex for external synchronization.
func (s *SagaFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *SagaFacadeStub) Unlock() { s.mu.Unlock() }

// ClaimOldest pops the next queued order for the requested state.
func (s *SagaFacadeStub) ClaimOldest(ctx context.Context, from, to model.State) (*model.Order, error) {
	if s.ClaimFn != nil {
		return s.ClaimFn(ctx, from, to)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var queue *[]*model.Order
	switch from {
	case model.StateNew:
		queue = &s.NewOrders
	case model.StateReadyForUndo:
		queue = &s.UndoOrders
	default:
		return nil, domainErrors.ErrNoneEligible
	}
	if len(*queue) == 0 {
		return nil, domainErrors.ErrNoneEligible
	}
	order := (*queue)[0]
	*queue = (*queue)[1:]
	order.State = to
	return order, nil
}

// SweepExpired records the sweep and reports nothing expired.
func (s *SagaFacadeStub) SweepExpired(ctx context.Context, from, to model.State, olderThan time.Duration) (int64, error) {
	if s.SweepFn != nil {
		return s.SweepFn(ctx, from, to, olderThan)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sweeps = append(s.Sweeps, SweepCall{From: from, To: to, OlderThan: olderThan})
	return 0, nil
}

// SetOrderState records the transition. An order rejected into
// READY_FOR_UNDO is queued for the undo phase like the store would.
func (s *SagaFacadeStub) SetOrderState(ctx context.Context, id string, from, to model.State) error {
	if s.SetStateFn != nil {
		return s.SetStateFn(ctx, id, from, to)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Changes = append(s.Changes, StateChange{OrderID: id, From: from, To: to})
	if to == model.StateReadyForUndo {
		s.UndoOrders = append(s.UndoOrders, &model.Order{ID: id, State: to})
	}
	return nil
}

// FetchProduct returns the configured product or not found.
func (s *SagaFacadeStub) FetchProduct(ctx context.Context, productID string) (*model.Product, error) {
	if s.FetchFn != nil {
		return s.FetchFn(ctx, productID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Products != nil {
		if product, ok := s.Products[productID]; ok {
			return product, nil
		}
		return nil, domainErrors.ErrNotFound
	}
	return &model.Product{ID: productID, Price: 1}, nil
}

// DecrementCredit records the debit.
func (s *SagaFacadeStub) DecrementCredit(ctx context.Context, idempotencyKey, customerID string, amount float64) error {
	if s.CreditFn != nil {
		return s.CreditFn(ctx, idempotencyKey, customerID, amount)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CreditCalls = append(s.CreditCalls, CreditCall{IdempotencyKey: idempotencyKey, CustomerID: customerID, Amount: amount})
	return nil
}

// UndoDecrementCredit records the compensation key.
func (s *SagaFacadeStub) UndoDecrementCredit(ctx context.Context, idempotencyKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.UndoCreditKeys = append(s.UndoCreditKeys, idempotencyKey)
	return nil
}

// DecrementStock records the stock decrement.
func (s *SagaFacadeStub) DecrementStock(ctx context.Context, idempotencyKey, productID string, quantity int64) error {
	if s.StockFn != nil {
		return s.StockFn(ctx, idempotencyKey, productID, quantity)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.StockCalls = append(s.StockCalls, StockCall{IdempotencyKey: idempotencyKey, ProductID: productID, Quantity: quantity})
	return nil
}

// UndoDecrementStock records the compensation key.
func (s *SagaFacadeStub) UndoDecrementStock(ctx context.Context, idempotencyKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.UndoStockKeys = append(s.UndoStockKeys, idempotencyKey)
	return nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn  func(context.Context, string, string, []model.CartItem) (*model.Order, bool, error)
	GetFn     func(context.Context, string) (*model.Order, error)
	ListIDsFn func(context.Context) ([]string, error)
	DeleteFn  func(context.Context, string) error
}

// CreateOrder delegates to the provided function or returns a default order.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, idempotencyKey, customerID string, cart []model.CartItem) (*model.Order, bool, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, idempotencyKey, customerID, cart)
	}
	return &model.Order{ID: "order-1", IdempotencyKey: idempotencyKey, CustomerID: customerID, CartContent: cart, State: model.StateNew}, true, nil
}

// Order returns the configured order.
func (s OrderFacadeStub) Order(ctx context.Context, id string) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return &model.Order{ID: id, State: model.StateNew}, nil
}

// OrderIDs returns predefined ids.
func (s OrderFacadeStub) OrderIDs(ctx context.Context) ([]string, error) {
	if s.ListIDsFn != nil {
		return s.ListIDsFn(ctx)
	}
	return []string{"order-1"}, nil
}

// DeleteOrder executes the configured handler.
func (s OrderFacadeStub) DeleteOrder(ctx context.Context, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// IncrementFacadeStub simulates the idempotent increment operations.
type IncrementFacadeStub struct {
	IncrementFn func(context.Context, model.IncrementRequest) (int64, error)
	UndoFn      func(context.Context, string) (int64, error)
}

// Increment delegates to the override or reports one modified entity.
func (s IncrementFacadeStub) Increment(ctx context.Context, req model.IncrementRequest) (int64, error) {
	if s.IncrementFn != nil {
		return s.IncrementFn(ctx, req)
	}
	return 1, nil
}

// UndoIncrement delegates to the override or reports one reversed record.
func (s IncrementFacadeStub) UndoIncrement(ctx context.Context, idempotencyKey string) (int64, error) {
	if s.UndoFn != nil {
		return s.UndoFn(ctx, idempotencyKey)
	}
	return 1, nil
}

// CustomerFacadeStub provides controllable behaviour for customer endpoints.
type CustomerFacadeStub struct {
	IncrementFacadeStub

	CreateFn  func(context.Context, string, string, float64) (*model.Customer, bool, error)
	GetFn     func(context.Context, string) (*model.Customer, error)
	ListIDsFn func(context.Context) ([]string, error)
	DeleteFn  func(context.Context, string) error
}

// CreateCustomer delegates to the override or returns a default customer.
func (s CustomerFacadeStub) CreateCustomer(ctx context.Context, idempotencyKey, name string, credit float64) (*model.Customer, bool, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, idempotencyKey, name, credit)
	}
	return &model.Customer{ID: "customer-1", IdempotencyKey: idempotencyKey, Name: name, Credit: credit}, true, nil
}

// Customer returns the configured customer.
func (s CustomerFacadeStub) Customer(ctx context.Context, id string) (*model.Customer, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return &model.Customer{ID: id, Name: "customer", Credit: 100}, nil
}

// CustomerIDs returns predefined ids.
func (s CustomerFacadeStub) CustomerIDs(ctx context.Context) ([]string, error) {
	if s.ListIDsFn != nil {
		return s.ListIDsFn(ctx)
	}
	return []string{"customer-1"}, nil
}

// DeleteCustomer executes the configured handler.
func (s CustomerFacadeStub) DeleteCustomer(ctx context.Context, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// ProductFacadeStub provides controllable behaviour for product endpoints.
type ProductFacadeStub struct {
	IncrementFacadeStub

	CreateFn  func(context.Context, string, string, float64, int64) (*model.Product, bool, error)
	GetFn     func(context.Context, string) (*model.Product, error)
	ListIDsFn func(context.Context) ([]string, error)
	DeleteFn  func(context.Context, string) error
}

// CreateProduct delegates to the override or returns a default product.
func (s ProductFacadeStub) CreateProduct(ctx context.Context, idempotencyKey, name string, price float64, quantity int64) (*model.Product, bool, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, idempotencyKey, name, price, quantity)
	}
	return &model.Product{ID: "product-1", IdempotencyKey: idempotencyKey, Name: name, Price: price, Quantity: quantity}, true, nil
}

// Product returns the configured product.
func (s ProductFacadeStub) Product(ctx context.Context, id string) (*model.Product, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return &model.Product{ID: id, Name: "product", Price: 10, Quantity: 5}, nil
}

// ProductIDs returns predefined ids.
func (s ProductFacadeStub) ProductIDs(ctx context.Context) ([]string, error) {
	if s.ListIDsFn != nil {
		return s.ListIDsFn(ctx)
	}
	return []string{"product-1"}, nil
}

// DeleteProduct executes the configured handler.
func (s ProductFacadeStub) DeleteProduct(ctx context.Context, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}
