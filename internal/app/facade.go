package app

import (
	"context"
	"time"

	"github.com/webshoplab/orders/internal/domain/model"
	"github.com/webshoplab/orders/internal/usecase"
)

// CreditGateway is the customer service surface the saga needs.
type CreditGateway interface {
	DecrementCredit(ctx context.Context, idempotencyKey, customerID string, amount float64) error
	UndoDecrementCredit(ctx context.Context, idempotencyKey string) error
}

// StockGateway is the product service surface the saga needs.
type StockGateway interface {
	Fetch(ctx context.Context, productID string) (*model.Product, error)
	DecrementStock(ctx context.Context, idempotencyKey, productID string, quantity int64) error
	UndoDecrementStock(ctx context.Context, idempotencyKey string) error
}

// FulfillmentFacade aggregates everything the order service exposes: the
// inbound order CRUD used by handlers and the claim/remote-mutation surface
// the saga worker drives.
type FulfillmentFacade struct {
	orders *usecase.OrderUseCase
	credit CreditGateway
	stock  StockGateway
}

func NewFulfillmentFacade(orders *usecase.OrderUseCase, credit CreditGateway, stock StockGateway) *FulfillmentFacade {
	return &FulfillmentFacade{orders: orders, credit: credit, stock: stock}
}

func (f *FulfillmentFacade) CreateOrder(ctx context.Context, idempotencyKey, customerID string, cart []model.CartItem) (*model.Order, bool, error) {
	return f.orders.Create(ctx, idempotencyKey, customerID, cart)
}

func (f *FulfillmentFacade) Order(ctx context.Context, id string) (*model.Order, error) {
	return f.orders.Get(ctx, id)
}

func (f *FulfillmentFacade) OrderIDs(ctx context.Context) ([]string, error) {
	return f.orders.ListIDs(ctx)
}

func (f *FulfillmentFacade) DeleteOrder(ctx context.Context, id string) error {
	return f.orders.Delete(ctx, id)
}

func (f *FulfillmentFacade) ClaimOldest(ctx context.Context, from, to model.State) (*model.Order, error) {
	return f.orders.ClaimOldest(ctx, from, to)
}

func (f *FulfillmentFacade) SweepExpired(ctx context.Context, from, to model.State, olderThan time.Duration) (int64, error) {
	return f.orders.SweepExpired(ctx, from, to, olderThan)
}

func (f *FulfillmentFacade) SetOrderState(ctx context.Context, id string, from, to model.State) error {
	return f.orders.SetState(ctx, id, from, to)
}

func (f *FulfillmentFacade) FetchProduct(ctx context.Context, productID string) (*model.Product, error) {
	return f.stock.Fetch(ctx, productID)
}

func (f *FulfillmentFacade) DecrementCredit(ctx context.Context, idempotencyKey, customerID string, amount float64) error {
	return f.credit.DecrementCredit(ctx, idempotencyKey, customerID, amount)
}

func (f *FulfillmentFacade) UndoDecrementCredit(ctx context.Context, idempotencyKey string) error {
	return f.credit.UndoDecrementCredit(ctx, idempotencyKey)
}

func (f *FulfillmentFacade) DecrementStock(ctx context.Context, idempotencyKey, productID string, quantity int64) error {
	return f.stock.DecrementStock(ctx, idempotencyKey, productID, quantity)
}

func (f *FulfillmentFacade) UndoDecrementStock(ctx context.Context, idempotencyKey string) error {
	return f.stock.UndoDecrementStock(ctx, idempotencyKey)
}

// CustomerServiceFacade aggregates the customer service operations.
type CustomerServiceFacade struct {
	customers  *usecase.CustomerUseCase
	increments *usecase.IncrementUseCase
}

func NewCustomerServiceFacade(customers *usecase.CustomerUseCase, increments *usecase.IncrementUseCase) *CustomerServiceFacade {
	return &CustomerServiceFacade{customers: customers, increments: increments}
}

func (f *CustomerServiceFacade) CreateCustomer(ctx context.Context, idempotencyKey, name string, credit float64) (*model.Customer, bool, error) {
	return f.customers.Create(ctx, idempotencyKey, name, credit)
}

func (f *CustomerServiceFacade) Customer(ctx context.Context, id string) (*model.Customer, error) {
	return f.customers.Get(ctx, id)
}

func (f *CustomerServiceFacade) CustomerIDs(ctx context.Context) ([]string, error) {
	return f.customers.ListIDs(ctx)
}

func (f *CustomerServiceFacade) DeleteCustomer(ctx context.Context, id string) error {
	return f.customers.Delete(ctx, id)
}

func (f *CustomerServiceFacade) Increment(ctx context.Context, req model.IncrementRequest) (int64, error) {
	return f.increments.Increment(ctx, req)
}

func (f *CustomerServiceFacade) UndoIncrement(ctx context.Context, idempotencyKey string) (int64, error) {
	return f.increments.UndoIncrement(ctx, idempotencyKey)
}

// ProductServiceFacade aggregates the product service operations.
type ProductServiceFacade struct {
	products   *usecase.ProductUseCase
	increments *usecase.IncrementUseCase
}

func NewProductServiceFacade(products *usecase.ProductUseCase, increments *usecase.IncrementUseCase) *ProductServiceFacade {
	return &ProductServiceFacade{products: products, increments: increments}
}

func (f *ProductServiceFacade) CreateProduct(ctx context.Context, idempotencyKey, name string, price float64, quantity int64) (*model.Product, bool, error) {
	return f.products.Create(ctx, idempotencyKey, name, price, quantity)
}

func (f *ProductServiceFacade) Product(ctx context.Context, id string) (*model.Product, error) {
	return f.products.Get(ctx, id)
}

func (f *ProductServiceFacade) ProductIDs(ctx context.Context) ([]string, error) {
	return f.products.ListIDs(ctx)
}

func (f *ProductServiceFacade) DeleteProduct(ctx context.Context, id string) error {
	return f.products.Delete(ctx, id)
}

func (f *ProductServiceFacade) Increment(ctx context.Context, req model.IncrementRequest) (int64, error) {
	return f.increments.Increment(ctx, req)
}

func (f *ProductServiceFacade) UndoIncrement(ctx context.Context, idempotencyKey string) (int64, error) {
	return f.increments.UndoIncrement(ctx, idempotencyKey)
}
