package app

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/webshoplab/orders/internal/domain/errors"
	"github.com/webshoplab/orders/internal/domain/model"
	"github.com/webshoplab/orders/internal/server/http/handlers"
	testhelpers "github.com/webshoplab/orders/internal/test"
	"github.com/webshoplab/orders/internal/usecase"
	"github.com/webshoplab/orders/internal/worker"
)

type creditGatewayStub struct {
	Calls    []testhelpers.CreditCall
	UndoKeys []string
	Err      error
}

func (s *creditGatewayStub) DecrementCredit(ctx context.Context, idempotencyKey, customerID string, amount float64) error {
	if s.Err != nil {
		return s.Err
	}
	s.Calls = append(s.Calls, testhelpers.CreditCall{IdempotencyKey: idempotencyKey, CustomerID: customerID, Amount: amount})
	return nil
}

func (s *creditGatewayStub) UndoDecrementCredit(ctx context.Context, idempotencyKey string) error {
	if s.Err != nil {
		return s.Err
	}
	s.UndoKeys = append(s.UndoKeys, idempotencyKey)
	return nil
}

type stockGatewayStub struct {
	Products map[string]*model.Product
	Calls    []testhelpers.StockCall
	UndoKeys []string
	Err      error
}

func (s *stockGatewayStub) Fetch(ctx context.Context, productID string) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if product, ok := s.Products[productID]; ok {
		return product, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *stockGatewayStub) DecrementStock(ctx context.Context, idempotencyKey, productID string, quantity int64) error {
	if s.Err != nil {
		return s.Err
	}
	s.Calls = append(s.Calls, testhelpers.StockCall{IdempotencyKey: idempotencyKey, ProductID: productID, Quantity: quantity})
	return nil
}

func (s *stockGatewayStub) UndoDecrementStock(ctx context.Context, idempotencyKey string) error {
	if s.Err != nil {
		return s.Err
	}
	s.UndoKeys = append(s.UndoKeys, idempotencyKey)
	return nil
}

func newFulfillment() (*FulfillmentFacade, *testhelpers.OrderRepositoryStub, *creditGatewayStub, *stockGatewayStub) {
	repo := &testhelpers.OrderRepositoryStub{}
	credit := &creditGatewayStub{}
	stock := &stockGatewayStub{Products: map[string]*model.Product{
		"p1": {ID: "p1", Name: "widget", Price: 9.5, Quantity: 20},
	}}
	facade := NewFulfillmentFacade(usecase.NewOrderUseCase(repo), credit, stock)
	return facade, repo, credit, stock
}

func TestFulfillmentFacadeOrders(t *testing.T) {
	facade, repo, _, _ := newFulfillment()

	cart := []model.CartItem{{ProductID: "p1", Quantity: 2}}
	order, created, err := facade.CreateOrder(context.Background(), "key-1", "customer-1", cart)
	if err != nil || !created {
		t.Fatalf("unexpected create result: created=%v err=%v", created, err)
	}

	fetched, err := facade.Order(context.Background(), order.ID)
	if err != nil || fetched.CustomerID != "customer-1" {
		t.Fatalf("unexpected fetch result: order=%+v err=%v", fetched, err)
	}

	ids, err := facade.OrderIDs(context.Background())
	if err != nil || len(ids) != 1 {
		t.Fatalf("expected one id, got %v err=%v", ids, err)
	}

	if err := facade.DeleteOrder(context.Background(), order.ID); err != nil {
		t.Fatalf("delete returned error: %v", err)
	}
	if len(repo.Deleted) != 1 || repo.Deleted[0] != order.ID {
		t.Fatalf("expected recorded deletion, got %v", repo.Deleted)
	}
}

func TestFulfillmentFacadeSaga(t *testing.T) {
	facade, repo, credit, stock := newFulfillment()
	repo.Orders = []model.Order{{ID: "order-1", State: model.StateNew}}

	claimed, err := facade.ClaimOldest(context.Background(), model.StateNew, model.StateInProgress)
	if err != nil || claimed.ID != "order-1" {
		t.Fatalf("unexpected claim result: order=%+v err=%v", claimed, err)
	}

	if err := facade.SetOrderState(context.Background(), "order-1", model.StateInProgress, model.StateApproved); err != nil {
		t.Fatalf("set state returned error: %v", err)
	}
	if len(repo.Changes) != 1 {
		t.Fatalf("expected recorded state change, got %+v", repo.Changes)
	}

	repo.SweepFn = func(ctx context.Context, from, to model.State, olderThan time.Duration) (int64, error) {
		return 3, nil
	}
	count, err := facade.SweepExpired(context.Background(), model.StateInProgress, model.StateNew, 10*time.Second)
	if err != nil || count != 3 {
		t.Fatalf("unexpected sweep result: count=%d err=%v", count, err)
	}

	product, err := facade.FetchProduct(context.Background(), "p1")
	if err != nil || product.Price != 9.5 {
		t.Fatalf("unexpected product: %+v err=%v", product, err)
	}
	if _, err := facade.FetchProduct(context.Background(), "ghost"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := facade.DecrementCredit(context.Background(), "order-1", "customer-1", 19); err != nil {
		t.Fatalf("decrement credit returned error: %v", err)
	}
	if len(credit.Calls) != 1 || credit.Calls[0].Amount != 19 {
		t.Fatalf("expected recorded credit call, got %+v", credit.Calls)
	}

	if err := facade.UndoDecrementCredit(context.Background(), "order-1"); err != nil {
		t.Fatalf("undo credit returned error: %v", err)
	}
	if len(credit.UndoKeys) != 1 || credit.UndoKeys[0] != "order-1" {
		t.Fatalf("expected recorded undo key, got %v", credit.UndoKeys)
	}

	if err := facade.DecrementStock(context.Background(), "order-1-p1", "p1", 2); err != nil {
		t.Fatalf("decrement stock returned error: %v", err)
	}
	if len(stock.Calls) != 1 || stock.Calls[0].Quantity != 2 {
		t.Fatalf("expected recorded stock call, got %+v", stock.Calls)
	}

	if err := facade.UndoDecrementStock(context.Background(), "order-1-p1"); err != nil {
		t.Fatalf("undo stock returned error: %v", err)
	}
	if len(stock.UndoKeys) != 1 || stock.UndoKeys[0] != "order-1-p1" {
		t.Fatalf("expected recorded undo key, got %v", stock.UndoKeys)
	}
}

func TestCustomerServiceFacade(t *testing.T) {
	customers := &testhelpers.CustomerRepositoryStub{}
	increments := &testhelpers.IncrementRepositoryStub{}
	facade := NewCustomerServiceFacade(usecase.NewCustomerUseCase(customers), usecase.NewIncrementUseCase(increments))

	customer, created, err := facade.CreateCustomer(context.Background(), "key-1", "alice", 100)
	if err != nil || !created {
		t.Fatalf("unexpected create result: created=%v err=%v", created, err)
	}

	fetched, err := facade.Customer(context.Background(), customer.ID)
	if err != nil || fetched.Name != "alice" {
		t.Fatalf("unexpected fetch result: customer=%+v err=%v", fetched, err)
	}

	ids, err := facade.CustomerIDs(context.Background())
	if err != nil || len(ids) != 1 {
		t.Fatalf("expected one id, got %v err=%v", ids, err)
	}

	modified, err := facade.Increment(context.Background(), model.IncrementRequest{
		IdempotencyKey: "order-1",
		EntityID:       customer.ID,
		Increment:      -25,
	})
	if err != nil || modified != 1 {
		t.Fatalf("unexpected increment result: modified=%d err=%v", modified, err)
	}
	if len(increments.Calls) != 1 || increments.Calls[0].Request.Increment != -25 {
		t.Fatalf("expected recorded increment, got %+v", increments.Calls)
	}

	modified, err = facade.UndoIncrement(context.Background(), "order-1")
	if err != nil || modified != 1 {
		t.Fatalf("unexpected undo result: modified=%d err=%v", modified, err)
	}

	if err := facade.DeleteCustomer(context.Background(), customer.ID); err != nil {
		t.Fatalf("delete returned error: %v", err)
	}
	if len(customers.Deleted) != 1 {
		t.Fatalf("expected recorded deletion, got %v", customers.Deleted)
	}
}

func TestProductServiceFacade(t *testing.T) {
	products := &testhelpers.ProductRepositoryStub{}
	increments := &testhelpers.IncrementRepositoryStub{}
	facade := NewProductServiceFacade(usecase.NewProductUseCase(products), usecase.NewIncrementUseCase(increments))

	product, created, err := facade.CreateProduct(context.Background(), "key-1", "widget", 9.5, 20)
	if err != nil || !created {
		t.Fatalf("unexpected create result: created=%v err=%v", created, err)
	}

	fetched, err := facade.Product(context.Background(), product.ID)
	if err != nil || fetched.Quantity != 20 {
		t.Fatalf("unexpected fetch result: product=%+v err=%v", fetched, err)
	}

	modified, err := facade.Increment(context.Background(), model.IncrementRequest{
		IdempotencyKey: "order-1-p1",
		EntityID:       product.ID,
		Increment:      -2,
	})
	if err != nil || modified != 1 {
		t.Fatalf("unexpected increment result: modified=%d err=%v", modified, err)
	}

	ids, err := facade.ProductIDs(context.Background())
	if err != nil || len(ids) != 1 {
		t.Fatalf("expected one id, got %v err=%v", ids, err)
	}

	if err := facade.DeleteProduct(context.Background(), product.ID); err != nil {
		t.Fatalf("delete returned error: %v", err)
	}
}

var _ worker.SagaFacade = (*FulfillmentFacade)(nil)
var _ handlers.OrderFacade = (*FulfillmentFacade)(nil)
var _ handlers.CustomerFacade = (*CustomerServiceFacade)(nil)
var _ handlers.ProductFacade = (*ProductServiceFacade)(nil)
