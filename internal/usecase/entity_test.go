package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/webshoplab/orders/internal/domain/errors"
	"github.com/webshoplab/orders/internal/domain/model"
	testhelpers "github.com/webshoplab/orders/internal/test"
)

func TestCustomerCreate(t *testing.T) {
	repo := &testhelpers.CustomerRepositoryStub{}
	uc := NewCustomerUseCase(repo)

	if _, _, err := uc.Create(context.Background(), "", "alice", 10); !errors.Is(err, domainErrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
	if _, _, err := uc.Create(context.Background(), "key-1", "", 10); !errors.Is(err, domainErrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
	if _, _, err := uc.Create(context.Background(), "key-1", "alice", -5); !errors.Is(err, domainErrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}

	key := testhelpers.RandomIdempotencyKey()
	customer, created, err := uc.Create(context.Background(), key, "alice", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created || customer.Name != "alice" {
		t.Fatalf("unexpected result: created=%v customer=%+v", created, customer)
	}

	again, created, err := uc.Create(context.Background(), key, "alice", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created || again.ID != customer.ID {
		t.Fatalf("expected deduplicated creation, got created=%v id=%q", created, again.ID)
	}
}

func TestProductCreate(t *testing.T) {
	repo := &testhelpers.ProductRepositoryStub{}
	uc := NewProductUseCase(repo)

	if _, _, err := uc.Create(context.Background(), "key-1", "widget", -1, 5); !errors.Is(err, domainErrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
	if _, _, err := uc.Create(context.Background(), "key-1", "widget", 1, -5); !errors.Is(err, domainErrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}

	name := testhelpers.RandomName("widget")
	product, created, err := uc.Create(context.Background(), "key-1", name, 9.5, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created || product.Name != name || product.Price != 9.5 || product.Quantity != 5 {
		t.Fatalf("unexpected result: created=%v product=%+v", created, product)
	}
}

func TestEntityGetAndDelete(t *testing.T) {
	repo := &testhelpers.CustomerRepositoryStub{
		Customers: []model.Customer{{ID: "customer-1", Name: "alice"}},
	}
	uc := NewCustomerUseCase(repo)

	if _, err := uc.Get(context.Background(), ""); !errors.Is(err, domainErrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
	if _, err := uc.Get(context.Background(), "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	customer, err := uc.Get(context.Background(), "customer-1")
	if err != nil || customer.Name != "alice" {
		t.Fatalf("unexpected result: customer=%+v err=%v", customer, err)
	}

	if err := uc.Delete(context.Background(), "customer-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.Deleted) != 1 || repo.Deleted[0] != "customer-1" {
		t.Fatalf("expected recorded deletion, got %v", repo.Deleted)
	}
}

func TestIncrementValidation(t *testing.T) {
	uc := NewIncrementUseCase(&testhelpers.IncrementRepositoryStub{})

	_, err := uc.Increment(context.Background(), model.IncrementRequest{EntityID: "customer-1", Increment: 5})
	if !errors.Is(err, domainErrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}

	_, err = uc.Increment(context.Background(), model.IncrementRequest{IdempotencyKey: "key-1", Increment: 5})
	if !errors.Is(err, domainErrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}

	_, err = uc.UndoIncrement(context.Background(), "")
	if !errors.Is(err, domainErrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
}

func TestIncrementDelegation(t *testing.T) {
	repo := &testhelpers.IncrementRepositoryStub{}
	uc := NewIncrementUseCase(repo)

	modified, err := uc.Increment(context.Background(), model.IncrementRequest{
		IdempotencyKey: "key-1",
		EntityID:       "customer-1",
		Increment:      -25,
	})
	if err != nil || modified != 1 {
		t.Fatalf("unexpected result: modified=%d err=%v", modified, err)
	}
	if len(repo.Calls) != 1 || repo.Calls[0].Request.IdempotencyKey != "key-1" {
		t.Fatalf("expected recorded call, got %+v", repo.Calls)
	}

	modified, err = uc.UndoIncrement(context.Background(), "key-1")
	if err != nil || modified != 1 {
		t.Fatalf("unexpected result: modified=%d err=%v", modified, err)
	}
	if len(repo.UndoKeys) != 1 || repo.UndoKeys[0] != "key-1" {
		t.Fatalf("expected recorded undo, got %v", repo.UndoKeys)
	}
}
