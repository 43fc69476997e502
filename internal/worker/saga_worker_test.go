package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/webshoplab/orders/internal/adapter/remote"
	"github.com/webshoplab/orders/internal/domain/model"
	testhelpers "github.com/webshoplab/orders/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestSagaWorkerApprovesOrder(t *testing.T) {
	facade := &testhelpers.SagaFacadeStub{
		NewOrders: []*model.Order{{
			ID:         "order-1",
			CustomerID: "customer-1",
			CartContent: []model.CartItem{
				{ProductID: "p1", Quantity: 2},
				{ProductID: "p2", Quantity: 1},
			},
			State: model.StateNew,
		}},
		Products: map[string]*model.Product{
			"p1": {ID: "p1", Price: 3},
			"p2": {ID: "p2", Price: 4},
		},
	}
	w := NewSagaWorker(facade, time.Second, 10*time.Second, discardLogger())

	w.runCycle(context.Background())

	if len(facade.CreditCalls) != 1 {
		t.Fatalf("expected one credit call, got %d", len(facade.CreditCalls))
	}
	credit := facade.CreditCalls[0]
	if credit.IdempotencyKey != "order-1" || credit.CustomerID != "customer-1" {
		t.Fatalf("unexpected credit call: %+v", credit)
	}
	if credit.Amount != 10 {
		t.Fatalf("expected cart total 10, got %v", credit.Amount)
	}

	if len(facade.StockCalls) != 2 {
		t.Fatalf("expected two stock calls, got %d", len(facade.StockCalls))
	}
	if facade.StockCalls[0].IdempotencyKey != "order-1-p1" || facade.StockCalls[0].Quantity != 2 {
		t.Fatalf("unexpected stock call: %+v", facade.StockCalls[0])
	}
	if facade.StockCalls[1].IdempotencyKey != "order-1-p2" || facade.StockCalls[1].Quantity != 1 {
		t.Fatalf("unexpected stock call: %+v", facade.StockCalls[1])
	}

	if len(facade.Changes) != 1 {
		t.Fatalf("expected one state change, got %+v", facade.Changes)
	}
	change := facade.Changes[0]
	if change.From != model.StateInProgress || change.To != model.StateApproved {
		t.Fatalf("expected IN_PROGRESS to APPROVED, got %+v", change)
	}
}

func TestSagaWorkerRejectsOnInsufficientCredit(t *testing.T) {
	facade := &testhelpers.SagaFacadeStub{
		NewOrders: []*model.Order{{
			ID:          "order-1",
			CustomerID:  "customer-1",
			CartContent: []model.CartItem{{ProductID: "p1", Quantity: 1}},
			State:       model.StateNew,
		}},
		CreditFn: func(context.Context, string, string, float64) error {
			return remote.RejectedError{Status: 400, Body: "insufficient credit"}
		},
	}
	w := NewSagaWorker(facade, time.Second, 10*time.Second, discardLogger())

	// One cycle carries the rejected order all the way to REJECTED: the
	// reject transition queues it for the undo phase of the same cycle.
	w.runCycle(context.Background())

	if len(facade.Changes) != 2 {
		t.Fatalf("expected two state changes, got %+v", facade.Changes)
	}
	if facade.Changes[0].From != model.StateInProgress || facade.Changes[0].To != model.StateReadyForUndo {
		t.Fatalf("expected rejection transition, got %+v", facade.Changes[0])
	}
	if facade.Changes[1].From != model.StateUndo || facade.Changes[1].To != model.StateRejected {
		t.Fatalf("expected undo completion, got %+v", facade.Changes[1])
	}
	if len(facade.UndoCreditKeys) != 1 || facade.UndoCreditKeys[0] != "order-1" {
		t.Fatalf("expected credit compensation for order-1, got %v", facade.UndoCreditKeys)
	}
}

func TestSagaWorkerRejectsMissingProduct(t *testing.T) {
	facade := &testhelpers.SagaFacadeStub{
		NewOrders: []*model.Order{{
			ID:          "order-1",
			CustomerID:  "customer-1",
			CartContent: []model.CartItem{{ProductID: "ghost", Quantity: 1}},
			State:       model.StateNew,
		}},
		Products: map[string]*model.Product{},
	}
	w := NewSagaWorker(facade, time.Second, 10*time.Second, discardLogger())

	w.runCycle(context.Background())

	if len(facade.CreditCalls) != 0 {
		t.Fatalf("expected no credit call for unknown product, got %+v", facade.CreditCalls)
	}
	if len(facade.Changes) == 0 || facade.Changes[0].To != model.StateReadyForUndo {
		t.Fatalf("expected rejection transition, got %+v", facade.Changes)
	}
}

func TestSagaWorkerUndoUsesRecordedKeys(t *testing.T) {
	facade := &testhelpers.SagaFacadeStub{
		UndoOrders: []*model.Order{{
			ID:         "order-1",
			CustomerID: "customer-1",
			CartContent: []model.CartItem{
				{ProductID: "p1", Quantity: 2},
				{ProductID: "p2", Quantity: 1},
			},
			State: model.StateReadyForUndo,
		}},
	}
	w := NewSagaWorker(facade, time.Second, 10*time.Second, discardLogger())

	w.runCycle(context.Background())

	if len(facade.UndoCreditKeys) != 1 || facade.UndoCreditKeys[0] != "order-1" {
		t.Fatalf("expected credit compensation, got %v", facade.UndoCreditKeys)
	}
	if len(facade.UndoStockKeys) != 2 || facade.UndoStockKeys[0] != "order-1-p1" || facade.UndoStockKeys[1] != "order-1-p2" {
		t.Fatalf("expected per line stock compensation, got %v", facade.UndoStockKeys)
	}
	if len(facade.Changes) != 1 || facade.Changes[0].From != model.StateUndo || facade.Changes[0].To != model.StateRejected {
		t.Fatalf("expected UNDO to REJECTED, got %+v", facade.Changes)
	}
}

func TestSagaWorkerSweepsBothPhases(t *testing.T) {
	facade := &testhelpers.SagaFacadeStub{}
	w := NewSagaWorker(facade, time.Second, 10*time.Second, discardLogger())

	w.runCycle(context.Background())

	if len(facade.Sweeps) != 2 {
		t.Fatalf("expected two sweeps per cycle, got %+v", facade.Sweeps)
	}
	first, second := facade.Sweeps[0], facade.Sweeps[1]
	if first.From != model.StateInProgress || first.To != model.StateNew {
		t.Fatalf("expected IN_PROGRESS sweep back to NEW, got %+v", first)
	}
	if second.From != model.StateUndo || second.To != model.StateReadyForUndo {
		t.Fatalf("expected UNDO sweep back to READY_FOR_UNDO, got %+v", second)
	}
	if first.OlderThan != 10*time.Second || second.OlderThan != 10*time.Second {
		t.Fatalf("expected processing timeout cutoff, got %+v", facade.Sweeps)
	}
}

func TestSagaWorkerCycleEndsOnTransientError(t *testing.T) {
	boom := errors.New("connection refused")
	facade := &testhelpers.SagaFacadeStub{
		ClaimFn: func(context.Context, model.State, model.State) (*model.Order, error) {
			return nil, boom
		},
	}
	w := NewSagaWorker(facade, time.Second, 10*time.Second, discardLogger())

	w.runCycle(context.Background())

	if len(facade.Sweeps) != 0 {
		t.Fatalf("expected cycle to end before sweeping, got %+v", facade.Sweeps)
	}
}

func TestSagaWorkerStartStop(t *testing.T) {
	facade := &testhelpers.SagaFacadeStub{
		NewOrders: []*model.Order{{
			ID:          "order-1",
			CustomerID:  "customer-1",
			CartContent: []model.CartItem{{ProductID: "p1", Quantity: 1}},
			State:       model.StateNew,
		}},
	}
	w := NewSagaWorker(facade, 10*time.Millisecond, 10*time.Second, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for {
		facade.Lock()
		processed := len(facade.Changes) > 0
		facade.Unlock()
		if processed {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for order processing")
		case <-time.After(10 * time.Millisecond):
		}
	}

	w.Stop()

	facade.Lock()
	defer facade.Unlock()
	if facade.Changes[0].To != model.StateApproved {
		t.Fatalf("expected order approved, got %+v", facade.Changes[0])
	}
}

func TestNewSagaWorkerDefaults(t *testing.T) {
	w := NewSagaWorker(&testhelpers.SagaFacadeStub{}, 0, 10*time.Second, discardLogger())
	if w.pollInterval != time.Second {
		t.Fatalf("expected poll interval default to 1s, got %v", w.pollInterval)
	}
}
