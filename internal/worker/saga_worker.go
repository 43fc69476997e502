package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/webshoplab/orders/internal/adapter/remote"
	domainErrors "github.com/webshoplab/orders/internal/domain/errors"
	"github.com/webshoplab/orders/internal/domain/model"
)

// SagaFacade exposes the subset of application functionality the saga
// worker drives: order claiming and state bookkeeping plus the remote
// credit and stock mutations.
type SagaFacade interface {
	ClaimOldest(ctx context.Context, from, to model.State) (*model.Order, error)
	SweepExpired(ctx context.Context, from, to model.State, olderThan time.Duration) (int64, error)
	SetOrderState(ctx context.Context, id string, from, to model.State) error

	FetchProduct(ctx context.Context, productID string) (*model.Product, error)
	DecrementCredit(ctx context.Context, idempotencyKey, customerID string, amount float64) error
	UndoDecrementCredit(ctx context.Context, idempotencyKey string) error
	DecrementStock(ctx context.Context, idempotencyKey, productID string, quantity int64) error
	UndoDecrementStock(ctx context.Context, idempotencyKey string) error
}

// SagaWorker is the single cooperative loop advancing orders through the
// fulfillment state machine. One order is processed at a time; crashed or
// stalled runs are recovered by the timeout sweeps of a later cycle.
type SagaWorker struct {
	facade            SagaFacade
	pollInterval      time.Duration
	processingTimeout time.Duration
	logger            *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSagaWorker constructs the saga worker.
func NewSagaWorker(facade SagaFacade, pollInterval, processingTimeout time.Duration, logger *slog.Logger) *SagaWorker {
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &SagaWorker{
		facade:            facade,
		pollInterval:      pollInterval,
		processingTimeout: processingTimeout,
		logger:            logger,
	}
}

// Start launches background processing.
func (w *SagaWorker) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.wg.Add(1)
	go w.loop(runCtx)
}

// Stop waits for the loop to finish.
func (w *SagaWorker) Stop() {
	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *SagaWorker) loop(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.runCycle(ctx)
		}
	}
}

// runCycle executes the four saga phases in order. Any error ends the
// cycle early; the loop reschedules regardless of outcome.
func (w *SagaWorker) runCycle(ctx context.Context) {
	if err := w.advanceNewOrders(ctx); err != nil {
		w.logger.Error("advancing new orders failed", slog.String("error", err.Error()))
		return
	}

	if err := w.sweep(ctx, model.StateInProgress); err != nil {
		w.logger.Error("sweeping expired in-progress orders failed", slog.String("error", err.Error()))
		return
	}

	if err := w.advanceUndoOrders(ctx); err != nil {
		w.logger.Error("advancing undo orders failed", slog.String("error", err.Error()))
		return
	}

	if err := w.sweep(ctx, model.StateUndo); err != nil {
		w.logger.Error("sweeping expired undo orders failed", slog.String("error", err.Error()))
	}
}

// advanceNewOrders claims NEW orders one by one and runs the forward path:
// price the cart, debit credit, decrement stock per line.
func (w *SagaWorker) advanceNewOrders(ctx context.Context) error {
	for {
		order, err := w.claim(ctx, model.StateNew)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNoneEligible) {
				return nil
			}
			return err
		}

		if err := w.fulfill(ctx, order); err != nil {
			return err
		}
	}
}

func (w *SagaWorker) fulfill(ctx context.Context, order *model.Order) error {
	w.logger.Info("processing order", slog.String("order", order.ID))

	total := 0.0
	for _, item := range order.CartContent {
		product, err := w.facade.FetchProduct(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return w.reject(ctx, order, fmt.Sprintf("product %s does not exist", item.ProductID))
			}
			return err
		}
		total += product.Price * float64(item.Quantity)
	}

	// The credit debit uses the order id as idempotency key; every stock
	// decrement gets its own per-line key so the lines stay independently
	// idempotent.
	if err := w.facade.DecrementCredit(ctx, order.ID, order.CustomerID, total); err != nil {
		if isRejection(err) {
			return w.reject(ctx, order, err.Error())
		}
		return err
	}

	for _, item := range order.CartContent {
		err := w.facade.DecrementStock(ctx, lineKey(order.ID, item.ProductID), item.ProductID, item.Quantity)
		if err != nil {
			if isRejection(err) {
				return w.reject(ctx, order, err.Error())
			}
			return err
		}
	}

	return w.transition(ctx, order.ID, model.StateInProgress, model.TriggerCreditAndStockOK)
}

// advanceUndoOrders claims READY_FOR_UNDO orders and reverses the applied
// debits using the same idempotency keys as the forward path.
func (w *SagaWorker) advanceUndoOrders(ctx context.Context) error {
	for {
		order, err := w.claim(ctx, model.StateReadyForUndo)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNoneEligible) {
				return nil
			}
			return err
		}

		if err := w.undo(ctx, order); err != nil {
			return err
		}
	}
}

func (w *SagaWorker) undo(ctx context.Context, order *model.Order) error {
	w.logger.Info("undoing order", slog.String("order", order.ID))

	if err := w.facade.UndoDecrementCredit(ctx, order.ID); err != nil {
		return err
	}

	for _, item := range order.CartContent {
		if err := w.facade.UndoDecrementStock(ctx, lineKey(order.ID, item.ProductID)); err != nil {
			return err
		}
	}

	return w.transition(ctx, order.ID, model.StateUndo, model.TriggerUndone)
}

// claim flips the oldest eligible order via the state machine's "claimed"
// trigger and returns the pre-update document.
func (w *SagaWorker) claim(ctx context.Context, from model.State) (*model.Order, error) {
	to, err := model.Transition(from, model.TriggerClaimed)
	if err != nil {
		return nil, err
	}
	return w.facade.ClaimOldest(ctx, from, to)
}

func (w *SagaWorker) reject(ctx context.Context, order *model.Order, reason string) error {
	w.logger.Info("order cannot be fulfilled",
		slog.String("order", order.ID),
		slog.String("reason", reason))
	return w.transition(ctx, order.ID, model.StateInProgress, model.TriggerInsufficientCreditOrStock)
}

func (w *SagaWorker) transition(ctx context.Context, orderID string, from model.State, trigger model.Trigger) error {
	to, err := model.Transition(from, trigger)
	if err != nil {
		return err
	}

	w.logger.Info("setting order state",
		slog.String("order", orderID),
		slog.String("state", string(to)))
	return w.facade.SetOrderState(ctx, orderID, from, to)
}

// sweep resets orders that stayed leased longer than the processing
// timeout, so a future cycle retries them.
func (w *SagaWorker) sweep(ctx context.Context, from model.State) error {
	to, err := model.Transition(from, model.TriggerTimeout)
	if err != nil {
		return err
	}

	count, err := w.facade.SweepExpired(ctx, from, to, w.processingTimeout)
	if err != nil {
		return err
	}
	if count > 0 {
		w.logger.Info("reset expired orders",
			slog.String("state", string(from)),
			slog.Int64("count", count))
	}
	return nil
}

func lineKey(orderID, productID string) string {
	return orderID + "-" + productID
}

func isRejection(err error) bool {
	var rejected remote.RejectedError
	return errors.As(err, &rejected)
}
