package ledger

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Repository is the slice of the idempotency ledger the sweeper needs.
type Repository interface {
	DeleteOlderThan(ctx context.Context, retention time.Duration) (int64, error)
}

// Sweeper periodically garbage-collects idempotency records older than the
// retention window. Consumed records are already gone; unconsumed expired
// records belong to steps that will not be retried within the window, so
// the sweep bounds storage without affecting correctness.
type Sweeper struct {
	repo      Repository
	interval  time.Duration
	retention time.Duration
	logger    *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSweeper constructs the ledger sweeper.
func NewSweeper(repo Repository, interval, retention time.Duration, logger *slog.Logger) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{
		repo:      repo,
		interval:  interval,
		retention: retention,
		logger:    logger,
	}
}

// Start launches the periodic sweep.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(runCtx)
}

// Stop waits for the sweep loop to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Sweeper) loop(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	count, err := s.repo.DeleteOlderThan(ctx, s.retention)
	if err != nil {
		s.logger.Error("ledger sweep failed", slog.String("error", err.Error()))
		return
	}
	if count > 0 {
		s.logger.Info("removed expired idempotency records", slog.Int64("count", count))
	}
}
