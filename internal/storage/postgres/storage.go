package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/webshoplab/orders/internal/domain/errors"
	"github.com/webshoplab/orders/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage relies on.
type pgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Schema is the list of statements a service runs once before first use.
type Schema []string

// OrdersSchema holds the order documents plus the claim index. The claim
// query depends on (state, last_modification, id) being indexed.
var OrdersSchema = Schema{
	`CREATE TABLE IF NOT EXISTS orders (
        id TEXT PRIMARY KEY,
        idempotency_key TEXT UNIQUE NOT NULL,
        customer_id TEXT NOT NULL,
        cart_content JSONB NOT NULL,
        state TEXT NOT NULL,
        last_modification BIGINT NOT NULL
    )`,
	`CREATE INDEX IF NOT EXISTS idx_orders_claim ON orders(state, last_modification, id)`,
}

// CustomersSchema holds customer entities and the idempotency ledger the
// credit increment operation writes to.
var CustomersSchema = Schema{
	`CREATE TABLE IF NOT EXISTS customers (
        id TEXT PRIMARY KEY,
        idempotency_key TEXT UNIQUE NOT NULL,
        name TEXT NOT NULL,
        credit DOUBLE PRECISION NOT NULL DEFAULT 0,
        creation BIGINT NOT NULL,
        last_modification BIGINT NOT NULL
    )`,
	ledgerTableStatement,
	ledgerIndexStatement,
}

// ProductsSchema holds product entities and the idempotency ledger the
// quantity increment operation writes to.
var ProductsSchema = Schema{
	`CREATE TABLE IF NOT EXISTS products (
        id TEXT PRIMARY KEY,
        idempotency_key TEXT UNIQUE NOT NULL,
        name TEXT NOT NULL,
        price DOUBLE PRECISION NOT NULL DEFAULT 0,
        quantity BIGINT NOT NULL DEFAULT 0,
        creation BIGINT NOT NULL,
        last_modification BIGINT NOT NULL
    )`,
	ledgerTableStatement,
	ledgerIndexStatement,
}

const (
	ledgerTableStatement = `CREATE TABLE IF NOT EXISTS processed_requests (
        idempotency_key TEXT NOT NULL,
        entity_id TEXT NOT NULL,
        request JSONB NOT NULL,
        timestamp BIGINT NOT NULL,
        PRIMARY KEY (idempotency_key, entity_id)
    )`
	ledgerIndexStatement = `CREATE INDEX IF NOT EXISTS idx_processed_requests_timestamp ON processed_requests(timestamp)`
)

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
	now    func() time.Time
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, schema Schema, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger, now: time.Now}
	if err := storage.initSchema(ctx, schema); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}
}

// Repository accessors.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Customers() repository.CustomerRepository {
	return &customerRepository{storage: s}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) CustomerCredit() repository.IncrementRepository {
	return &incrementRepository{storage: s, target: incrementTarget{table: "customers", column: "credit"}}
}

func (s *Storage) ProductQuantity() repository.IncrementRepository {
	return &incrementRepository{storage: s, target: incrementTarget{table: "products", column: "quantity"}}
}

func (s *Storage) initSchema(ctx context.Context, schema Schema) error {
	for _, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// guard reports the fatal "not connected" condition. Callers must surface
// it, never swallow it.
func (s *Storage) guard() error {
	if s.pool == nil {
		return domainErrors.ErrNotConnected
	}
	return nil
}

func (s *Storage) nowMillis() int64 {
	return s.now().UnixMilli()
}

// WithinTransaction executes fn inside a transaction boundary: commit on
// normal return, rollback when fn fails. The session is released on both
// paths.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	if err = s.guard(); err != nil {
		return err
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.guard(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
