package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/webshoplab/orders/internal/domain/errors"
	"github.com/webshoplab/orders/internal/domain/model"
)

type orderRepository struct {
	storage *Storage
}

const orderColumns = `id, idempotency_key, customer_id, cart_content, state, last_modification`

func (r *orderRepository) Create(ctx context.Context, idempotencyKey, customerID string, cart []model.CartItem) (*model.Order, bool, error) {
	if err := r.storage.guard(); err != nil {
		return nil, false, err
	}

	content, err := json.Marshal(cart)
	if err != nil {
		return nil, false, fmt.Errorf("marshal cart content: %w", err)
	}

	const query = `INSERT INTO orders (id, idempotency_key, customer_id, cart_content, state, last_modification)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   ON CONFLICT (idempotency_key) DO NOTHING
                   RETURNING id`

	order := &model.Order{
		ID:               uuid.NewString(),
		IdempotencyKey:   idempotencyKey,
		CustomerID:       customerID,
		CartContent:      cart,
		State:            model.StateNew,
		LastModification: r.storage.nowMillis(),
	}

	err = r.storage.pool.QueryRow(ctx, query,
		order.ID, order.IdempotencyKey, order.CustomerID, content, order.State, order.LastModification,
	).Scan(&order.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			existing, err := r.getByIdempotencyKey(ctx, idempotencyKey)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	return order, true, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if err := r.storage.guard(); err != nil {
		return nil, err
	}

	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	return scanOrder(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *orderRepository) getByIdempotencyKey(ctx context.Context, key string) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE idempotency_key=$1`
	return scanOrder(r.storage.pool.QueryRow(ctx, query, key))
}

func (r *orderRepository) ListIDs(ctx context.Context) ([]string, error) {
	if err := r.storage.guard(); err != nil {
		return nil, err
	}

	const query = `SELECT id FROM orders ORDER BY last_modification, id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	if err := r.storage.guard(); err != nil {
		return err
	}

	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// ClaimOldest finds the order with matching state having the smallest
// (last_modification, id) pair and flips it to the next state inside one
// transaction. SKIP LOCKED keeps two concurrent claimers from receiving
// the same order: the row lock taken by the select is held until commit.
func (r *orderRepository) ClaimOldest(ctx context.Context, from, to model.State) (*model.Order, error) {
	const claimQuery = `SELECT ` + orderColumns + ` FROM orders
                        WHERE state=$1
                        ORDER BY last_modification, id
                        LIMIT 1
                        FOR UPDATE SKIP LOCKED`

	var claimed *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		order, err := scanOrder(tx.QueryRow(ctx, claimQuery, from))
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return domainErrors.ErrNoneEligible
			}
			return err
		}

		_, err = tx.Exec(ctx, `UPDATE orders SET state=$1, last_modification=$2 WHERE id=$3`,
			to, r.storage.nowMillis(), order.ID)
		if err != nil {
			return err
		}

		claimed = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

func (r *orderRepository) SweepExpired(ctx context.Context, from, to model.State, olderThan time.Duration) (int64, error) {
	if err := r.storage.guard(); err != nil {
		return 0, err
	}

	now := r.storage.nowMillis()
	cutoff := now - olderThan.Milliseconds()

	const query = `UPDATE orders SET state=$1, last_modification=$2 WHERE state=$3 AND last_modification < $4`
	tag, err := r.storage.pool.Exec(ctx, query, to, now, from, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *orderRepository) SetState(ctx context.Context, id string, from, to model.State) error {
	if err := r.storage.guard(); err != nil {
		return err
	}

	const query = `UPDATE orders SET state=$1, last_modification=$2 WHERE id=$3 AND state=$4`
	tag, err := r.storage.pool.Exec(ctx, query, to, r.storage.nowMillis(), id, from)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: order %s is not in state %s", domainErrors.ErrStateConflict, id, from)
	}
	return nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		order   model.Order
		content []byte
	)
	err := row.Scan(&order.ID, &order.IdempotencyKey, &order.CustomerID, &content, &order.State, &order.LastModification)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(content, &order.CartContent); err != nil {
		return nil, fmt.Errorf("unmarshal cart content: %w", err)
	}
	return &order, nil
}
