package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/webshoplab/orders/internal/domain/errors"
	"github.com/webshoplab/orders/internal/domain/model"
)

type customerRepository struct {
	storage *Storage
}

const customerColumns = `id, idempotency_key, name, credit, creation, last_modification`

func (r *customerRepository) Create(ctx context.Context, idempotencyKey, name string, credit float64) (*model.Customer, bool, error) {
	if err := r.storage.guard(); err != nil {
		return nil, false, err
	}

	const query = `INSERT INTO customers (id, idempotency_key, name, credit, creation, last_modification)
                   VALUES ($1, $2, $3, $4, $5, $5)
                   ON CONFLICT (idempotency_key) DO NOTHING
                   RETURNING id`

	now := r.storage.nowMillis()
	customer := &model.Customer{
		ID:               uuid.NewString(),
		IdempotencyKey:   idempotencyKey,
		Name:             name,
		Credit:           credit,
		Creation:         now,
		LastModification: now,
	}

	err := r.storage.pool.QueryRow(ctx, query,
		customer.ID, customer.IdempotencyKey, customer.Name, customer.Credit, now,
	).Scan(&customer.ID)
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

	return customer, true, nil
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	if err := r.storage.guard(); err != nil {
		return nil, err
	}

	const query = `SELECT ` + customerColumns + ` FROM customers WHERE id=$1`
	return scanCustomer(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *customerRepository) getByIdempotencyKey(ctx context.Context, key string) (*model.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers WHERE idempotency_key=$1`
	return scanCustomer(r.storage.pool.QueryRow(ctx, query, key))
}

func (r *customerRepository) ListIDs(ctx context.Context) ([]string, error) {
	if err := r.storage.guard(); err != nil {
		return nil, err
	}
	return listIDs(ctx, r.storage, `SELECT id FROM customers ORDER BY creation, id`)
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	if err := r.storage.guard(); err != nil {
		return err
	}

	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM customers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func scanCustomer(row pgx.Row) (*model.Customer, error) {
	var c model.Customer
	err := row.Scan(&c.ID, &c.IdempotencyKey, &c.Name, &c.Credit, &c.Creation, &c.LastModification)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func listIDs(ctx context.Context, storage *Storage, query string) ([]string, error) {
	rows, err := storage.pool.Query(ctx, query)
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
