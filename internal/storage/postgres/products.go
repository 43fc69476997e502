package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/webshoplab/orders/internal/domain/errors"
	"github.com/webshoplab/orders/internal/domain/model"
)

type productRepository struct {
	storage *Storage
}

const productColumns = `id, idempotency_key, name, price, quantity, creation, last_modification`

func (r *productRepository) Create(ctx context.Context, idempotencyKey, name string, price float64, quantity int64) (*model.Product, bool, error) {
	if err := r.storage.guard(); err != nil {
		return nil, false, err
	}

	const query = `INSERT INTO products (id, idempotency_key, name, price, quantity, creation, last_modification)
                   VALUES ($1, $2, $3, $4, $5, $6, $6)
                   ON CONFLICT (idempotency_key) DO NOTHING
                   RETURNING id`

	now := r.storage.nowMillis()
	product := &model.Product{
		ID:               uuid.NewString(),
		IdempotencyKey:   idempotencyKey,
		Name:             name,
		Price:            price,
		Quantity:         quantity,
		Creation:         now,
		LastModification: now,
	}

	err := r.storage.pool.QueryRow(ctx, query,
		product.ID, product.IdempotencyKey, product.Name, product.Price, product.Quantity, now,
	).Scan(&product.ID)
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

	return product, true, nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if err := r.storage.guard(); err != nil {
		return nil, err
	}

	const query = `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	return scanProduct(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *productRepository) getByIdempotencyKey(ctx context.Context, key string) (*model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE idempotency_key=$1`
	return scanProduct(r.storage.pool.QueryRow(ctx, query, key))
}

func (r *productRepository) ListIDs(ctx context.Context) ([]string, error) {
	if err := r.storage.guard(); err != nil {
		return nil, err
	}
	return listIDs(ctx, r.storage, `SELECT id FROM products ORDER BY creation, id`)
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	if err := r.storage.guard(); err != nil {
		return err
	}

	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.IdempotencyKey, &p.Name, &p.Price, &p.Quantity, &p.Creation, &p.LastModification)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
