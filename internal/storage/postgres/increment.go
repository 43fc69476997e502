package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/webshoplab/orders/internal/domain/errors"
	"github.com/webshoplab/orders/internal/domain/model"
)

// incrementTarget names the table and numeric column an increment operation
// mutates. Both values are fixed constants, never request input.
type incrementTarget struct {
	table  string
	column string
}

type incrementRepository struct {
	storage *Storage
	target  incrementTarget
}

// Increment applies req inside one transaction: the ledger record and the
// field mutation commit or roll back together. A key seen before skips the
// mutation and reports zero modified rows, which callers treat as success.
func (r *incrementRepository) Increment(ctx context.Context, req model.IncrementRequest) (int64, error) {
	var modified int64
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		payload, err := json.Marshal(req)
		if err != nil {
			return fmt.Errorf("marshal increment request: %w", err)
		}

		isNew, err := r.addRecordTx(ctx, tx, req.IdempotencyKey, req.EntityID, payload)
		if err != nil {
			return err
		}
		if !isNew {
			return nil
		}

		selectQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE id=$1 FOR UPDATE`, r.target.column, r.target.table)
		var current float64
		err = tx.QueryRow(ctx, selectQuery, req.EntityID).Scan(&current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return err
		}

		if current+req.Increment < 0 {
			return fmt.Errorf("%w: cannot increment %s of %s by %v",
				domainErrors.ErrNegativeResult, r.target.column, req.EntityID, req.Increment)
		}

		updateQuery := fmt.Sprintf(`UPDATE %s SET %s = %s + $1, last_modification=$2 WHERE id=$3`,
			r.target.table, r.target.column, r.target.column)
		tag, err := tx.Exec(ctx, updateQuery, req.Increment, r.storage.nowMillis(), req.EntityID)
		if err != nil {
			return err
		}
		modified = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return modified, nil
}

// UndoIncrement reads and deletes every ledger record stored under the key
// and applies the inverse of each recorded increment, all in one
// transaction. Used exactly once per key, during compensation.
func (r *incrementRepository) UndoIncrement(ctx context.Context, idempotencyKey string) (int64, error) {
	var modified int64
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		records, err := r.takeRecordsTx(ctx, tx, idempotencyKey)
		if err != nil {
			return err
		}

		updateQuery := fmt.Sprintf(`UPDATE %s SET %s = %s - $1, last_modification=$2 WHERE id=$3`,
			r.target.table, r.target.column, r.target.column)

		for _, record := range records {
			var req model.IncrementRequest
			if err := json.Unmarshal(record.Request, &req); err != nil {
				return fmt.Errorf("unmarshal recorded request: %w", err)
			}

			tag, err := tx.Exec(ctx, updateQuery, req.Increment, r.storage.nowMillis(), record.EntityID)
			if err != nil {
				return err
			}
			modified += tag.RowsAffected()
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return modified, nil
}

func (r *incrementRepository) DeleteOlderThan(ctx context.Context, retention time.Duration) (int64, error) {
	if err := r.storage.guard(); err != nil {
		return 0, err
	}

	cutoff := r.storage.nowMillis() - retention.Milliseconds()
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM processed_requests WHERE timestamp < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// addRecordTx remembers (key, entityID) in the caller's transaction.
// Returns false when the pair was recorded before.
func (r *incrementRepository) addRecordTx(ctx context.Context, tx pgx.Tx, key, entityID string, request []byte) (bool, error) {
	const query = `INSERT INTO processed_requests (idempotency_key, entity_id, request, timestamp)
                   VALUES ($1, $2, $3, $4)
                   ON CONFLICT (idempotency_key, entity_id) DO NOTHING`

	tag, err := tx.Exec(ctx, query, key, entityID, request, r.storage.nowMillis())
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// takeRecordsTx returns all records stored under key and removes them.
func (r *incrementRepository) takeRecordsTx(ctx context.Context, tx pgx.Tx, key string) ([]model.IdempotentRequest, error) {
	rows, err := tx.Query(ctx, `SELECT entity_id, request, timestamp FROM processed_requests WHERE idempotency_key=$1`, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.IdempotentRequest
	for rows.Next() {
		record := model.IdempotentRequest{IdempotencyKey: key}
		var request []byte
		if err := rows.Scan(&record.EntityID, &request, &record.Timestamp); err != nil {
			return nil, err
		}
		record.Request = request
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if len(records) > 0 {
		if _, err := tx.Exec(ctx, `DELETE FROM processed_requests WHERE idempotency_key=$1`, key); err != nil {
			return nil, err
		}
	}
	return records, nil
}
