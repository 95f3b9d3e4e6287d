package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/vibe-vault/internal/db"
	"github.com/nikolayk812/vibe-vault/internal/port"
)

const notifyChannel = "kv_entries_changed"

// PostgresKV stores values in the kv_entries table. Every write also emits
// a pg_notify on kv_entries_changed carrying the key, which Watch listens to.
type PostgresKV struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewPostgresKV(pool *pgxpool.Pool) *PostgresKV {
	return &PostgresKV{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewPostgresKVWithTx(tx pgx.Tx) *PostgresKV {
	return &PostgresKV{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *PostgresKV) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("key is empty")
	}

	value, err := r.q.GetEntry(ctx, key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, port.ErrKeyNotFound
		}
		return nil, fmt.Errorf("q.GetEntry: %w", err)
	}

	return value, nil
}

func (r *PostgresKV) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	return inTx(ctx, r.pool, r.q, func(q *db.Queries) error {
		err := q.UpsertEntry(ctx, db.UpsertEntryParams{
			Key:   key,
			Value: value,
		})
		if err != nil {
			return fmt.Errorf("q.UpsertEntry: %w", err)
		}

		if err := q.NotifyEntryChanged(ctx, key); err != nil {
			return fmt.Errorf("q.NotifyEntryChanged: %w", err)
		}

		return nil
	})
}

func (r *PostgresKV) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	return inTx(ctx, r.pool, r.q, func(q *db.Queries) error {
		rowsAffected, err := q.DeleteEntry(ctx, key)
		if err != nil {
			return fmt.Errorf("q.DeleteEntry: %w", err)
		}

		if rowsAffected == 0 {
			return nil
		}

		if err := q.NotifyEntryChanged(ctx, key); err != nil {
			return fmt.Errorf("q.NotifyEntryChanged: %w", err)
		}

		return nil
	})
}

// Watch takes one connection out of the pool and LISTENs on it until ctx is
// done. The connection is closed afterwards instead of being returned, so no
// pooled connection is left subscribed.
func (r *PostgresKV) Watch(ctx context.Context, key string, onChange func()) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}
	if r.pool == nil {
		return fmt.Errorf("watch is not supported within a transaction")
	}

	pooled, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("pool.Acquire: %w", err)
	}

	conn := pooled.Hijack()
	defer func() {
		_ = conn.Close(context.WithoutCancel(ctx))
	}()

	if _, err := conn.Exec(ctx, "LISTEN "+notifyChannel); err != nil {
		return fmt.Errorf("conn.Exec(LISTEN): %w", err)
	}

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("conn.WaitForNotification: %w", err)
		}

		if n.Payload == key {
			onChange()
		}
	}
}
