package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nikolayk812/vibe-vault/internal/port"
	"github.com/nikolayk812/vibe-vault/internal/sqlitedb"
	_ "modernc.org/sqlite"
)

// OpenSQLite opens (creating if needed) a sqlite database at path and
// ensures the kv_entries table exists. ":memory:" gives a private database.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("path is empty")
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}

	// sqlite allows a single writer; one connection also keeps :memory: shared
	sqlDB.SetMaxOpenConns(1)

	if _, err := sqlDB.ExecContext(ctx, sqlitedb.Schema); err != nil {
		return nil, errors.Join(fmt.Errorf("create kv_entries: %w", err), sqlDB.Close())
	}

	return sqlDB, nil
}

type SQLiteKV struct {
	q *sqlitedb.Queries
}

func NewSQLiteKV(db *sql.DB) *SQLiteKV {
	return &SQLiteKV{q: sqlitedb.New(db)}
}

func NewSQLiteKVWithTx(tx *sql.Tx) *SQLiteKV {
	return &SQLiteKV{q: sqlitedb.New(tx)}
}

func (s *SQLiteKV) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("key is empty")
	}

	value, err := s.q.GetEntry(ctx, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, port.ErrKeyNotFound
		}
		return nil, fmt.Errorf("q.GetEntry: %w", err)
	}

	return value, nil
}

func (s *SQLiteKV) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}
	if value == nil {
		value = []byte{}
	}

	err := s.q.UpsertEntry(ctx, sqlitedb.UpsertEntryParams{
		Key:   key,
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("q.UpsertEntry: %w", err)
	}

	return nil
}

func (s *SQLiteKV) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	if _, err := s.q.DeleteEntry(ctx, key); err != nil {
		return fmt.Errorf("q.DeleteEntry: %w", err)
	}

	return nil
}
