package repository_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/vibe-vault/internal/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			"../migrations/01_kv_entries.up.sql"),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

// runKeyValueStoreTests checks the contract every backend shares.
func runKeyValueStoreTests(t *testing.T, kv port.KeyValueStore) {
	t.Helper()

	t.Run("get missing key: not found", func(t *testing.T) {
		_, err := kv.Get(t.Context(), randomKey())
		assert.True(t, errors.Is(err, port.ErrKeyNotFound), "got %v", err)
	})

	t.Run("set then get: ok", func(t *testing.T) {
		ctx := t.Context()
		key := randomKey()
		value := randomJSON()

		require.NoError(t, kv.Set(ctx, key, value))

		got, err := kv.Get(ctx, key)
		require.NoError(t, err)
		assert.JSONEq(t, string(value), string(got))
	})

	t.Run("set overwrites previous value: ok", func(t *testing.T) {
		ctx := t.Context()
		key := randomKey()
		second := randomJSON()

		require.NoError(t, kv.Set(ctx, key, randomJSON()))
		require.NoError(t, kv.Set(ctx, key, second))

		got, err := kv.Get(ctx, key)
		require.NoError(t, err)
		assert.JSONEq(t, string(second), string(got))
	})

	t.Run("delete existing key: ok", func(t *testing.T) {
		ctx := t.Context()
		key := randomKey()

		require.NoError(t, kv.Set(ctx, key, randomJSON()))
		require.NoError(t, kv.Delete(ctx, key))

		_, err := kv.Get(ctx, key)
		assert.ErrorIs(t, err, port.ErrKeyNotFound)
	})

	t.Run("delete missing key: ok", func(t *testing.T) {
		require.NoError(t, kv.Delete(t.Context(), randomKey()))
	})

	t.Run("empty key: error", func(t *testing.T) {
		ctx := t.Context()

		_, err := kv.Get(ctx, "")
		require.EqualError(t, err, "key is empty")

		require.EqualError(t, kv.Set(ctx, "", randomJSON()), "key is empty")
		require.EqualError(t, kv.Delete(ctx, ""), "key is empty")
	})
}

func randomKey() string {
	return gofakeit.LetterN(12)
}

func randomJSON() []byte {
	return []byte(fmt.Sprintf(`[{"id":%q,"name":%q,"quantity":%d}]`,
		gofakeit.UUID(), gofakeit.ProductName(), gofakeit.Number(1, 10)))
}
