package repository_test

import (
	"path/filepath"
	"testing"

	"github.com/nikolayk812/vibe-vault/internal/port"
	"github.com/nikolayk812/vibe-vault/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteKV(t *testing.T) {
	sqlDB, err := repository.OpenSQLite(t.Context(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	runKeyValueStoreTests(t, repository.NewSQLiteKV(sqlDB))
}

func TestSQLiteKV_SurvivesReopen(t *testing.T) {
	ctx := t.Context()
	path := filepath.Join(t.TempDir(), "vault.db")

	first, err := repository.OpenSQLite(ctx, path)
	require.NoError(t, err)

	require.NoError(t, repository.NewSQLiteKV(first).Set(ctx, "cart", []byte(`[{"id":"food-001","quantity":2}]`)))
	require.NoError(t, first.Close())

	second, err := repository.OpenSQLite(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	got, err := repository.NewSQLiteKV(second).Get(ctx, "cart")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"food-001","quantity":2}]`, string(got))
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	_, err := repository.OpenSQLite(t.Context(), "")
	require.EqualError(t, err, "path is empty")
}

func TestSQLiteKV_SetWithTx(t *testing.T) {
	tests := []struct {
		name      string
		commit    bool
		wantFound bool
	}{
		{
			name:      "set within committed tx: visible",
			commit:    true,
			wantFound: true,
		},
		{
			name:      "set within rolled back tx: not visible",
			commit:    false,
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()

			sqlDB, err := repository.OpenSQLite(ctx, ":memory:")
			require.NoError(t, err)
			t.Cleanup(func() { _ = sqlDB.Close() })

			key := randomKey()

			tx, err := sqlDB.BeginTx(ctx, nil)
			require.NoError(t, err)

			require.NoError(t, repository.NewSQLiteKVWithTx(tx).Set(ctx, key, randomJSON()))

			if tt.commit {
				require.NoError(t, tx.Commit())
			} else {
				require.NoError(t, tx.Rollback())
			}

			_, err = repository.NewSQLiteKV(sqlDB).Get(ctx, key)
			if tt.wantFound {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, port.ErrKeyNotFound)
			}
		})
	}
}
