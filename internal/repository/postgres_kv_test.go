package repository_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/vibe-vault/internal/port"
	"github.com/nikolayk812/vibe-vault/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

type postgresKVSuite struct {
	suite.Suite

	kv        *repository.PostgresKV
	pool      *pgxpool.Pool
	connStr   string
	container *postgres.PostgresContainer
}

// entry point to run the tests in the suite
func TestPostgresKVSuite(t *testing.T) {
	suite.Run(t, new(postgresKVSuite))
}

// before all tests in the suite
func (suite *postgresKVSuite) SetupSuite() {
	ctx := suite.T().Context()

	container, connStr, err := startPostgres(ctx)
	suite.Require().NoError(err)
	suite.container = container
	suite.connStr = connStr

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.kv = repository.NewPostgresKV(suite.pool)
}

// after all tests in the suite
func (suite *postgresKVSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}

	if suite.container != nil {
		suite.NoError(testcontainers.TerminateContainer(suite.container))
	}
}

func (suite *postgresKVSuite) TestContract() {
	defer suite.deleteAll()

	runKeyValueStoreTests(suite.T(), suite.kv)
}

func (suite *postgresKVSuite) TestSetWithTx() {
	defer suite.deleteAll()

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
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()
			key := gofakeit.LetterN(12)

			tx, err := suite.pool.Begin(ctx)
			require.NoError(t, err)

			err = repository.NewPostgresKVWithTx(tx).Set(ctx, key, []byte(`[]`))
			require.NoError(t, err)

			if tt.commit {
				require.NoError(t, tx.Commit(ctx))
			} else {
				require.NoError(t, tx.Rollback(ctx))
			}

			_, err = suite.kv.Get(ctx, key)
			if tt.wantFound {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, port.ErrKeyNotFound)
			}
		})
	}
}

func (suite *postgresKVSuite) TestWatch() {
	defer suite.deleteAll()

	t := suite.T()
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	var changes atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- suite.kv.Watch(ctx, "cart", func() { changes.Add(1) })
	}()

	require.Eventually(t, func() bool {
		assert.NoError(t, suite.kv.Set(ctx, "cart", []byte(`[]`)))
		return changes.Load() > 0
	}, 10*time.Second, 100*time.Millisecond)

	before := changes.Load()
	require.NoError(t, suite.kv.Delete(ctx, "cart"))

	require.Eventually(t, func() bool {
		return changes.Load() > before
	}, 10*time.Second, 50*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func (suite *postgresKVSuite) TestWatch_LeavesNoListenerInPool() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	// a single connection: whatever Watch used is the one handed out next
	cfg, err := pgxpool.ParseConfig(suite.connStr)
	require.NoError(t, err)
	cfg.MaxConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)
	defer pool.Close()

	kv := repository.NewPostgresKV(pool)
	key := randomKey()

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var changes atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- kv.Watch(watchCtx, key, func() { changes.Add(1) })
	}()

	require.Eventually(t, func() bool {
		assert.NoError(t, suite.kv.Set(ctx, key, randomJSON()))
		return changes.Load() > 0
	}, 10*time.Second, 100*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	require.NoError(t, kv.Set(ctx, key, randomJSON()))

	conn, err := pool.Acquire(ctx)
	require.NoError(t, err)
	defer conn.Release()

	waitCtx, waitCancel := context.WithTimeout(ctx, 300*time.Millisecond)
	defer waitCancel()

	n, err := conn.Conn().WaitForNotification(waitCtx)
	assert.Nil(t, n)
	assert.Error(t, err)
}

func (suite *postgresKVSuite) TestWatchWithTx() {
	t := suite.T()
	ctx := t.Context()

	tx, err := suite.pool.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(ctx) }()

	err = repository.NewPostgresKVWithTx(tx).Watch(ctx, "cart", func() {})
	require.EqualError(t, err, "watch is not supported within a transaction")
}

func (suite *postgresKVSuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE kv_entries")
	suite.NoError(err)
}
