package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/vibe-vault/internal/cartstore"
	"github.com/nikolayk812/vibe-vault/internal/catalog"
	"github.com/nikolayk812/vibe-vault/internal/checkout"
	"github.com/nikolayk812/vibe-vault/internal/config"
	"github.com/nikolayk812/vibe-vault/internal/domain"
	"github.com/nikolayk812/vibe-vault/internal/logging"
	"github.com/nikolayk812/vibe-vault/internal/port"
	"github.com/nikolayk812/vibe-vault/internal/repository"
	"go.uber.org/zap"
)

// app is the composition root: one cart store per process, shared by every
// command that reads or mutates the cart.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	rules   domain.PricingRules
	catalog *catalog.Catalog
	store   *cartstore.Store
	orders  *checkout.Service

	// nil when the backend cannot report changes made elsewhere
	watcher port.KeyWatcher

	closers []func()
}

func newApp(ctx context.Context, cfg *config.Config) (_ *app, err error) {
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("logging.New: %w", err)
	}

	rules, err := cfg.PricingRules()
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		logger:  logger,
		rules:   rules,
		catalog: catalog.New(rules.Currency),
		closers: []func(){func() { _ = logger.Sync() }},
	}

	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	kv, err := a.openStorage(ctx)
	if err != nil {
		return nil, err
	}

	a.store = cartstore.New(kv,
		cartstore.WithLogger(logger),
		cartstore.WithCurrency(rules.Currency),
	)
	a.orders = checkout.NewService(a.store, rules, logger)

	logger.Debug("app started", zap.String("backend", string(cfg.Storage.Backend)))

	return a, nil
}

func (a *app) openStorage(ctx context.Context) (port.KeyValueStore, error) {
	storage := a.cfg.Storage

	switch storage.Backend {
	case config.BackendMemory:
		return repository.NewMemoryKV(), nil

	case config.BackendFile:
		kv, err := repository.NewFileKV(storage.Path)
		if err != nil {
			return nil, fmt.Errorf("repository.NewFileKV: %w", err)
		}
		a.watcher = kv
		return kv, nil

	case config.BackendSQLite:
		path := storage.Path
		if filepath.Ext(path) == "" {
			if err := os.MkdirAll(path, 0o755); err != nil {
				return nil, fmt.Errorf("os.MkdirAll: %w", err)
			}
			path = filepath.Join(path, "vibevault.db")
		}

		sqlDB, err := repository.OpenSQLite(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("repository.OpenSQLite: %w", err)
		}
		a.closers = append(a.closers, func() { _ = sqlDB.Close() })
		return repository.NewSQLiteKV(sqlDB), nil

	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, storage.DSN)
		if err != nil {
			return nil, fmt.Errorf("pgxpool.New: %w", err)
		}
		a.closers = append(a.closers, pool.Close)

		kv := repository.NewPostgresKV(pool)
		a.watcher = kv
		return kv, nil

	default:
		return nil, fmt.Errorf("storage.backend[%s] is not supported", storage.Backend)
	}
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
