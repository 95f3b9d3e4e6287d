// Package cartstore keeps the shopping cart in a key-value store and tells
// every subscriber when it changes.
//
// Each mutation reads the persisted cart, applies the change, writes the
// whole cart back and then broadcasts a signal that carries no data.
// Subscribers re-read with Load, so what they render is always what was
// persisted. The last write wins.
package cartstore

import (
	"context"
	"errors"
	"sync"

	"github.com/nikolayk812/vibe-vault/internal/domain"
	"github.com/nikolayk812/vibe-vault/internal/port"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

type Store struct {
	kv       port.KeyValueStore
	currency currency.Unit
	logger   *zap.Logger

	// mu serializes read-modify-write cycles and guards last.
	mu sync.Mutex
	// last is the most recent cart read from or written to kv; it is
	// served when storage is unavailable.
	last domain.Cart

	observers observers
}

var _ port.CartStore = (*Store)(nil)

type Option func(*Store)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCurrency sets the currency persisted prices are read in. Defaults to USD.
func WithCurrency(cur currency.Unit) Option {
	return func(s *Store) {
		s.currency = cur
	}
}

func New(kv port.KeyValueStore, opts ...Option) *Store {
	s := &Store{
		kv:       kv,
		currency: currency.USD,
		logger:   zap.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.logger = s.logger.With(zap.String("component", "cartstore"))

	return s
}

// Load returns the persisted cart. A missing or unreadable value yields an
// empty cart; a storage failure yields the last cart this store saw.
func (s *Store) Load(ctx context.Context) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.read(ctx)
	if err != nil {
		s.logger.Error("cart storage unavailable, serving last known cart", zap.Error(err))
		return s.last.Clone()
	}

	return cart
}

// AddItem increments the product's line by quantity, appending a new line
// if there is none. A quantity below 1 is treated as 1; a line's quantity
// stops growing at math.MaxInt.
func (s *Store) AddItem(ctx context.Context, product domain.Product, quantity int) domain.Cart {
	if quantity < 1 {
		s.logger.Debug("clamping non-positive quantity",
			zap.String("product_id", product.ID), zap.Int("quantity", quantity))
		quantity = 1
	}

	return s.mutate(ctx, "add_item", func(cart *domain.Cart) {
		if i := cart.Find(product.ID); i >= 0 {
			cart.Items[i].Quantity = domain.AddQuantities(cart.Items[i].Quantity, quantity)
			return
		}
		cart.Items = append(cart.Items, domain.NewCartItem(product, quantity))
	}, zap.String("product_id", product.ID), zap.Int("quantity", quantity))
}

// SetQuantity overwrites the line's quantity. Below 1 it removes the line.
// An unknown productID changes nothing but is still persisted and broadcast.
func (s *Store) SetQuantity(ctx context.Context, productID string, quantity int) domain.Cart {
	if quantity < 1 {
		return s.RemoveItem(ctx, productID)
	}

	return s.mutate(ctx, "set_quantity", func(cart *domain.Cart) {
		if i := cart.Find(productID); i >= 0 {
			cart.Items[i].Quantity = quantity
		}
	}, zap.String("product_id", productID), zap.Int("quantity", quantity))
}

func (s *Store) RemoveItem(ctx context.Context, productID string) domain.Cart {
	return s.mutate(ctx, "remove_item", func(cart *domain.Cart) {
		if i := cart.Find(productID); i >= 0 {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		}
	}, zap.String("product_id", productID))
}

// Clear drops the persisted cart entirely.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	if err := s.kv.Delete(ctx, CartKey); err != nil {
		s.mu.Unlock()
		s.logger.Error("cart not cleared", zap.Error(err))
		return
	}
	s.last = domain.Cart{}
	s.mu.Unlock()

	s.logger.Debug("cart cleared")
	s.observers.broadcast()
}

// Subscribe registers observer to run after every successful mutation. The
// observer runs on the mutating goroutine once the store is unlocked, so it
// may call Load. The returned func deregisters it and is safe to call twice.
// A nil observer is not registered.
func (s *Store) Subscribe(observer func()) (unsubscribe func()) {
	if observer == nil {
		return func() {}
	}
	return s.observers.add(observer)
}

// Follow relays changes reported by watcher, such as writes made by another
// process sharing the storage, to this store's subscribers. It blocks until
// ctx is done.
func (s *Store) Follow(ctx context.Context, watcher port.KeyWatcher) error {
	return watcher.Watch(ctx, CartKey, func() {
		s.logger.Debug("cart changed in storage")
		s.observers.broadcast()
	})
}

func (s *Store) mutate(ctx context.Context, op string, apply func(cart *domain.Cart), fields ...zap.Field) domain.Cart {
	logger := s.logger.With(append(fields, zap.String("op", op))...)

	s.mu.Lock()

	before, err := s.read(ctx)
	if err != nil {
		stale := s.last.Clone()
		s.mu.Unlock()
		logger.Error("cart not updated: storage unavailable", zap.Error(err))
		return stale
	}

	after := before.Clone()
	apply(&after)

	if err := s.write(ctx, after); err != nil {
		s.mu.Unlock()
		logger.Error("cart not persisted", zap.Error(err))
		return before
	}
	s.mu.Unlock()

	logger.Debug("cart updated", zap.Int("lines", len(after.Items)), zap.Int("item_count", after.ItemCount()))
	s.observers.broadcast()

	return after.Clone()
}

// read must be called with mu held. Only storage failures are returned.
func (s *Store) read(ctx context.Context) (domain.Cart, error) {
	data, err := s.kv.Get(ctx, CartKey)
	if err != nil {
		if errors.Is(err, port.ErrKeyNotFound) {
			s.last = domain.Cart{}
			return domain.Cart{}, nil
		}
		return domain.Cart{}, err
	}

	cart, err := decodeCart(data, s.currency)
	if err != nil {
		s.logger.Warn("failed to parse persisted cart, starting empty", zap.Error(err))
		cart = domain.Cart{}
	}

	s.last = cart.Clone()
	return cart, nil
}

// write must be called with mu held.
func (s *Store) write(ctx context.Context, cart domain.Cart) error {
	data, err := encodeCart(cart)
	if err != nil {
		return err
	}

	if err := s.kv.Set(ctx, CartKey, data); err != nil {
		return err
	}

	s.last = cart.Clone()
	return nil
}
