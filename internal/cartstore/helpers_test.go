package cartstore_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/nikolayk812/vibe-vault/internal/domain"
	"github.com/nikolayk812/vibe-vault/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/currency"
)

var errStorageDown = errors.New("storage is down")

// flakyKV wraps a MemoryKV and fails on demand.
type flakyKV struct {
	*repository.MemoryKV

	failGet atomic.Bool
	failSet atomic.Bool
}

func newFlakyKV() *flakyKV {
	return &flakyKV{MemoryKV: repository.NewMemoryKV()}
}

func (f *flakyKV) Get(ctx context.Context, key string) ([]byte, error) {
	if f.failGet.Load() {
		return nil, errStorageDown
	}
	return f.MemoryKV.Get(ctx, key)
}

func (f *flakyKV) Set(ctx context.Context, key string, value []byte) error {
	if f.failSet.Load() {
		return errStorageDown
	}
	return f.MemoryKV.Set(ctx, key, value)
}

func (f *flakyKV) Delete(ctx context.Context, key string) error {
	if f.failSet.Load() {
		return errStorageDown
	}
	return f.MemoryKV.Delete(ctx, key)
}

// chanWatcher reports a change for every value sent on changes.
type chanWatcher struct {
	changes chan struct{}
	keys    chan string
}

func newChanWatcher() *chanWatcher {
	return &chanWatcher{
		changes: make(chan struct{}),
		keys:    make(chan string, 1),
	}
}

func (w *chanWatcher) Watch(ctx context.Context, key string, onChange func()) error {
	w.keys <- key
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.changes:
			onChange()
		}
	}
}

type counter struct {
	n atomic.Int32
}

func (c *counter) inc()       { c.n.Add(1) }
func (c *counter) get() int32 { return c.n.Load() }

func randomProduct() domain.Product {
	return domain.Product{
		ID:          gofakeit.UUID(),
		Name:        gofakeit.ProductName(),
		Description: gofakeit.ProductDescription(),
		Price:       randomMoney(),
		Category:    domain.Category(gofakeit.RandomString([]string{"clothes", "food"})),
		Images:      []string{gofakeit.URL(), gofakeit.URL()},
		Stock:       gofakeit.Number(0, 500),
		Tags:        []string{gofakeit.Word(), gofakeit.Word()},
		SKU:         gofakeit.LetterN(10),
		Details:     map[string]string{"material": gofakeit.Word()},
	}
}

func randomMoney() domain.Money {
	return domain.Money{
		Amount:   decimal.NewFromFloat(gofakeit.Price(1, 100)),
		Currency: currency.USD,
	}
}

func productWithPrice(price string) domain.Product {
	p := randomProduct()
	p.Price = domain.Money{Amount: decimal.RequireFromString(price), Currency: currency.USD}
	return p
}

func assertCart(t *testing.T, expected, actual domain.Cart) {
	t.Helper()

	opts := cmp.Options{
		cmp.Comparer(func(x, y decimal.Decimal) bool {
			return x.Equal(y)
		}),
		cmp.Comparer(func(x, y currency.Unit) bool {
			return x.String() == y.String()
		}),
		cmpopts.EquateEmpty(),
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)
}
