package port

import (
	"context"

	"github.com/nikolayk812/vibe-vault/internal/domain"
)

type CartStore interface {
	Load(ctx context.Context) domain.Cart
	AddItem(ctx context.Context, product domain.Product, quantity int) domain.Cart
	SetQuantity(ctx context.Context, productID string, quantity int) domain.Cart
	RemoveItem(ctx context.Context, productID string) domain.Cart
	Clear(ctx context.Context)
	Subscribe(observer func()) (unsubscribe func())
}
