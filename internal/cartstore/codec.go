package cartstore

import (
	"encoding/json"
	"fmt"

	"github.com/nikolayk812/vibe-vault/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// CartKey is the single key the cart is persisted under.
const CartKey = "cart"

// storedItem is one element of the persisted JSON array. Prices are plain
// JSON numbers; the currency is a property of the store, not of the line.
type storedItem struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Price       json.Number       `json:"price"`
	Category    domain.Category   `json:"category"`
	Images      []string          `json:"images"`
	Stock       int               `json:"stock,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	SKU         string            `json:"sku,omitempty"`
	Details     map[string]string `json:"details,omitempty"`
	Quantity    int               `json:"quantity"`
}

func encodeCart(cart domain.Cart) ([]byte, error) {
	stored := make([]storedItem, 0, len(cart.Items))

	for _, item := range cart.Items {
		images := item.Images
		if images == nil {
			images = []string{}
		}

		stored = append(stored, storedItem{
			ID:          item.ProductID,
			Name:        item.Name,
			Description: item.Description,
			Price:       json.Number(item.UnitPrice.Amount.String()),
			Category:    item.Category,
			Images:      images,
			Stock:       item.Stock,
			Tags:        item.Tags,
			SKU:         item.SKU,
			Details:     item.Details,
			Quantity:    item.Quantity,
		})
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return data, nil
}

// decodeCart parses the persisted array. Lines without an id or with a
// quantity below 1 are dropped and repeated ids are merged, so the result
// always satisfies the cart invariants.
func decodeCart(data []byte, cur currency.Unit) (domain.Cart, error) {
	var stored []storedItem
	if err := json.Unmarshal(data, &stored); err != nil {
		return domain.Cart{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	var cart domain.Cart

	for _, s := range stored {
		if s.ID == "" || s.Quantity < 1 {
			continue
		}

		price, err := decimal.NewFromString(s.Price.String())
		if err != nil {
			return domain.Cart{}, fmt.Errorf("price[%s] of %s is not valid: %w", s.Price, s.ID, err)
		}

		if i := cart.Find(s.ID); i >= 0 {
			cart.Items[i].Quantity = domain.AddQuantities(cart.Items[i].Quantity, s.Quantity)
			continue
		}

		cart.Items = append(cart.Items, domain.CartItem{
			ProductID:   s.ID,
			Name:        s.Name,
			Description: s.Description,
			UnitPrice:   domain.NewMoney(price, cur),
			Category:    s.Category,
			Images:      s.Images,
			Stock:       s.Stock,
			Tags:        s.Tags,
			SKU:         s.SKU,
			Details:     s.Details,
			Quantity:    s.Quantity,
		})
	}

	return cart, nil
}
