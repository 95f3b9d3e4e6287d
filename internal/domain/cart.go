package domain

import (
	"maps"
	"math"
	"slices"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Cart is an ordered list of line items, at most one per product.
type Cart struct {
	Items []CartItem
}

// CartItem carries a copy of the product data taken when it was added.
// The copy is never refreshed from the catalog.
type CartItem struct {
	ProductID   string
	Name        string
	Description string
	UnitPrice   Money
	Category    Category
	Images      []string
	Stock       int
	Tags        []string
	SKU         string
	Details     map[string]string

	Quantity int
}

func NewCartItem(p Product, quantity int) CartItem {
	return CartItem{
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		UnitPrice:   p.Price,
		Category:    p.Category,
		Images:      slices.Clone(p.Images),
		Stock:       p.Stock,
		Tags:        slices.Clone(p.Tags),
		SKU:         p.SKU,
		Details:     maps.Clone(p.Details),
		Quantity:    quantity,
	}
}

func (i CartItem) LineTotal() Money {
	return i.UnitPrice.MulInt(i.Quantity)
}

// ImageRef is the image shown next to the line, empty if the product has none.
func (i CartItem) ImageRef() string {
	if len(i.Images) == 0 {
		return ""
	}
	return i.Images[0]
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Find returns the index of the line for productID, or -1.
func (c Cart) Find(productID string) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// ItemCount is the sum of all quantities.
func (c Cart) ItemCount() int {
	var n int
	for _, item := range c.Items {
		n = AddQuantities(n, item.Quantity)
	}
	return n
}

// AddQuantities adds two non-negative quantities, saturating at math.MaxInt
// so a line can never wrap below 1.
func AddQuantities(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// Subtotal sums the line totals. Persisted lines carry no currency of their
// own, so the amounts are summed and tagged with cur.
func (c Cart) Subtotal(cur currency.Unit) Money {
	sum := decimal.Zero
	for _, item := range c.Items {
		sum = sum.Add(item.LineTotal().Amount)
	}
	return NewMoney(sum, cur)
}

// Clone returns a deep copy so callers can mutate it freely.
func (c Cart) Clone() Cart {
	if c.Items == nil {
		return Cart{}
	}

	items := make([]CartItem, len(c.Items))
	for i, item := range c.Items {
		item.Images = slices.Clone(item.Images)
		item.Tags = slices.Clone(item.Tags)
		item.Details = maps.Clone(item.Details)
		items[i] = item
	}

	return Cart{Items: items}
}
