// Package catalog serves the storefront's static product data.
package catalog

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/vibe-vault/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var ErrInvalidReview = errors.New("review is invalid")

type Sort string

const (
	SortRelevance Sort = "relevance"
	SortPriceAsc  Sort = "price-asc"
	SortPriceDesc Sort = "price-desc"
	SortNameAsc   Sort = "name-asc"
)

func ParseSort(s string) (Sort, error) {
	switch sort := Sort(s); sort {
	case "":
		return SortRelevance, nil
	case SortRelevance, SortPriceAsc, SortPriceDesc, SortNameAsc:
		return sort, nil
	default:
		return "", fmt.Errorf("sort[%s] is not supported", s)
	}
}

// Query narrows the product list. Zero values match everything.
type Query struct {
	Categories []domain.Category
	MinPrice   decimal.NullDecimal
	MaxPrice   decimal.NullDecimal
	Term       string
	Sort       Sort
}

type Collection struct {
	ID       string
	Title    string
	Handle   string
	Products []domain.Product
}

// Catalog holds the products in memory. Reviews added with AddReview last
// as long as the Catalog; products returned earlier are not changed by them.
type Catalog struct {
	now func() time.Time

	mu          sync.RWMutex
	products    []domain.Product
	byID        map[string]int
	collections []collection
}

// collection membership is fixed at New; products resolve on every call.
type collection struct {
	id, title, handle string
	productIDs        []string
}

type Option func(*Catalog)

// WithClock sets the clock used to date new reviews.
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) {
		if now != nil {
			c.now = now
		}
	}
}

func New(cur currency.Unit, opts ...Option) *Catalog {
	c := &Catalog{
		now:  time.Now,
		byID: make(map[string]int, len(seedProducts)),
	}

	for _, opt := range opts {
		opt(c)
	}

	for i, seed := range seedProducts {
		c.products = append(c.products, seed.product(cur))
		c.byID[seed.id] = i
	}

	c.collections = []collection{
		{
			id:         "col-001",
			title:      "Fresh Drops",
			handle:     "fresh-drops",
			productIDs: productIDs(c.products[:4]),
		},
		{
			id:         "col-002",
			title:      "Trending Now",
			handle:     "trending-now",
			productIDs: productIDs(topRated(c.products, 4)),
		},
		{
			id:         "col-003",
			title:      "Snack Attack",
			handle:     "snack-attack",
			productIDs: productIDs(c.ProductsByCategory(domain.CategoryFood)),
		},
	}

	return c
}

func (c *Catalog) All() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.products)
}

func (c *Catalog) ProductByID(id string) (domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

func (c *Catalog) ProductsByCategory(category domain.Category) []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []domain.Product
	for _, p := range c.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) Collections() []Collection {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Collection, 0, len(c.collections))
	for _, col := range c.collections {
		out = append(out, c.resolve(col))
	}
	return out
}

func (c *Catalog) CollectionByHandle(handle string) (Collection, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, col := range c.collections {
		if col.handle == handle {
			return c.resolve(col), true
		}
	}
	return Collection{}, false
}

// resolve must be called with mu held.
func (c *Catalog) resolve(col collection) Collection {
	products := make([]domain.Product, 0, len(col.productIDs))
	for _, id := range col.productIDs {
		products = append(products, c.products[c.byID[id]])
	}

	return Collection{
		ID:       col.id,
		Title:    col.title,
		Handle:   col.handle,
		Products: products,
	}
}

// AddReview appends review to the product's reviews and returns the updated
// product. Author and comment are required and the rating must be 1 to 5.
// The review gets a fresh ID and today's date; any given ID or date is ignored.
func (c *Catalog) AddReview(productID string, review domain.Review) (domain.Product, error) {
	review.Author = strings.TrimSpace(review.Author)
	review.Comment = strings.TrimSpace(review.Comment)

	if err := validateReview(review); err != nil {
		return domain.Product{}, err
	}

	review.ID = "review-" + uuid.NewString()
	review.Date = c.now().UTC().Truncate(24 * time.Hour)

	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.byID[productID]
	if !ok {
		return domain.Product{}, fmt.Errorf("product[%s] not found", productID)
	}

	p := c.products[i]
	p.Reviews = slices.Concat(p.Reviews, []domain.Review{review})
	c.products[i] = p

	return p, nil
}

func validateReview(r domain.Review) error {
	var errs []error

	if r.Author == "" {
		errs = append(errs, fmt.Errorf("author is empty"))
	}
	if r.Comment == "" {
		errs = append(errs, fmt.Errorf("comment is empty"))
	}
	if r.Rating < 1 || r.Rating > 5 {
		errs = append(errs, fmt.Errorf("rating[%d] is not between 1 and 5", r.Rating))
	}

	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrInvalidReview, errors.Join(errs...))
}

// Filter applies q. Relevance keeps catalog order; there is no ranking.
func (c *Catalog) Filter(q Query) []domain.Product {
	term := strings.ToLower(strings.TrimSpace(q.Term))

	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []domain.Product
	for _, p := range c.products {
		if len(q.Categories) > 0 && !slices.Contains(q.Categories, p.Category) {
			continue
		}
		if q.MinPrice.Valid && p.Price.Amount.LessThan(q.MinPrice.Decimal) {
			continue
		}
		if q.MaxPrice.Valid && p.Price.Amount.GreaterThan(q.MaxPrice.Decimal) {
			continue
		}
		if term != "" && !matches(p, term) {
			continue
		}
		out = append(out, p)
	}

	switch q.Sort {
	case SortPriceAsc:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return a.Price.Amount.Cmp(b.Price.Amount) })
	case SortPriceDesc:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return b.Price.Amount.Cmp(a.Price.Amount) })
	case SortNameAsc:
		slices.SortStableFunc(out, func(a, b domain.Product) int {
			return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		})
	}

	return out
}

func matches(p domain.Product, term string) bool {
	if strings.Contains(strings.ToLower(p.Name), term) || strings.Contains(strings.ToLower(p.Description), term) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func topRated(products []domain.Product, n int) []domain.Product {
	ranked := slices.Clone(products)
	slices.SortStableFunc(ranked, func(a, b domain.Product) int {
		ra, _ := a.AverageRating()
		rb, _ := b.AverageRating()
		return rb.Cmp(ra)
	})
	return ranked[:min(n, len(ranked))]
}

func productIDs(products []domain.Product) []string {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}
