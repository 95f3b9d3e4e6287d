package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryClothes Category = "clothes"
	CategoryFood    Category = "food"
)

func (c Category) Valid() bool {
	return c == CategoryClothes || c == CategoryFood
}

type Product struct {
	ID          string
	Name        string
	Description string
	Price       Money
	Category    Category
	Images      []string
	Stock       int

	// optional
	Tags    []string
	SKU     string
	Details map[string]string
	Reviews []Review
}

type Review struct {
	ID      string
	Author  string
	Rating  int // 1-5
	Comment string
	Date    time.Time
}

// AverageRating returns the mean review rating rounded to one decimal place.
// ok is false when the product has no reviews.
func (p Product) AverageRating() (avg decimal.Decimal, ok bool) {
	if len(p.Reviews) == 0 {
		return decimal.Zero, false
	}

	var sum int64
	for _, r := range p.Reviews {
		sum += int64(r.Rating)
	}

	return decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(len(p.Reviews)))).Round(1), true
}
