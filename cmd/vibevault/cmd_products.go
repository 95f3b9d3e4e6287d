package main

import (
	"fmt"

	"github.com/nikolayk812/vibe-vault/internal/catalog"
	"github.com/nikolayk812/vibe-vault/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newProductsCmd(current func() *app) *cobra.Command {
	var (
		categories []string
		minPrice   string
		maxPrice   string
		term       string
		sortBy     string
		collection string
	)

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products",
		Long: `List catalog products, optionally filtered by category, price range
and a search term matched against name, description and tags.

Sort orders: relevance (catalog order), price-asc, price-desc, name-asc.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := current()

			if collection != "" {
				col, ok := a.catalog.CollectionByHandle(collection)
				if !ok {
					return fmt.Errorf("collection[%s] not found", collection)
				}
				return printProducts(cmd.OutOrStdout(), col.Products)
			}

			q, err := buildQuery(categories, minPrice, maxPrice, term, sortBy)
			if err != nil {
				return err
			}

			return printProducts(cmd.OutOrStdout(), a.catalog.Filter(q))
		},
	}

	cmd.Flags().StringSliceVar(&categories, "category", nil, "only these categories (clothes, food)")
	cmd.Flags().StringVar(&minPrice, "min", "", "minimum price")
	cmd.Flags().StringVar(&maxPrice, "max", "", "maximum price")
	cmd.Flags().StringVarP(&term, "query", "q", "", "search term")
	cmd.Flags().StringVar(&sortBy, "sort", string(catalog.SortRelevance), "sort order")
	cmd.Flags().StringVar(&collection, "collection", "", "list a collection by handle instead (fresh-drops, trending-now, snack-attack)")

	return cmd
}

func newProductCmd(current func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product <id>",
		Short: "Show one product with its reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := current().catalog.ProductByID(args[0])
			if !ok {
				return fmt.Errorf("product[%s] not found", args[0])
			}
			return printProduct(cmd.OutOrStdout(), p)
		},
	}

	cmd.AddCommand(newProductReviewCmd(current))

	return cmd
}

func newProductReviewCmd(current func() *app) *cobra.Command {
	var review domain.Review

	cmd := &cobra.Command{
		Use:   "review <product-id>",
		Short: "Review a product and show its updated rating",
		Long: `Add a review to a product and print the product with its new average
rating. The catalog is held in memory, so the review is not kept after the
command exits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := current().catalog.AddReview(args[0], review)
			if err != nil {
				return err
			}
			return printProduct(cmd.OutOrStdout(), p)
		},
	}

	cmd.Flags().StringVar(&review.Author, "author", "", "your name")
	cmd.Flags().IntVar(&review.Rating, "rating", 5, "rating from 1 to 5")
	cmd.Flags().StringVar(&review.Comment, "comment", "", "what you thought")

	return cmd
}

func buildQuery(categories []string, minPrice, maxPrice, term, sortBy string) (catalog.Query, error) {
	q := catalog.Query{Term: term}

	for _, c := range categories {
		category := domain.Category(c)
		if !category.Valid() {
			return catalog.Query{}, fmt.Errorf("category[%s] is not valid", c)
		}
		q.Categories = append(q.Categories, category)
	}

	var err error
	if q.MinPrice, err = parsePrice(minPrice); err != nil {
		return catalog.Query{}, err
	}
	if q.MaxPrice, err = parsePrice(maxPrice); err != nil {
		return catalog.Query{}, err
	}

	if q.Sort, err = catalog.ParseSort(sortBy); err != nil {
		return catalog.Query{}, err
	}

	return q, nil
}

func parsePrice(s string) (decimal.NullDecimal, error) {
	if s == "" {
		return decimal.NullDecimal{}, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("price[%s] is not a number: %w", s, err)
	}

	return decimal.NewNullDecimal(d), nil
}
