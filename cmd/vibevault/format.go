package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/nikolayk812/vibe-vault/internal/domain"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

func formatMoney(m domain.Money) string {
	amount, _ := m.Round().Amount.Float64()
	return printer.Sprint(currency.Symbol(m.Currency.Amount(amount)))
}

func printProducts(w io.Writer, products []domain.Product) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tRATING\tSTOCK")
	for _, p := range products {
		rating := "-"
		if avg, ok := p.AverageRating(); ok {
			rating = avg.StringFixed(1)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n", p.ID, p.Name, p.Category, formatMoney(p.Price), rating, p.Stock)
	}

	return tw.Flush()
}

func printProduct(w io.Writer, p domain.Product) error {
	fmt.Fprintf(w, "%s (%s)\n", p.Name, p.ID)
	fmt.Fprintf(w, "%s\n\n", p.Description)
	fmt.Fprintf(w, "Price:    %s\n", formatMoney(p.Price))
	fmt.Fprintf(w, "Category: %s\n", p.Category)
	fmt.Fprintf(w, "Stock:    %d\n", p.Stock)
	if p.SKU != "" {
		fmt.Fprintf(w, "SKU:      %s\n", p.SKU)
	}
	if len(p.Tags) > 0 {
		fmt.Fprintf(w, "Tags:     %s\n", strings.Join(p.Tags, ", "))
	}
	for _, k := range slices.Sorted(maps.Keys(p.Details)) {
		fmt.Fprintf(w, "%s: %s\n", k, p.Details[k])
	}

	if avg, ok := p.AverageRating(); ok {
		fmt.Fprintf(w, "\nRating %s from %d reviews\n", avg.StringFixed(1), len(p.Reviews))
		for _, r := range p.Reviews {
			fmt.Fprintf(w, "  %s %s (%d/5): %s\n", r.Date.Format("2006-01-02"), r.Author, r.Rating, r.Comment)
		}
	}

	return nil
}

func printCart(w io.Writer, cart domain.Cart, totals domain.Totals) error {
	if cart.IsEmpty() {
		_, err := fmt.Fprintln(w, "Your cart is empty.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tQTY\tLINE TOTAL")
	for _, item := range cart.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			item.ProductID, item.Name, formatMoney(item.UnitPrice), item.Quantity, formatMoney(item.LineTotal()))
	}
	fmt.Fprintln(tw, "\t\t\t\t")

	shipping := "Free"
	if !totals.Shipping.IsZero() {
		shipping = formatMoney(totals.Shipping)
	}

	fmt.Fprintf(tw, "\t\t\tItems\t%d\n", cart.ItemCount())
	fmt.Fprintf(tw, "\t\t\tSubtotal\t%s\n", formatMoney(totals.Subtotal))
	fmt.Fprintf(tw, "\t\t\tShipping\t%s\n", shipping)
	fmt.Fprintf(tw, "\t\t\tTaxes\t%s\n", formatMoney(totals.Tax))
	fmt.Fprintf(tw, "\t\t\tTotal\t%s\n", formatMoney(totals.Total))

	return tw.Flush()
}
