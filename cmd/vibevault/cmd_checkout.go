package main

import (
	"fmt"

	"github.com/nikolayk812/vibe-vault/internal/checkout"
	"github.com/spf13/cobra"
)

func newCheckoutCmd(current func() *app) *cobra.Command {
	var (
		form    checkout.Form
		payment string
	)

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the cart and empty it",
		Long: `Place an order for everything in the cart.

This is a demo: nothing is charged and the order is not stored. On success
the cart is cleared and an order confirmation is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form.PaymentMethod = checkout.PaymentMethod(payment)

			confirmation, err := current().orders.PlaceOrder(cmd.Context(), form)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Order %s placed at %s\n\n", confirmation.OrderID, confirmation.PlacedAt.Format("2006-01-02 15:04 MST"))
			fmt.Fprintf(w, "Items:    %d\n", len(confirmation.Items))
			fmt.Fprintf(w, "Subtotal: %s\n", formatMoney(confirmation.Totals.Subtotal))
			fmt.Fprintf(w, "Shipping: %s\n", formatMoney(confirmation.Totals.Shipping))
			fmt.Fprintf(w, "Taxes:    %s\n", formatMoney(confirmation.Totals.Tax))
			fmt.Fprintf(w, "Total:    %s\n", formatMoney(confirmation.Totals.Total))

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&form.Email, "email", "", "contact email")
	flags.StringVar(&form.FirstName, "first-name", "", "first name")
	flags.StringVar(&form.LastName, "last-name", "", "last name")
	flags.StringVar(&form.Address, "address", "", "street address")
	flags.StringVar(&form.City, "city", "", "city")
	flags.StringVar(&form.PostalCode, "postal-code", "", "postal code")
	flags.StringVar(&form.Country, "country", checkout.DefaultCountry, "country")
	flags.StringVar(&payment, "payment", string(checkout.PaymentCard), "payment method (card, paypal)")
	flags.StringVar(&form.CardNumber, "card-number", "", "card number")
	flags.StringVar(&form.ExpiryDate, "expiry", "", "card expiry, MM/YY")
	flags.StringVar(&form.CVC, "cvc", "", "card security code")

	return cmd
}
