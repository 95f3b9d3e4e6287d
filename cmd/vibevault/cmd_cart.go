package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newCartCmd(current func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show and change the shopping cart",
	}

	show := func(cmd *cobra.Command) error {
		cart, totals := current().orders.Summary(cmd.Context())
		return printCart(cmd.OutOrStdout(), cart, totals)
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the cart with its order summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return show(cmd)
		},
	}

	var quantity int
	addCmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()

			product, ok := a.catalog.ProductByID(args[0])
			if !ok {
				return fmt.Errorf("product[%s] not found", args[0])
			}

			a.store.AddItem(cmd.Context(), product, quantity)
			return show(cmd)
		},
	}
	addCmd.Flags().IntVarP(&quantity, "quantity", "n", 1, "how many to add")

	setCmd := &cobra.Command{
		Use:   "set <product-id> <quantity>",
		Short: "Set a line's quantity; 0 removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity[%s] is not a number", args[1])
			}

			current().store.SetQuantity(cmd.Context(), args[0], n)
			return show(cmd)
		},
	}

	removeCmd := &cobra.Command{
		Use:     "remove <product-id>",
		Aliases: []string{"rm"},
		Short:   "Remove a line from the cart",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current().store.RemoveItem(cmd.Context(), args[0])
			return show(cmd)
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current().store.Clear(cmd.Context())
			return show(cmd)
		},
	}

	cmd.AddCommand(showCmd, addCmd, setCmd, removeCmd, clearCmd)

	return cmd
}
