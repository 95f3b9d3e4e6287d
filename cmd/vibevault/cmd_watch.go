package main

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newWatchCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print the cart whenever it changes, until interrupted",
		Long: `Print the cart, then print it again every time it changes, including
changes made by other vibevault processes sharing the same storage.

Only the file and postgres backends report such changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := current()
			if a.watcher == nil {
				return fmt.Errorf("backend[%s] does not report changes", a.cfg.Storage.Backend)
			}

			ctx := cmd.Context()
			w := cmd.OutOrStdout()

			// observers run on whichever goroutine changed the cart
			render := serialized(func() {
				cart, totals := a.orders.Summary(ctx)
				if err := printCart(w, cart, totals); err != nil {
					a.logger.Warn("failed to print cart", zap.Error(err))
				}
				fmt.Fprintln(w)
			})

			unsubscribe := a.store.Subscribe(render)
			defer unsubscribe()

			render()

			return a.store.Follow(ctx, a.watcher)
		},
	}
}

// serialized wraps fn so that concurrent calls run one at a time.
func serialized(fn func()) func() {
	var mu sync.Mutex
	return func() {
		mu.Lock()
		defer mu.Unlock()

		fn()
	}
}
