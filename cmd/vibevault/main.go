package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/nikolayk812/vibe-vault/internal/config"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, cleanup := newRootCmd()
	err := root.ExecuteContext(ctx)
	cleanup()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

// newRootCmd returns the command tree and a cleanup that releases whatever
// the executed command opened.
func newRootCmd() (*cobra.Command, func()) {
	var (
		configPath string
		a          *app
	)

	root := &cobra.Command{
		Use:   "vibevault",
		Short: "Vibe Vault storefront: browse products, manage the cart, check out",
		Long: `Vibe Vault is a demo storefront.

The cart is persisted under the key "cart" in the configured storage backend
(memory, file, sqlite or postgres), so every vibevault process sharing that
storage sees the same cart. Run "vibevault watch" in one terminal and
mutate the cart from another to see changes arrive.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("config.Load: %w", err)
			}

			a, err = newApp(cmd.Context(), cfg)
			return err
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(), "path to the YAML config file")

	// commands resolve the app lazily: it only exists once PersistentPreRunE ran
	current := func() *app { return a }

	root.AddCommand(
		newProductsCmd(current),
		newProductCmd(current),
		newCartCmd(current),
		newCheckoutCmd(current),
		newWatchCmd(current),
	)

	cleanup := func() {
		if a != nil {
			a.Close()
		}
	}

	return root, cleanup
}

func defaultConfigPath() string {
	if path := os.Getenv("VIBEVAULT_CONFIG"); path != "" {
		return path
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "vibevault.yaml"
	}
	return filepath.Join(dir, "vibevault", "config.yaml")
}
