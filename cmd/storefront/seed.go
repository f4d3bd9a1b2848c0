package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/storefront/internal/seed"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo catalogue",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, log, err := loadConfig(opts.envFile)
			if err != nil {
				return err
			}
			ctx = logging.IntoContext(ctx, log)

			a, err := newApp(ctx, cfg, log)
			if err != nil {
				return fmt.Errorf("init: %w", err)
			}
			defer a.Close()

			n, err := seed.Seed(ctx, a.catalog(), force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d products\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "clear existing products first")
	return cmd
}
