package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/minidex/internal/catalog"
)

func (a *app) newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Preload five sample items and their stats",
		Long:  "Seed fills an empty collection with five sample items and their stats. A collection that already has items is left alone.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSeed(cmd)
		},
	}
}

func (a *app) runSeed(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	n, err := a.catalog.Seed()
	if errors.Is(err, catalog.ErrNotEmpty) {
		fmt.Fprintln(out, "The collection already has items; samples were not loaded.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	fmt.Fprintf(out, "Preloaded %d sample items.\n", n)
	return nil
}
