package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/minidex/internal/catalog"
)

func (a *app) newReportCmd() *cobra.Command {
	var opts catalog.ReportOptions
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Rank items joined with their stats",
		Long: `Report joins the collection with the stats and orders the result.

Example:
  minidex report --sort rating --limit 3
  minidex report --sort rarity --category Agua --with-stats`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := a.catalog.Report(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("report: %w", err)
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), entries)
			}
			printEntryTable(cmd.OutOrStdout(), entries)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.SortBy, "sort", catalog.SortStore, "sort key: "+strings.Join(catalog.SortKeys(), ", "))
	cmd.Flags().StringVar(&opts.Category, "category", "", "only items of this category")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of rows (0 = no limit)")
	cmd.Flags().BoolVar(&opts.OnlyWithStats, "with-stats", false, "only items that have stats")
	return cmd
}
