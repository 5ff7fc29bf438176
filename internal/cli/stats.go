package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/minidex/pkg/types"
)

func (a *app) newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Manage the stats attached to item ids",
	}
	cmd.AddCommand(a.newStatsSetCmd())
	cmd.AddCommand(a.newStatsGetCmd())
	cmd.AddCommand(a.newStatsListCmd())
	return cmd
}

func (a *app) newStatsSetCmd() *cobra.Command {
	var sf statsFlags
	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Attach or replace the stats of an id",
		Long: `Set stores the given stats under id, replacing any previous record.
Missing values default to 0; rarity must be between 1 and 100. The id is
not checked against the item log.

Example:
  minidex stats set 1 --power 85 --popularity 92 --views 1200 --rarity 15`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := sf.record()
			if err != nil {
				return err
			}
			if err := a.catalog.SetStats(args[0], rec); err != nil {
				return fmt.Errorf("set stats: %w", err)
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), rec)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stats saved for ID %s.\n", args[0])
			return nil
		},
	}
	sf.register(cmd)
	return cmd
}

func (a *app) newStatsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show the stats of an id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			rec, found, err := a.catalog.FindStats(id)
			if err != nil {
				return fmt.Errorf("read stats: %w", err)
			}
			out := cmd.OutOrStdout()
			if !found {
				if a.flags.jsonMode {
					return printJSON(out, nil)
				}
				fmt.Fprintf(out, "No stats associated with ID %s.\n", id)
				return nil
			}
			if a.flags.jsonMode {
				return printJSON(out, rec)
			}
			printStatsLine(out, id, &rec)
			return nil
		},
	}
}

func (a *app) newStatsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show every saved stats record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := a.catalog.Stats()
			if err != nil {
				return fmt.Errorf("read stats: %w", err)
			}
			if a.flags.jsonMode {
				if stats == nil {
					stats = map[string]types.StatsRecord{}
				}
				return printJSON(cmd.OutOrStdout(), stats)
			}
			printStatsTable(cmd.OutOrStdout(), stats)
			return nil
		},
	}
}
