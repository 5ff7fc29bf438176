package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/minidex/pkg/types"
)

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the full collection",
		Long: `List prints every item in insertion order together with its stats.

Example:
  minidex list
  minidex list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := a.catalog.Entries()
			if err != nil {
				return fmt.Errorf("read collection: %w", err)
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), entries)
			}
			printEntryTable(cmd.OutOrStdout(), entries)
			return nil
		},
	}
}

func (a *app) newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <name>",
		Short: "Search items by name",
		Long: `Search prints the items whose name contains the given text, ignoring
case, followed by the stats of each match.

Example:
  minidex search aqua
  minidex search "terra golem" --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSearch(cmd, strings.Join(args, " "))
		},
	}
}

func (a *app) runSearch(cmd *cobra.Command, query string) error {
	out := cmd.OutOrStdout()
	items, err := a.catalog.SearchByName(query)
	if err != nil {
		if errors.Is(err, types.ErrEmptyQuery) {
			return errors.New("empty input: give part of a name to search for")
		}
		return fmt.Errorf("search: %w", err)
	}
	entries, err := a.catalog.Lookup(items)
	if err != nil {
		return fmt.Errorf("read stats: %w", err)
	}
	if a.flags.jsonMode {
		return printJSON(out, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No results found.")
		return nil
	}
	for _, e := range entries {
		printItem(out, e.Item)
		printStatsLine(out, e.ID, e.Stats)
	}
	return nil
}
