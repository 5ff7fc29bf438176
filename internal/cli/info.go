package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// infoOutput is the JSON form of `minidex info`.
type infoOutput struct {
	ConfigDir     string    `json:"config_dir"`
	ItemsPath     string    `json:"items_path"`
	StatsPath     string    `json:"stats_path"`
	Items         int       `json:"items"`
	NextID        string    `json:"next_id"`
	Stats         int       `json:"stats"`
	StatsRevision string    `json:"stats_revision,omitempty"`
	StatsSavedAt  time.Time `json:"stats_saved_at,omitzero"`
}

func (a *app) newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show storage locations and counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.catalog.Items()
			if err != nil {
				return fmt.Errorf("read collection: %w", err)
			}
			next, err := a.catalog.NextID()
			if err != nil {
				return fmt.Errorf("read collection: %w", err)
			}
			meta, ok, err := a.stats.Meta()
			if err != nil {
				return fmt.Errorf("read stats: %w", err)
			}
			info := infoOutput{
				ConfigDir: a.configDir,
				ItemsPath: a.items.Path(),
				StatsPath: a.stats.Path(),
				Items:     len(items),
				NextID:    next,
			}
			if ok {
				info.Stats = meta.Count
				info.StatsRevision = meta.Revision
				info.StatsSavedAt = meta.SavedAt
			}

			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return printJSON(out, info)
			}
			fmt.Fprintf(out, "config dir: %s\n", info.ConfigDir)
			fmt.Fprintf(out, "items:      %s (%d items, next id %s)\n", info.ItemsPath, info.Items, info.NextID)
			fmt.Fprintf(out, "stats:      %s (%d records)\n", info.StatsPath, info.Stats)
			if ok {
				fmt.Fprintf(out, "revision:   %s saved %s\n", info.StatsRevision, info.StatsSavedAt.Format(time.RFC3339))
			}
			return nil
		},
	}
}
