package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/minidex/internal/paths"
)

func (a *app) newInitCmd() *cobra.Command {
	var global bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize minidex storage",
		Long: `Create the configuration directory and config.yaml, then the item log
(with its header row) and an empty stats blob. Existing files are kept.

With --global the data directory recorded in a new config.yaml is the
platform data directory instead of ./.minidex-db.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd, global)
		},
	}
	cmd.Flags().BoolVar(&global, "global", false, "store data in the platform data directory")
	return cmd
}

func (a *app) runInit(cmd *cobra.Command, global bool) error {
	if global && a.flags.dataDir == "" {
		dir, err := paths.DefaultDataDir()
		if err != nil {
			return &systemError{fmt.Errorf("resolve platform data dir: %w", err)}
		}
		cfg := a.cfg
		cfg.DataDir = dir
		if err := a.open(cfg); err != nil {
			return err
		}
	}

	recorded := ""
	if global || a.flags.dataDir != "" {
		recorded = a.cfg.DataDir
	}
	created, err := writeConfigIfMissing(a.configDir, recorded)
	if err != nil {
		return &systemError{err}
	}
	if created {
		a.logger.Info("config written", "dir", a.configDir)
	}

	if err := a.catalog.Init(); err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "minidex initialized successfully")
	fmt.Fprintf(out, "  items: %s\n  stats: %s\n", a.items.Path(), a.stats.Path())
	return nil
}
