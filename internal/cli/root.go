// Package cli implements the minidex command-line interface: one cobra
// command per catalog operation plus an interactive menu shell.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/minidex/internal/catalog"
	"github.com/mesh-intelligence/minidex/internal/paths"
	"github.com/mesh-intelligence/minidex/internal/store"
	"github.com/mesh-intelligence/minidex/pkg/minidex"
	"github.com/mesh-intelligence/minidex/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	logLevel  string
	jsonMode  bool
}

// app is the state shared by the commands of one invocation.
type app struct {
	flags     rootFlags
	configDir string
	cfg       types.Config
	logger    *slog.Logger
	items     *store.ItemStore
	stats     *store.StatsStore
	catalog   *catalog.Catalog
}

// NewRootCmd creates the top-level "minidex" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "minidex",
		Short: "A small record keeper for cataloged items and their stats",
		Long: `minidex appends items (name, category, year, creator, rating) to a
pipe-delimited text log and keeps numeric stats per item id in a separate
JSON blob. Both can be queried by id or by name.`,
		Version:           minidex.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: .minidex-db)")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error (default: warn)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(a.newInitCmd())
	root.AddCommand(a.newAddCmd())
	root.AddCommand(a.newListCmd())
	root.AddCommand(a.newSearchCmd())
	root.AddCommand(a.newStatsCmd())
	root.AddCommand(a.newReportCmd())
	root.AddCommand(a.newSeedCmd())
	root.AddCommand(a.newInfoCmd())
	root.AddCommand(a.newShellCmd())

	return root
}

// Execute runs the root command against the process streams and exits with
// the appropriate code.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one invocation and returns its exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// exitCode maps an error to the process exit code: bad input is a user
// error, store failures are system errors.
func exitCode(err error) int {
	var sysErr *systemError
	switch {
	case err == nil:
		return exitSuccess
	case types.IsIO(err), errors.As(err, &sysErr):
		return exitSysError
	default:
		return exitUserError
	}
}

// systemError marks setup failures unrelated to user input.
type systemError struct{ err error }

func (e *systemError) Error() string { return e.err.Error() }
func (e *systemError) Unwrap() error { return e.err }

// setup resolves directories, loads config.yaml, builds the logger and opens
// the stores. It runs before every subcommand except version.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return &systemError{fmt.Errorf("resolve config dir: %w", err)}
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return &systemError{err}
	}

	level := a.flags.logLevel
	if level == "" {
		level = v.GetString(cfgKeyLogLevel)
	}
	logger, err := newLogger(cmd.ErrOrStderr(), level)
	if err != nil {
		return err
	}

	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return &systemError{fmt.Errorf("resolve data dir: %w", err)}
	}

	a.configDir = configDir
	a.logger = logger
	return a.open(types.Config{
		DataDir:   dataDir,
		ItemsFile: v.GetString(cfgKeyItemsFile),
		StatsFile: v.GetString(cfgKeyStatsFile),
	})
}

// open builds the stores and the catalog for cfg.
func (a *app) open(cfg types.Config) error {
	items, err := store.NewItemStore(cfg, a.logger)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	stats, err := store.NewStatsStore(cfg, a.logger)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg
	a.items = items
	a.stats = stats
	a.catalog = catalog.New(items, stats, a.logger)
	a.logger.Debug("stores opened", "items", items.Path(), "stats", stats.Path())
	return nil
}
