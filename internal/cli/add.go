package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/minidex/internal/catalog"
	"github.com/mesh-intelligence/minidex/pkg/types"
)

// itemFlags binds the item field flags of add.
type itemFlags struct {
	types.ItemFields
}

func (f *itemFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Name, "name", "", "item name (required)")
	cmd.Flags().StringVar(&f.Category, "category", "", "item category")
	cmd.Flags().StringVar(&f.Year, "year", "", "year, e.g. 2023")
	cmd.Flags().StringVar(&f.Creator, "creator", "", "creator")
	cmd.Flags().StringVar(&f.Rating, "rating", "", "rating between 0 and 10 (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("rating")
}

// statsFlags binds the stats flags shared by add and stats set.
type statsFlags struct {
	power, popularity, views, rarity string
}

func (f *statsFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.power, "power", "", "power (integer, default 0)")
	cmd.Flags().StringVar(&f.popularity, "popularity", "", "popularity (integer, default 0)")
	cmd.Flags().StringVar(&f.views, "views", "", "views (integer, default 0)")
	cmd.Flags().StringVar(&f.rarity, "rarity", "", "rarity between 1 and 100")
}

// changed reports whether any stats flag was given.
func (f *statsFlags) changed(cmd *cobra.Command) bool {
	for _, name := range []string{"power", "popularity", "views", "rarity"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func (f *statsFlags) record() (types.StatsRecord, error) {
	return types.ParseStats(f.power, f.popularity, f.views, f.rarity)
}

func (a *app) newAddCmd() *cobra.Command {
	var (
		item  itemFlags
		stats statsFlags
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item to the collection",
		Long: `Add appends a new item with the next free id. When any stats flag is
given the stats are attached to the new id as well.

Example:
  minidex add --name PikaMon --category Eléctrico --year 1996 --creator Satoshi --rating 9.0
  minidex add --name AquaDrake --rating 8.5 --power 70 --rarity 25`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAdd(cmd, item.ItemFields, &stats)
		},
	}
	item.register(cmd)
	stats.register(cmd)
	return cmd
}

func (a *app) runAdd(cmd *cobra.Command, fields types.ItemFields, sf *statsFlags) error {
	out := cmd.OutOrStdout()

	// Stats are checked before the item is written.
	var (
		rec      types.StatsRecord
		useStats = sf.changed(cmd)
	)
	if useStats {
		var err error
		if rec, err = sf.record(); err == nil {
			err = rec.Validate()
		}
		if err != nil {
			return fmt.Errorf("invalid stats: %w", err)
		}
	}

	item, err := a.catalog.AddItem(fields)
	if types.IsValidation(err) {
		return fmt.Errorf("invalid item: %w", err)
	}
	if err != nil {
		return fmt.Errorf("add item: %w", err)
	}

	entry := catalog.Entry{Item: item}
	var statsErr error
	if useStats {
		if statsErr = a.catalog.SetStats(item.ID, rec); statsErr == nil {
			entry.Stats = &rec
		}
	}

	if a.flags.jsonMode {
		if err := printJSON(out, entry); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out, "Saved %q with ID %s.\n", item.Name, item.ID)
		if entry.Stats != nil {
			fmt.Fprintln(out, "Stats attached.")
		}
	}
	if statsErr != nil {
		return fmt.Errorf("item %s saved but stats were not: %w", item.ID, statsErr)
	}
	return nil
}
