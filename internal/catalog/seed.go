package catalog

import (
	"fmt"

	"github.com/mesh-intelligence/minidex/pkg/types"
)

// sampleEntry is one item preloaded by Seed.
type sampleEntry struct {
	item  types.Item
	stats types.StatsRecord
}

var samples = []sampleEntry{
	{
		item:  types.Item{ID: "1", Name: "PikaMon", Category: "Eléctrico", Year: "1996", Creator: "Satoshi", Rating: 9.0},
		stats: types.StatsRecord{Power: 85, Popularity: 92, Views: 1200, Rarity: 15},
	},
	{
		item:  types.Item{ID: "2", Name: "AquaDrake", Category: "Agua", Year: "2001", Creator: "Marina", Rating: 8.5},
		stats: types.StatsRecord{Power: 70, Popularity: 80, Views: 800, Rarity: 25},
	},
	{
		item:  types.Item{ID: "3", Name: "TerraGolem", Category: "Tierra", Year: "1999", Creator: "Gaia", Rating: 8.8},
		stats: types.StatsRecord{Power: 90, Popularity: 75, Views: 650, Rarity: 40},
	},
	{
		item:  types.Item{ID: "4", Name: "NeoFlame", Category: "Fuego", Year: "2005", Creator: "Ignis", Rating: 9.2},
		stats: types.StatsRecord{Power: 95, Popularity: 88, Views: 1500, Rarity: 10},
	},
	{
		item:  types.Item{ID: "5", Name: "WindSprite", Category: "Aire", Year: "2010", Creator: "Zeph", Rating: 7.9},
		stats: types.StatsRecord{Power: 60, Popularity: 60, Views: 400, Rarity: 55},
	},
}

// Seed preloads the sample items and their stats into an empty catalog and
// returns how many items it wrote. It returns ErrNotEmpty without writing
// anything when the item log already has items. Stats already stored for
// other ids are kept.
func (c *Catalog) Seed() (int, error) {
	existing, err := c.items.ReadAll()
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, ErrNotEmpty
	}
	for i, s := range samples {
		if err := c.items.Append(s.item); err != nil {
			return i, fmt.Errorf("seed item %s: %w", s.item.ID, err)
		}
	}
	stats, err := c.stats.Load()
	if err != nil {
		return len(samples), err
	}
	for _, s := range samples {
		stats[s.item.ID] = s.stats
	}
	if err := c.stats.Save(stats); err != nil {
		return len(samples), fmt.Errorf("seed stats: %w", err)
	}
	c.logger.Info("catalog seeded", "items", len(samples))
	return len(samples), nil
}

// Init prepares the catalog on disk: the item log with its header and, when
// no stats blob is present yet, an empty one. Existing data is left alone.
func (c *Catalog) Init() error {
	if err := c.items.EnsureInitialized(); err != nil {
		return err
	}
	ok, err := c.stats.Exists()
	if err != nil || ok {
		return err
	}
	return c.stats.Save(nil)
}
