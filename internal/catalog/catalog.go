// Package catalog is the query layer over the item log and the stats blob.
// Every operation reads the stores afresh; nothing is cached between calls.
package catalog

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/minidex/internal/store"
	"github.com/mesh-intelligence/minidex/pkg/types"
)

// ItemLog is the part of the item store the catalog uses.
type ItemLog interface {
	EnsureInitialized() error
	Append(item types.Item) error
	ReadAll() ([]types.Item, error)
	NextID() (string, error)
}

// StatsBlob is the part of the stats store the catalog uses.
type StatsBlob interface {
	Exists() (bool, error)
	Load() (map[string]types.StatsRecord, error)
	Save(stats map[string]types.StatsRecord) error
	Upsert(id string, rec types.StatsRecord) error
}

// ErrNotEmpty is returned by Seed when the item log already holds items.
var ErrNotEmpty = errors.New("catalog already has items")

// Entry is an item joined with its stats record, if any.
type Entry struct {
	types.Item
	Stats *types.StatsRecord `json:"stats,omitempty"`
}

// Catalog answers queries over both stores.
type Catalog struct {
	items  ItemLog
	stats  StatsBlob
	logger *slog.Logger
}

// New returns a Catalog over the given stores.
func New(items ItemLog, stats StatsBlob, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Catalog{items: items, stats: stats, logger: logger}
}

// Open builds both file stores from cfg and returns a Catalog over them.
func Open(cfg types.Config, logger *slog.Logger) (*Catalog, error) {
	items, err := store.NewItemStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	stats, err := store.NewStatsStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	return New(items, stats, logger), nil
}

// Items returns every item in log order.
func (c *Catalog) Items() ([]types.Item, error) {
	return c.items.ReadAll()
}

// Stats returns the full stats mapping.
func (c *Catalog) Stats() (map[string]types.StatsRecord, error) {
	return c.stats.Load()
}

// NextID returns the id the next added item will get.
func (c *Catalog) NextID() (string, error) {
	return c.items.NextID()
}

// AddItem assigns the next id to fields and appends the item. Validation
// failures leave the log unchanged.
func (c *Catalog) AddItem(fields types.ItemFields) (types.Item, error) {
	id, err := c.items.NextID()
	if err != nil {
		return types.Item{}, err
	}
	item, err := fields.ToItem(id)
	if err != nil {
		return types.Item{}, err
	}
	if err := c.items.Append(item); err != nil {
		return types.Item{}, err
	}
	c.logger.Info("item added", "id", item.ID, "name", item.Name)
	return item, nil
}

// SetStats attaches rec to id. The id is not checked against the item log.
func (c *Catalog) SetStats(id string, rec types.StatsRecord) error {
	if err := c.stats.Upsert(id, rec); err != nil {
		return err
	}
	c.logger.Info("stats set", "id", strings.TrimSpace(id), "rarity", rec.Rarity)
	return nil
}

// SearchByName returns the items whose trimmed name contains query, ignoring
// case, in log order. A blank query returns ErrEmptyQuery instead of every item.
func (c *Catalog) SearchByName(query string) ([]types.Item, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, types.ErrEmptyQuery
	}
	items, err := c.items.ReadAll()
	if err != nil {
		return nil, err
	}
	var matches []types.Item
	for _, it := range items {
		if strings.Contains(strings.ToLower(strings.TrimSpace(it.Name)), q) {
			matches = append(matches, it)
		}
	}
	return matches, nil
}

// FindStats looks up the stats of id. A missing record is reported through
// found, not as an error.
func (c *Catalog) FindStats(id string) (rec types.StatsRecord, found bool, err error) {
	stats, err := c.stats.Load()
	if err != nil {
		return types.StatsRecord{}, false, err
	}
	rec, found = stats[strings.TrimSpace(id)]
	return rec, found, nil
}

// Entries joins every item with its stats record, in log order.
func (c *Catalog) Entries() ([]Entry, error) {
	items, err := c.items.ReadAll()
	if err != nil {
		return nil, err
	}
	stats, err := c.stats.Load()
	if err != nil {
		return nil, err
	}
	return join(items, stats), nil
}

// Lookup returns the entries for the given items, reading stats once.
func (c *Catalog) Lookup(items []types.Item) ([]Entry, error) {
	stats, err := c.stats.Load()
	if err != nil {
		return nil, err
	}
	return join(items, stats), nil
}

func join(items []types.Item, stats map[string]types.StatsRecord) []Entry {
	entries := make([]Entry, len(items))
	for i, it := range items {
		entries[i] = Entry{Item: it}
		if rec, ok := stats[strings.TrimSpace(it.ID)]; ok {
			entries[i].Stats = &rec
		}
	}
	return entries
}

func parseID(id string) (int64, error) {
	return strconv.ParseInt(id, 10, 64)
}
