package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/minidex/pkg/types"
)

// Report sort keys.
const (
	SortStore      = "store"
	SortID         = "id"
	SortName       = "name"
	SortRating     = "rating"
	SortPower      = "power"
	SortPopularity = "popularity"
	SortViews      = "views"
	SortRarity     = "rarity"
)

// orderClauses maps each sort key to its ORDER BY expression. Items without
// stats sort after items with stats on every stats key; seq breaks ties so
// equal keys keep log order.
var orderClauses = map[string]string{
	SortStore:      "i.seq",
	SortID:         "i.num IS NULL, i.num, i.seq",
	SortName:       "i.name COLLATE NOCASE, i.seq",
	SortRating:     "i.rating DESC, i.seq",
	SortPower:      "s.power IS NULL, s.power DESC, i.seq",
	SortPopularity: "s.popularity IS NULL, s.popularity DESC, i.seq",
	SortViews:      "s.views IS NULL, s.views DESC, i.seq",
	SortRarity:     "s.rarity IS NULL, s.rarity DESC, i.seq",
}

// SortKeys lists the accepted ReportOptions.SortBy values.
func SortKeys() []string {
	return []string{SortStore, SortID, SortName, SortRating, SortPower, SortPopularity, SortViews, SortRarity}
}

// ErrUnknownSort is returned by Report for a SortBy value not in SortKeys.
var ErrUnknownSort = fmt.Errorf("%w: unknown sort key", types.ErrValidation)

// ReportOptions selects and orders the rows of a report.
type ReportOptions struct {
	SortBy        string // one of SortKeys; empty means SortStore
	Category      string // case-insensitive exact match; empty means all
	Limit         int    // 0 means no limit
	OnlyWithStats bool
}

const reportSchema = `
CREATE TABLE items (
    seq INTEGER PRIMARY KEY,
    id TEXT NOT NULL,
    num INTEGER,
    name TEXT NOT NULL,
    category TEXT NOT NULL,
    year TEXT NOT NULL,
    creator TEXT NOT NULL,
    rating REAL NOT NULL
);
CREATE TABLE stats (
    id TEXT PRIMARY KEY,
    power INTEGER NOT NULL,
    popularity INTEGER NOT NULL,
    views INTEGER NOT NULL,
    rarity INTEGER NOT NULL
);`

// Report loads both stores into an in-memory SQLite database, joins items
// with their stats and returns the rows ordered by opts.SortBy. The database
// lives only for the duration of the call.
func (c *Catalog) Report(ctx context.Context, opts ReportOptions) ([]Entry, error) {
	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = SortStore
	}
	order, ok := orderClauses[sortBy]
	if !ok {
		return nil, fmt.Errorf("%w %q (valid: %s)", ErrUnknownSort, opts.SortBy, strings.Join(SortKeys(), ", "))
	}

	items, err := c.items.ReadAll()
	if err != nil {
		return nil, err
	}
	stats, err := c.stats.Load()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open report database: %w", err)
	}
	defer db.Close()
	// Each pooled connection would get its own empty :memory: database.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, reportSchema); err != nil {
		return nil, fmt.Errorf("create report schema: %w", err)
	}
	if err := loadReportTables(ctx, db, items, stats, opts.Category); err != nil {
		return nil, err
	}

	query := `SELECT i.id, i.name, i.category, i.year, i.creator, i.rating,
       s.power, s.popularity, s.views, s.rarity
FROM items i LEFT JOIN stats s ON s.id = i.id`
	if opts.OnlyWithStats {
		query += "\nWHERE s.id IS NOT NULL"
	}
	query += "\nORDER BY " + order + "\nLIMIT ?"
	limit := -1
	if opts.Limit > 0 {
		limit = opts.Limit
	}

	rows, err := db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query report: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                              Entry
			power, popularity, views, rare sql.NullInt64
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.Category, &e.Year, &e.Creator, &e.Rating,
			&power, &popularity, &views, &rare); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		if rare.Valid {
			e.Stats = &types.StatsRecord{
				Power:      int(power.Int64),
				Popularity: int(popularity.Int64),
				Views:      int(views.Int64),
				Rarity:     int(rare.Int64),
			}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate report rows: %w", err)
	}
	return entries, nil
}

func loadReportTables(ctx context.Context, db *sql.DB, items []types.Item, stats map[string]types.StatsRecord, category string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin report load: %w", err)
	}
	defer tx.Rollback()

	itemStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO items (seq, id, num, name, category, year, creator, rating) VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare item insert: %w", err)
	}
	defer itemStmt.Close()

	category = strings.TrimSpace(category)
	for seq, it := range items {
		if category != "" && !strings.EqualFold(strings.TrimSpace(it.Category), category) {
			continue
		}
		id := strings.TrimSpace(it.ID)
		var num sql.NullInt64
		if n, err := parseID(id); err == nil {
			num = sql.NullInt64{Int64: n, Valid: true}
		}
		if _, err := itemStmt.ExecContext(ctx, seq, id, num, it.Name, it.Category, it.Year, it.Creator, it.Rating); err != nil {
			return fmt.Errorf("insert item %s: %w", id, err)
		}
	}

	statStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO stats (id, power, popularity, views, rarity) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare stats insert: %w", err)
	}
	defer statStmt.Close()

	for id, rec := range stats {
		if _, err := statStmt.ExecContext(ctx, id, rec.Power, rec.Popularity, rec.Views, rec.Rarity); err != nil {
			return fmt.Errorf("insert stats %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit report load: %w", err)
	}
	return nil
}
