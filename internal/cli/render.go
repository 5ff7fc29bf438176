package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/mesh-intelligence/minidex/internal/catalog"
	"github.com/mesh-intelligence/minidex/pkg/types"
)

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(w, string(output))
	return nil
}

// printItem writes one item on a single line.
func printItem(w io.Writer, it types.Item) {
	fmt.Fprintf(w, "ID: %s | Name: %s | Category: %s | Year: %s | Creator: %s | Rating: %s\n",
		it.ID, it.Name, it.Category, it.Year, it.Creator, types.FormatRating(it.Rating))
}

// printStatsLine writes the stats of id, or a note that there are none.
func printStatsLine(w io.Writer, id string, rec *types.StatsRecord) {
	if rec == nil {
		fmt.Fprintf(w, "  No stats for ID %s.\n", id)
		return
	}
	fmt.Fprintf(w, "  Stats for ID %s: Power=%d Popularity=%d Views=%d Rarity=%d\n",
		id, rec.Power, rec.Popularity, rec.Views, rec.Rarity)
}

// printEntryTable prints entries in a human-readable table format.
func printEntryTable(w io.Writer, entries []catalog.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "Collection is empty.")
		return
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tYEAR\tCREATOR\tRATING\tPOWER\tPOPULARITY\tVIEWS\tRARITY")
	for _, e := range entries {
		name := e.Name
		if r := []rune(name); len(r) > 40 {
			name = string(r[:37]) + "..."
		}
		power, popularity, views, rarity := "-", "-", "-", "-"
		if e.Stats != nil {
			power = strconv.Itoa(e.Stats.Power)
			popularity = strconv.Itoa(e.Stats.Popularity)
			views = strconv.Itoa(e.Stats.Views)
			rarity = strconv.Itoa(e.Stats.Rarity)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, name, e.Category, e.Year, e.Creator, types.FormatRating(e.Rating),
			power, popularity, views, rarity)
	}
	tw.Flush()

	for _, line := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
	fmt.Fprintf(w, "Total: %d item(s)\n", len(entries))
}

// printStatsTable prints the raw stats mapping sorted by id, numeric ids
// first in numeric order.
func printStatsTable(w io.Writer, stats map[string]types.StatsRecord) {
	if len(stats) == 0 {
		fmt.Fprintln(w, "No stats saved.")
		return
	}
	ids := sortedIDs(stats)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPOWER\tPOPULARITY\tVIEWS\tRARITY")
	for _, id := range ids {
		r := stats[id]
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", id, r.Power, r.Popularity, r.Views, r.Rarity)
	}
	tw.Flush()
}

func sortedIDs(stats map[string]types.StatsRecord) []string {
	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.Atoi(ids[i])
		b, errB := strconv.Atoi(ids[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return ids[i] < ids[j]
		}
	})
	return ids
}
