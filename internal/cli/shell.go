package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/minidex/internal/catalog"
	"github.com/mesh-intelligence/minidex/pkg/types"
)

const shellMenu = `===== MINIDEX =====
1. Add item
2. Show full collection
3. Search item by name
4. Show saved stats
5. Exit`

func (a *app) newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive menu",
		Long:  "Shell runs a numbered menu that reads choices and item fields from standard input.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh := &shell{
				cat: a.catalog,
				in:  bufio.NewScanner(cmd.InOrStdin()),
				out: cmd.OutOrStdout(),
			}
			exists, err := a.stats.Exists()
			if err != nil {
				return err
			}
			return sh.run(exists)
		},
	}
}

// shell is the line-oriented interactive front end.
type shell struct {
	cat *catalog.Catalog
	in  *bufio.Scanner
	out io.Writer
}

// errEOF ends the session when input runs out.
var errEOF = errors.New("end of input")

func (s *shell) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		fmt.Fprintln(s.out)
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", errEOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *shell) run(statsExists bool) error {
	fmt.Fprintln(s.out, "Starting minidex...")
	if err := s.offerSamples(statsExists); err != nil {
		if errors.Is(err, errEOF) {
			return nil
		}
		return err
	}

	fmt.Fprintln(s.out, shellMenu)
	for {
		choice, err := s.prompt("\nSelect an option (1-5): ")
		if errors.Is(err, errEOF) {
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = s.addItem()
		case "2":
			err = s.showCollection()
		case "3":
			err = s.search()
		case "4":
			err = s.showStats()
		case "5":
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid option. Try again.")
		}
		if errors.Is(err, errEOF) {
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.out, "[ERROR] %v\n", err)
		}
		fmt.Fprintln(s.out, "\n(Type 1-5 to choose another option)")
	}
}

// offerSamples asks to preload the samples when there is no data yet.
func (s *shell) offerSamples(statsExists bool) error {
	items, err := s.cat.Items()
	if err != nil {
		return err
	}
	switch {
	case len(items) > 0 && statsExists:
		return nil
	case !statsExists:
		fmt.Fprintln(s.out, "No data files found.")
	default:
		fmt.Fprintln(s.out, "The collection is empty.")
	}
	answer, err := s.prompt("Preload 5 sample items? (y/n): ")
	if err != nil {
		return err
	}
	if strings.EqualFold(answer, "y") || strings.EqualFold(answer, "s") {
		n, err := s.cat.Seed()
		if errors.Is(err, catalog.ErrNotEmpty) {
			fmt.Fprintln(s.out, "[NOTICE] The collection already has data; samples were not loaded.")
			return s.cat.Init()
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "[OK] Preloaded %d sample items.\n", n)
		return nil
	}
	return s.cat.Init()
}

func (s *shell) addItem() error {
	var f types.ItemFields
	for _, p := range []struct {
		label string
		dst   *string
	}{
		{"Name: ", &f.Name},
		{"Category: ", &f.Category},
		{"Year (e.g. 2023): ", &f.Year},
		{"Creator: ", &f.Creator},
		{"Rating (0-10): ", &f.Rating},
	} {
		v, err := s.prompt(p.label)
		if err != nil {
			return err
		}
		*p.dst = v
	}

	item, err := s.cat.AddItem(f)
	if types.IsValidation(err) {
		fmt.Fprintf(s.out, "[ERROR] Invalid data: %v\n", err)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "[OK] Item %q saved with ID %s.\n", item.Name, item.ID)

	fmt.Fprintln(s.out, "Now add the stats (integer values). Leave a value blank to store 0.")
	var power, popularity, views, rarity string
	for _, p := range []struct {
		label string
		dst   *string
	}{
		{"  Power (int): ", &power},
		{"  Popularity (int): ", &popularity},
		{"  Views (int): ", &views},
		{"  Rarity (1-100): ", &rarity},
	} {
		v, err := s.prompt(p.label)
		if err != nil {
			return err
		}
		*p.dst = v
	}
	rec, err := types.ParseStats(power, popularity, views, rarity)
	if err == nil {
		err = s.cat.SetStats(item.ID, rec)
	}
	if types.IsValidation(err) {
		fmt.Fprintf(s.out, "[ERROR] Invalid stats: %v. Stats were not saved.\n", err)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, "[OK] Stats attached.")
	return nil
}

func (s *shell) showCollection() error {
	items, err := s.cat.Items()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(s.out, "Collection is empty.")
		return nil
	}
	fmt.Fprintln(s.out, "\n=== Full list ===")
	for _, it := range items {
		printItem(s.out, it)
	}
	return nil
}

func (s *shell) search() error {
	query, err := s.prompt("Name (or part of it) to search: ")
	if err != nil {
		return err
	}
	items, err := s.cat.SearchByName(query)
	if errors.Is(err, types.ErrEmptyQuery) {
		fmt.Fprintln(s.out, "Empty input.")
		return nil
	}
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(s.out, "No results found.")
		return nil
	}
	entries, err := s.cat.Lookup(items)
	if err != nil {
		return err
	}
	for _, e := range entries {
		printItem(s.out, e.Item)
		printStatsLine(s.out, e.ID, e.Stats)
	}
	return nil
}

func (s *shell) showStats() error {
	stats, err := s.cat.Stats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Fprintln(s.out, "No stats saved.")
		return nil
	}
	fmt.Fprintln(s.out, "\n=== Saved stats (by ID) ===")
	for _, id := range sortedIDs(stats) {
		fmt.Fprintf(s.out, "ID %s: %s\n", id, stats[id])
	}
	return nil
}
