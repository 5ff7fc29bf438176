package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShellPreloadAndSearch(t *testing.T) {
	env := newTestEnv(t)
	input := strings.Join([]string{
		"y",    // preload samples
		"3",    // search
		"aqua", // query
		"4",    // show stats
		"5",    // exit
	}, "\n") + "\n"

	r := env.run(input, "shell")
	require.Equal(t, exitSuccess, r.Code, r.Stderr)
	assert.Contains(t, r.Stdout, "[OK] Preloaded 5 sample items.")
	assert.Contains(t, r.Stdout, "Name: AquaDrake")
	assert.Contains(t, r.Stdout, "Stats for ID 2: Power=70 Popularity=80 Views=800 Rarity=25")
	assert.Contains(t, r.Stdout, "ID 5: power=60 popularity=60 views=400 rarity=55")
	assert.Contains(t, r.Stdout, "Goodbye!")
}

func TestShellAddFlow(t *testing.T) {
	env := newTestEnv(t)
	input := strings.Join([]string{
		"n", // no samples
		"1", "PikaMon", "Eléctrico", "1996", "Satoshi", "9.0",
		"85", "92", "1200", "15",
		"1", "Broken", "", "", "", "11", // invalid rating
		"1", "NoStats", "", "", "", "5",
		"", "", "", "", // rarity blank -> 0 -> rejected
		"2",
	}, "\n") + "\n"

	r := env.run(input, "shell")
	require.Equal(t, exitSuccess, r.Code, r.Stderr)
	assert.Contains(t, r.Stdout, `[OK] Item "PikaMon" saved with ID 1.`)
	assert.Contains(t, r.Stdout, "[OK] Stats attached.")
	assert.Contains(t, r.Stdout, "[ERROR] Invalid data:")
	assert.Contains(t, r.Stdout, `[OK] Item "NoStats" saved with ID 2.`)
	assert.Contains(t, r.Stdout, "Stats were not saved.")
	assert.Contains(t, r.Stdout, "ID: 2 | Name: NoStats")
	assert.Contains(t, r.Stdout, "Goodbye!", "EOF ends the session")

	r = env.mustRun("stats", "get", "2")
	assert.Contains(t, r.Stdout, "No stats associated with ID 2.")
}

func TestShellEmptySearchAndBadOption(t *testing.T) {
	env := newTestEnv(t)
	input := "n\n3\n\n9\n5\n"

	r := env.run(input, "shell")
	require.Equal(t, exitSuccess, r.Code, r.Stderr)
	assert.Contains(t, r.Stdout, "Empty input.")
	assert.Contains(t, r.Stdout, "Invalid option. Try again.")
}

func TestShellSkipsPromptWhenDataExists(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("seed")

	r := env.run("2\n5\n", "shell")
	require.Equal(t, exitSuccess, r.Code, r.Stderr)
	assert.NotContains(t, r.Stdout, "Preload")
	assert.Contains(t, r.Stdout, "ID: 1 | Name: PikaMon")
}

func TestShellOfferAfterInit(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("init")

	r := env.run("n\n5\n", "shell")
	require.Equal(t, exitSuccess, r.Code, r.Stderr)
	assert.Contains(t, r.Stdout, "The collection is empty.")
	assert.NotContains(t, r.Stdout, "No data files found.")
	assert.Contains(t, r.Stdout, "Preload 5 sample items?")
}

func TestShellOfferWithoutFiles(t *testing.T) {
	env := newTestEnv(t)

	r := env.run("n\n5\n", "shell")
	require.Equal(t, exitSuccess, r.Code, r.Stderr)
	assert.Contains(t, r.Stdout, "No data files found.")
}
