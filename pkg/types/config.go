package types

import (
	"errors"
	"path/filepath"
	"strings"
)

// Default file names inside DataDir.
const (
	DefaultItemsFile = "coleccion.txt"
	DefaultStatsFile = "estadisticas.json"
)

// Config locates the item log and the stats blob. Stores receive it through
// their constructors; nothing in the module holds file paths globally.
type Config struct {
	DataDir   string `json:"data_dir" yaml:"data_dir"`
	ItemsFile string `json:"items_file" yaml:"items_file"`
	StatsFile string `json:"stats_file" yaml:"stats_file"`
}

// Config validation errors.
var (
	ErrFileNameInvalid = errors.New("file name must be a plain name without directories")
	ErrFilesCollide    = errors.New("items file and stats file must differ")
)

// Validate checks that the Config is well-formed. Empty file names fall back
// to the defaults and are valid.
func (c Config) Validate() error {
	for _, name := range []string{c.ItemsFile, c.StatsFile} {
		if name == "" {
			continue
		}
		if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
			return ErrFileNameInvalid
		}
	}
	if c.itemsFile() == c.statsFile() {
		return ErrFilesCollide
	}
	return nil
}

// ItemsPath returns the full path of the item log.
func (c Config) ItemsPath() string {
	return filepath.Join(c.dataDir(), c.itemsFile())
}

// StatsPath returns the full path of the stats blob.
func (c Config) StatsPath() string {
	return filepath.Join(c.dataDir(), c.statsFile())
}

func (c Config) dataDir() string {
	if c.DataDir == "" {
		return "."
	}
	return c.DataDir
}

func (c Config) itemsFile() string {
	if c.ItemsFile == "" {
		return DefaultItemsFile
	}
	return c.ItemsFile
}

func (c Config) statsFile() string {
	if c.StatsFile == "" {
		return DefaultStatsFile
	}
	return c.StatsFile
}
