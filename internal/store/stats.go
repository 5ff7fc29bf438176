package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/minidex/pkg/types"
)

// StatsFormatVersion is the envelope version written by Save.
const StatsFormatVersion = 1

// statsEnvelope is the on-disk form of the stats blob.
type statsEnvelope struct {
	Version  int                          `json:"version"`
	Revision string                       `json:"revision"`
	SavedAt  time.Time                    `json:"saved_at"`
	Stats    map[string]types.StatsRecord `json:"stats"`
}

// StatsMeta describes the blob currently on disk.
type StatsMeta struct {
	Version  int
	Revision string
	SavedAt  time.Time
	Count    int
}

// StatsStore keeps the id to StatsRecord mapping in a single blob.
type StatsStore struct {
	path   string
	logger *slog.Logger
	now    func() time.Time
}

// NewStatsStore returns a store backed by cfg.StatsPath().
func NewStatsStore(cfg types.Config, logger *slog.Logger) (*StatsStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &StatsStore{path: cfg.StatsPath(), logger: orDiscard(logger), now: time.Now}, nil
}

// Path returns the location of the blob.
func (s *StatsStore) Path() string { return s.path }

// Exists reports whether the blob file is present.
func (s *StatsStore) Exists() (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, &types.IOError{Op: "stat", Path: s.path, Err: err}
}

// Load returns the full mapping. A missing, empty or undecodable blob yields
// an empty mapping; the last two are logged as a recovery.
func (s *StatsStore) Load() (map[string]types.StatsRecord, error) {
	env, err := s.read()
	if err != nil {
		return nil, err
	}
	if env == nil || env.Stats == nil {
		return map[string]types.StatsRecord{}, nil
	}
	return env.Stats, nil
}

// Meta returns the envelope metadata of the blob. ok is false when there is
// no readable blob.
func (s *StatsStore) Meta() (meta StatsMeta, ok bool, err error) {
	env, err := s.read()
	if err != nil || env == nil {
		return StatsMeta{}, false, err
	}
	return StatsMeta{
		Version:  env.Version,
		Revision: env.Revision,
		SavedAt:  env.SavedAt,
		Count:    len(env.Stats),
	}, true, nil
}

// Save replaces the blob with stats. A failed save leaves the previous blob
// in place.
func (s *StatsStore) Save(stats map[string]types.StatsRecord) error {
	if stats == nil {
		stats = map[string]types.StatsRecord{}
	}
	rev, err := uuid.NewV7()
	if err != nil {
		return &types.IOError{Op: "revision", Path: s.path, Err: err}
	}
	env := statsEnvelope{
		Version:  StatsFormatVersion,
		Revision: rev.String(),
		SavedAt:  s.now().UTC().Truncate(time.Second),
		Stats:    stats,
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return &types.IOError{Op: "encode", Path: s.path, Err: err}
	}
	data = append(data, '\n')
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return &types.IOError{Op: "mkdir", Path: filepath.Dir(s.path), Err: err}
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return &types.IOError{Op: "save", Path: s.path, Err: err}
	}
	s.logger.Debug("stats saved", "path", s.path, "count", len(stats), "revision", env.Revision)
	return nil
}

// Upsert stores rec under id, replacing any previous record. It reads the
// whole mapping, changes one entry and saves it back.
func (s *StatsStore) Upsert(id string, rec types.StatsRecord) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return types.ErrInvalidID
	}
	if err := rec.Validate(); err != nil {
		return err
	}
	stats, err := s.Load()
	if err != nil {
		return err
	}
	stats[id] = rec
	return s.Save(stats)
}

// read decodes the blob. It returns (nil, nil) for every state Load treats as
// an empty mapping.
func (s *StatsStore) read() (*statsEnvelope, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &types.IOError{Op: "read", Path: s.path, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		s.logger.Warn("stats blob is empty, starting with no stats; it will be rewritten on next save", "path", s.path)
		return nil, nil
	}
	var env statsEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		s.logger.Warn("stats blob is corrupt, starting with no stats; it will be rewritten on next save", "path", s.path, "err", err)
		return nil, nil
	}
	if env.Version < 1 {
		s.logger.Warn("stats blob has no format version, starting with no stats", "path", s.path)
		return nil, nil
	}
	if env.Version > StatsFormatVersion {
		return nil, &types.IOError{
			Op:   "read",
			Path: s.path,
			Err:  fmt.Errorf("%w: %d (max %d)", types.ErrUnsupportedVersion, env.Version, StatsFormatVersion),
		}
	}
	return &env, nil
}
