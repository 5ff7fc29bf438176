package store

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/minidex/pkg/types"
)

func newTestStatsStore(t *testing.T) (*StatsStore, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	s, err := NewStatsStore(types.Config{DataDir: t.TempDir()}, slog.New(slog.NewTextHandler(&logs, nil)))
	require.NoError(t, err)
	return s, &logs
}

func TestLoadMissingBlob(t *testing.T) {
	s, logs := newTestStatsStore(t)

	stats, err := s.Load()
	require.NoError(t, err)
	assert.NotNil(t, stats)
	assert.Empty(t, stats)
	assert.Empty(t, logs.String())
}

func TestLoadRecoversFromBadBlob(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"whitespace only", "  \n"},
		{"truncated json", `{"version":1,"stats":{"1":{"power":`},
		{"not an object", `[1,2,3]`},
		{"binary garbage", "\x80\x03}q\x00."},
		{"missing version", `{"stats":{"1":{"rarity":5}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, logs := newTestStatsStore(t)
			require.NoError(t, os.WriteFile(s.Path(), []byte(tt.content), 0o644))

			stats, err := s.Load()
			require.NoError(t, err)
			assert.Empty(t, stats)
			assert.Contains(t, logs.String(), "level=WARN")
		})
	}
}

func TestLoadNewerVersionFails(t *testing.T) {
	s, _ := newTestStatsStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"version":99,"stats":{}}`), 0o644))

	_, err := s.Load()
	require.Error(t, err)
	assert.True(t, types.IsIO(err))
	assert.ErrorIs(t, err, types.ErrUnsupportedVersion)
}

func TestLoadUnreadableBlob(t *testing.T) {
	s, _ := newTestStatsStore(t)
	require.NoError(t, os.Mkdir(s.Path(), 0o755))

	_, err := s.Load()
	require.Error(t, err)
	assert.True(t, types.IsIO(err))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, _ := newTestStatsStore(t)
	want := map[string]types.StatsRecord{
		"1": {Power: 85, Popularity: 92, Views: 1200, Rarity: 15},
		"2": {Power: 70, Popularity: 80, Views: 800, Rarity: 25},
	}
	require.NoError(t, s.Save(want))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// save(load()) keeps the mapping intact.
	require.NoError(t, s.Save(got))
	again, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, again)
}

func TestSaveNilWritesEmptyMapping(t *testing.T) {
	s, _ := newTestStatsStore(t)
	require.NoError(t, s.Save(nil))

	ok, err := s.Exists()
	require.NoError(t, err)
	assert.True(t, ok)

	stats, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestSaveFailureKeepsNoTempFiles(t *testing.T) {
	s, _ := newTestStatsStore(t)
	// A non-empty directory at the blob path makes the final rename fail.
	require.NoError(t, os.MkdirAll(filepath.Join(s.Path(), "occupied"), 0o755))

	err := s.Save(map[string]types.StatsRecord{"1": {Rarity: 1}})
	require.Error(t, err)
	assert.True(t, types.IsIO(err))

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}
}

func TestUpsertReplacesAndPreserves(t *testing.T) {
	s, _ := newTestStatsStore(t)
	require.NoError(t, s.Save(map[string]types.StatsRecord{
		"1": {Power: 1, Rarity: 1},
		"2": {Power: 2, Rarity: 2},
	}))

	rec := types.StatsRecord{Power: 85, Popularity: 92, Views: 1200, Rarity: 15}
	require.NoError(t, s.Upsert("1", rec))
	require.NoError(t, s.Upsert("9", types.StatsRecord{Rarity: 100}))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, map[string]types.StatsRecord{
		"1": rec,
		"2": {Power: 2, Rarity: 2},
		"9": {Rarity: 100},
	}, got)
}

func TestUpsertValidation(t *testing.T) {
	s, _ := newTestStatsStore(t)
	initial := map[string]types.StatsRecord{"1": {Power: 10, Rarity: 50}}
	require.NoError(t, s.Save(initial))

	tests := []struct {
		name    string
		id      string
		rec     types.StatsRecord
		wantErr error
	}{
		{"rarity zero", "1", types.StatsRecord{Rarity: 0}, types.ErrInvalidRarity},
		{"rarity above hundred", "1", types.StatsRecord{Rarity: 101}, types.ErrInvalidRarity},
		{"empty id", "", types.StatsRecord{Rarity: 5}, types.ErrInvalidID},
		{"whitespace id", "  ", types.StatsRecord{Rarity: 5}, types.ErrInvalidID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Upsert(tt.id, tt.rec)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, types.IsValidation(err))

			got, err := s.Load()
			require.NoError(t, err)
			assert.Equal(t, initial, got)
		})
	}
}

func TestUpsertOverCorruptBlob(t *testing.T) {
	s, logs := newTestStatsStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("not json"), 0o644))

	require.NoError(t, s.Upsert("3", types.StatsRecord{Rarity: 40}))
	assert.Contains(t, logs.String(), "corrupt")

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, map[string]types.StatsRecord{"3": {Rarity: 40}}, got)
}

func TestMetaTracksRevision(t *testing.T) {
	s, _ := newTestStatsStore(t)
	fixed := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	_, ok, err := s.Meta()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save(map[string]types.StatsRecord{"1": {Rarity: 1}}))
	first, ok, err := s.Meta()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, StatsFormatVersion, first.Version)
	assert.Equal(t, 1, first.Count)
	assert.True(t, first.SavedAt.Equal(fixed))
	assert.NotEmpty(t, first.Revision)

	require.NoError(t, s.Upsert("2", types.StatsRecord{Rarity: 2}))
	second, _, err := s.Meta()
	require.NoError(t, err)
	assert.NotEqual(t, first.Revision, second.Revision)
	assert.Equal(t, 2, second.Count)
}
