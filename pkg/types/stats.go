package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Rarity bounds, inclusive.
const (
	MinRarity = 1
	MaxRarity = 100
)

// StatsRecord is the numeric profile attached to an item id.
type StatsRecord struct {
	Power      int `json:"power"`
	Popularity int `json:"popularity"`
	Views      int `json:"views"`
	Rarity     int `json:"rarity"`
}

// Validate checks that rarity is within [MinRarity, MaxRarity].
func (r StatsRecord) Validate() error {
	if r.Rarity < MinRarity || r.Rarity > MaxRarity {
		return fmt.Errorf("%w: got %d", ErrInvalidRarity, r.Rarity)
	}
	return nil
}

// String formats the record for terminal output.
func (r StatsRecord) String() string {
	return fmt.Sprintf("power=%d popularity=%d views=%d rarity=%d",
		r.Power, r.Popularity, r.Views, r.Rarity)
}

// ParseStats coerces user text into a StatsRecord. Blank values default to 0;
// anything else must be an integer. The rarity range is not checked here.
func ParseStats(power, popularity, views, rarity string) (StatsRecord, error) {
	var rec StatsRecord
	fields := []struct {
		name string
		raw  string
		dst  *int
	}{
		{"power", power, &rec.Power},
		{"popularity", popularity, &rec.Popularity},
		{"views", views, &rec.Views},
		{"rarity", rarity, &rec.Rarity},
	}
	for _, f := range fields {
		s := strings.TrimSpace(f.raw)
		if s == "" {
			continue
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return StatsRecord{}, fmt.Errorf("%w: %s=%q", ErrInvalidStat, f.name, f.raw)
		}
		*f.dst = v
	}
	return rec, nil
}
