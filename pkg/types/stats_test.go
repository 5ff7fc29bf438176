package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsRecordValidate(t *testing.T) {
	for _, rarity := range []int{1, 50, 100} {
		assert.NoError(t, StatsRecord{Rarity: rarity}.Validate(), "rarity %d", rarity)
	}
	for _, rarity := range []int{0, 101, -5} {
		err := StatsRecord{Rarity: rarity}.Validate()
		assert.ErrorIs(t, err, ErrInvalidRarity, "rarity %d", rarity)
		assert.True(t, IsValidation(err))
	}
}

func TestParseStats(t *testing.T) {
	t.Run("all values", func(t *testing.T) {
		rec, err := ParseStats("85", "92", "1200", "15")
		require.NoError(t, err)
		assert.Equal(t, StatsRecord{Power: 85, Popularity: 92, Views: 1200, Rarity: 15}, rec)
	})

	t.Run("blank values default to zero", func(t *testing.T) {
		rec, err := ParseStats("", " ", "", "7")
		require.NoError(t, err)
		assert.Equal(t, StatsRecord{Rarity: 7}, rec)
	})

	t.Run("non-integer rejected", func(t *testing.T) {
		_, err := ParseStats("12.5", "", "", "1")
		assert.ErrorIs(t, err, ErrInvalidStat)
		assert.Contains(t, err.Error(), "power")
	})
}

func TestStatsRecordString(t *testing.T) {
	r := StatsRecord{Power: 1, Popularity: 2, Views: 3, Rarity: 4}
	assert.Equal(t, "power=1 popularity=2 views=3 rarity=4", r.String())
}
