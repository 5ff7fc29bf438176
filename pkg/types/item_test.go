package types

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemValidate(t *testing.T) {
	tests := []struct {
		name    string
		item    Item
		wantErr error
	}{
		{"valid", Item{ID: "1", Name: "PikaMon", Rating: 9}, nil},
		{"rating lower bound", Item{Name: "a", Rating: 0}, nil},
		{"rating upper bound", Item{Name: "a", Rating: 10}, nil},
		{"empty name", Item{Name: "", Rating: 5}, ErrInvalidName},
		{"whitespace name", Item{Name: "  \t", Rating: 5}, ErrInvalidName},
		{"negative rating", Item{Name: "a", Rating: -1}, ErrInvalidRating},
		{"rating above ten", Item{Name: "a", Rating: 10.1}, ErrInvalidRating},
		{"NaN rating", Item{Name: "a", Rating: math.NaN()}, ErrInvalidRating},
		{"infinite rating", Item{Name: "a", Rating: math.Inf(1)}, ErrInvalidRating},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsValidation(err))
		})
	}
}

func TestParseRating(t *testing.T) {
	got, err := ParseRating(" 9.0 ")
	require.NoError(t, err)
	assert.Equal(t, 9.0, got)

	for _, bad := range []string{"", "abc", "-1", "10.1", "NaN"} {
		_, err := ParseRating(bad)
		assert.ErrorIs(t, err, ErrInvalidRating, "input %q", bad)
	}
}

func TestFormatRating(t *testing.T) {
	assert.Equal(t, "9.0", FormatRating(9))
	assert.Equal(t, "8.75", FormatRating(8.75))
	assert.Equal(t, "0.0", FormatRating(0))
	assert.Equal(t, "10.0", FormatRating(10))
}

func TestItemFieldsToItem(t *testing.T) {
	f := ItemFields{Name: " PikaMon ", Category: "Eléctrico", Year: "1996", Creator: "Satoshi", Rating: "9.0"}
	it, err := f.ToItem("1")
	require.NoError(t, err)
	assert.Equal(t, Item{ID: "1", Name: "PikaMon", Category: "Eléctrico", Year: "1996", Creator: "Satoshi", Rating: 9}, it)

	_, err = ItemFields{Name: " ", Rating: "5"}.ToItem("2")
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = ItemFields{Name: "x", Rating: "eleven"}.ToItem("2")
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestIOErrorMatchesErrIO(t *testing.T) {
	cause := errors.New("disk full")
	err := error(&IOError{Op: "append", Path: "/x", Err: cause})
	assert.True(t, IsIO(err))
	assert.ErrorIs(t, err, cause)
	assert.False(t, IsValidation(err))
	assert.Contains(t, err.Error(), "append /x: disk full")
}
