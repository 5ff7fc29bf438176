package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Rating bounds, inclusive.
const (
	MinRating = 0.0
	MaxRating = 10.0
)

// Item is one cataloged entity. Items are appended to the log and never
// mutated or deleted.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Year     string  `json:"year"`
	Creator  string  `json:"creator"`
	Rating   float64 `json:"rating"`
}

// Validate checks the name and rating of the item.
func (it Item) Validate() error {
	if strings.TrimSpace(it.Name) == "" {
		return ErrInvalidName
	}
	return checkRating(it.Rating)
}

// ParseRating parses user text into a rating, rejecting anything that is
// not a decimal within [MinRating, MaxRating].
func ParseRating(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRating, s)
	}
	if err := checkRating(v); err != nil {
		return 0, err
	}
	return v, nil
}

// FormatRating renders a rating the way the log stores it: shortest exact
// decimal, always with a fractional part ("9.0", "8.75").
func FormatRating(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func checkRating(v float64) error {
	if math.IsNaN(v) || v < MinRating || v > MaxRating {
		return fmt.Errorf("%w: got %v", ErrInvalidRating, v)
	}
	return nil
}

// ItemFields is the raw text of an item as entered by a user, before an id is
// assigned and the rating is parsed.
type ItemFields struct {
	Name     string
	Category string
	Year     string
	Creator  string
	Rating   string
}

// ToItem trims every field, parses the rating and returns an Item carrying id.
func (f ItemFields) ToItem(id string) (Item, error) {
	rating, err := ParseRating(f.Rating)
	if err != nil {
		return Item{}, err
	}
	it := Item{
		ID:       id,
		Name:     strings.TrimSpace(f.Name),
		Category: strings.TrimSpace(f.Category),
		Year:     strings.TrimSpace(f.Year),
		Creator:  strings.TrimSpace(f.Creator),
		Rating:   rating,
	}
	if err := it.Validate(); err != nil {
		return Item{}, err
	}
	return it, nil
}
