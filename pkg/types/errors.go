package types

import (
	"errors"
	"fmt"
)

// ErrValidation is wrapped by every error caused by a bad user-supplied value.
// Operations failing with it leave the stores unchanged.
var ErrValidation = errors.New("validation failed")

// Field validation errors. Each one satisfies errors.Is(err, ErrValidation).
var (
	ErrInvalidName   = fmt.Errorf("%w: name must not be empty", ErrValidation)
	ErrInvalidRating = fmt.Errorf("%w: rating must be a number between 0 and 10", ErrValidation)
	ErrInvalidID     = fmt.Errorf("%w: id must not be empty", ErrValidation)
	ErrInvalidRarity = fmt.Errorf("%w: rarity must be between 1 and 100", ErrValidation)
	ErrInvalidStat   = fmt.Errorf("%w: stat must be an integer", ErrValidation)
	ErrEmptyQuery    = fmt.Errorf("%w: empty input", ErrValidation)
)

// ErrIO is matched by every *IOError.
var ErrIO = errors.New("i/o failure")

// ErrUnsupportedVersion is wrapped when the stats blob was written by a newer
// format version than this build reads.
var ErrUnsupportedVersion = errors.New("unsupported stats format version")

// IOError reports a filesystem or serialization failure on one of the stores.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is reports ErrIO as a match so callers can test the failure kind without
// knowing the underlying cause.
func (e *IOError) Is(target error) bool { return target == ErrIO }

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsIO reports whether err is a store I/O failure.
func IsIO(err error) bool {
	return errors.Is(err, ErrIO)
}
