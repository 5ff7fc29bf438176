package store

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"math/big"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/minidex/pkg/types"
)

// Delimiter separates fields in the item log.
const Delimiter = '|'

// itemColumns is the fixed field order of every row, header included.
var itemColumns = []string{"id", "name", "category", "year", "creator", "rating"}

// ItemStore is the append-only item log.
type ItemStore struct {
	path   string
	logger *slog.Logger
}

// NewItemStore returns a store backed by cfg.ItemsPath(). The log file is not
// touched until the first operation.
func NewItemStore(cfg types.Config, logger *slog.Logger) (*ItemStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &ItemStore{path: cfg.ItemsPath(), logger: orDiscard(logger)}, nil
}

// Path returns the location of the log.
func (s *ItemStore) Path() string { return s.path }

// EnsureInitialized creates the log with its header row if it does not exist.
// An existing log with no bytes in it gets the header as well.
func (s *ItemStore) EnsureInitialized() error {
	info, err := os.Stat(s.path)
	if err == nil {
		if info.Size() > 0 {
			return nil
		}
		return s.writeHeader(os.O_WRONLY|os.O_APPEND, false)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return &types.IOError{Op: "stat", Path: s.path, Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return &types.IOError{Op: "mkdir", Path: filepath.Dir(s.path), Err: err}
	}
	// O_EXCL so a log created between Stat and here is never truncated.
	return s.writeHeader(os.O_WRONLY|os.O_CREATE|os.O_EXCL, true)
}

// writeHeader opens the log with flag and writes the header row. When created
// is set a log that could not get its header is removed again.
func (s *ItemStore) writeHeader(flag int, created bool) error {
	row, err := encodeRow(itemColumns)
	if err != nil {
		return &types.IOError{Op: "encode header", Path: s.path, Err: err}
	}
	f, err := os.OpenFile(s.path, flag, 0o644)
	if err != nil {
		if created && errors.Is(err, fs.ErrExist) {
			return nil
		}
		return &types.IOError{Op: "create", Path: s.path, Err: err}
	}
	if _, err := f.Write(row); err != nil {
		f.Close()
		if created {
			os.Remove(s.path)
		}
		return &types.IOError{Op: "write header", Path: s.path, Err: err}
	}
	if err := f.Close(); err != nil {
		if created {
			os.Remove(s.path)
		}
		return &types.IOError{Op: "close", Path: s.path, Err: err}
	}
	s.logger.Debug("item log header written", "path", s.path)
	return nil
}

// Append validates item and writes it as one row at the end of the log.
// A validation failure leaves the log unchanged.
func (s *ItemStore) Append(item types.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if err := s.EnsureInitialized(); err != nil {
		return err
	}
	row, err := encodeRow([]string{
		item.ID,
		strings.TrimSpace(item.Name),
		item.Category,
		item.Year,
		item.Creator,
		types.FormatRating(item.Rating),
	})
	if err != nil {
		return &types.IOError{Op: "encode", Path: s.path, Err: err}
	}
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return &types.IOError{Op: "open", Path: s.path, Err: err}
	}
	// The row goes out in a single write so a failure cannot leave half of it.
	if _, err := f.Write(row); err != nil {
		f.Close()
		return &types.IOError{Op: "append", Path: s.path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &types.IOError{Op: "close", Path: s.path, Err: err}
	}
	s.logger.Debug("item appended", "id", item.ID, "name", item.Name)
	return nil
}

// ReadAll returns every item in log order, header excluded. Rows that cannot
// be decoded are skipped and logged.
func (s *ItemStore) ReadAll() ([]types.Item, error) {
	if err := s.EnsureInitialized(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, &types.IOError{Op: "open", Path: s.path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = Delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var items []types.Item
	for row := 0; ; row++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				s.logger.Warn("skipping malformed item row", "path", s.path, "line", pe.Line, "err", pe.Err)
				continue
			}
			return nil, &types.IOError{Op: "read", Path: s.path, Err: err}
		}
		if row == 0 && slices.Equal(rec, itemColumns) {
			continue
		}
		item, ok := decodeItem(rec)
		if !ok {
			line, _ := r.FieldPos(0)
			s.logger.Warn("skipping malformed item row", "path", s.path, "line", line, "fields", len(rec))
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// NextID returns one past the largest numeric id in the log, or "1" when the
// log holds no numeric ids. Ids are compared as integers of any size.
func (s *ItemStore) NextID() (string, error) {
	items, err := s.ReadAll()
	if err != nil {
		return "", err
	}
	return nextID(items), nil
}

func nextID(items []types.Item) string {
	var maxID *big.Int
	for _, it := range items {
		n, ok := new(big.Int).SetString(strings.TrimSpace(it.ID), 10)
		if !ok {
			continue
		}
		if maxID == nil || n.Cmp(maxID) > 0 {
			maxID = n
		}
	}
	if maxID == nil {
		return "1"
	}
	return maxID.Add(maxID, big.NewInt(1)).String()
}

func encodeRow(fields []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = Delimiter
	if err := w.Write(fields); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeItem(rec []string) (types.Item, bool) {
	if len(rec) != len(itemColumns) {
		return types.Item{}, false
	}
	rating, err := strconv.ParseFloat(strings.TrimSpace(rec[5]), 64)
	if err != nil {
		return types.Item{}, false
	}
	return types.Item{
		ID:       rec[0],
		Name:     rec[1],
		Category: rec[2],
		Year:     rec[3],
		Creator:  rec[4],
		Rating:   rating,
	}, true
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
