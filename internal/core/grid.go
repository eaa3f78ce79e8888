package core

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrOutOfRange is returned when a write targets a location outside the grid.
var ErrOutOfRange = errors.New("location out of range")

// Location identifies a single cell by row and column.
type Location struct {
	Row int
	Col int
}

// Add returns the location offset by the given row and column deltas.
func (l Location) Add(dRow, dCol int) Location {
	return Location{Row: l.Row + dRow, Col: l.Col + dCol}
}

func (l Location) String() string {
	return fmt.Sprintf("(%d,%d)", l.Row, l.Col)
}

// GridView is the shared cell store that games render into.
type GridView interface {
	Rows() int
	Columns() int
	ContentAt(loc Location) string
	Update(loc Location, value string) error
	Contains(loc Location) bool
}

// TypeError reports content that violates the sheet's cell type contract.
type TypeError struct {
	Value string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type error: %q is not a valid cell value", e.Value)
}

// Sheet stores a 2D grid of cell contents in row-major order. A cell holds
// either the empty string or an integer code.
type Sheet struct {
	rows, cols int
	data       []string
}

// NewSheet allocates an empty sheet with the given dimensions.
func NewSheet(rows, cols int) *Sheet {
	if rows <= 0 {
		rows = 1
	}
	if cols <= 0 {
		cols = 1
	}
	return &Sheet{rows: rows, cols: cols, data: make([]string, rows*cols)}
}

// Rows returns the number of rows.
func (s *Sheet) Rows() int { return s.rows }

// Columns returns the number of columns.
func (s *Sheet) Columns() int { return s.cols }

// Index returns the linear slice index for a location.
func (s *Sheet) Index(loc Location) int { return loc.Row*s.cols + loc.Col }

// Contains reports whether loc lies inside the sheet.
func (s *Sheet) Contains(loc Location) bool {
	return loc.Row >= 0 && loc.Row < s.rows && loc.Col >= 0 && loc.Col < s.cols
}

// ContentAt returns the cell content, or "" outside the sheet.
func (s *Sheet) ContentAt(loc Location) string {
	if !s.Contains(loc) {
		return ""
	}
	return s.data[s.Index(loc)]
}

// Update writes value into the cell at loc.
func (s *Sheet) Update(loc Location, value string) error {
	if !s.Contains(loc) {
		return fmt.Errorf("update %s: %w", loc, ErrOutOfRange)
	}
	if value != "" {
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			return &TypeError{Value: value}
		}
	}
	s.data[s.Index(loc)] = value
	return nil
}

// Clear empties every cell.
func (s *Sheet) Clear() {
	for i := range s.data {
		s.data[i] = ""
	}
}

// Codes returns the cells as render codes in row-major order. Empty cells
// map to 0 and codes outside 0..255 are clamped.
func (s *Sheet) Codes() []uint8 {
	out := make([]uint8, len(s.data))
	for i, v := range s.data {
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			continue
		}
		switch {
		case n < 0:
			n = 0
		case n > 255:
			n = 255
		}
		out[i] = uint8(n)
	}
	return out
}

// IsEmpty reports whether the cell at loc holds no content.
func IsEmpty(g GridView, loc Location) bool {
	return g.ContentAt(loc) == ""
}
