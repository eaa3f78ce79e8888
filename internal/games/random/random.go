package random

import (
	"errors"

	"sheet-arcade/internal/core"
)

// ShapeCount is the number of distinct piece shapes PickShape draws from.
const ShapeCount = 7

// ErrNoFreeCell is returned when the grid has no eligible empty cell.
var ErrNoFreeCell = errors.New("no free cell available")

// CellPicker picks uniformly random empty cells.
type CellPicker interface {
	PickFreeCell() (core.Location, error)
	PickFreeCellExcluding(origin core.Location) (core.Location, error)
}

// ShapePicker picks a random piece shape identifier in [0, ShapeCount).
type ShapePicker interface {
	PickShape() int
}

// Selector draws random grid locations and piece shapes. It holds no state
// besides the grid reference and the RNG.
type Selector struct {
	grid core.GridView
	rng  *core.RNG
}

// New returns a Selector over grid using rng.
func New(grid core.GridView, rng *core.RNG) *Selector {
	return &Selector{grid: grid, rng: rng}
}

// PickFreeCell returns a uniformly random empty cell by rejection sampling.
func (s *Selector) PickFreeCell() (core.Location, error) {
	return s.pick(nil)
}

// PickFreeCellExcluding is PickFreeCell that never returns origin.
func (s *Selector) PickFreeCellExcluding(origin core.Location) (core.Location, error) {
	return s.pick(&origin)
}

// PickShape returns a uniformly random shape identifier.
func (s *Selector) PickShape() int {
	return s.rng.IntN(ShapeCount)
}

func (s *Selector) pick(exclude *core.Location) (core.Location, error) {
	if !s.hasCapacity(exclude) {
		return core.Location{}, ErrNoFreeCell
	}
	rows, cols := s.grid.Rows(), s.grid.Columns()
	for {
		loc := core.Location{Row: s.rng.IntN(rows), Col: s.rng.IntN(cols)}
		if exclude != nil && loc == *exclude {
			continue
		}
		if core.IsEmpty(s.grid, loc) {
			return loc, nil
		}
	}
}

// hasCapacity scans the grid once so the sampling loop always terminates.
func (s *Selector) hasCapacity(exclude *core.Location) bool {
	for row := 0; row < s.grid.Rows(); row++ {
		for col := 0; col < s.grid.Columns(); col++ {
			loc := core.Location{Row: row, Col: col}
			if exclude != nil && loc == *exclude {
				continue
			}
			if core.IsEmpty(s.grid, loc) {
				return true
			}
		}
	}
	return false
}
