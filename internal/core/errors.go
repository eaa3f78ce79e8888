package core

import (
	"errors"
	"fmt"
)

// ErrInvariant marks a grid write the engine believed legal being rejected.
// Engines return it wrapped; hosts treat it as fatal for the run.
var ErrInvariant = errors.New("internal invariant violated")

// Write updates a single cell, wrapping any failure as ErrInvariant.
func Write(g GridView, loc Location, value string) error {
	if err := g.Update(loc, value); err != nil {
		return fmt.Errorf("%w: write %q at %s: %w", ErrInvariant, value, loc, err)
	}
	return nil
}

// Fill writes the same value into every provided location.
func Fill(g GridView, locs []Location, value string) error {
	for _, loc := range locs {
		if err := Write(g, loc, value); err != nil {
			return err
		}
	}
	return nil
}

// ClearAll empties the whole grid through the GridView contract.
func ClearAll(g GridView) error {
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Columns(); col++ {
			if err := Write(g, Location{Row: row, Col: col}, ""); err != nil {
				return err
			}
		}
	}
	return nil
}
