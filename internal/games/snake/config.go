package snake

import "sheet-arcade/internal/core"

// Config holds parameters for the snake game.
type Config struct {
	Origin core.Location
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Origin: core.Location{Row: 1, Col: 1}}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	c.Origin.Row = core.IntSetting(cfg, "origin_row", c.Origin.Row, core.NonNegative)
	c.Origin.Col = core.IntSetting(cfg, "origin_col", c.Origin.Col, core.NonNegative)
	return c
}
