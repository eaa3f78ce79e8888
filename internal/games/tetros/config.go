package tetros

import "sheet-arcade/internal/core"

// Config holds parameters for the falling-block game.
type Config struct {
	// SpawnCol is the column new pieces appear at.
	SpawnCol int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{SpawnCol: 0}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	c.SpawnCol = core.IntSetting(cfg, "spawn_col", c.SpawnCol, core.NonNegative)
	return c
}
