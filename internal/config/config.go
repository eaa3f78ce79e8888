// Package config holds the command-line and file configuration shared by the
// arcade front ends.
package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the parameters for one arcade session.
type Config struct {
	Rows    int
	Columns int
	TPS     int
	Seed    int64
	Scale   int

	LogLevel  string
	LogFormat string
	LogFile   string

	// File is the CSV path used by the load-file and save-file commands.
	File       string
	LoadOnBoot bool
	SaveOnExit bool

	ConfigFile string
	// Only restricts the installed games to a comma separated list.
	Only string

	Games map[string]GameConfig
}

// GameConfig carries per-game settings from the config file.
type GameConfig struct {
	Enabled  bool
	Settings map[string]string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Rows:      20,
		Columns:   12,
		TPS:       6,
		Seed:      42,
		Scale:     24,
		LogLevel:  "info",
		LogFormat: "text",
		File:      "arcade.csv",
		Games:     map[string]GameConfig{},
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Rows, "rows", c.Rows, "sheet rows")
	fs.IntVar(&c.Columns, "columns", c.Columns, "sheet columns")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per cell (gui only)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format: text or json")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "write logs to this file")
	fs.StringVar(&c.File, "file", c.File, "csv file for load-file and save-file")
	fs.BoolVar(&c.LoadOnBoot, "load", c.LoadOnBoot, "load -file before starting")
	fs.BoolVar(&c.SaveOnExit, "save", c.SaveOnExit, "save -file on exit")
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "HCL configuration file")
	fs.StringVar(&c.Only, "games", c.Only, "comma separated games to install (default all)")
}

// Validate reports settings no session can run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Rows <= 0 {
		errs = append(errs, fmt.Errorf("rows must be positive, got %d", c.Rows))
	}
	if c.Columns <= 0 {
		errs = append(errs, fmt.Errorf("columns must be positive, got %d", c.Columns))
	}
	if c.TPS <= 0 {
		errs = append(errs, fmt.Errorf("tps must be positive, got %d", c.TPS))
	}
	if c.Scale <= 0 {
		errs = append(errs, fmt.Errorf("scale must be positive, got %d", c.Scale))
	}
	return errors.Join(errs...)
}

// GameEnabled reports whether the named game should be installed.
func (c *Config) GameEnabled(name string) bool {
	if c.Only != "" {
		found := false
		for _, n := range strings.Split(c.Only, ",") {
			if strings.TrimSpace(n) == name {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	g, ok := c.Games[name]
	return !ok || g.Enabled
}

// GameSettings returns the settings map for the named game, possibly nil.
func (c *Config) GameSettings(name string) map[string]string {
	return c.Games[name].Settings
}

type hclConfigFile struct {
	Rows      *int       `hcl:"rows,optional"`
	Columns   *int       `hcl:"columns,optional"`
	TPS       *int       `hcl:"tps,optional"`
	Seed      *int64     `hcl:"seed,optional"`
	Scale     *int       `hcl:"scale,optional"`
	LogLevel  *string    `hcl:"log_level,optional"`
	LogFormat *string    `hcl:"log_format,optional"`
	LogFile   *string    `hcl:"log_file,optional"`
	File      *string    `hcl:"file,optional"`
	Games     []*hclGame `hcl:"game,block"`
}

type hclGame struct {
	Name     string            `hcl:"name,label"`
	Enabled  *bool             `hcl:"enabled,optional"`
	Settings map[string]string `hcl:"settings,optional"`
}

// LoadFile decodes an HCL configuration file into c. Values for flags that
// were set explicitly on fs are left alone; fs may be nil.
func (c *Config) LoadFile(path string, fs *flag.FlagSet) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}
	var parsed hclConfigFile
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode config file %s: %w", path, diags)
	}

	set := map[string]bool{}
	if fs != nil {
		fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	}
	apply(set, "rows", parsed.Rows, &c.Rows)
	apply(set, "columns", parsed.Columns, &c.Columns)
	apply(set, "tps", parsed.TPS, &c.TPS)
	apply(set, "seed", parsed.Seed, &c.Seed)
	apply(set, "scale", parsed.Scale, &c.Scale)
	apply(set, "log-level", parsed.LogLevel, &c.LogLevel)
	apply(set, "log-format", parsed.LogFormat, &c.LogFormat)
	apply(set, "log-file", parsed.LogFile, &c.LogFile)
	apply(set, "file", parsed.File, &c.File)

	if c.Games == nil {
		c.Games = map[string]GameConfig{}
	}
	for _, g := range parsed.Games {
		if _, dup := c.Games[g.Name]; dup {
			return fmt.Errorf("config file %s: duplicate game block %q", path, g.Name)
		}
		gc := GameConfig{Enabled: true, Settings: g.Settings}
		if g.Enabled != nil {
			gc.Enabled = *g.Enabled
		}
		c.Games[g.Name] = gc
	}
	return nil
}

func apply[T any](set map[string]bool, flagName string, from *T, to *T) {
	if from == nil || set[flagName] {
		return
	}
	*to = *from
}
