// Package session assembles a sheet, its games and the file commands from a
// config.Config.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"sheet-arcade/internal/config"
	"sheet-arcade/internal/core"
	"sheet-arcade/internal/ctxlog"
	_ "sheet-arcade/internal/games/life"
	_ "sheet-arcade/internal/games/snake"
	_ "sheet-arcade/internal/games/tetros"
	"sheet-arcade/internal/host"
	"sheet-arcade/internal/sheetio"
)

// Session is one sheet shared by every enabled game.
type Session struct {
	Config *config.Config
	Sheet  *core.Sheet
	Host   *host.Host
	Files  *sheetio.Feature
	Games  []string
}

// New builds a session. The logger is taken from ctx.
func New(ctx context.Context, cfg *config.Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := ctxlog.FromContext(ctx)

	sheet := core.NewSheet(cfg.Rows, cfg.Columns)
	if cfg.LoadOnBoot {
		loaded, err := sheetio.LoadFile(cfg.File)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", cfg.File, err)
		}
		if loaded.Rows() != cfg.Rows || loaded.Columns() != cfg.Columns {
			log.Info("sheet size taken from file", "rows", loaded.Rows(), "columns", loaded.Columns())
		}
		sheet = loaded
	}

	h := host.New(log)
	env := core.Env{Sheet: sheet, RNG: core.NewRNG(cfg.Seed), Log: log}
	games := core.Games()
	s := &Session{Config: cfg, Sheet: sheet, Host: h}
	for _, name := range core.GameNames() {
		if !cfg.GameEnabled(name) {
			log.Debug("game disabled", "game", name)
			continue
		}
		h.Install(games[name](env, cfg.GameSettings(name)))
		s.Games = append(s.Games, name)
	}
	if len(s.Games) == 0 {
		return nil, errors.New("no games enabled")
	}

	s.Files = &sheetio.Feature{Sheet: sheet, Path: cfg.File, Log: log}
	h.Install(s.Files)
	log.Info("session ready", "rows", sheet.Rows(), "columns", sheet.Columns(), "games", s.Games)
	return s, nil
}

// Close saves the sheet when the config asks for it.
func (s *Session) Close(ctx context.Context) error {
	if !s.Config.SaveOnExit {
		return nil
	}
	path := s.Files.SavePath()
	if err := sheetio.SaveFile(path, s.Sheet); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	ctxlog.FromContext(ctx).Info("sheet saved", "path", path)
	return nil
}

// OpenLog returns the writer for log output: the configured log file, or
// fallback when none is set. The returned close func is never nil.
func OpenLog(path string, fallback io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return fallback, func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
