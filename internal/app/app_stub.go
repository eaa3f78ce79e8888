//go:build !ebiten

package app

import (
	"errors"
	"log/slog"

	"sheet-arcade/internal/core"
	"sheet-arcade/internal/host"
)

// ErrNoGUI is returned when the binary was built without the ebiten tag.
var ErrNoGUI = errors.New("GUI support requires building with the 'ebiten' tag")

// Game is a placeholder that satisfies the API expected by the GUI build.
type Game struct{}

// New returns a placeholder in the headless build.
func New(*host.Host, *core.Sheet, int, int, *slog.Logger) *Game { return &Game{} }

// Update always reports that the GUI build tag is missing.
func (g *Game) Update() error { return ErrNoGUI }

// Draw is a no-op placeholder to satisfy the interface shape.
func (g *Game) Draw(any) {}

// Layout returns zeros in the headless build.
func (g *Game) Layout(int, int) (int, int) { return 0, 0 }

// Run always fails in the headless build.
func Run(*Game, string) error { return ErrNoGUI }
