//go:build ebiten

package app

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"sheet-arcade/internal/core"
	"sheet-arcade/internal/host"
	"sheet-arcade/internal/render"
	"sheet-arcade/internal/ui"
)

const maxBurst = 4

var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

var arrowKeys = map[ebiten.Key]string{
	ebiten.KeyArrowUp:    "w",
	ebiten.KeyArrowDown:  "s",
	ebiten.KeyArrowLeft:  "a",
	ebiten.KeyArrowRight: "d",
}

// Game adapts a host and its sheet to the ebiten.Game interface.
type Game struct {
	host    *host.Host
	sheet   *core.Sheet
	painter *render.GridPainter
	overlay *ui.Overlay
	step    *core.FixedStep
	log     *slog.Logger

	scale int
	help  string
	keys  []ebiten.Key
}

// New constructs a Game for the provided host and sheet.
func New(h *host.Host, sheet *core.Sheet, scale, tps int, log *slog.Logger) *Game {
	if log == nil {
		log = slog.Default()
	}
	g := &Game{
		host:    h,
		sheet:   sheet,
		painter: render.NewGridPainter(sheet.Columns(), sheet.Rows()),
		overlay: ui.NewOverlay(),
		step:    core.NewFixedStep(tps),
		log:     log,
		scale:   scale,
	}
	var parts []string
	for i, c := range h.Commands() {
		if i >= len(digitKeys) {
			break
		}
		parts = append(parts, fmt.Sprintf("%d:%s", i+1, c.Name))
	}
	g.help = strings.Join(parts, " ")
	return g
}

// Update handles input and advances the games at the configured tick rate.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	commands := g.host.Commands()
	for i, k := range digitKeys {
		if i < len(commands) && inpututil.IsKeyJustPressed(k) {
			g.log.Debug("command key", "digit", i+1, "command", commands[i].Name)
			if err := g.host.Perform(commands[i].Name); err != nil {
				return err
			}
		}
	}

	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		name, ok := arrowKeys[k]
		if !ok {
			if k < ebiten.KeyA || k > ebiten.KeyZ {
				continue
			}
			name = strings.ToLower(k.String())
		}
		if _, err := g.host.Press(name); err != nil {
			return err
		}
	}

	for n := g.step.Due(time.Now(), maxBurst); n > 0; n-- {
		if _, err := g.host.Tick(); err != nil {
			return err
		}
	}

	g.overlay.Update(g.host.LastMessage(), g.host.Statuses(), g.help)
	return nil
}

// Draw renders the sheet and the status panel.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sheet.Codes(), g.scale)
	g.overlay.Draw(screen, g.sheet.Rows()*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.sheet.Columns() * g.scale, g.sheet.Rows()*g.scale + ui.Height(len(g.host.Statuses()))
}

// Run opens the window and blocks until it closes. A clean close is not an
// error.
func Run(g *Game, title string) error {
	w, h := g.Layout(0, 0)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w, h)
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
