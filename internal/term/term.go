// Package term runs the arcade inside a terminal using tcell.
package term

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"sheet-arcade/internal/core"
	"sheet-arcade/internal/host"
	"sheet-arcade/internal/render"
)

const (
	frameInterval = 16 * time.Millisecond
	maxBurst      = 4
	cellWidth     = 2
)

var (
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dimStyle    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	promptStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// arrowKeys maps cursor keys onto the letter bindings the games use.
var arrowKeys = map[tcell.Key]string{
	tcell.KeyUp:    "w",
	tcell.KeyDown:  "s",
	tcell.KeyLeft:  "a",
	tcell.KeyRight: "d",
}

// Terminal draws a sheet and forwards input to a host.
type Terminal struct {
	screen tcell.Screen
	host   *host.Host
	sheet  *core.Sheet
	step   *core.FixedStep
	log    *slog.Logger

	styles  []tcell.Style
	cmdMode bool
	cmdBuf  []rune
}

// New prepares a Terminal. The screen must already be initialised.
func New(screen tcell.Screen, h *host.Host, sheet *core.Sheet, tps int, log *slog.Logger) *Terminal {
	if log == nil {
		log = slog.Default()
	}
	styles := make([]tcell.Style, len(render.Palette))
	for i, c := range render.Palette {
		styles[i] = tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	}
	return &Terminal{
		screen: screen,
		host:   h,
		sheet:  sheet,
		step:   core.NewFixedStep(tps),
		log:    log,
		styles: styles,
	}
}

// Run ticks the host at the configured rate and handles input until the user
// quits, ctx is cancelled, or a game reports an error.
func (t *Terminal) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	t.Draw()

	for {
		select {
		case <-ctx.Done():
			t.log.Debug("terminal loop cancelled")
			return nil
		case ev := <-events:
			quit, err := t.HandleEvent(ev)
			if err != nil {
				return err
			}
			if quit {
				t.log.Debug("quit requested")
				return nil
			}
			t.Draw()
		case now := <-ticker.C:
			changed, err := t.Advance(now)
			if err != nil {
				return err
			}
			if changed {
				t.Draw()
			}
		}
	}
}

// Advance runs every tick due at now and reports whether the sheet changed.
func (t *Terminal) Advance(now time.Time) (bool, error) {
	changed := false
	for n := t.step.Due(now, maxBurst); n > 0; n-- {
		c, err := t.host.Tick()
		if err != nil {
			return changed, err
		}
		changed = changed || c
	}
	return changed, nil
}

// HandleEvent applies one tcell event and reports whether the user asked to
// quit.
func (t *Terminal) HandleEvent(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.screen.Sync()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return true, nil
		}
		if t.cmdMode {
			return false, t.handleCommandKey(ev)
		}
		return t.handleGameKey(ev)
	}
	return false, nil
}

func (t *Terminal) handleGameKey(ev *tcell.EventKey) (bool, error) {
	key := ""
	switch ev.Key() {
	case tcell.KeyEscape:
		return true, nil
	case tcell.KeyRune:
		if ev.Rune() == ':' {
			t.cmdMode = true
			t.cmdBuf = t.cmdBuf[:0]
			return false, nil
		}
		key = string(ev.Rune())
	default:
		key = arrowKeys[ev.Key()]
	}
	if key == "" {
		return false, nil
	}
	_, err := t.host.Press(key)
	return false, err
}

func (t *Terminal) handleCommandKey(ev *tcell.EventKey) error {
	switch ev.Key() {
	case tcell.KeyEscape:
		t.cmdMode = false
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(t.cmdBuf) > 0 {
			t.cmdBuf = t.cmdBuf[:len(t.cmdBuf)-1]
		}
	case tcell.KeyEnter:
		t.cmdMode = false
		name := strings.TrimSpace(string(t.cmdBuf))
		if name == "" {
			return nil
		}
		err := t.host.Perform(name)
		if errors.Is(err, host.ErrUnknownCommand) {
			t.host.Message(fmt.Sprintf("Unknown command: %s", name))
			return nil
		}
		return err
	case tcell.KeyRune:
		t.cmdBuf = append(t.cmdBuf, ev.Rune())
	}
	return nil
}

// Draw renders the sheet, the command list and the status lines.
func (t *Terminal) Draw() {
	t.screen.Clear()
	rows, cols := t.sheet.Rows(), t.sheet.Columns()
	codes := t.sheet.Codes()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			style := t.styleFor(codes[row*cols+col])
			for i := 0; i < cellWidth; i++ {
				t.screen.SetContent(col*cellWidth+i, row, ' ', nil, style)
			}
		}
	}

	side := cols*cellWidth + 2
	y := 0
	t.drawText(side, y, "Commands (:name)", dimStyle)
	for _, c := range t.host.Commands() {
		y++
		t.drawText(side, y, fmt.Sprintf("%-12s %s", c.Name, c.Description), textStyle)
	}

	y = rows
	for _, s := range t.host.Statuses() {
		t.drawText(0, y, s.String(), dimStyle)
		y++
	}
	t.drawText(0, y, t.host.LastMessage(), textStyle)
	y++
	if t.cmdMode {
		t.drawText(0, y, ":"+string(t.cmdBuf), promptStyle)
	} else {
		t.drawText(0, y, ": command   esc quit", dimStyle)
	}
	t.screen.Show()
}

func (t *Terminal) styleFor(code uint8) tcell.Style {
	idx := int(code)
	if idx >= len(t.styles) {
		idx = len(t.styles) - 1
	}
	return t.styles[idx]
}

func (t *Terminal) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}
