//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"sheet-arcade/internal/core"
)

const (
	lineHeight = 16
	padding    = 4
)

// Overlay draws the message and status panel below the sheet.
type Overlay struct {
	pixel *ebiten.Image
	lines []string
}

// NewOverlay constructs a new overlay instance.
func NewOverlay() *Overlay {
	o := &Overlay{}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Height returns the panel height in pixels for the given number of games.
func Height(games int) int {
	return (games+2)*lineHeight + 2*padding
}

// Update refreshes the text shown by the panel.
func (o *Overlay) Update(message string, statuses []core.StatusSnapshot, help string) {
	o.lines = o.lines[:0]
	for _, s := range statuses {
		o.lines = append(o.lines, s.String())
	}
	o.lines = append(o.lines, message, help)
}

// Draw renders the panel starting at pixel row top.
func (o *Overlay) Draw(screen *ebiten.Image, top int) {
	w := screen.Bounds().Dx()
	h := screen.Bounds().Dy() - top
	if w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w), float64(h))
	op.GeoM.Translate(0, float64(top))
	op.ColorScale.Scale(0.08, 0.08, 0.12, 1)
	screen.DrawImage(o.pixel, op)

	face := basicfont.Face7x13
	for i, line := range o.lines {
		y := top + padding + (i+1)*lineHeight - 4
		text.Draw(screen, line, face, padding, y, color.White)
	}
}
