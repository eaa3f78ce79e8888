//go:build !ebiten

package ui

import "sheet-arcade/internal/core"

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay() *Overlay { return &Overlay{} }

// Height returns zero in headless builds.
func Height(int) int { return 0 }

// Update is a no-op in headless builds.
func (o *Overlay) Update(string, []core.StatusSnapshot, string) {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any, int) {}
