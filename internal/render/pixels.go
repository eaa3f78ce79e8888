package render

import "image/color"

// Palette maps sheet codes 0..8 to colours. Code 0 is an empty cell, 1 is a
// live cell or snake body, 2 is food and 3..8 are tetromino kinds.
var Palette = []color.RGBA{
	{R: 16, G: 16, B: 24, A: 255},
	{R: 230, G: 230, B: 230, A: 255},
	{R: 220, G: 60, B: 60, A: 255},
	{R: 240, G: 220, B: 60, A: 255},
	{R: 230, G: 80, B: 80, A: 255},
	{R: 60, G: 90, B: 220, A: 255},
	{R: 80, G: 210, B: 230, A: 255},
	{R: 240, G: 150, B: 50, A: 255},
	{R: 170, G: 80, B: 210, A: 255},
}

// ColorOf returns the palette entry for code, clamping unknown codes to the
// last entry.
func ColorOf(code uint8) color.RGBA {
	idx := int(code)
	if idx >= len(Palette) {
		idx = len(Palette) - 1
	}
	return Palette[idx]
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range cells {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
