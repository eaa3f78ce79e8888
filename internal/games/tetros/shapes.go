package tetros

import (
	"sheet-arcade/internal/core"
	"sheet-arcade/internal/games/random"
)

// Shape is a tetromino: four distinct offsets from its top-left origin and
// the code it is rendered with. Codes avoid 1, which other games use for
// their own cells.
type Shape struct {
	Name    string
	Offsets [4]core.Location
	Code    string
}

// Shapes is indexed by the identifier returned from random.ShapePicker.
var Shapes = [random.ShapeCount]Shape{
	{Name: "Z", Code: "4", Offsets: [4]core.Location{{0, 0}, {0, 1}, {1, 1}, {1, 2}}},
	{Name: "L", Code: "7", Offsets: [4]core.Location{{0, 0}, {1, 0}, {2, 0}, {2, 1}}},
	{Name: "J", Code: "5", Offsets: [4]core.Location{{0, 1}, {1, 1}, {2, 1}, {2, 0}}},
	{Name: "T", Code: "8", Offsets: [4]core.Location{{0, 0}, {0, 1}, {0, 2}, {1, 1}}},
	{Name: "O", Code: "3", Offsets: [4]core.Location{{0, 0}, {0, 1}, {1, 0}, {1, 1}}},
	{Name: "I", Code: "6", Offsets: [4]core.Location{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},
	{Name: "S", Code: "2", Offsets: [4]core.Location{{0, 1}, {0, 2}, {1, 0}, {1, 1}}},
}

// shapeAt returns the shape for id, wrapping out-of-range identifiers.
func shapeAt(id int) Shape {
	n := len(Shapes)
	return Shapes[((id%n)+n)%n]
}
