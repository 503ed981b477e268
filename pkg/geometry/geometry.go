// Package geometry provides the integer points, rectangles and quads used to
// place screenshots and text on a canvas.
//
// Configuration coordinates may be given with the origin in the top-left
// corner; everything downstream of config processing works with the origin in
// the bottom-left corner of the canvas. Conversion is a single Flipped call.
package geometry

import "fmt"

// Point is an integer pixel coordinate.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Flipped mirrors the point vertically inside an image of the given height,
// switching between top-left and bottom-left origin. Flipping twice with the
// same height returns the original point.
func (p Point) Flipped(height int) Point {
	return Point{X: p.X, Y: height - p.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Size is a real-valued extent, used for text measurement.
type Size struct {
	Width  float64
	Height float64
}

// Fits reports whether s fits inside target in both dimensions.
func (s Size) Fits(target Size) bool {
	return s.Width <= target.Width && s.Height <= target.Height
}

// Rect is an axis-aligned rectangle given by its minimum corner and extent.
type Rect struct {
	X, Y          int
	Width, Height int
}

// RectFromCorners builds a rectangle from a top-left and bottom-right corner
// in bottom-left origin space (top-left has the larger Y).
func RectFromCorners(topLeft, bottomRight Point) Rect {
	return Rect{
		X:      topLeft.X,
		Y:      bottomRight.Y,
		Width:  bottomRight.X - topLeft.X,
		Height: topLeft.Y - bottomRight.Y,
	}
}

// Size returns the extent of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: float64(r.Width), Height: float64(r.Height)}
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d %dx%d]", r.X, r.Y, r.Width, r.Height)
}
