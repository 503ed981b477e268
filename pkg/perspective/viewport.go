// viewport.go - Locating the screen area inside a device frame image.
package perspective

import (
	"image"
	"image/color"

	"github.com/xob0t/GoFrame/pkg/geometry"
)

// ViewportComputer finds the rectangle of a frame image that a screenshot
// should fill. The rectangle is in bottom-left origin space.
type ViewportComputer interface {
	ComputeRect(frame image.Image) (geometry.Rect, bool)
}

// PixelScanner takes the color of the frame's center pixel and grows a
// rectangle outward along the center row and column for as long as that
// color continues.
//
// With HasNotch set every column of the center row is scanned vertically and
// the furthest extent wins, so cut-outs at the top of the screen do not stop
// the search early.
type PixelScanner struct {
	HasNotch bool
}

// ComputeRect implements ViewportComputer. It reports false when the
// uniform area is a single line.
func (s PixelScanner) ComputeRect(frame image.Image) (geometry.Rect, bool) {
	b := frame.Bounds()
	if b.Empty() {
		return geometry.Rect{}, false
	}

	cx, cy := b.Min.X+b.Dx()/2, b.Min.Y+b.Dy()/2
	want := color.NRGBAModel.Convert(frame.At(cx, cy))
	same := func(x, y int) bool {
		return color.NRGBAModel.Convert(frame.At(x, y)) == want
	}

	x1, x2 := cx, cx
	for x := cx; x >= b.Min.X && same(x, cy); x-- {
		x1 = x
	}
	for x := cx; x < b.Max.X && same(x, cy); x++ {
		x2 = x
	}

	cols := []int{cx}
	if s.HasNotch {
		cols = cols[:0]
		for x := x1; x <= x2; x++ {
			cols = append(cols, x)
		}
	}

	y1, y2 := cy, cy
	for _, x := range cols {
		for y := cy; y >= b.Min.Y && same(x, y); y-- {
			y1 = min(y1, y)
		}
		for y := cy; y < b.Max.Y && same(x, y); y++ {
			y2 = max(y2, y)
		}
	}

	if x1 == x2 || y1 == y2 {
		return geometry.Rect{}, false
	}

	width, height := x2-x1+1, y2-y1+1
	return geometry.Rect{
		X:      x1 - b.Min.X,
		Y:      b.Dy() - (y1 - b.Min.Y) - height,
		Width:  width,
		Height: height,
	}, true
}
