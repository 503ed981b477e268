// Package perspective maps screenshots onto arbitrary four-corner regions of
// a canvas.
//
// Quads are given in the canvas's bottom-left origin space. The result of a
// placement is a transparent fragment the size of the quad's bounding box
// together with that box, ready to be composited.
package perspective

import (
	"fmt"
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/xob0t/GoFrame/pkg/failure"
	"github.com/xob0t/GoFrame/pkg/geometry"
)

// Place warps src so that its corners land on the corners of quad. Pixels of
// the returned fragment that fall outside the quad are transparent.
func Place(src image.Image, quad geometry.Quad) (*image.RGBA, geometry.Rect, error) {
	if err := quad.Validate("screenshot quad"); err != nil {
		return nil, geometry.Rect{}, err
	}

	sb := src.Bounds()
	if sb.Empty() {
		return nil, geometry.Rect{}, &failure.GeometryError{Subject: "screenshot", Reason: "source image is empty"}
	}

	rect := quad.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, rect.Width, rect.Height))

	if quad.IsUprightRect() {
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, sb, xdraw.Src, nil)
		return dst, rect, nil
	}

	// Canvas space to source raster space, so every destination pixel can be
	// looked up in the source.
	w, h := float64(sb.Dx()), float64(sb.Dy())
	var to [4][2]float64
	var from [4][2]float64
	corners := [4]geometry.Point{quad.TopLeft, quad.TopRight, quad.BottomRight, quad.BottomLeft}
	srcCorners := [4][2]float64{{0, 0}, {w, 0}, {w, h}, {0, h}}
	for i, c := range corners {
		from[i] = [2]float64{float64(c.X), float64(c.Y)}
		to[i] = srcCorners[i]
	}
	hom, err := Solve(from, to)
	if err != nil {
		return nil, geometry.Rect{}, fmt.Errorf("place screenshot: %w", err)
	}

	s := toRGBA(src)
	for fy := 0; fy < rect.Height; fy++ {
		cy := float64(rect.Y+rect.Height-fy) - 0.5
		for fx := 0; fx < rect.Width; fx++ {
			cx := float64(rect.X+fx) + 0.5
			u, v, ok := hom.Apply(cx, cy)
			if !ok || u < 0 || v < 0 || u > w || v > h {
				continue
			}
			dst.SetRGBA(fx, fy, bilinear(s, u, v))
		}
	}
	return dst, rect, nil
}

// toRGBA returns img as a zero-based premultiplied RGBA image.
func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return dst
}

// bilinear samples src at the continuous raster position (u, v), where pixel
// centers sit at half-integer coordinates.
func bilinear(src *image.RGBA, u, v float64) color.RGBA {
	maxX, maxY := src.Rect.Dx()-1, src.Rect.Dy()-1

	x, y := u-0.5, v-0.5
	x0, y0 := int(math.Floor(x)), int(math.Floor(y))
	tx, ty := x-float64(x0), y-float64(y0)

	clamp := func(n, hi int) int { return min(max(n, 0), hi) }
	x1, y1 := clamp(x0+1, maxX), clamp(y0+1, maxY)
	x0, y0 = clamp(x0, maxX), clamp(y0, maxY)

	c00 := src.RGBAAt(x0, y0)
	c10 := src.RGBAAt(x1, y0)
	c01 := src.RGBAAt(x0, y1)
	c11 := src.RGBAAt(x1, y1)

	mix := func(a, b, c, d uint8) uint8 {
		top := float64(a)*(1-tx) + float64(b)*tx
		bottom := float64(c)*(1-tx) + float64(d)*tx
		return uint8(math.Round(top*(1-ty) + bottom*ty))
	}
	return color.RGBA{
		R: mix(c00.R, c10.R, c01.R, c11.R),
		G: mix(c00.G, c10.G, c01.G, c11.G),
		B: mix(c00.B, c10.B, c01.B, c11.B),
		A: mix(c00.A, c10.A, c01.A, c11.A),
	}
}
