// quad.go - Four-corner regions for perspective screenshot placement.
package geometry

import (
	"fmt"

	"github.com/xob0t/GoFrame/pkg/failure"
)

// Quad is an arbitrary four-corner region. It need not be a rectangle.
type Quad struct {
	BottomLeft  Point `json:"bottomLeft" yaml:"bottomLeft"`
	BottomRight Point `json:"bottomRight" yaml:"bottomRight"`
	TopLeft     Point `json:"topLeft" yaml:"topLeft"`
	TopRight    Point `json:"topRight" yaml:"topRight"`
}

// QuadFromRect returns the quad covering r in bottom-left origin space.
func QuadFromRect(r Rect) Quad {
	return Quad{
		BottomLeft:  Pt(r.X, r.Y),
		BottomRight: Pt(r.X+r.Width, r.Y),
		TopLeft:     Pt(r.X, r.Y+r.Height),
		TopRight:    Pt(r.X+r.Width, r.Y+r.Height),
	}
}

// Corners returns the corners in drawing order around the outline:
// bottom-left, bottom-right, top-right, top-left.
func (q Quad) Corners() [4]Point {
	return [4]Point{q.BottomLeft, q.BottomRight, q.TopRight, q.TopLeft}
}

// Bounds returns the axis-aligned bounding box of the four corners.
func (q Quad) Bounds() Rect {
	c := q.Corners()
	minX, maxX := c[0].X, c[0].X
	minY, maxY := c[0].Y, c[0].Y
	for _, p := range c[1:] {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Flipped converts every corner to the opposite origin convention.
func (q Quad) Flipped(height int) Quad {
	return Quad{
		BottomLeft:  q.BottomLeft.Flipped(height),
		BottomRight: q.BottomRight.Flipped(height),
		TopLeft:     q.TopLeft.Flipped(height),
		TopRight:    q.TopRight.Flipped(height),
	}
}

// IsUprightRect reports whether the quad is an axis-aligned rectangle whose
// top corners lie above its bottom corners in bottom-left origin space.
func (q Quad) IsUprightRect() bool {
	return q.BottomLeft.X == q.TopLeft.X &&
		q.BottomRight.X == q.TopRight.X &&
		q.BottomLeft.Y == q.BottomRight.Y &&
		q.TopLeft.Y == q.TopRight.Y &&
		q.BottomLeft.X < q.BottomRight.X &&
		q.BottomLeft.Y < q.TopLeft.Y
}

// Validate rejects quads that cannot be the target of a perspective
// transform: repeated corners, collinear corners, self-intersecting or
// concave outlines. The outline must turn the same way at every corner.
func (q Quad) Validate(subject string) error {
	c := q.Corners()
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			if c[i] == c[j] {
				return &failure.GeometryError{Subject: subject, Reason: fmt.Sprintf("corners %v and %v coincide", c[i], c[j])}
			}
		}
	}

	sign := 0
	for i := 0; i < 4; i++ {
		a, b, d := c[i], c[(i+1)%4], c[(i+2)%4]
		cross := (b.X-a.X)*(d.Y-b.Y) - (b.Y-a.Y)*(d.X-b.X)
		switch {
		case cross == 0:
			return &failure.GeometryError{Subject: subject, Reason: fmt.Sprintf("corners %v, %v and %v are collinear", a, b, d)}
		case sign == 0:
			sign = cross
		case (cross > 0) != (sign > 0):
			return &failure.GeometryError{Subject: subject, Reason: "quad is self-intersecting or concave"}
		}
	}
	return nil
}
