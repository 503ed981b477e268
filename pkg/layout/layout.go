// Package layout holds the resolved, read-only descriptors of what goes where
// on a device canvas: text blocks, text groups and screenshot placements.
//
// All coordinates are in bottom-left origin space. Descriptors are built once
// from configuration and shared by every locale's render pass.
package layout

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/xob0t/GoFrame/pkg/failure"
	"github.com/xob0t/GoFrame/pkg/geometry"
	"github.com/xob0t/GoFrame/pkg/typeset"
)

// TextBlock is a box that receives one localized string.
type TextBlock struct {
	Identifier          string // key into the localized strings
	TopLeft             geometry.Point
	BottomRight         geometry.Point
	Alignment           typeset.Alignment
	VerticalAlignment   typeset.VerticalAlignment
	MaxFontSizeOverride *float64
	Font                *typeset.Font // nil uses the global font
	Color               color.Color   // nil uses the global color
	Group               string        // empty means independent sizing
}

// Rect returns the box of the block.
func (b TextBlock) Rect() geometry.Rect {
	return geometry.RectFromCorners(b.TopLeft, b.BottomRight)
}

// Flipped converts the block's corners to the opposite origin convention.
func (b TextBlock) Flipped(height int) TextBlock {
	b.TopLeft = b.TopLeft.Flipped(height)
	b.BottomRight = b.BottomRight.Flipped(height)
	return b
}

// Validate checks that the top-left corner lies left of and above the
// bottom-right corner.
func (b TextBlock) Validate() error {
	if b.TopLeft.X >= b.BottomRight.X || b.TopLeft.Y <= b.BottomRight.Y {
		return &failure.GeometryError{
			Subject: fmt.Sprintf("text %q", b.Identifier),
			Reason:  fmt.Sprintf("bad text bounds: topLeft%v and bottomRight%v", b.TopLeft, b.BottomRight),
		}
	}
	return nil
}

// TextGroup forces its member blocks to share one font size.
type TextGroup struct {
	Identifier  string
	MaxFontSize float64
}

// Placement puts one screenshot into a quad of the canvas.
type Placement struct {
	ScreenshotName string
	Quad           geometry.Quad
	ZIndex         int
}

// Flipped converts the placement's quad to the opposite origin convention.
func (p Placement) Flipped(height int) Placement {
	p.Quad = p.Quad.Flipped(height)
	return p
}

// Validate rejects placements whose quad cannot be perspective-mapped.
func (p Placement) Validate() error {
	return p.Quad.Validate(fmt.Sprintf("screenshot %q", p.ScreenshotName))
}

// SortPlacements orders placements for drawing: lower z-index first, equal
// z-index keeps list order.
func SortPlacements(placements []Placement) {
	sort.SliceStable(placements, func(i, j int) bool {
		return placements[i].ZIndex < placements[j].ZIndex
	})
}

// ValidateGroupReferences checks that every grouped block names a defined
// group.
func ValidateGroupReferences(blocks []TextBlock, groups []TextGroup) error {
	known := make(map[string]struct{}, len(groups))
	for _, g := range groups {
		known[g.Identifier] = struct{}{}
	}
	for _, b := range blocks {
		if b.Group == "" {
			continue
		}
		if _, ok := known[b.Group]; !ok {
			return &failure.GroupReferenceError{Group: b.Group, Text: b.Identifier}
		}
	}
	return nil
}
