// Package compose implements the per-pass drawing surface. Layers are added
// in a fixed order: template, screenshots, text. Once finalized a canvas no
// longer accepts drawing.
//
// The API works in bottom-left origin space; the canvas translates to raster
// rows internally.
package compose

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/xob0t/GoFrame/pkg/geometry"
	"github.com/xob0t/GoFrame/pkg/typeset"
)

// Stage is the drawing progress of a canvas.
type Stage int

const (
	StageEmpty Stage = iota
	StageTemplateDrawn
	StageScreenshotsDrawn
	StageTextDrawn
	StageFinalized
)

func (s Stage) String() string {
	switch s {
	case StageEmpty:
		return "empty"
	case StageTemplateDrawn:
		return "template drawn"
	case StageScreenshotsDrawn:
		return "screenshots drawn"
	case StageTextDrawn:
		return "text drawn"
	case StageFinalized:
		return "finalized"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// ErrStage is returned when a drawing operation is not allowed in the
// canvas's current stage.
var ErrStage = errors.New("operation not allowed in this stage")

// Painter fills a whole image, for example with a background color or
// gradient.
type Painter interface {
	Paint(dst draw.Image)
}

// TextDrawer renders text into a raster rectangle of dst.
type TextDrawer interface {
	Draw(dst draw.Image, r image.Rectangle, text string, style typeset.Style) error
}

// Canvas is a fixed-size RGBA drawing surface owned by a single render pass.
type Canvas struct {
	img   *image.RGBA
	stage Stage
}

// NewCanvas returns an empty, fully transparent canvas.
func NewCanvas(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, width, height))}, nil
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.img.Rect.Dx() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.img.Rect.Dy() }

// Stage returns the current stage.
func (c *Canvas) Stage() Stage { return c.stage }

func (c *Canvas) require(op string, allowed ...Stage) error {
	for _, s := range allowed {
		if c.stage == s {
			return nil
		}
	}
	return fmt.Errorf("canvas: %s while %s: %w", op, c.stage, ErrStage)
}

// raster converts a bottom-left origin rectangle to image coordinates.
func (c *Canvas) raster(r geometry.Rect) image.Rectangle {
	h := c.Height()
	return image.Rect(r.X, h-(r.Y+r.Height), r.X+r.Width, h-r.Y)
}

// DrawTemplate paints the optional background and then the template over
// it. The template must have exactly the canvas size.
func (c *Canvas) DrawTemplate(tpl image.Image, bg Painter) error {
	if err := c.require("draw template", StageEmpty); err != nil {
		return err
	}
	if tb := tpl.Bounds(); tb.Dx() != c.Width() || tb.Dy() != c.Height() {
		return fmt.Errorf("template is %dx%d, canvas is %dx%d", tb.Dx(), tb.Dy(), c.Width(), c.Height())
	}

	if bg != nil {
		bg.Paint(c.img)
	}
	draw.Draw(c.img, c.img.Bounds(), tpl, tpl.Bounds().Min, draw.Over)
	c.stage = StageTemplateDrawn
	return nil
}

// DrawScreenshot composites a placed fragment into rect. With behind set the
// fragment goes under the pixels already on the canvas, so a device frame
// with a transparent screen stays on top.
func (c *Canvas) DrawScreenshot(frag image.Image, rect geometry.Rect, behind bool) error {
	if err := c.require("draw screenshot", StageTemplateDrawn, StageScreenshotsDrawn); err != nil {
		return err
	}

	dr := c.raster(rect)
	if !behind {
		draw.Draw(c.img, dr, frag, frag.Bounds().Min, draw.Over)
	} else {
		under := image.NewRGBA(image.Rect(0, 0, dr.Dx(), dr.Dy()))
		draw.Draw(under, under.Bounds(), frag, frag.Bounds().Min, draw.Src)
		draw.Draw(under, under.Bounds(), c.img, dr.Min, draw.Over)
		draw.Draw(c.img, dr, under, image.Point{}, draw.Src)
	}

	c.stage = StageScreenshotsDrawn
	return nil
}

// DrawText lays out text inside rect using d.
func (c *Canvas) DrawText(d TextDrawer, rect geometry.Rect, text string, style typeset.Style) error {
	if err := c.require("draw text", StageTemplateDrawn, StageScreenshotsDrawn, StageTextDrawn); err != nil {
		return err
	}
	if err := d.Draw(c.img, c.raster(rect), text, style); err != nil {
		return err
	}
	c.stage = StageTextDrawn
	return nil
}

// Finalize ends drawing and returns the composed image.
func (c *Canvas) Finalize() (*image.RGBA, error) {
	if c.stage == StageEmpty || c.stage == StageFinalized {
		return nil, fmt.Errorf("canvas: finalize while %s: %w", c.stage, ErrStage)
	}
	c.stage = StageFinalized
	return c.img, nil
}
