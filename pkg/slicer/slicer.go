// Package slicer cuts a finished canvas into the individual images uploaded
// to a store listing.
package slicer

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/xob0t/GoFrame/pkg/failure"
)

// SliceWidth returns the width of each of n slices separated by gap pixels
// across a canvas of the given width. The slices must divide the remaining
// width exactly.
func SliceWidth(canvasWidth, n, gap int) (int, error) {
	if n <= 0 {
		return 0, &failure.SliceError{Reason: fmt.Sprintf("number of slices must be positive, got %d", n)}
	}
	if gap < 0 {
		return 0, &failure.SliceError{Reason: fmt.Sprintf("gap width must not be negative, got %d", gap)}
	}

	rest := canvasWidth - (n-1)*gap
	if rest <= 0 || rest%n != 0 {
		return 0, &failure.SliceError{Reason: fmt.Sprintf(
			"canvas width %d minus %d gaps of %d does not split into %d equal slices", canvasWidth, n-1, gap, n)}
	}
	return rest / n, nil
}

// Slice cuts img into n images of sliceWidth pixels, left to right, skipping
// gapWidth pixels between neighbours. Every slice spans the full height.
func Slice(img image.Image, sliceWidth, gapWidth, n int) ([]image.Image, error) {
	b := img.Bounds()
	if n <= 0 || sliceWidth <= 0 || gapWidth < 0 {
		return nil, &failure.SliceError{Reason: fmt.Sprintf("invalid slicing: %d slices of width %d, gap %d", n, sliceWidth, gapWidth)}
	}
	if want := n*sliceWidth + (n-1)*gapWidth; b.Dx() != want {
		return nil, &failure.SliceError{Reason: fmt.Sprintf(
			"canvas width %d does not match %d slices of %d with gap %d (%d)", b.Dx(), n, sliceWidth, gapWidth, want)}
	}

	slices := make([]image.Image, 0, n)
	for x := b.Min.X; x+sliceWidth <= b.Max.X; x += sliceWidth + gapWidth {
		slices = append(slices, imaging.Crop(img, image.Rect(x, b.Min.Y, x+sliceWidth, b.Max.Y)))
	}
	if len(slices) != n {
		return nil, &failure.SliceError{Reason: fmt.Sprintf("produced %d slices, expected %d", len(slices), n)}
	}
	return slices, nil
}
