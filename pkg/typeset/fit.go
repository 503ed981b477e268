package typeset

import (
	"fmt"
	"math"

	"github.com/xob0t/GoFrame/pkg/failure"
	"github.com/xob0t/GoFrame/pkg/geometry"
)

// MinFontSize is the smallest font size the fitter will consider.
const MinFontSize = 1.0

// fitTolerance ends the bisection once the search interval is this narrow.
const fitTolerance = 1e-7

// MaximumFontSizeThatFits returns the largest whole font size in
// [minSize, maxSize] at which text, wrapped at target.Width, fits target.
//
// Empty text fits at any size and yields maxSize. When the text does not fit
// even at minSize a *failure.FitError is returned.
func MaximumFontSizeThatFits(m Measurer, text string, f *Font, align Alignment, target geometry.Size, minSize, maxSize float64) (float64, error) {
	if text == "" {
		return maxSize, nil
	}
	if minSize > maxSize {
		return 0, fmt.Errorf("font size bounds out of order: min %g > max %g", minSize, maxSize)
	}

	fits := func(size float64) (bool, error) {
		s, err := m.Measure(text, f, size, align, target.Width)
		if err != nil {
			return false, err
		}
		return s.Fits(target), nil
	}

	lo, hi := minSize, maxSize
	for hi-lo > fitTolerance {
		mid := (lo + hi) / 2
		ok, err := fits(mid)
		if err != nil {
			return 0, err
		}
		if ok {
			lo = mid
		} else {
			hi = mid
		}
	}

	// The samples may narrowly miss the boundary, so both ends are tested
	// again, upper first.
	var size float64
	if ok, err := fits(hi); err != nil {
		return 0, err
	} else if ok {
		size = hi
	} else if ok, err := fits(lo); err != nil {
		return 0, err
	} else if ok {
		size = lo
	} else {
		return 0, &failure.FitError{Text: text, Width: target.Width, Height: target.Height}
	}

	return min(math.Floor(size), maxSize), nil
}
