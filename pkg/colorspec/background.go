// background.go - Solid and linear-gradient canvas backgrounds.
package colorspec

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var gradientPattern = regexp.MustCompile(`^linear-gradient\(\s*([^,]+?)\s*,\s*([^)]+?)\s*\)$`)

// Direction is the CSS direction a linear gradient runs towards.
type Direction int

const (
	ToTop Direction = iota
	ToBottom
	ToLeft
	ToRight
	ToLeftTop
	ToRightTop
	ToLeftBottom
	ToRightBottom
)

var directionNames = map[Direction]string{
	ToTop:         "to top",
	ToBottom:      "to bottom",
	ToLeft:        "to left",
	ToRight:       "to right",
	ToLeftTop:     "to left top",
	ToRightTop:    "to right top",
	ToLeftBottom:  "to left bottom",
	ToRightBottom: "to right bottom",
}

func (d Direction) String() string {
	if s, ok := directionNames[d]; ok {
		return s
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// endpoints returns start and end of the gradient in a unit square with the
// origin at the bottom left.
func (d Direction) endpoints() (sx, sy, ex, ey float64) {
	switch d {
	case ToTop:
		return 0, 0, 0, 1
	case ToBottom:
		return 0, 1, 0, 0
	case ToLeft:
		return 1, 0, 0, 0
	case ToRight:
		return 0, 0, 1, 0
	case ToLeftTop:
		return 1, 0, 0, 1
	case ToRightTop:
		return 0, 0, 1, 1
	case ToLeftBottom:
		return 1, 1, 0, 0
	default:
		return 0, 1, 1, 0
	}
}

// Background is a solid color (one entry in Colors) or a linear gradient
// through evenly spaced color stops.
type Background struct {
	Direction Direction
	Colors    []color.NRGBA
}

// ParseBackground reads "#hex" for a solid background or
// "linear-gradient(<direction>, <color>, <color>...)" with at least two
// colors.
func ParseBackground(spec string) (Background, error) {
	spec = strings.TrimSpace(spec)
	if strings.HasPrefix(spec, "#") {
		c, err := Parse(spec)
		if err != nil {
			return Background{}, err
		}
		return Background{Colors: []color.NRGBA{c}}, nil
	}

	m := gradientPattern.FindStringSubmatch(spec)
	if m == nil {
		return Background{}, fmt.Errorf("invalid background %q", spec)
	}

	dir := Direction(-1)
	for d, name := range directionNames {
		if name == strings.Join(strings.Fields(m[1]), " ") {
			dir = d
		}
	}
	if dir < 0 {
		return Background{}, fmt.Errorf("invalid background %q: unknown direction %q", spec, m[1])
	}

	var colors []color.NRGBA
	for _, part := range strings.Split(m[2], ",") {
		c, err := Parse(part)
		if err != nil {
			return Background{}, fmt.Errorf("invalid background %q: %w", spec, err)
		}
		colors = append(colors, c)
	}
	if len(colors) < 2 {
		return Background{}, fmt.Errorf("invalid background %q: a gradient needs at least two colors", spec)
	}
	return Background{Direction: dir, Colors: colors}, nil
}

func (b Background) String() string {
	if len(b.Colors) == 1 {
		return Hex(b.Colors[0])
	}
	hexes := make([]string, len(b.Colors))
	for i, c := range b.Colors {
		hexes[i] = Hex(c)
	}
	return fmt.Sprintf("linear-gradient(%s, %s)", b.Direction, strings.Join(hexes, ", "))
}

// gradientSteps is the resolution of the precomputed color ramp.
const gradientSteps = 1024

// Paint fills dst with the background.
func (b Background) Paint(dst draw.Image) {
	switch len(b.Colors) {
	case 0:
		return
	case 1:
		draw.Draw(dst, dst.Bounds(), &image.Uniform{C: b.Colors[0]}, image.Point{}, draw.Src)
		return
	}

	ramp := b.ramp(gradientSteps)
	sx, sy, ex, ey := b.Direction.endpoints()
	vx, vy := ex-sx, ey-sy
	l2 := vx*vx + vy*vy

	r := dst.Bounds()
	w, h := float64(r.Dx()), float64(r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		py := 1 - (float64(y-r.Min.Y)+0.5)/h
		for x := r.Min.X; x < r.Max.X; x++ {
			px := (float64(x-r.Min.X) + 0.5) / w
			t := ((px-sx)*vx + (py-sy)*vy) / l2
			i := int(min(max(t, 0), 1) * (gradientSteps - 1))
			dst.Set(x, y, ramp[i])
		}
	}
}

// ramp samples the gradient at n evenly spaced positions.
func (b Background) ramp(n int) []color.NRGBA {
	stops := make([]colorful.Color, len(b.Colors))
	for i, c := range b.Colors {
		stops[i], _ = colorful.MakeColor(opaque(c))
	}
	segments := float64(len(stops) - 1)

	out := make([]color.NRGBA, n)
	for i := range out {
		t := float64(i) / float64(n-1) * segments
		k := min(int(t), len(stops)-2)
		c := stops[k].BlendRgb(stops[k+1], t-float64(k)).Clamped()
		r, g, bl := c.RGB255()

		a0, a1 := float64(b.Colors[k].A), float64(b.Colors[k+1].A)
		a := a0 + (a1-a0)*(t-float64(k))
		out[i] = color.NRGBA{R: r, G: g, B: bl, A: uint8(a + 0.5)}
	}
	return out
}
