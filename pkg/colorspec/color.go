// Package colorspec parses the color and background notations accepted in
// configuration files.
package colorspec

import (
	"fmt"
	"image/color"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var rgbaPattern = regexp.MustCompile(`^rgba?\(\s*([0-9.]+)\s*,\s*([0-9.]+)\s*,\s*([0-9.]+)\s*(?:,\s*([0-9.]+)\s*)?\)$`)

// Parse reads "#rgb", "#rrggbb" (the "#" is optional), "rgb(r, g, b)" or
// "rgba(r, g, b, a)". In the functional forms r, g and b are 0-255 unless
// written with a decimal point, which makes them 0-1. Alpha is always 0-1.
func Parse(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if m := rgbaPattern.FindStringSubmatch(s); m != nil {
		return parseFunctional(s, m[1:])
	}

	hex := s
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if len(hex) != 4 && len(hex) != 7 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: expected #rgb or #rrggbb", s)
	}
	c, err := colorful.Hex(strings.ToLower(hex))
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

func parseFunctional(s string, parts []string) (color.NRGBA, error) {
	var ch [4]uint8
	ch[3] = 255
	for i, p := range parts {
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		// Alpha is always 0-1; r, g and b are 0-255 unless written with a fraction.
		if i < 3 && !strings.Contains(p, ".") {
			v /= 255
		}
		ch[i] = uint8(math.Round(min(max(v, 0), 1) * 255))
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

// Hex formats c as "#rrggbb", dropping alpha.
func Hex(c color.Color) string {
	cf, _ := colorful.MakeColor(opaque(c))
	return cf.Hex()
}

func opaque(c color.Color) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 255
	return n
}
