package typeset

import "fmt"

// Alignment is the horizontal alignment of text lines inside their box.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
	AlignJustify
	AlignNatural
)

var alignmentNames = map[string]Alignment{
	"left":    AlignLeft,
	"right":   AlignRight,
	"center":  AlignCenter,
	"justify": AlignJustify,
	"natural": AlignNatural,
}

// ParseAlignment converts a configuration value. Empty means left.
func ParseAlignment(s string) (Alignment, error) {
	if s == "" {
		return AlignLeft, nil
	}
	a, ok := alignmentNames[s]
	if !ok {
		return 0, fmt.Errorf("invalid text alignment %q", s)
	}
	return a, nil
}

func (a Alignment) String() string {
	for name, v := range alignmentNames {
		if v == a {
			return name
		}
	}
	return fmt.Sprintf("Alignment(%d)", int(a))
}

// VerticalAlignment positions the text block inside its box.
type VerticalAlignment int

const (
	AlignTop VerticalAlignment = iota
	AlignMiddle
	AlignBottom
)

// ParseVerticalAlignment converts a configuration value. Empty means top.
func ParseVerticalAlignment(s string) (VerticalAlignment, error) {
	switch s {
	case "", "top":
		return AlignTop, nil
	case "center", "middle":
		return AlignMiddle, nil
	case "bottom":
		return AlignBottom, nil
	}
	return 0, fmt.Errorf("invalid vertical alignment %q", s)
}

func (v VerticalAlignment) String() string {
	switch v {
	case AlignTop:
		return "top"
	case AlignMiddle:
		return "center"
	case AlignBottom:
		return "bottom"
	}
	return fmt.Sprintf("VerticalAlignment(%d)", int(v))
}
