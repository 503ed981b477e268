package typeset

import (
	"errors"
	"math"
	"testing"

	"github.com/xob0t/GoFrame/pkg/failure"
	"github.com/xob0t/GoFrame/pkg/geometry"
)

// linearMeasurer models text as one unwrapped line whose extent grows
// linearly with the font size.
type linearMeasurer struct {
	advance    float64 // width per character per font size unit
	lineHeight float64 // height per font size unit
	calls      int
}

func (m *linearMeasurer) Measure(text string, _ *Font, size float64, _ Alignment, _ float64) (geometry.Size, error) {
	m.calls++
	return geometry.Size{
		Width:  float64(len(text)) * m.advance * size,
		Height: m.lineHeight * size,
	}, nil
}

func TestMaximumFontSizeThatFits_Unconstrained(t *testing.T) {
	m := &linearMeasurer{advance: 0.5, lineHeight: 1.2}
	target := geometry.Size{Width: math.MaxFloat64, Height: 2000}

	got, err := MaximumFontSizeThatFits(m, "Hello", nil, AlignCenter, target, MinFontSize, 400)
	if err != nil {
		t.Fatal(err)
	}
	if got != 400 {
		t.Errorf("got %v, want 400", got)
	}
}

func TestMaximumFontSizeThatFits_RealFont(t *testing.T) {
	reg := NewFontRegistry()
	f, err := reg.Default()
	if err != nil {
		t.Fatal(err)
	}
	e := NewEngine()

	target := geometry.Size{Width: math.MaxFloat64, Height: 2000}
	got, err := MaximumFontSizeThatFits(e, "Hello", f, AlignCenter, target, MinFontSize, 400)
	if err != nil {
		t.Fatal(err)
	}
	if got != 400 {
		t.Errorf("got %v, want 400", got)
	}

	if _, err := MaximumFontSizeThatFits(e, "Some testing string", f, AlignCenter, geometry.Size{Width: 1, Height: 1}, MinFontSize, 400); err == nil {
		t.Error("expected an error for a 1x1 box")
	}
}

func TestMaximumFontSizeThatFits_HeightBound(t *testing.T) {
	m := &linearMeasurer{advance: 0.5, lineHeight: 1}
	got, err := MaximumFontSizeThatFits(m, "abcd", nil, AlignLeft, geometry.Size{Width: 1e6, Height: 37.6}, MinFontSize, 400)
	if err != nil {
		t.Fatal(err)
	}
	if got != 37 {
		t.Errorf("got %v, want 37", got)
	}
}

func TestMaximumFontSizeThatFits_EmptyText(t *testing.T) {
	m := &linearMeasurer{advance: 0.5, lineHeight: 1}
	got, err := MaximumFontSizeThatFits(m, "", nil, AlignLeft, geometry.Size{Width: 1, Height: 1}, MinFontSize, 123.5)
	if err != nil {
		t.Fatal(err)
	}
	if got != 123.5 {
		t.Errorf("got %v, want 123.5", got)
	}
	if m.calls != 0 {
		t.Errorf("empty text was measured %d times", m.calls)
	}
}

func TestMaximumFontSizeThatFits_FitError(t *testing.T) {
	m := &linearMeasurer{advance: 0.5, lineHeight: 1}
	_, err := MaximumFontSizeThatFits(m, "too long", nil, AlignLeft, geometry.Size{Width: 2, Height: 100}, MinFontSize, 100)

	var fe *failure.FitError
	if !errors.As(err, &fe) {
		t.Fatalf("got %v, want FitError", err)
	}
	if fe.Text != "too long" || fe.Width != 2 || fe.Height != 100 {
		t.Errorf("unexpected FitError fields: %+v", fe)
	}
}

func TestMaximumFontSizeThatFits_BadBounds(t *testing.T) {
	m := &linearMeasurer{advance: 0.5, lineHeight: 1}
	if _, err := MaximumFontSizeThatFits(m, "x", nil, AlignLeft, geometry.Size{Width: 10, Height: 10}, 20, 10); err == nil {
		t.Error("expected error for min > max")
	}

	got, err := MaximumFontSizeThatFits(m, "x", nil, AlignLeft, geometry.Size{Width: 10, Height: 10}, 5, 5)
	if err != nil {
		t.Fatal(err)
	}
	if got != 5 {
		t.Errorf("got %v, want 5", got)
	}
}

func TestMaximumFontSizeThatFits_Monotonic(t *testing.T) {
	m := &linearMeasurer{advance: 0.6, lineHeight: 1.3}
	prev := 0.0
	for w := 20.0; w <= 2000; w *= 1.5 {
		target := geometry.Size{Width: w, Height: w / 4}
		got, err := MaximumFontSizeThatFits(m, "monotonic", nil, AlignLeft, target, MinFontSize, 300)
		if err != nil {
			t.Fatalf("width %v: %v", w, err)
		}
		if got < prev {
			t.Fatalf("size decreased from %v to %v when target grew to %v", prev, got, target)
		}
		prev = got
	}
}

func TestMaximumFontSizeThatFits_ResultFits(t *testing.T) {
	reg := NewFontRegistry()
	f, err := reg.Default()
	if err != nil {
		t.Fatal(err)
	}
	e := NewEngine()

	texts := []string{
		"Track every workout",
		"Your money,\nyour rules",
		"Sync across all of your devices instantly",
	}
	target := geometry.Size{Width: 500, Height: 160}
	for _, text := range texts {
		size, err := MaximumFontSizeThatFits(e, text, f, AlignCenter, target, MinFontSize, 200)
		if err != nil {
			t.Fatalf("%q: %v", text, err)
		}
		got, err := e.Measure(text, f, size, AlignCenter, target.Width)
		if err != nil {
			t.Fatal(err)
		}
		if !got.Fits(target) {
			t.Errorf("%q at %v measures %v, larger than %v", text, size, got, target)
		}
		if size != math.Floor(size) {
			t.Errorf("%q: size %v is not whole", text, size)
		}
	}
}
