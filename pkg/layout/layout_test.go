package layout

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/xob0t/GoFrame/pkg/failure"
	"github.com/xob0t/GoFrame/pkg/geometry"
	"github.com/xob0t/GoFrame/pkg/typeset"
)

// charMeasurer treats every character as a square of the font size, on a
// single unwrapped line.
type charMeasurer struct{}

func (charMeasurer) Measure(text string, _ *typeset.Font, size float64, _ typeset.Alignment, _ float64) (geometry.Size, error) {
	return geometry.Size{Width: float64(len(text)) * size, Height: size}, nil
}

func block(id, group string, width, height int) TextBlock {
	return TextBlock{
		Identifier:  id,
		TopLeft:     geometry.Pt(0, height),
		BottomRight: geometry.Pt(width, 0),
		Group:       group,
	}
}

func ptr(v float64) *float64 { return &v }

func TestSharedFontSize_NoMembers(t *testing.T) {
	g := TextGroup{Identifier: "titles", MaxFontSize: 200}

	for _, tt := range []struct {
		globalMax float64
		want      float64
	}{
		{300, 200},
		{150, 150},
		{200, 200},
	} {
		got, err := SharedFontSize(charMeasurer{}, g, nil, nil, tt.globalMax)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("globalMax %v: got %v, want %v", tt.globalMax, got, tt.want)
		}
	}
}

func TestSharedFontSize_SmallestMemberWins(t *testing.T) {
	g := TextGroup{Identifier: "titles", MaxFontSize: 100}
	members := []Member{
		{Text: "ab", Block: block("a", "titles", 200, 500)},   // fits 100
		{Text: "abcd", Block: block("b", "titles", 210, 500)}, // fits 52.5
		{Text: "abcdefghij", Block: block("c", "", 100, 500)}, // not in group
	}

	got, err := SharedFontSize(charMeasurer{}, g, members, nil, 400)
	if err != nil {
		t.Fatal(err)
	}
	if got != 52 {
		t.Errorf("got %v, want 52", got)
	}
}

func TestSharedFontSize_Override(t *testing.T) {
	g := TextGroup{Identifier: "titles", MaxFontSize: 100}

	low := block("a", "titles", 1000, 1000)
	low.MaxFontSizeOverride = ptr(30)
	high := block("b", "titles", 1000, 1000)
	high.MaxFontSizeOverride = ptr(500)

	got, err := SharedFontSize(charMeasurer{}, g, []Member{{Text: "x", Block: low}}, nil, 400)
	if err != nil {
		t.Fatal(err)
	}
	if got != 30 {
		t.Errorf("override below group max: got %v, want 30", got)
	}

	got, err = SharedFontSize(charMeasurer{}, g, []Member{{Text: "x", Block: high}}, nil, 400)
	if err != nil {
		t.Fatal(err)
	}
	if got != 100 {
		t.Errorf("override above group max: got %v, want 100", got)
	}
}

func TestSharedFontSize_Bound(t *testing.T) {
	m := charMeasurer{}
	texts := []string{"a", "hello", "a much longer title", "mid size"}

	for _, groupMax := range []float64{20, 80, 300} {
		for _, globalMax := range []float64{50, 500} {
			g := TextGroup{Identifier: "g", MaxFontSize: groupMax}
			var members []Member
			for i, text := range texts {
				members = append(members, Member{Text: text, Block: block(text, "g", 401+i*2, 1000)})
			}

			shared, err := SharedFontSize(m, g, members, nil, globalMax)
			if err != nil {
				t.Fatal(err)
			}
			if shared > min(globalMax, groupMax) {
				t.Errorf("shared %v exceeds min(%v, %v)", shared, globalMax, groupMax)
			}
			for _, mem := range members {
				own, err := typeset.MaximumFontSizeThatFits(m, mem.Text, nil, mem.Block.Alignment, mem.Block.Rect().Size(), typeset.MinFontSize, 1000)
				if err != nil {
					t.Fatal(err)
				}
				if shared > own {
					t.Errorf("shared %v exceeds %q's own maximum %v", shared, mem.Text, own)
				}
			}
		}
	}
}

func TestSharedFontSize_PropagatesFitError(t *testing.T) {
	g := TextGroup{Identifier: "titles", MaxFontSize: 100}
	members := []Member{
		{Text: "ok", Block: block("a", "titles", 200, 200)},
		{Text: "does not fit", Block: block("b", "titles", 2, 2)},
	}

	_, err := SharedFontSize(charMeasurer{}, g, members, nil, 400)
	var fe *failure.FitError
	if !errors.As(err, &fe) {
		t.Fatalf("got %v, want FitError", err)
	}
}

func TestResolveFontSizes(t *testing.T) {
	groups := []TextGroup{{Identifier: "titles", MaxFontSize: 80}}

	solo := block("solo", "", 75, 1000)
	capped := block("capped", "", 1000, 1000)
	capped.MaxFontSizeOverride = ptr(12)

	members := []Member{
		{Text: "abcd", Block: block("t1", "titles", 400, 1000)},     // 100, capped by the group at 80
		{Text: "ab", Block: solo},                                   // 37.5
		{Text: "abcdefgh", Block: block("t2", "titles", 420, 1000)}, // 52.5
		{Text: "a", Block: capped},                                  // 12
	}

	got, err := ResolveFontSizes(charMeasurer{}, members, groups, nil, 300)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{52, 37, 52, 12}, got); diff != "" {
		t.Errorf("sizes mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveFontSizes_UnknownGroup(t *testing.T) {
	members := []Member{{Text: "x", Block: block("t", "missing", 100, 100)}}

	_, err := ResolveFontSizes(charMeasurer{}, members, nil, nil, 100)
	var ge *failure.GroupReferenceError
	if !errors.As(err, &ge) {
		t.Fatalf("got %v, want GroupReferenceError", err)
	}
	if ge.Group != "missing" || ge.Text != "t" {
		t.Errorf("unexpected error fields: %+v", ge)
	}
}

func TestTextBlockValidate(t *testing.T) {
	tests := []struct {
		name string
		tl   geometry.Point
		br   geometry.Point
		ok   bool
	}{
		{"valid", geometry.Pt(10, 100), geometry.Pt(200, 20), true},
		{"x equal", geometry.Pt(10, 100), geometry.Pt(10, 20), false},
		{"x reversed", geometry.Pt(300, 100), geometry.Pt(200, 20), false},
		{"y equal", geometry.Pt(10, 20), geometry.Pt(200, 20), false},
		{"y reversed", geometry.Pt(10, 10), geometry.Pt(200, 20), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TextBlock{Identifier: "title", TopLeft: tt.tl, BottomRight: tt.br}.Validate()
			if tt.ok {
				if err != nil {
					t.Errorf("unexpected error %v", err)
				}
				return
			}
			var ge *failure.GeometryError
			if !errors.As(err, &ge) {
				t.Errorf("got %v, want GeometryError", err)
			}
		})
	}
}

func TestTextBlockFlipped(t *testing.T) {
	b := TextBlock{Identifier: "t", TopLeft: geometry.Pt(10, 20), BottomRight: geometry.Pt(90, 80)}
	f := b.Flipped(100)
	if f.TopLeft != geometry.Pt(10, 80) || f.BottomRight != geometry.Pt(90, 20) {
		t.Errorf("unexpected flip: %+v", f)
	}
	if err := f.Validate(); err != nil {
		t.Errorf("flipped block invalid: %v", err)
	}
	if f.Flipped(100) != b {
		t.Errorf("double flip changed block: %+v", f.Flipped(100))
	}
}

func TestPlacementRoundTrip(t *testing.T) {
	p := Placement{
		ScreenshotName: "home.png",
		Quad: geometry.Quad{
			BottomLeft:  geometry.Pt(10, 200),
			BottomRight: geometry.Pt(40, 200),
			TopLeft:     geometry.Pt(10, 10),
			TopRight:    geometry.Pt(40, 10),
		},
		ZIndex: 2,
	}
	if diff := cmp.Diff(p, p.Flipped(210).Flipped(210)); diff != "" {
		t.Errorf("double flip changed placement (-want +got):\n%s", diff)
	}
}

func TestSortPlacementsStable(t *testing.T) {
	ps := []Placement{
		{ScreenshotName: "a", ZIndex: 1},
		{ScreenshotName: "b", ZIndex: 0},
		{ScreenshotName: "c", ZIndex: 1},
		{ScreenshotName: "d", ZIndex: -1},
		{ScreenshotName: "e", ZIndex: 0},
	}
	SortPlacements(ps)

	var names []string
	for _, p := range ps {
		names = append(names, p.ScreenshotName)
	}
	if diff := cmp.Diff([]string{"d", "b", "e", "a", "c"}, names); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}
