// engine.go - Text layout engine shared by measurement and drawing.
// Wraps words greedily to the box width using the face metrics, so the size the
// fitter measures is exactly the size that ends up on the canvas. Bold and
// italic runs are measured and drawn with their own faces.
package typeset

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/xob0t/GoFrame/pkg/geometry"
)

const maxCachedFaces = 256

// Measurer reports the size needed to render text at a given font size when
// lines are wrapped at maxWidth.
type Measurer interface {
	Measure(text string, f *Font, size float64, align Alignment, maxWidth float64) (geometry.Size, error)
}

// Style describes how a block of text is drawn.
type Style struct {
	Font      *Font
	Size      float64
	Color     color.Color
	Alignment Alignment
	Vertical  VerticalAlignment
}

// Engine lays out, measures and draws text. Faces are not safe for concurrent
// use and are cached, so every call is serialized through one lock. A single
// Engine is shared by all render passes of a run.
type Engine struct {
	mu    sync.Mutex
	dpi   float64
	faces map[faceKey]font.Face
}

type faceKey struct {
	font *opentype.Font
	size float64
}

// faceSet holds one face per variant. Unused variants are nil.
type faceSet [4]font.Face

func (fs faceSet) get(v variant) font.Face {
	if f := fs[v]; f != nil {
		return f
	}
	return fs[variantRegular]
}

// NewEngine creates an engine rendering at 72 DPI, so font sizes are pixels.
func NewEngine() *Engine {
	return &Engine{
		dpi:   72,
		faces: make(map[faceKey]font.Face),
	}
}

// Measure implements Measurer.
func (e *Engine) Measure(text string, f *Font, size float64, align Alignment, maxWidth float64) (geometry.Size, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	spans := parseMarkup(text)
	faces, err := e.faceSet(f, size, spans)
	if err != nil {
		return geometry.Size{}, err
	}
	tl := layoutText(faces, spans, maxWidth)
	return geometry.Size{
		Width:  fixedToFloat(tl.width),
		Height: fixedToFloat(tl.height()),
	}, nil
}

// Draw renders text into r of dst. Lines wrap at the width of r.
func (e *Engine) Draw(dst draw.Image, r image.Rectangle, text string, style Style) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	spans := parseMarkup(text)
	faces, err := e.faceSet(style.Font, style.Size, spans)
	if err != nil {
		return err
	}

	col := style.Color
	if col == nil {
		col = color.White
	}
	drawer := &font.Drawer{
		Dst: dst,
		Src: image.NewUniform(col),
	}

	tl := layoutText(faces, spans, float64(r.Dx()))
	boxW := fixed.I(r.Dx())
	boxH := fixed.I(r.Dy())

	top := fixed.I(r.Min.Y)
	switch style.Vertical {
	case AlignMiddle:
		top += (boxH - tl.height()) / 2
	case AlignBottom:
		top += boxH - tl.height()
	}

	space := font.MeasureString(faces.get(variantRegular), " ")
	for i, ln := range tl.lines {
		baseline := top + fixed.Int26_6(i)*tl.lineHeight + tl.ascent
		x := fixed.I(r.Min.X)

		switch style.Alignment {
		case AlignRight:
			x += boxW - ln.width
		case AlignCenter:
			x += (boxW - ln.width) / 2
		case AlignJustify:
			if !ln.last && len(ln.words) > 1 {
				extra := (boxW - ln.width) / fixed.Int26_6(len(ln.words)-1)
				for _, w := range ln.words {
					x = drawSpans(drawer, faces, w, x, baseline) + space + extra
				}
				continue
			}
		}

		drawSpans(drawer, faces, ln.runs, x, baseline)
	}
	return nil
}

// drawSpans draws spans left to right from x and returns the end position.
func drawSpans(d *font.Drawer, faces faceSet, spans []span, x, baseline fixed.Int26_6) fixed.Int26_6 {
	for _, s := range spans {
		d.Face = faces.get(s.v)
		d.Dot = fixed.Point26_6{X: x, Y: baseline}
		d.DrawString(s.text)
		x += font.MeasureString(d.Face, s.text)
	}
	return x
}

// faceSet returns the regular face of f at size plus a face for every other
// variant used by spans. Callers hold e.mu.
func (e *Engine) faceSet(f *Font, size float64, spans []span) (faceSet, error) {
	var fs faceSet
	if f == nil || f.parsed == nil {
		return fs, errors.New("typeset: no font")
	}
	if size <= 0 || math.IsNaN(size) || math.IsInf(size, 0) {
		return fs, fmt.Errorf("typeset: invalid font size %g", size)
	}

	var err error
	if fs[variantRegular], err = e.face(f.parsed, size); err != nil {
		return fs, err
	}
	for _, s := range spans {
		if fs[s.v] != nil {
			continue
		}
		if fs[s.v], err = e.face(f.member(s.v), size); err != nil {
			return fs, err
		}
	}
	return fs, nil
}

// face returns a cached face. Callers hold e.mu.
func (e *Engine) face(f *opentype.Font, size float64) (font.Face, error) {
	key := faceKey{font: f, size: size}
	if face, ok := e.faces[key]; ok {
		return face, nil
	}
	if len(e.faces) >= maxCachedFaces {
		for k, face := range e.faces {
			face.Close()
			delete(e.faces, k)
		}
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     e.dpi,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	e.faces[key] = face
	return face, nil
}

// ── Layout ──

type line struct {
	words [][]span
	runs  []span // words joined into runs of one variant
	width fixed.Int26_6
	last  bool // last line of its paragraph
}

func newLine(faces faceSet, words [][]span) line {
	ln := line{words: words, runs: joinWords(words)}
	for _, r := range ln.runs {
		ln.width += font.MeasureString(faces.get(r.v), r.text)
	}
	return ln
}

type textLayout struct {
	lines      []line
	width      fixed.Int26_6
	lineHeight fixed.Int26_6
	ascent     fixed.Int26_6
}

func (tl textLayout) height() fixed.Int26_6 {
	return fixed.Int26_6(len(tl.lines)) * tl.lineHeight
}

// layoutText splits text into paragraphs on newlines and wraps every
// paragraph to maxWidth. A single word wider than maxWidth keeps its own
// line. Line metrics come from the regular face.
func layoutText(faces faceSet, spans []span, maxWidth float64) textLayout {
	m := faces.get(variantRegular).Metrics()
	tl := textLayout{lineHeight: m.Height, ascent: m.Ascent}
	if tl.lineHeight <= 0 {
		tl.lineHeight = m.Ascent + m.Descent
	}

	limit := floatToFixed(maxWidth)
	for _, para := range paragraphs(spans) {
		lines := wrapParagraph(faces, para, limit)
		lines[len(lines)-1].last = true
		for _, ln := range lines {
			tl.width = max(tl.width, ln.width)
		}
		tl.lines = append(tl.lines, lines...)
	}
	return tl
}

func wrapParagraph(faces faceSet, words [][]span, limit fixed.Int26_6) []line {
	if len(words) == 0 {
		return []line{{}}
	}

	var lines []line
	current := newLine(faces, words[:1:1])
	for _, word := range words[1:] {
		n := len(current.words)
		candidate := newLine(faces, append(current.words[:n:n], word))
		if candidate.width > limit {
			lines = append(lines, current)
			current = newLine(faces, [][]span{word})
			continue
		}
		current = candidate
	}
	return append(lines, current)
}

func floatToFixed(v float64) fixed.Int26_6 {
	if v*64 >= math.MaxInt32 {
		return fixed.Int26_6(math.MaxInt32)
	}
	if v <= 0 {
		return 0
	}
	return fixed.Int26_6(v * 64)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
