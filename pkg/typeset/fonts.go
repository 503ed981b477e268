// fonts.go - Font registry with custom TTF/OTF/TTC support and embedded fallback font.
// Uses golang.org/x/image/font/opentype for parsing. Fonts are registered once per
// absolute path; the embedded Go font family is used when no path is given.
package typeset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/xob0t/GoFrame/pkg/failure"
)

// Font is a parsed font ready to produce faces at any size. Bold and italic
// markup uses the matching members of the family when the font file
// provides them and the regular face otherwise.
type Font struct {
	Name    string
	Path    string // absolute path, empty for the embedded font
	parsed  *opentype.Font
	members [4]*opentype.Font // indexed by variant
}

func (f *Font) member(v variant) *opentype.Font {
	if m := f.members[v]; m != nil {
		return m
	}
	return f.parsed
}

// MissingStyles lists the styles that markup in text asks for and f has no
// member for, e.g. "bold". Those runs are drawn with the regular face.
func (f *Font) MissingStyles(text string) []string {
	var seen [4]bool
	var missing []string
	for _, s := range parseMarkup(text) {
		if s.v == variantRegular || seen[s.v] || strings.TrimSpace(s.text) == "" {
			continue
		}
		seen[s.v] = true
		if f.members[s.v] == nil {
			missing = append(missing, s.v.String())
		}
	}
	return missing
}

// FontRegistry maps absolute font paths to parsed fonts. A font registered
// twice by the same path is parsed only once. A registry lives for one run.
type FontRegistry struct {
	mu       sync.Mutex
	fonts    map[string]*Font
	fallback *Font
}

// NewFontRegistry creates an empty registry.
func NewFontRegistry() *FontRegistry {
	return &FontRegistry{fonts: make(map[string]*Font)}
}

var embedded = [4][]byte{
	variantRegular:    goregular.TTF,
	variantBold:       gobold.TTF,
	variantItalic:     goitalic.TTF,
	variantBoldItalic: gobolditalic.TTF,
}

// Default returns the embedded Go font family.
func (r *FontRegistry) Default() (*Font, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fallback != nil {
		return r.fallback, nil
	}
	f := &Font{}
	for v, data := range embedded {
		parsed, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse embedded font: %w", err)
		}
		f.members[v] = parsed
	}
	f.parsed = f.members[variantRegular]
	f.Name = fontName(f.parsed)
	r.fallback = f
	return f, nil
}

// Register returns the font stored at path, parsing it on first use.
// An empty path yields the embedded default font.
func (r *FontRegistry) Register(path string) (*Font, error) {
	if path == "" {
		return r.Default()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &failure.ResourceError{Kind: "font", Path: path, Err: err}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.fonts[abs]; ok {
		return f, nil
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &failure.ResourceError{Kind: "font", Path: abs}
		}
		return nil, &failure.ResourceError{Kind: "font", Path: abs, Err: err}
	}

	f, err := parseFontData(data)
	if err != nil {
		return nil, &failure.ResourceError{Kind: "font", Path: abs, Err: err}
	}

	f.Name = fontName(f.parsed)
	f.Path = abs
	r.fonts[abs] = f
	return f, nil
}

// Len returns the number of fonts registered from disk.
func (r *FontRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.fonts)
}

// parseFontData parses a single font or, for collections, picks the
// "Regular" member as the base face so bold or italic faces are not chosen
// by accident. The bold and italic members of a collection back markup.
func parseFontData(data []byte) (*Font, error) {
	if f, err := opentype.Parse(data); err == nil {
		return &Font{parsed: f}, nil
	}

	coll, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	if coll.NumFonts() == 0 {
		return nil, errors.New("parse font: empty collection")
	}

	font := &Font{}
	var buf sfnt.Buffer
	for i := 0; i < coll.NumFonts(); i++ {
		f, err := coll.Font(i)
		if err != nil {
			continue
		}
		sub, err := f.Name(&buf, sfnt.NameIDSubfamily)
		if err != nil {
			continue
		}
		if v, ok := subfamilies[strings.ToLower(sub)]; ok && font.members[v] == nil {
			font.members[v] = f
		}
	}
	font.parsed = font.members[variantRegular]
	if font.parsed == nil {
		if font.parsed, err = coll.Font(0); err != nil {
			return nil, fmt.Errorf("parse font: %w", err)
		}
	}
	return font, nil
}

var subfamilies = map[string]variant{
	"regular":      variantRegular,
	"bold":         variantBold,
	"italic":       variantItalic,
	"oblique":      variantItalic,
	"bold italic":  variantBoldItalic,
	"bold oblique": variantBoldItalic,
}

func fontName(f *opentype.Font) string {
	var buf sfnt.Buffer
	if name, err := f.Name(&buf, sfnt.NameIDFull); err == nil && name != "" {
		return name
	}
	if name, err := f.Name(&buf, sfnt.NameIDFamily); err == nil {
		return name
	}
	return "unknown"
}
