// process.go - Resolve a configuration file into render-ready descriptors.
package config

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/xob0t/GoFrame/pkg/colorspec"
	"github.com/xob0t/GoFrame/pkg/failure"
	"github.com/xob0t/GoFrame/pkg/geometry"
	"github.com/xob0t/GoFrame/pkg/imageio"
	"github.com/xob0t/GoFrame/pkg/layout"
	"github.com/xob0t/GoFrame/pkg/perspective"
	"github.com/xob0t/GoFrame/pkg/slicer"
	"github.com/xob0t/GoFrame/pkg/typeset"
)

// screenshotExtensions are the file types picked up from screenshot folders.
var screenshotExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

// Project is a fully resolved configuration. All coordinates are in
// bottom-left origin space. A Project is read-only once built.
type Project struct {
	MaxFontSize      float64
	Font             *typeset.Font
	TextColor        color.Color
	Format           imageio.Format
	OutputPaths      []string
	ClearDirectories bool
	OutputWholeImage bool
	Groups           []layout.TextGroup
	Strings          Strings
	Devices          []*Device
}

// Device is the resolved form of one deviceData entry.
type Device struct {
	Suffixes       []string
	TemplatePath   string
	Template       image.Image
	Background     *colorspec.Background
	TemplateOnTop  bool
	NumberOfSlices int
	GapWidth       int
	SliceWidth     int
	Placements     []layout.Placement // sorted by z-index
	Texts          []layout.TextBlock

	// Screenshots maps locale to screenshot file name to path.
	Screenshots map[string]map[string]string
}

// Name identifies the device in messages.
func (d *Device) Name() string {
	return strings.Join(d.Suffixes, ", ")
}

// Locales returns the locales the device has screenshots for, sorted.
func (d *Device) Locales() []string {
	out := make([]string, 0, len(d.Screenshots))
	for l := range d.Screenshots {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Options supplies the collaborators Process needs.
type Options struct {
	Fonts    *typeset.FontRegistry        // nil creates a fresh registry
	Viewport perspective.ViewportComputer // nil uses a PixelScanner
}

// Process resolves f: it compiles the locale filter, loads fonts, colors,
// strings and templates, scans screenshot folders and converts top-left
// coordinates to bottom-left ones. This is the only place coordinates are
// converted. Warnings report oddities that do not stop a run.
func Process(f *File, opts Options) (*Project, []string, error) {
	if opts.Fonts == nil {
		opts.Fonts = typeset.NewFontRegistry()
	}

	var filter *regexp.Regexp
	if f.Locales != "" {
		re, err := regexp.Compile(f.Locales)
		if err != nil {
			return nil, nil, fmt.Errorf("locales: %w", err)
		}
		filter = re
	}

	font, err := opts.Fonts.Register(f.FontFile)
	if err != nil {
		return nil, nil, err
	}
	textColor, err := colorspec.Parse(f.TextColor)
	if err != nil {
		return nil, nil, fmt.Errorf("textColor: %w", err)
	}
	format, err := imageio.ParseFormat(f.Format)
	if err != nil {
		return nil, nil, err
	}

	p := &Project{
		MaxFontSize:      f.MaxFontSize,
		Font:             font,
		TextColor:        textColor,
		Format:           format,
		OutputPaths:      f.OutputPaths,
		ClearDirectories: f.ClearDirectories,
		OutputWholeImage: f.OutputWholeImage,
	}
	for _, g := range f.TextGroups {
		p.Groups = append(p.Groups, layout.TextGroup{Identifier: g.Identifier, MaxFontSize: g.MaxFontSize})
	}

	if f.StringsPath == "" {
		return nil, nil, fmt.Errorf("stringsPath is not set")
	}
	p.Strings, err = LoadStrings(f.StringsPath, filter)
	if err != nil {
		return nil, nil, err
	}

	var warnings []string
	for i := range f.DeviceData {
		d, w, err := processDevice(&f.DeviceData[i], filter, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("device %d: %w", i+1, err)
		}
		warnings = append(warnings, w...)
		p.Devices = append(p.Devices, d)
	}

	for _, locale := range p.Strings.Locales() {
		used := false
		for _, d := range p.Devices {
			if _, ok := d.Screenshots[locale]; ok {
				used = true
			}
		}
		if !used {
			warnings = append(warnings, fmt.Sprintf("strings for locale %q are not used by any device", locale))
		}
	}

	return p, append(warnings, markupWarnings(p)...), nil
}

// markupWarnings reports bold or italic markup that falls back to the
// regular face because the font has no such member.
func markupWarnings(p *Project) []string {
	var warnings []string
	seen := make(map[string]bool)
	for _, d := range p.Devices {
		for _, t := range d.Texts {
			font := t.Font
			if font == nil {
				font = p.Font
			}
			for _, locale := range p.Strings.Locales() {
				for _, style := range font.MissingStyles(p.Strings[locale][t.Identifier]) {
					w := fmt.Sprintf("font %s has no %s face, %s text is drawn in the regular face", font.Name, style, style)
					if !seen[w] {
						seen[w] = true
						warnings = append(warnings, w)
					}
				}
			}
		}
	}
	return warnings
}

func processDevice(dd *DeviceData, filter *regexp.Regexp, opts Options) (*Device, []string, error) {
	if dd.TemplateFile == "" {
		return nil, nil, fmt.Errorf("templateFile is not set")
	}
	tpl, err := imageio.Load("template", dd.TemplateFile)
	if err != nil {
		return nil, nil, err
	}
	w, h := tpl.Bounds().Dx(), tpl.Bounds().Dy()

	d := &Device{
		Suffixes:       dd.OutputSuffixes,
		TemplatePath:   dd.TemplateFile,
		Template:       tpl,
		TemplateOnTop:  dd.TemplateOnTop,
		NumberOfSlices: dd.NumberOfSlices,
		GapWidth:       dd.GapWidth,
		SliceWidth:     dd.SliceWidth,
	}

	if dd.Background != "" {
		bg, err := colorspec.ParseBackground(dd.Background)
		if err != nil {
			return nil, nil, err
		}
		d.Background = &bg
	}

	if d.SliceWidth == 0 {
		d.SliceWidth, err = slicer.SliceWidth(w, dd.NumberOfSlices, dd.GapWidth)
		if err != nil {
			return nil, nil, err
		}
	}

	var viewport *geometry.Rect
	for _, sd := range dd.ScreenshotData {
		pl := layout.Placement{
			ScreenshotName: sd.ScreenshotName,
			ZIndex:         sd.ZIndex,
			Quad: geometry.Quad{
				BottomLeft:  sd.BottomLeft,
				BottomRight: sd.BottomRight,
				TopLeft:     sd.TopLeft,
				TopRight:    sd.TopRight,
			},
		}
		switch {
		case sd.Viewport:
			if viewport == nil {
				vc := opts.Viewport
				if vc == nil {
					vc = perspective.PixelScanner{HasNotch: dd.HasNotch}
				}
				r, ok := vc.ComputeRect(tpl)
				if !ok {
					return nil, nil, &failure.GeometryError{
						Subject: fmt.Sprintf("screenshot %q", sd.ScreenshotName),
						Reason:  "no viewport found in template " + filepath.Base(dd.TemplateFile),
					}
				}
				viewport = &r
			}
			pl.Quad = geometry.QuadFromRect(*viewport)
		case dd.CoordinatesOriginIsTopLeft:
			pl = pl.Flipped(h)
		}
		d.Placements = append(d.Placements, pl)
	}
	layout.SortPlacements(d.Placements)

	for _, td := range dd.TextData {
		b, err := textBlock(td, opts.Fonts)
		if err != nil {
			return nil, nil, err
		}
		if dd.CoordinatesOriginIsTopLeft {
			b = b.Flipped(h)
		}
		d.Texts = append(d.Texts, b)
	}

	var warnings []string
	d.Screenshots, warnings, err = scanScreenshots(dd.Screenshots, filter)
	if err != nil {
		return nil, nil, err
	}
	return d, warnings, nil
}

func textBlock(td TextData, fonts *typeset.FontRegistry) (layout.TextBlock, error) {
	align, err := typeset.ParseAlignment(td.TextAlignment)
	if err != nil {
		return layout.TextBlock{}, fmt.Errorf("text %q: %w", td.Identifier, err)
	}
	valign, err := typeset.ParseVerticalAlignment(td.VerticalAlignment)
	if err != nil {
		return layout.TextBlock{}, fmt.Errorf("text %q: %w", td.Identifier, err)
	}

	b := layout.TextBlock{
		Identifier:          td.Identifier,
		TopLeft:             td.TopLeft,
		BottomRight:         td.BottomRight,
		Alignment:           align,
		VerticalAlignment:   valign,
		MaxFontSizeOverride: td.MaxFontSizeOverride,
		Group:               td.GroupIdentifier,
	}
	if td.CustomFontPath != "" {
		if b.Font, err = fonts.Register(td.CustomFontPath); err != nil {
			return layout.TextBlock{}, err
		}
	}
	if td.TextColorOverride != "" {
		c, err := colorspec.Parse(td.TextColorOverride)
		if err != nil {
			return layout.TextBlock{}, fmt.Errorf("text %q: textColorOverride: %w", td.Identifier, err)
		}
		b.Color = c
	}
	return b, nil
}

// scanScreenshots lists dir/<locale>/<file> for every locale folder that
// matches filter.
func scanScreenshots(dir string, filter *regexp.Regexp) (map[string]map[string]string, []string, error) {
	if dir == "" {
		return nil, nil, fmt.Errorf("screenshots directory is not set")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, &failure.ResourceError{Kind: "screenshots directory", Path: dir}
		}
		return nil, nil, &failure.ResourceError{Kind: "screenshots directory", Path: dir, Err: err}
	}

	out := make(map[string]map[string]string)
	var warnings []string
	for _, e := range entries {
		locale := e.Name()
		if !e.IsDir() || strings.HasPrefix(locale, ".") {
			continue
		}
		if filter != nil && !filter.MatchString(locale) {
			continue
		}

		files, err := os.ReadDir(filepath.Join(dir, locale))
		if err != nil {
			return nil, nil, &failure.ResourceError{Kind: "screenshots directory", Path: filepath.Join(dir, locale), Err: err}
		}
		shots := make(map[string]string)
		for _, f := range files {
			name := f.Name()
			if f.IsDir() || strings.HasPrefix(name, ".") || !screenshotExtensions[strings.ToLower(filepath.Ext(name))] {
				continue
			}
			shots[name] = filepath.Join(dir, locale, name)
		}
		if len(shots) == 0 {
			warnings = append(warnings, fmt.Sprintf("screenshot folder %s is empty", filepath.Join(dir, locale)))
		}
		out[locale] = shots
	}
	return out, warnings, nil
}
