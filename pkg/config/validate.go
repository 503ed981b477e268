// validate.go - Structural checks run before any pixel work.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/xob0t/GoFrame/pkg/failure"
	"github.com/xob0t/GoFrame/pkg/imageio"
	"github.com/xob0t/GoFrame/pkg/layout"
	"github.com/xob0t/GoFrame/pkg/typeset"
)

// Validate checks a processed project for everything that can be known
// before rendering: geometry, group references, slicing, missing files,
// missing strings and inconsistent screenshot sizes. All problems found are
// returned together.
func Validate(p *Project) error {
	var errs []error
	add := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	if len(p.Devices) == 0 {
		add(errors.New("no device data supplied"))
	}
	if len(p.OutputPaths) == 0 {
		add(errors.New("no output paths specified"))
	}
	if p.MaxFontSize <= 0 {
		add(fmt.Errorf("maxFontSize must be positive, got %g", p.MaxFontSize))
	}

	seen := make(map[string]bool, len(p.Groups))
	for _, g := range p.Groups {
		if g.Identifier == "" {
			add(errors.New("text group without identifier"))
		}
		if seen[g.Identifier] {
			add(fmt.Errorf("text group %q defined twice", g.Identifier))
		}
		seen[g.Identifier] = true
		if g.MaxFontSize <= 0 {
			add(fmt.Errorf("text group %q: maxFontSize must be positive", g.Identifier))
		}
	}

	for _, d := range p.Devices {
		for _, err := range validateDevice(p, d) {
			add(fmt.Errorf("device %s: %w", d.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func validateDevice(p *Project, d *Device) []error {
	var errs []error
	add := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	if len(d.Suffixes) == 0 {
		add(errors.New("no output suffix"))
	}

	w := d.Template.Bounds().Dx()
	switch {
	case d.NumberOfSlices <= 0:
		add(&failure.SliceError{Reason: fmt.Sprintf("number of slices must be positive, got %d", d.NumberOfSlices)})
	case d.GapWidth < 0:
		add(&failure.SliceError{Reason: fmt.Sprintf("gap width must not be negative, got %d", d.GapWidth)})
	case d.SliceWidth <= 0 || d.NumberOfSlices*d.SliceWidth+(d.NumberOfSlices-1)*d.GapWidth != w:
		add(&failure.SliceError{Reason: fmt.Sprintf(
			"template width %d does not match %d slices of %d with gap %d", w, d.NumberOfSlices, d.SliceWidth, d.GapWidth)})
	}

	for _, pl := range d.Placements {
		add(pl.Validate())
	}
	for _, t := range d.Texts {
		if t.Identifier == "" {
			add(errors.New("text without identifier"))
		}
		if o := t.MaxFontSizeOverride; o != nil && *o < typeset.MinFontSize {
			add(fmt.Errorf("text %q: maxFontSizeOverride %g is below the minimum font size %g", t.Identifier, *o, typeset.MinFontSize))
		}
		add(t.Validate())
	}
	add(layout.ValidateGroupReferences(d.Texts, p.Groups))

	if len(d.Screenshots) == 0 {
		add(errors.New("no screenshot folders found"))
	}
	for _, locale := range d.Locales() {
		shots := d.Screenshots[locale]

		table, ok := p.Strings[locale]
		if !ok {
			add(&failure.ResourceError{Kind: "strings", Path: locale})
		}
		for _, t := range d.Texts {
			if _, found := table[t.Identifier]; ok && !found {
				add(fmt.Errorf("locale %s: no string with key %q", locale, t.Identifier))
			}
		}

		var first string
		var firstSize [2]int
		for _, pl := range d.Placements {
			path, found := shots[pl.ScreenshotName]
			if !found {
				add(&failure.ResourceError{Kind: "screenshot", Path: filepath.Join(locale, pl.ScreenshotName)})
				continue
			}
			cfg, err := imageio.DecodeConfig("screenshot", path)
			if err != nil {
				add(err)
				continue
			}
			size := [2]int{cfg.Width, cfg.Height}
			if first == "" {
				first, firstSize = pl.ScreenshotName, size
			} else if size != firstSize {
				add(fmt.Errorf("locale %s: screenshot %s is %dx%d but %s is %dx%d",
					locale, pl.ScreenshotName, size[0], size[1], first, firstSize[0], firstSize[1]))
			}
		}
	}
	return errs
}
