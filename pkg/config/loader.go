// loader.go - Read a configuration file and apply defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads the configuration at path. Files ending in .yaml or .yml are
// decoded as YAML, everything else as JSON. Relative paths inside the file
// are resolved against the file's directory.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	f, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	resolvePaths(f, filepath.Dir(abs))
	return f, nil
}

// Parse decodes configuration data and applies defaults. ext selects the
// format the way a file extension would. Paths are left as written.
func Parse(data []byte, ext string) (*File, error) {
	var f File
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, err
		}
	}
	applyDefaults(&f)
	return &f, nil
}

// resolvePaths makes all relative paths absolute using baseDir.
func resolvePaths(f *File, baseDir string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(baseDir, p)
	}

	f.StringsPath = resolve(f.StringsPath)
	f.FontFile = resolve(f.FontFile)
	for i := range f.OutputPaths {
		f.OutputPaths[i] = resolve(f.OutputPaths[i])
	}

	for i := range f.DeviceData {
		d := &f.DeviceData[i]
		d.Screenshots = resolve(d.Screenshots)
		d.TemplateFile = resolve(d.TemplateFile)
		for j := range d.TextData {
			d.TextData[j].CustomFontPath = resolve(d.TextData[j].CustomFontPath)
		}
	}
}

// applyDefaults fills in fallbacks for optional fields.
func applyDefaults(f *File) {
	if f.TextColor == "" {
		f.TextColor = "#ffffff"
	}
	if f.Format == "" {
		f.Format = "png"
	}

	for i := range f.DeviceData {
		d := &f.DeviceData[i]
		if len(d.OutputSuffixes) == 0 && d.OutputSuffix != "" {
			d.OutputSuffixes = []string{d.OutputSuffix}
		}
		for j := range d.TextData {
			t := &d.TextData[j]
			if t.Identifier == "" {
				t.Identifier = t.TitleIdentifier
			}
			if t.TextAlignment == "" {
				t.TextAlignment = "center"
			}
			if t.VerticalAlignment == "" {
				t.VerticalAlignment = "top"
			}
		}
	}
}
