// Package scaffold creates the directory layout of a new project.
package scaffold

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"

	"github.com/xob0t/GoFrame/pkg/config"
)

// DefaultDevices get a screenshot folder per locale when Options.Devices is
// empty.
var DefaultDevices = []string{"iPhoneX", "iPadPro12.9"}

// Options controls what Create lays out.
type Options struct {
	Root          string   // project root, "" is the working directory
	Locales       []string // one strings file and screenshot folder each
	Devices       []string // nil uses DefaultDevices
	Lowercase     bool     // lowercase Strings, Screenshots and Templates
	NoHelperFiles bool     // skip config.json, strings files and READMEs
	Logger        *slog.Logger
}

// Result counts what Create made.
type Result struct {
	Directories int
	Files       int
}

// Create builds
//
//	<root>/Strings/<locale>.strings
//	<root>/Screenshots/<device>/<locale>/README.md
//	<root>/Templates/
//	<root>/config.json
//
// Existing directories are kept; existing files are overwritten.
func Create(opts Options) (Result, error) {
	if len(opts.Locales) == 0 {
		return Result{}, errors.New("scaffold: at least one locale is required")
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	devices := opts.Devices
	if len(devices) == 0 {
		devices = DefaultDevices
	}

	root := opts.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Result{}, err
		}
		root = wd
	}
	name := func(s string) string {
		if opts.Lowercase {
			return strings.ToLower(s)
		}
		return s
	}
	stringsDir := filepath.Join(root, name("Strings"))
	shotsDir := filepath.Join(root, name("Screenshots"))
	templatesDir := filepath.Join(root, name("Templates"))

	var res Result
	mkdir := func(dir string) error {
		log.Debug("create directory", "path", dir)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("scaffold: %w", err)
		}
		res.Directories++
		return nil
	}
	write := func(path, body string) error {
		if opts.NoHelperFiles {
			return nil
		}
		log.Debug("create file", "path", path)
		if err := renameio.WriteFile(path, []byte(body), 0o644); err != nil {
			return fmt.Errorf("scaffold: %w", err)
		}
		res.Files++
		return nil
	}

	for _, dir := range []string{root, stringsDir, shotsDir, templatesDir} {
		if err := mkdir(dir); err != nil {
			return res, err
		}
	}

	cfg, err := exampleConfig(devices[0], opts.Lowercase)
	if err != nil {
		return res, err
	}
	if err := write(filepath.Join(root, "config.json"), cfg); err != nil {
		return res, err
	}

	for _, locale := range opts.Locales {
		if err := write(filepath.Join(stringsDir, locale+".strings"), stringsFile); err != nil {
			return res, err
		}
		for _, device := range devices {
			dir := filepath.Join(shotsDir, device, locale)
			if err := mkdir(dir); err != nil {
				return res, err
			}
			if err := write(filepath.Join(dir, "README.md"), readme(device, locale)); err != nil {
				return res, err
			}
		}
	}
	return res, nil
}

const stringsFile = `/* One entry per textData identifier in config.json */
"home.title" = "Everything in one place";
"detail.title" = "Details that matter";
`

func readme(device, locale string) string {
	return fmt.Sprintf("# %s - %s\n\n"+
		"Place your screenshots for %s (%s) in this folder.\n"+
		"Screenshots that show the same screen must have the same file name in every locale.\n",
		device, locale, device, locale)
}

// exampleConfig returns config.Example pointed at the scaffold directories.
func exampleConfig(device string, lowercase bool) (string, error) {
	f := config.Example()
	if lowercase {
		f.StringsPath = strings.ToLower(f.StringsPath)
	}
	d := &f.DeviceData[0]
	d.OutputSuffixes = []string{device}
	d.Screenshots = filepath.ToSlash(filepath.Join("Screenshots", device))
	d.TemplateFile = filepath.ToSlash(filepath.Join("Templates", device+".png"))
	if lowercase {
		d.Screenshots = filepath.ToSlash(filepath.Join("screenshots", device))
		d.TemplateFile = filepath.ToSlash(filepath.Join("templates", device+".png"))
	}

	data, err := config.Encode(f, ".json")
	if err != nil {
		return "", fmt.Errorf("scaffold: encode config: %w", err)
	}
	return string(data), nil
}
