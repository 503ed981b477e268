// GoFrame - App store screenshot compositor.
//
// Usage:
//
//	goframe render [--verbose] <config>
//	goframe validate <config>
//	goframe scaffold [--path <dir>] [--lowercase] [--no-helper-files] <locale>...
//	goframe init [--config <path>]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/google/renameio/v2"

	"github.com/xob0t/GoFrame/pkg/config"
	"github.com/xob0t/GoFrame/pkg/render"
	"github.com/xob0t/GoFrame/pkg/scaffold"
	"github.com/xob0t/GoFrame/pkg/typeset"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "render":
		err = runRender(os.Args[2:])
	case "validate":
		err = runValidate(os.Args[2:])
	case "scaffold":
		err = runScaffold(os.Args[2:])
	case "init":
		err = runInit(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		// A bare config path renders it.
		err = runRender(os.Args[1:])
	}
	if err != nil {
		fatal(err)
	}
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// load reads, processes and validates a config file.
func load(path string, log *slog.Logger) (*config.Project, error) {
	f, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	p, warnings, err := config.Process(f, config.Options{Fonts: typeset.NewFontRegistry()})
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		log.Warn(w)
	}
	if err := config.Validate(p); err != nil {
		return nil, fmt.Errorf("invalid configuration:\n%w", err)
	}
	return p, nil
}

func configArg(fs *flag.FlagSet) (string, error) {
	if fs.NArg() != 1 {
		return "", fmt.Errorf("expected exactly one config file, got %d arguments", fs.NArg())
	}
	return fs.Arg(0), nil
}

func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	var verbose bool
	fs.BoolVar(&verbose, "v", false, "Log every rendered locale")
	fs.BoolVar(&verbose, "verbose", false, "Log every rendered locale")
	fs.Usage = printUsage
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := configArg(fs)
	if err != nil {
		return err
	}

	log := newLogger(verbose)
	start := time.Now()
	p, err := load(path, log)
	if err != nil {
		return err
	}
	log.Debug("configuration loaded", "devices", len(p.Devices), "locales", len(p.Strings), "elapsed", time.Since(start))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pl := &render.Pipeline{Project: p, Engine: typeset.NewEngine(), Logger: log}
	sum, err := pl.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Done: %d images for %d device locales in %s\n", sum.Files, sum.Passes, time.Since(start).Round(time.Millisecond))
	return nil
}

func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	fs.Usage = printUsage
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := configArg(fs)
	if err != nil {
		return err
	}

	if _, err := load(path, newLogger(false)); err != nil {
		return err
	}
	fmt.Printf("%s is valid\n", path)
	return nil
}

func runScaffold(args []string) error {
	fs := flag.NewFlagSet("scaffold", flag.ExitOnError)
	var (
		root          string
		lowercase     bool
		noHelperFiles bool
		verbose       bool
	)
	fs.StringVar(&root, "path", "", "Directory to create the project in (default: current directory)")
	fs.BoolVar(&lowercase, "lowercase", false, "Use lowercase directory names")
	fs.BoolVar(&noHelperFiles, "no-helper-files", false, "Create directories only")
	fs.BoolVar(&verbose, "verbose", false, "Log every created path")
	fs.Usage = printUsage
	if err := fs.Parse(args); err != nil {
		return err
	}

	res, err := scaffold.Create(scaffold.Options{
		Root:          root,
		Locales:       fs.Args(),
		Lowercase:     lowercase,
		NoHelperFiles: noHelperFiles,
		Logger:        newLogger(verbose),
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created %d directories and %d files\n", res.Directories, res.Files)
	return nil
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	var out string
	fs.StringVar(&out, "config", "config.json", "Output path for the sample config (.json, .yaml or .yml)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	data, err := config.Encode(config.Example(), filepath.Ext(out))
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := renameio.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Printf("Created: %s\n", out)
	fmt.Printf("Run: goframe validate %s\n", out)
	return nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Print(`GoFrame - App Store Screenshot Compositor

USAGE:
    goframe [render] [--verbose] <config>
    goframe validate <config>
    goframe scaffold [options] <locale>...
    goframe init [--config <path>]

RENDER:
    -v, --verbose          Log every rendered device and locale

SCAFFOLD:
    --path <dir>           Project root (default: current directory)
    --lowercase            Lowercase Strings/, Screenshots/ and Templates/
    --no-helper-files      Skip config.json, strings files and READMEs
    --verbose              Log every created path

INIT:
    --config <path>        Sample config to write (default: config.json)

EXAMPLES:
    goframe scaffold --path MyApp en de fr
    goframe init --config MyApp/config.yaml
    goframe validate MyApp/config.json
    goframe MyApp/config.json
`)
}
