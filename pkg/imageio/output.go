// output.go - Output file naming and directory housekeeping.
package imageio

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Output names the files produced for one locale of one device. Every
// output directory receives a copy for every suffix:
//
//	<dir>/<locale>/<locale>-<suffix>-<index>.<ext>
//	<dir>/<locale>/<locale>-<suffix>-big.<ext>
type Output struct {
	Dirs     []string
	Locale   string
	Suffixes []string
	Format   Format
}

// SlicePaths returns the paths for the zero-based slice index.
func (o Output) SlicePaths(index int) []string {
	return o.paths(strconv.Itoa(index))
}

// WholePaths returns the paths for the unsliced canvas.
func (o Output) WholePaths() []string {
	return o.paths("big")
}

func (o Output) paths(tag string) []string {
	out := make([]string, 0, len(o.Dirs)*len(o.Suffixes))
	for _, dir := range o.Dirs {
		for _, suffix := range o.Suffixes {
			name := fmt.Sprintf("%s-%s-%s.%s", o.Locale, suffix, tag, o.Format.Extension())
			out = append(out, filepath.Join(dir, o.Locale, name))
		}
	}
	return out
}

// ClearLocaleDirs removes <dir>/<locale> for every combination and recreates
// it empty.
func ClearLocaleDirs(dirs, locales []string) error {
	for _, dir := range dirs {
		for _, locale := range locales {
			p := filepath.Join(dir, locale)
			if err := os.RemoveAll(p); err != nil {
				return fmt.Errorf("clear %s: %w", p, err)
			}
			if err := os.MkdirAll(p, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", p, err)
			}
		}
	}
	return nil
}

// CheckWritable verifies that files can be created in dir, creating the
// directory when it does not exist yet.
func CheckWritable(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("output directory %s: %w", dir, err)
	}
	f, err := os.CreateTemp(dir, ".goframe-*")
	if err != nil {
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
