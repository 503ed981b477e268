// Package imageio loads input images and writes rendered ones.
//
// Decoding and encoding go through imaging, which registers PNG, JPEG, GIF,
// TIFF and BMP. Writes are atomic: renameio stages the data in a pending file
// in the target directory and renames it into place once it is synced.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/renameio/v2"

	"github.com/xob0t/GoFrame/pkg/failure"
)

// Format is an output encoding.
type Format struct {
	enc imaging.Format
	ext string
}

var (
	PNG  = Format{imaging.PNG, "png"}
	JPEG = Format{imaging.JPEG, "jpg"}
	BMP  = Format{imaging.BMP, "bmp"}
	TIFF = Format{imaging.TIFF, "tiff"}
	GIF  = Format{imaging.GIF, "gif"}
)

// ParseFormat maps a format name or file extension to a Format. The empty
// string selects PNG.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "", "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	case "gif":
		return GIF, nil
	}
	return Format{}, fmt.Errorf("unsupported output format %q: use png, jpeg, bmp, tiff or gif", name)
}

// Extension returns the file extension without the leading dot.
func (f Format) Extension() string { return f.ext }

func (f Format) String() string { return f.ext }

// Load decodes the image at path, applying any EXIF orientation. kind names
// the input in errors, e.g. "template" or "screenshot".
func Load(kind, path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &failure.ResourceError{Kind: kind, Path: path}
		}
		return nil, &failure.ResourceError{Kind: kind, Path: path, Err: err}
	}
	return img, nil
}

// DecodeConfig returns the dimensions of the image at path without decoding
// the pixels.
func DecodeConfig(kind, path string) (image.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return image.Config{}, &failure.ResourceError{Kind: kind, Path: path}
		}
		return image.Config{}, &failure.ResourceError{Kind: kind, Path: path, Err: err}
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return image.Config{}, &failure.ResourceError{Kind: kind, Path: path, Err: err}
	}
	return cfg, nil
}

// Write encodes img in the given format and stores it at every path.
func Write(img image.Image, format Format, paths ...string) error {
	for _, path := range paths {
		if err := writeFile(img, format, path); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(img image.Image, format Format, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	pf, err := renameio.NewPendingFile(path, renameio.WithTempDir(dir), renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer pf.Cleanup()

	if err := imaging.Encode(pf, img, format.enc, imaging.JPEGQuality(95)); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
