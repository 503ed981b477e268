package imageio

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/google/go-cmp/cmp"

	"github.com/xob0t/GoFrame/pkg/failure"
)

func checker(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 10, B: 10, A: 255})
			} else {
				img.SetNRGBA(x, y, color.NRGBA{G: 120, B: 250, A: 255})
			}
		}
	}
	return img
}

func TestWriteAndLoad(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "en", "en-iphone-0.png")
	b := filepath.Join(dir, "copy", "en-iphone-0.png")

	src := checker(7, 5)
	if err := Write(src, PNG, a, b); err != nil {
		t.Fatal(err)
	}

	for _, p := range []string{a, b} {
		img, err := Load("output", p)
		if err != nil {
			t.Fatal(err)
		}
		if img.Bounds().Dx() != 7 || img.Bounds().Dy() != 5 {
			t.Fatalf("%s: bounds %v", p, img.Bounds())
		}
		got := color.NRGBAModel.Convert(img.At(1, 0)).(color.NRGBA)
		if got != src.NRGBAAt(1, 0) {
			t.Errorf("%s: pixel (1,0) = %v, want %v", p, got, src.NRGBAAt(1, 0))
		}
	}

	entries, err := os.ReadDir(filepath.Join(dir, "en"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}

func TestWriteFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "out.x")
	if err := Write(checker(4, 4), Format{enc: imaging.Format(99), ext: "x"}, p); err == nil {
		t.Fatal("expected encode error")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("failed write left files behind: %v", entries)
	}
}

func TestWriteReplacesExisting(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.png")
	if err := os.WriteFile(p, []byte("stale"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := Write(checker(3, 2), PNG, p); err != nil {
		t.Fatal(err)
	}
	cfg, err := DecodeConfig("output", p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 3 || cfg.Height != 2 {
		t.Errorf("config %dx%d", cfg.Width, cfg.Height)
	}
}

func TestWriteJPEG(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.jpg")
	if err := Write(checker(16, 16), JPEG, p); err != nil {
		t.Fatal(err)
	}
	cfg, err := DecodeConfig("output", p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 16 || cfg.Height != 16 {
		t.Errorf("config %dx%d", cfg.Width, cfg.Height)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load("screenshot", filepath.Join(dir, "missing.png"))
	var re *failure.ResourceError
	if !errors.As(err, &re) {
		t.Fatalf("got %v, want ResourceError", err)
	}
	if re.Kind != "screenshot" || re.Err != nil {
		t.Errorf("unexpected error %+v", re)
	}

	junk := filepath.Join(dir, "junk.png")
	if err := os.WriteFile(junk, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load("template", junk); !errors.As(err, &re) || re.Err == nil {
		t.Errorf("got %v, want ResourceError with cause", err)
	}
	if _, err := DecodeConfig("template", junk); !errors.As(err, &re) {
		t.Errorf("got %v, want ResourceError", err)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": PNG, "png": PNG, ".PNG": PNG, "jpeg": JPEG, "jpg": JPEG, "tif": TIFF, "bmp": BMP, "gif": GIF} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("webp"); err == nil {
		t.Error("expected error for webp")
	}
	if JPEG.Extension() != "jpg" {
		t.Errorf("JPEG extension %q", JPEG.Extension())
	}
}

func TestOutputPaths(t *testing.T) {
	o := Output{
		Dirs:     []string{"out", "mirror"},
		Locale:   "de",
		Suffixes: []string{"iPhone", "iPhoneMax"},
		Format:   JPEG,
	}
	want := []string{
		filepath.Join("out", "de", "de-iPhone-2.jpg"),
		filepath.Join("out", "de", "de-iPhoneMax-2.jpg"),
		filepath.Join("mirror", "de", "de-iPhone-2.jpg"),
		filepath.Join("mirror", "de", "de-iPhoneMax-2.jpg"),
	}
	if diff := cmp.Diff(want, o.SlicePaths(2)); diff != "" {
		t.Errorf("slice paths (-want +got):\n%s", diff)
	}
	if got := o.WholePaths()[0]; got != filepath.Join("out", "de", "de-iPhone-big.jpg") {
		t.Errorf("whole path %q", got)
	}
}

func TestClearLocaleDirs(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "en", "en-old-0.png")
	keep := filepath.Join(dir, "fr", "fr-old-0.png")
	for _, p := range []string{stale, keep} {
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if err := ClearLocaleDirs([]string{dir}, []string{"en", "de"}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("stale file survived: %v", err)
	}
	if _, err := os.Stat(keep); err != nil {
		t.Errorf("other locale was touched: %v", err)
	}
	for _, l := range []string{"en", "de"} {
		if fi, err := os.Stat(filepath.Join(dir, l)); err != nil || !fi.IsDir() {
			t.Errorf("locale dir %s missing: %v", l, err)
		}
	}
}

func TestCheckWritable(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "new", "out")
	if err := CheckWritable(dir); err != nil {
		t.Fatal(err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("writability check left a file behind: %v", entries)
	}
}
