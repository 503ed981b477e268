package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/xob0t/GoFrame/pkg/config"
)

func TestCreate(t *testing.T) {
	root := filepath.Join(t.TempDir(), "project")
	res, err := Create(Options{Root: root, Locales: []string{"en", "de"}})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Result{Directories: 8, Files: 7}, res); diff != "" {
		t.Errorf("result (-want +got):\n%s", diff)
	}

	for _, p := range []string{
		"Strings/en.strings",
		"Strings/de.strings",
		"Templates",
		"Screenshots/iPhoneX/en/README.md",
		"Screenshots/iPadPro12.9/de/README.md",
	} {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(p))); err != nil {
			t.Errorf("missing %s: %v", p, err)
		}
	}

	f, err := config.Load(filepath.Join(root, "config.json"))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := f.DeviceData[0].Screenshots, filepath.Join(root, "Screenshots", "iPhoneX"); got != want {
		t.Errorf("screenshots = %q, want %q", got, want)
	}

	strs, err := config.LoadStrings(filepath.Join(root, "Strings"), nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, td := range f.DeviceData[0].TextData {
		if _, ok := strs["en"][td.Identifier]; !ok {
			t.Errorf("strings file has no entry for %q", td.Identifier)
		}
	}
}

func TestCreateWithoutHelperFiles(t *testing.T) {
	root := t.TempDir()
	res, err := Create(Options{
		Root:          root,
		Locales:       []string{"fr"},
		Devices:       []string{"Pixel"},
		Lowercase:     true,
		NoHelperFiles: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Result{Directories: 5}, res); diff != "" {
		t.Errorf("result (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(filepath.Join(root, "screenshots", "Pixel", "fr")); err != nil {
		t.Error(err)
	}
	if _, err := os.Stat(filepath.Join(root, "config.json")); !os.IsNotExist(err) {
		t.Errorf("config.json written: %v", err)
	}
}

func TestCreateNeedsLocale(t *testing.T) {
	if _, err := Create(Options{Root: t.TempDir()}); err == nil {
		t.Error("expected error without locales")
	}
}
