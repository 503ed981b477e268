package failure

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&FitError{Text: "Hello", Width: 40, Height: 12.5}, `could not fit text "Hello" into rectangle of size 40x12.5`},
		{&GroupReferenceError{Group: "titles", Text: "home.title"}, `text "home.title" references undefined text group "titles"`},
		{&GeometryError{Subject: "screenshot quad", Reason: "quad is self-intersecting or concave"}, "bad geometry for screenshot quad: quad is self-intersecting or concave"},
		{&SliceError{Reason: "produced 2 slices, expected 3"}, "slice: produced 2 slices, expected 3"},
		{&ResourceError{Kind: "template", Path: "Templates/iPhoneX.png"}, "template Templates/iPhoneX.png not found"},
		{&ResourceError{Kind: "font", Path: "a.ttf", Err: errors.New("bad magic")}, "font a.ttf: bad magic"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestResourceErrorUnwraps(t *testing.T) {
	err := fmt.Errorf("device iPhoneX: %w", &ResourceError{Kind: "strings", Path: "en.strings", Err: fs.ErrPermission})
	if !errors.Is(err, fs.ErrPermission) {
		t.Error("cause not reachable through errors.Is")
	}
	var re *ResourceError
	if !errors.As(err, &re) || re.Kind != "strings" {
		t.Errorf("errors.As = %v", re)
	}
}
