// Package failure defines the error kinds reported by a render run.
//
// Every kind is fatal: structural problems (group references, geometry,
// slice widths, missing files) are detected while the configuration is
// processed, fit problems only while a locale is rendered. Callers match
// them with errors.As.
package failure

import "fmt"

// FitError reports text that does not fit its box even at the minimum font size.
type FitError struct {
	Text   string
	Width  float64
	Height float64
}

func (e *FitError) Error() string {
	return fmt.Sprintf("could not fit text %q into rectangle of size %gx%g", e.Text, e.Width, e.Height)
}

// GroupReferenceError reports a text block that names an undefined text group.
type GroupReferenceError struct {
	Group string
	Text  string
}

func (e *GroupReferenceError) Error() string {
	return fmt.Sprintf("text %q references undefined text group %q", e.Text, e.Group)
}

// GeometryError reports a degenerate quad or a badly ordered text rectangle.
type GeometryError struct {
	Subject string
	Reason  string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("bad geometry for %s: %s", e.Subject, e.Reason)
}

// SliceError reports a canvas that cannot be cut into the requested slices.
type SliceError struct {
	Reason string
}

func (e *SliceError) Error() string {
	return "slice: " + e.Reason
}

// ResourceError reports a missing or unreadable input file.
type ResourceError struct {
	Kind string // "template", "screenshot", "font", "strings", ...
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s not found", e.Kind, e.Path)
	}
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }
