// Package config reads project configuration files and turns them into the
// resolved descriptors a render run works with.
package config

import "github.com/xob0t/GoFrame/pkg/geometry"

// ── File types ──

// File is the top-level structure of a configuration file.
type File struct {
	StringsPath      string          `json:"stringsPath" yaml:"stringsPath"`           // directory of <locale>.strings files
	MaxFontSize      float64         `json:"maxFontSize" yaml:"maxFontSize"`           // global upper bound for every text
	OutputPaths      []string        `json:"outputPaths" yaml:"outputPaths"`           // every directory receives all images
	FontFile         string          `json:"fontFile" yaml:"fontFile"`                 // empty uses the embedded font
	TextColor        string          `json:"textColor" yaml:"textColor"`               // "#rrggbb"
	Format           string          `json:"format" yaml:"format"`                     // "png" (default), "jpeg", ...
	Locales          string          `json:"locales" yaml:"locales"`                   // regex, empty matches all
	ClearDirectories bool            `json:"clearDirectories" yaml:"clearDirectories"` // wipe locale output folders first
	OutputWholeImage bool            `json:"outputWholeImage" yaml:"outputWholeImage"` // also write the unsliced canvas
	TextGroups       []TextGroupData `json:"textGroups" yaml:"textGroups"`
	DeviceData       []DeviceData    `json:"deviceData" yaml:"deviceData"`
}

// TextGroupData declares a text group.
type TextGroupData struct {
	Identifier  string  `json:"identifier" yaml:"identifier"`
	MaxFontSize float64 `json:"maxFontSize" yaml:"maxFontSize"`
}

// DeviceData describes one device: its template, where its screenshots live
// and what goes where on the canvas.
type DeviceData struct {
	OutputSuffixes             []string         `json:"outputSuffixes" yaml:"outputSuffixes"`
	OutputSuffix               string           `json:"outputSuffix,omitempty" yaml:"outputSuffix,omitempty"` // single-suffix shorthand
	Screenshots                string           `json:"screenshots" yaml:"screenshots"`                       // directory of <locale>/ folders
	TemplateFile               string           `json:"templateFile" yaml:"templateFile"`
	NumberOfSlices             int              `json:"numberOfSlices" yaml:"numberOfSlices"`
	GapWidth                   int              `json:"gapWidth" yaml:"gapWidth"`
	SliceWidth                 int              `json:"sliceWidth,omitempty" yaml:"sliceWidth,omitempty"` // 0 derives it from the template
	CoordinatesOriginIsTopLeft bool             `json:"coordinatesOriginIsTopLeft" yaml:"coordinatesOriginIsTopLeft"`
	TemplateOnTop              bool             `json:"templateOnTop" yaml:"templateOnTop"` // screenshots go under the template
	HasNotch                   bool             `json:"hasNotch,omitempty" yaml:"hasNotch,omitempty"`
	Background                 string           `json:"background,omitempty" yaml:"background,omitempty"`
	ScreenshotData             []ScreenshotData `json:"screenshotData" yaml:"screenshotData"`
	TextData                   []TextData       `json:"textData" yaml:"textData"`
}

// ScreenshotData places one screenshot file into a quad of the template.
type ScreenshotData struct {
	ScreenshotName string         `json:"screenshotName" yaml:"screenshotName"`
	BottomLeft     geometry.Point `json:"bottomLeft" yaml:"bottomLeft"`
	BottomRight    geometry.Point `json:"bottomRight" yaml:"bottomRight"`
	TopLeft        geometry.Point `json:"topLeft" yaml:"topLeft"`
	TopRight       geometry.Point `json:"topRight" yaml:"topRight"`
	ZIndex         int            `json:"zIndex" yaml:"zIndex"`
	Viewport       bool           `json:"viewport,omitempty" yaml:"viewport,omitempty"` // take the quad from the template's screen area
}

// TextData places one localized string.
type TextData struct {
	Identifier          string         `json:"identifier" yaml:"identifier"`
	TitleIdentifier     string         `json:"titleIdentifier,omitempty" yaml:"titleIdentifier,omitempty"` // older name of Identifier
	TopLeft             geometry.Point `json:"topLeft" yaml:"topLeft"`
	BottomRight         geometry.Point `json:"bottomRight" yaml:"bottomRight"`
	TextAlignment       string         `json:"textAlignment" yaml:"textAlignment"`         // left, right, center, justify, natural
	VerticalAlignment   string         `json:"verticalAlignment" yaml:"verticalAlignment"` // top, center, bottom
	MaxFontSizeOverride *float64       `json:"maxFontSizeOverride,omitempty" yaml:"maxFontSizeOverride,omitempty"`
	CustomFontPath      string         `json:"customFontPath,omitempty" yaml:"customFontPath,omitempty"`
	TextColorOverride   string         `json:"textColorOverride,omitempty" yaml:"textColorOverride,omitempty"`
	GroupIdentifier     string         `json:"groupIdentifier,omitempty" yaml:"groupIdentifier,omitempty"`
}
