// example.go - Starter configuration for goframe init and scaffold.
package config

import (
	"bytes"
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/xob0t/GoFrame/pkg/geometry"
)

// Example returns a starter configuration for a project laid out the way
// scaffold creates it: Strings/, Screenshots/<device>/<locale>/ and
// Templates/.
func Example() *File {
	override := 90.0
	return &File{
		StringsPath:      "Strings",
		MaxFontSize:      200,
		OutputPaths:      []string{"Output"},
		TextColor:        "#ffffff",
		Format:           "png",
		ClearDirectories: true,
		OutputWholeImage: true,
		TextGroups: []TextGroupData{
			{Identifier: "titles", MaxFontSize: 120},
		},
		DeviceData: []DeviceData{{
			OutputSuffixes:             []string{"iPhoneX"},
			Screenshots:                "Screenshots/iPhoneX",
			TemplateFile:               "Templates/iPhoneX.png",
			NumberOfSlices:             2,
			GapWidth:                   0,
			CoordinatesOriginIsTopLeft: true,
			Background:                 "linear-gradient(to bottom, #1a1a2e, #16213e)",
			ScreenshotData: []ScreenshotData{
				{
					ScreenshotName: "home.png",
					TopLeft:        geometry.Pt(110, 600),
					TopRight:       geometry.Pt(1132, 600),
					BottomLeft:     geometry.Pt(110, 2400),
					BottomRight:    geometry.Pt(1132, 2400),
				},
				{
					ScreenshotName: "detail.png",
					TopLeft:        geometry.Pt(1400, 640),
					TopRight:       geometry.Pt(2350, 580),
					BottomLeft:     geometry.Pt(1400, 2380),
					BottomRight:    geometry.Pt(2350, 2440),
					ZIndex:         1,
				},
			},
			TextData: []TextData{
				{
					Identifier:        "home.title",
					TopLeft:           geometry.Pt(80, 80),
					BottomRight:       geometry.Pt(1162, 480),
					TextAlignment:     "center",
					VerticalAlignment: "center",
					GroupIdentifier:   "titles",
				},
				{
					Identifier:          "detail.title",
					TopLeft:             geometry.Pt(1322, 80),
					BottomRight:         geometry.Pt(2404, 480),
					TextAlignment:       "center",
					VerticalAlignment:   "center",
					MaxFontSizeOverride: &override,
					GroupIdentifier:     "titles",
				},
			},
		}},
	}
}

// Encode serializes f as YAML when ext is .yaml or .yml, otherwise as
// indented JSON.
func Encode(f *File, ext string) ([]byte, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		data, err := json.MarshalIndent(f, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
}
