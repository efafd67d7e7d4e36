// Package style resolves feature appearance from simplestyle properties:
// stroke/stroke-width for lines, fill (derived from stroke unless given)
// and fill-opacity for polygons, marker-color/marker-size for points.
package style

import (
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// MarkerSize is the three-level simplestyle point size vocabulary.
type MarkerSize string

const (
	MarkerSmall  MarkerSize = "small"
	MarkerMedium MarkerSize = "medium"
	MarkerLarge  MarkerSize = "large"
)

// Pixels returns the rendered marker diameter. Unrecognized sizes render
// as medium.
func (s MarkerSize) Pixels() int {
	switch s {
	case MarkerSmall:
		return 6
	case MarkerLarge:
		return 12
	}
	return 8
}

// Fixed fallbacks. Warning is used for unparsable color strings so a bad
// property never fails a load.
var (
	defaultColor = mustHex("#ffcc00")
	Warning      = mustHex("#ffff00")
	// PointOutline is the fixed semi-transparent black ring around markers.
	PointOutline = colorful.Color{R: 0, G: 0, B: 0}
)

// PointOutlineAlpha is the opacity of the marker outline.
const PointOutlineAlpha = 0.5

const (
	defaultStrokeWidth = 2.0
	defaultFillOpacity = 0.15
)

// Style is one feature's resolved appearance.
type Style struct {
	Stroke      colorful.Color
	StrokeWidth float64
	Fill        colorful.Color
	FillOpacity float64
	Marker      colorful.Color
	MarkerSize  MarkerSize
}

// Default returns the appearance of a feature with no style properties.
func Default() Style {
	return Style{
		Stroke:      defaultColor,
		StrokeWidth: defaultStrokeWidth,
		Fill:        defaultColor,
		FillOpacity: defaultFillOpacity,
		Marker:      defaultColor,
		MarkerSize:  MarkerMedium,
	}
}

// Resolve derives a Style from a feature property bag. Missing keys keep
// their defaults; the polygon fill follows the stroke color unless an
// explicit fill is given.
func Resolve(props map[string]any) Style {
	st := Default()
	if props == nil {
		return st
	}
	if s, ok := stringProp(props, "stroke"); ok {
		st.Stroke = ParseColor(s)
		st.Fill = st.Stroke
	}
	if w, ok := numberProp(props, "stroke-width"); ok && w > 0 {
		st.StrokeWidth = w
	}
	if s, ok := stringProp(props, "fill"); ok {
		st.Fill = ParseColor(s)
	}
	if o, ok := numberProp(props, "fill-opacity"); ok && o >= 0 && o <= 1 {
		st.FillOpacity = o
	}
	if s, ok := stringProp(props, "marker-color"); ok {
		st.Marker = ParseColor(s)
	}
	if s, ok := stringProp(props, "marker-size"); ok {
		switch MarkerSize(strings.ToLower(strings.TrimSpace(s))) {
		case MarkerSmall, MarkerMedium, MarkerLarge:
			st.MarkerSize = MarkerSize(strings.ToLower(strings.TrimSpace(s)))
		}
	}
	return st
}

// ParseColor parses a CSS color string: hex with or without the leading
// '#' (simplestyle allows both), or one of the basic named colors.
// Unparsable input yields Warning rather than an error.
func ParseColor(s string) colorful.Color {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c
	}
	if s == "" {
		return Warning
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) == 4 { // #rgb -> #rrggbb
		s = "#" + strings.Repeat(string(s[1]), 2) +
			strings.Repeat(string(s[2]), 2) +
			strings.Repeat(string(s[3]), 2)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Warning
	}
	return c
}

// namedColors covers the CSS basic color keywords.
var namedColors = map[string]colorful.Color{
	"black":   mustHex("#000000"),
	"silver":  mustHex("#c0c0c0"),
	"gray":    mustHex("#808080"),
	"grey":    mustHex("#808080"),
	"white":   mustHex("#ffffff"),
	"maroon":  mustHex("#800000"),
	"red":     mustHex("#ff0000"),
	"purple":  mustHex("#800080"),
	"fuchsia": mustHex("#ff00ff"),
	"magenta": mustHex("#ff00ff"),
	"green":   mustHex("#008000"),
	"lime":    mustHex("#00ff00"),
	"olive":   mustHex("#808000"),
	"yellow":  mustHex("#ffff00"),
	"navy":    mustHex("#000080"),
	"blue":    mustHex("#0000ff"),
	"teal":    mustHex("#008080"),
	"aqua":    mustHex("#00ffff"),
	"cyan":    mustHex("#00ffff"),
	"orange":  mustHex("#ffa500"),
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func stringProp(props map[string]any, key string) (string, bool) {
	v, ok := props[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// numberProp accepts JSON numbers and numeric strings; simplestyle files in
// the wild carry both.
func numberProp(props map[string]any, key string) (float64, bool) {
	v, ok := props[key]
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
