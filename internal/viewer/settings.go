package viewer

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"globeview/internal/geom"
	"globeview/internal/scene"
)

// Settings is the full configuration surface. It round-trips through a URL
// query string so a view is shareable as a deep link.
type Settings struct {
	Data        string           // source URL or file path
	Z           geom.ZConvention // third-coordinate interpretation
	View        scene.ViewMode   // surface presentation
	GridDeg     float64          // graticule spacing in degrees
	GridOn      bool             // graticule enabled
	GroundAlpha float64          // translucent-mode surface alpha, 0..1
	Fly         bool             // animate the camera to loaded data
}

// DefaultSettings returns the documented defaults.
func DefaultSettings() Settings {
	return Settings{
		Data:        "",
		Z:           geom.DefaultZConvention,
		View:        scene.DefaultViewMode,
		GridDeg:     1,
		GridOn:      true,
		GroundAlpha: 0.18,
		Fly:         true,
	}
}

// Query encodes all settings; absent keys never need guessing on decode.
func (s Settings) Query() url.Values {
	v := url.Values{}
	v.Set("data", s.Data)
	v.Set("z", string(s.Z))
	v.Set("view", string(s.View))
	v.Set("grid", strconv.FormatFloat(s.GridDeg, 'g', -1, 64))
	v.Set("grid_on", boolParam(s.GridOn))
	v.Set("alpha", strconv.FormatFloat(s.GroundAlpha, 'g', -1, 64))
	v.Set("fly", boolParam(s.Fly))
	return v
}

// ParseQuery decodes settings from query parameters. Absent parameters keep
// their defaults; unparsable values fall back to defaults rather than
// erroring. Non-positive grid spacing is kept as-is and suppresses grid
// rendering downstream.
func ParseQuery(v url.Values) Settings {
	s := DefaultSettings()
	if v.Has("data") {
		s.Data = v.Get("data")
	}
	if v.Has("z") {
		s.Z = geom.ParseZConvention(v.Get("z"))
	}
	if v.Has("view") {
		s.View = scene.ParseViewMode(v.Get("view"))
	}
	if v.Has("grid") {
		if f, err := strconv.ParseFloat(v.Get("grid"), 64); err == nil && !math.IsNaN(f) {
			s.GridDeg = f
		}
	}
	if v.Has("grid_on") {
		s.GridOn = parseBoolParam(v.Get("grid_on"), s.GridOn)
	}
	if v.Has("alpha") {
		if f, err := strconv.ParseFloat(v.Get("alpha"), 64); err == nil && f >= 0 && f <= 1 {
			s.GroundAlpha = f
		}
	}
	if v.Has("fly") {
		s.Fly = parseBoolParam(v.Get("fly"), s.Fly)
	}
	return s
}

// shareScheme prefixes an encoded query so a pasted link is recognizable.
const shareScheme = "globeview:"

// ShareLink renders the settings as a copyable deep link.
func (s Settings) ShareLink() string {
	return shareScheme + "?" + s.Query().Encode()
}

// ParseShareLink decodes a deep link produced by ShareLink. It also accepts
// a bare "?key=val" query string. ok is false for anything else.
func ParseShareLink(link string) (Settings, bool) {
	link = strings.TrimSpace(link)
	link = strings.TrimPrefix(link, shareScheme)
	if !strings.HasPrefix(link, "?") {
		return Settings{}, false
	}
	v, err := url.ParseQuery(link[1:])
	if err != nil {
		return Settings{}, false
	}
	return ParseQuery(v), true
}

func boolParam(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func parseBoolParam(s string, fallback bool) bool {
	switch s {
	case "1":
		return true
	case "0":
		return false
	}
	return fallback
}
