package viewer

import (
	"math"
	"os"

	"github.com/BurntSushi/toml"

	"globeview/internal/geom"
	"globeview/internal/scene"
)

// fileConfig mirrors the settings surface in TOML. Pointer fields
// distinguish "absent" from a zero value.
type fileConfig struct {
	Data   *string  `toml:"data"`
	Z      *string  `toml:"z"`
	View   *string  `toml:"view"`
	Grid   *float64 `toml:"grid"`
	GridOn *bool    `toml:"grid_on"`
	Alpha  *float64 `toml:"alpha"`
	Fly    *bool    `toml:"fly"`
}

// ApplyConfigFile overlays settings from a TOML file onto s. Unknown keys
// are ignored; invalid enum values fall back to their defaults the same way
// query parameters do.
func ApplyConfigFile(path string, s Settings) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return s, err
	}
	if fc.Data != nil {
		s.Data = *fc.Data
	}
	if fc.Z != nil {
		s.Z = geom.ParseZConvention(*fc.Z)
	}
	if fc.View != nil {
		s.View = scene.ParseViewMode(*fc.View)
	}
	if fc.Grid != nil && !math.IsNaN(*fc.Grid) {
		s.GridDeg = *fc.Grid
	}
	if fc.GridOn != nil {
		s.GridOn = *fc.GridOn
	}
	if fc.Alpha != nil && *fc.Alpha >= 0 && *fc.Alpha <= 1 {
		s.GroundAlpha = *fc.Alpha
	}
	if fc.Fly != nil {
		s.Fly = *fc.Fly
	}
	return s, nil
}
