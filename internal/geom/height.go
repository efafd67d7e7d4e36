package geom

import "math"

// ZConvention selects how a coordinate's third value maps to a height above
// the reference surface, in meters.
type ZConvention string

const (
	ElevationMeters ZConvention = "elevation_m" // z is already height in meters
	DepthMeters     ZConvention = "depth_m"     // z is depth in meters, positive down
	DepthKilometers ZConvention = "depth_km"    // z is depth in kilometers, positive down
)

// DefaultZConvention is used when a convention string is absent or
// unrecognized.
const DefaultZConvention = DepthKilometers

// ParseZConvention maps a string to a ZConvention, falling back to the
// default for anything unrecognized.
func ParseZConvention(s string) ZConvention {
	switch ZConvention(s) {
	case ElevationMeters, DepthMeters, DepthKilometers:
		return ZConvention(s)
	}
	return DefaultZConvention
}

// HeightMeters converts p's third value to renderer height meters under c.
// Returns ok=false when p has no third value or it is NaN; such points stay
// two-dimensional.
func HeightMeters(p Position, c ZConvention) (h float64, ok bool) {
	if !p.HasZ || math.IsNaN(p.Z) {
		return 0, false
	}
	switch c {
	case ElevationMeters:
		return p.Z, true
	case DepthMeters:
		return -p.Z, true
	default:
		return -p.Z * 1000, true
	}
}

// HeightTransform returns a MapPositions leaf function replacing Z with the
// renderer height for convention c.
func HeightTransform(c ZConvention) func(Position) Position {
	return func(p Position) Position {
		p.Z, p.HasZ = HeightMeters(p, c)
		return p
	}
}
