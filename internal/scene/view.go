package scene

import "math"

// ViewMode selects the globe surface presentation.
type ViewMode string

const (
	// ViewSpace hides the surface entirely; geometry floats unoccluded
	// and the graticule sits on the notional ellipsoid.
	ViewSpace ViewMode = "space"
	// ViewTranslucent shows the surface with distance-dependent
	// translucency and depth-testing disabled, so sub-surface geometry
	// is not clipped.
	ViewTranslucent ViewMode = "translucent"
)

// DefaultViewMode is used for absent or unrecognized mode strings.
const DefaultViewMode = ViewSpace

// ParseViewMode maps a string to a ViewMode, falling back to the default.
func ParseViewMode(s string) ViewMode {
	switch ViewMode(s) {
	case ViewSpace, ViewTranslucent:
		return ViewMode(s)
	}
	return DefaultViewMode
}

// farAlphaLift is how much more opaque the surface gets at distance in
// translucent mode.
const farAlphaLift = 0.12

// SetViewMode reconfigures the surface presentation. Idempotent and
// immediate; there is no state machine beyond the two modes.
func (s *Scene) SetViewMode(m ViewMode, groundAlpha float64) {
	groundAlpha = math.Min(math.Max(groundAlpha, 0), 1)
	switch m {
	case ViewTranslucent:
		s.Mode = ViewTranslucent
		s.GroundNearAlpha = groundAlpha
		s.GroundFarAlpha = math.Min(groundAlpha+farAlphaLift, 1)
		s.DepthTest = false
	default:
		s.Mode = ViewSpace
		s.GroundNearAlpha = 0
		s.GroundFarAlpha = 0
		s.DepthTest = true
	}
}
