package geom

import "math"

// graticuleEps tolerates floating-point drift at the far edge of the
// inclusive sampling loops.
const graticuleEps = 1e-9

// Graticule builds meridian and parallel reference polylines covering b,
// padded by max(spacingDeg, 1) degrees per side, snapped outward to
// spacingDeg multiples and clamped to the valid lon/lat domain. All points
// sit at height 0 on the reference surface.
//
// Per-line sampling is adaptive: step = clamp(max(lonSpan, latSpan)/90,
// 0.1, 1.0) degrees, so large regions stay cheap and small ones stay smooth.
//
// Returns nil for non-positive or non-finite spacing and for empty bounds.
func Graticule(b Bounds, spacingDeg float64) []Polyline {
	if b.Empty() || spacingDeg <= 0 || math.IsNaN(spacingDeg) || math.IsInf(spacingDeg, 0) {
		return nil
	}
	pad := math.Max(spacingDeg, 1)
	minLon := clampDeg(math.Floor((b.MinLon-pad)/spacingDeg)*spacingDeg, -180, 180)
	maxLon := clampDeg(math.Ceil((b.MaxLon+pad)/spacingDeg)*spacingDeg, -180, 180)
	minLat := clampDeg(math.Floor((b.MinLat-pad)/spacingDeg)*spacingDeg, -90, 90)
	maxLat := clampDeg(math.Ceil((b.MaxLat+pad)/spacingDeg)*spacingDeg, -90, 90)

	step := math.Max(maxLon-minLon, maxLat-minLat) / 90
	step = math.Min(math.Max(step, 0.1), 1.0)

	var lines []Polyline
	// meridians: fixed lon, sweep lat
	for lon := minLon; lon <= maxLon+graticuleEps; lon += spacingDeg {
		var ln Polyline
		for lat := minLat; lat <= maxLat+graticuleEps; lat += step {
			ln = append(ln, Position{Lon: lon, Lat: lat, Z: 0, HasZ: true})
		}
		lines = append(lines, ln)
	}
	// parallels: fixed lat, sweep lon
	for lat := minLat; lat <= maxLat+graticuleEps; lat += spacingDeg {
		var ln Polyline
		for lon := minLon; lon <= maxLon+graticuleEps; lon += step {
			ln = append(ln, Position{Lon: lon, Lat: lat, Z: 0, HasZ: true})
		}
		lines = append(lines, ln)
	}
	return lines
}

func clampDeg(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
