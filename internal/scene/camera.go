package scene

import (
	"math"

	"globeview/internal/geom"
)

// Camera is a top-down view: a center and the degree span mapped across
// the wider canvas axis. Smaller Span means closer in.
type Camera struct {
	Lon  float64
	Lat  float64
	Span float64
}

const (
	minSpan = 0.0005
	maxSpan = 360
)

// WorldCamera frames the whole globe.
func WorldCamera() Camera {
	return Camera{Lon: 0, Lat: 0, Span: maxSpan}
}

// FitBounds frames b with a small margin. Empty bounds yield the world view.
func FitBounds(b geom.Bounds) Camera {
	if b.Empty() {
		return WorldCamera()
	}
	lon, lat := b.Center()
	span := math.Max(b.LonSpan(), b.LatSpan()) * 1.2
	if span < minSpan {
		span = minSpan
	}
	if span > maxSpan {
		span = maxSpan
	}
	return Camera{Lon: lon, Lat: lat, Span: span}
}

// ZoomIn narrows the span by one step.
func (c *Camera) ZoomIn() {
	if c.Span/1.2 >= minSpan {
		c.Span /= 1.2
	}
}

// ZoomOut widens the span by one step.
func (c *Camera) ZoomOut() {
	if c.Span*1.2 <= maxSpan {
		c.Span *= 1.2
	}
}

// Pan moves the center by fractions of the current span.
func (c *Camera) Pan(dx, dy float64) {
	c.Lon += dx * c.Span
	c.Lat += dy * c.Span
}

// Lerp interpolates between two cameras for fly-to animation; t in [0,1].
func Lerp(a, b Camera, t float64) Camera {
	return Camera{
		Lon:  a.Lon + (b.Lon-a.Lon)*t,
		Lat:  a.Lat + (b.Lat-a.Lat)*t,
		Span: a.Span + (b.Span-a.Span)*t,
	}
}
