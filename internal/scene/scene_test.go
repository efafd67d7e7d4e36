package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"globeview/internal/geom"
	"globeview/internal/style"
)

func TestSceneHandles(t *testing.T) {
	s := New()
	st := style.Default()

	h1 := s.AddPoint(geom.Position{Lon: 1, Lat: 2}, st)
	h2 := s.AddPolyline([]geom.Position{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 1}}, st)
	h3 := s.AddPolygon([][]geom.Position{{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}, {Lon: 0, Lat: 1}}}, st)
	assert.Equal(t, 3, s.Len())

	ents := s.Entities()
	require.Len(t, ents, 3)
	assert.Equal(t, KindPoint, ents[0].Kind)
	assert.Equal(t, KindPolyline, ents[1].Kind)
	assert.Equal(t, KindPolygon, ents[2].Kind)
	assert.NotEqual(t, h1, h2)

	assert.True(t, s.Remove(h2))
	assert.False(t, s.Remove(h2), "double remove is a no-op")
	assert.Equal(t, 2, s.Len())

	// insertion order preserved after removal
	ents = s.Entities()
	assert.Equal(t, h1, ents[0].ID)
	assert.Equal(t, h3, ents[1].ID)

	s.RemoveAll([]Handle{h1, h3})
	assert.Equal(t, 0, s.Len())
}

func TestReferenceLines(t *testing.T) {
	s := New()
	h := s.AddReferenceLine([]geom.Position{{Lon: 0, Lat: -1}, {Lon: 0, Lat: 1}}, style.Default())
	ents := s.Entities()
	require.Len(t, ents, 1)
	assert.True(t, ents[0].Reference)
	assert.Equal(t, h, ents[0].ID)
}

func TestSetViewMode(t *testing.T) {
	s := New()

	s.SetViewMode(ViewTranslucent, 0.18)
	assert.Equal(t, ViewTranslucent, s.Mode)
	assert.InDelta(t, 0.18, s.GroundNearAlpha, 1e-9)
	assert.InDelta(t, 0.30, s.GroundFarAlpha, 1e-9)
	assert.False(t, s.DepthTest)

	// idempotent
	s.SetViewMode(ViewTranslucent, 0.18)
	assert.InDelta(t, 0.18, s.GroundNearAlpha, 1e-9)

	// far alpha never exceeds 1
	s.SetViewMode(ViewTranslucent, 0.95)
	assert.InDelta(t, 1.0, s.GroundFarAlpha, 1e-9)

	s.SetViewMode(ViewSpace, 0.18)
	assert.Equal(t, ViewSpace, s.Mode)
	assert.Zero(t, s.GroundNearAlpha)
	assert.Zero(t, s.GroundFarAlpha)
	assert.True(t, s.DepthTest)

	// unrecognized mode falls back to space
	s.SetViewMode(ViewMode("wireframe"), 0.5)
	assert.Equal(t, ViewSpace, s.Mode)
}

func TestParseViewMode(t *testing.T) {
	assert.Equal(t, ViewSpace, ParseViewMode("space"))
	assert.Equal(t, ViewTranslucent, ParseViewMode("translucent"))
	assert.Equal(t, DefaultViewMode, ParseViewMode(""))
	assert.Equal(t, DefaultViewMode, ParseViewMode("opaque"))
}

func TestFitBounds(t *testing.T) {
	cam := FitBounds(geom.Bounds{MinLon: 10, MaxLon: 20, MinLat: 40, MaxLat: 44})
	assert.InDelta(t, 15, cam.Lon, 1e-9)
	assert.InDelta(t, 42, cam.Lat, 1e-9)
	assert.InDelta(t, 12, cam.Span, 1e-9) // max span 10 with 1.2 margin

	world := FitBounds(geom.EmptyBounds())
	assert.Equal(t, WorldCamera(), world)
}

func TestCameraZoomAndPan(t *testing.T) {
	cam := Camera{Lon: 0, Lat: 0, Span: 12}
	cam.ZoomIn()
	assert.InDelta(t, 10, cam.Span, 1e-9)
	cam.ZoomOut()
	assert.InDelta(t, 12, cam.Span, 1e-9)

	cam.Pan(0.5, -0.25)
	assert.InDelta(t, 6, cam.Lon, 1e-9)
	assert.InDelta(t, -3, cam.Lat, 1e-9)
}

func TestLerp(t *testing.T) {
	a := Camera{Lon: 0, Lat: 0, Span: 360}
	b := Camera{Lon: 10, Lat: 20, Span: 4}
	mid := Lerp(a, b, 0.5)
	assert.InDelta(t, 5, mid.Lon, 1e-9)
	assert.InDelta(t, 10, mid.Lat, 1e-9)
	assert.InDelta(t, 182, mid.Span, 1e-9)
	assert.Equal(t, a, Lerp(a, b, 0))
	assert.Equal(t, b, Lerp(a, b, 1))
}
