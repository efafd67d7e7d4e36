package viewer

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"globeview/internal/geom"
	"globeview/internal/scene"
)

func TestSettingsRoundTrip(t *testing.T) {
	in := Settings{
		Data:        "https://example.com/bathymetry.geojson",
		Z:           geom.ElevationMeters,
		View:        scene.ViewTranslucent,
		GridDeg:     2.5,
		GridOn:      false,
		GroundAlpha: 0.42,
		Fly:         false,
	}
	out := ParseQuery(in.Query())
	assert.Equal(t, in, out)
}

func TestParseQueryDefaults(t *testing.T) {
	s := ParseQuery(url.Values{})
	assert.Equal(t, DefaultSettings(), s)
	assert.Equal(t, "", s.Data)
	assert.Equal(t, geom.DepthKilometers, s.Z)
	assert.Equal(t, scene.ViewSpace, s.View)
	assert.Equal(t, 1.0, s.GridDeg)
	assert.True(t, s.GridOn)
	assert.Equal(t, 0.18, s.GroundAlpha)
	assert.True(t, s.Fly)
}

func TestParseQueryFallbacks(t *testing.T) {
	v := url.Values{}
	v.Set("z", "fathoms")
	v.Set("view", "opaque")
	v.Set("grid", "banana")
	v.Set("grid_on", "maybe")
	v.Set("alpha", "7")
	v.Set("fly", "2")
	s := ParseQuery(v)
	assert.Equal(t, DefaultSettings(), s)
}

func TestParseQueryKeepsNonPositiveGrid(t *testing.T) {
	// a non-positive spacing is preserved; the graticule generator's guard
	// suppresses rendering rather than the parser rejecting it
	v := url.Values{}
	v.Set("grid", "-2")
	s := ParseQuery(v)
	assert.Equal(t, -2.0, s.GridDeg)
	assert.Nil(t, geom.Graticule(geom.Bounds{MinLon: 0, MaxLon: 1, MinLat: 0, MaxLat: 1}, s.GridDeg))
}

func TestShareLink(t *testing.T) {
	in := DefaultSettings()
	in.Data = "deep.geojson"
	in.GridDeg = 0.5

	link := in.ShareLink()
	assert.Contains(t, link, "globeview:?")

	out, ok := ParseShareLink(link)
	require.True(t, ok)
	assert.Equal(t, in, out)

	// bare query strings are accepted too
	out, ok = ParseShareLink("?z=depth_m")
	require.True(t, ok)
	assert.Equal(t, geom.DepthMeters, out.Z)

	_, ok = ParseShareLink("https://example.com/data.geojson")
	assert.False(t, ok)
	_, ok = ParseShareLink("plain.geojson")
	assert.False(t, ok)
}
