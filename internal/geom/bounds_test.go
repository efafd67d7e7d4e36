package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundsSinglePoint(t *testing.T) {
	d, err := DecodeDocument([]byte(`{"type":"Point","coordinates":[10,20]}`))
	require.NoError(t, err)
	b := DocumentBounds(d)
	assert.Equal(t, Bounds{MinLon: 10, MaxLon: 10, MinLat: 20, MaxLat: 20}, b)
	assert.False(t, b.Empty())
}

func TestBoundsEmptyCollection(t *testing.T) {
	d, err := DecodeDocument([]byte(`{"type":"FeatureCollection","features":[]}`))
	require.NoError(t, err)
	b := DocumentBounds(d)
	assert.True(t, b.Empty())
	assert.Equal(t, EmptyBounds(), b)
	assert.Greater(t, b.MinLon, b.MaxLon)
}

func TestBoundsIgnoresMissingGeometryAndZ(t *testing.T) {
	in := `{
	  "type": "FeatureCollection",
	  "features": [
	    {"type": "Feature", "properties": {}, "geometry": null},
	    {"type": "Feature", "properties": {}, "geometry": {"type": "LineString", "coordinates": []}},
	    {"type": "Feature", "properties": {}, "geometry":
	      {"type": "LineString", "coordinates": [[-5, -3, 999], [7, 4, -999]]}}
	  ]
	}`
	d, err := DecodeDocument([]byte(in))
	require.NoError(t, err)
	b := DocumentBounds(d)
	assert.Equal(t, Bounds{MinLon: -5, MaxLon: 7, MinLat: -3, MaxLat: 4}, b)
}

func TestBoundsCenterAndSpans(t *testing.T) {
	b := Bounds{MinLon: -10, MaxLon: 30, MinLat: 0, MaxLat: 20}
	lon, lat := b.Center()
	assert.Equal(t, 10.0, lon)
	assert.Equal(t, 10.0, lat)
	assert.Equal(t, 40.0, b.LonSpan())
	assert.Equal(t, 20.0, b.LatSpan())
}
