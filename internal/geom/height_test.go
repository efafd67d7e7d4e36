package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeightMeters(t *testing.T) {
	tests := []struct {
		name   string
		p      Position
		c      ZConvention
		want   float64
		wantOK bool
	}{
		{"DepthKm", Position{Z: 5, HasZ: true}, DepthKilometers, -5000, true},
		{"DepthM", Position{Z: 5, HasZ: true}, DepthMeters, -5, true},
		{"ElevationM", Position{Z: 5, HasZ: true}, ElevationMeters, 5, true},
		{"UnrecognizedActsAsDepthKm", Position{Z: 5, HasZ: true}, ZConvention("bogus"), -5000, true},
		{"NoZ", Position{Lon: 1, Lat: 2}, ElevationMeters, 0, false},
		{"NaNZ", Position{Z: math.NaN(), HasZ: true}, DepthMeters, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, ok := HeightMeters(tc.p, tc.c)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, h)
		})
	}
}

func TestParseZConvention(t *testing.T) {
	assert.Equal(t, ElevationMeters, ParseZConvention("elevation_m"))
	assert.Equal(t, DepthMeters, ParseZConvention("depth_m"))
	assert.Equal(t, DepthKilometers, ParseZConvention("depth_km"))
	assert.Equal(t, DefaultZConvention, ParseZConvention(""))
	assert.Equal(t, DefaultZConvention, ParseZConvention("feet"))
}

func TestHeightTransform(t *testing.T) {
	fn := HeightTransform(DepthKilometers)

	p := fn(Position{Lon: 1, Lat: 2, Z: 3, HasZ: true})
	assert.Equal(t, 1.0, p.Lon)
	assert.Equal(t, 2.0, p.Lat)
	assert.Equal(t, -3000.0, p.Z)
	assert.True(t, p.HasZ)

	flat := fn(Position{Lon: 1, Lat: 2})
	assert.False(t, flat.HasZ)
	assert.Equal(t, 0.0, flat.Z)
}
