package geom

// Position is a single GeoJSON coordinate. Lon/Lat are degrees; Z is the
// optional third value (elevation or depth depending on the dataset's
// convention, renderer height meters after transformation). HasZ
// distinguishes a genuine 0 from an absent third value.
type Position struct {
	Lon  float64
	Lat  float64
	Z    float64
	HasZ bool
}

// Polyline is an ordered run of positions rendered as a connected line.
type Polyline []Position
