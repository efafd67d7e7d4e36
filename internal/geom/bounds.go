package geom

// Bounds is the minimal axis-aligned lon/lat rectangle around a set of
// coordinates. The zero-data state is inverted (MinLon > MaxLon) so that
// any real coordinate loosens it; callers must check Empty before use.
type Bounds struct {
	MinLon float64
	MaxLon float64
	MinLat float64
	MaxLat float64
}

// EmptyBounds returns the inverted "no data" sentinel.
func EmptyBounds() Bounds {
	return Bounds{MinLon: 180, MaxLon: -180, MinLat: 90, MaxLat: -90}
}

// Empty reports whether no coordinate has been folded in.
func (b Bounds) Empty() bool {
	return b.MinLon > b.MaxLon || b.MinLat > b.MaxLat
}

// Extend loosens the bounds to include p. The Z component is ignored.
func (b *Bounds) Extend(p Position) {
	if p.Lon < b.MinLon {
		b.MinLon = p.Lon
	}
	if p.Lon > b.MaxLon {
		b.MaxLon = p.Lon
	}
	if p.Lat < b.MinLat {
		b.MinLat = p.Lat
	}
	if p.Lat > b.MaxLat {
		b.MaxLat = p.Lat
	}
}

func (b Bounds) LonSpan() float64 { return b.MaxLon - b.MinLon }
func (b Bounds) LatSpan() float64 { return b.MaxLat - b.MinLat }

// Center returns the midpoint of the bounds.
func (b Bounds) Center() (lon, lat float64) {
	return (b.MinLon + b.MaxLon) / 2, (b.MinLat + b.MaxLat) / 2
}

// GeometryBounds scans every leaf coordinate of g.
func GeometryBounds(g Geometry) Bounds {
	b := EmptyBounds()
	EachPosition(g, b.Extend)
	return b
}

// DocumentBounds scans every feature of d. Features with missing geometry
// and empty coordinate arrays contribute nothing; a document with zero
// coordinates yields the empty sentinel.
func DocumentBounds(d *Document) Bounds {
	b := EmptyBounds()
	for _, f := range d.Features {
		if f.Geometry == nil {
			continue
		}
		EachPosition(*f.Geometry, b.Extend)
	}
	return b
}
