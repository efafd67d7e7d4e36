package geom

// MapPositions returns a copy of g with fn applied to every leaf position.
// The result has identical nesting shape and element count; fn is invoked
// once per leaf, depth-first. g is never mutated.
func MapPositions(g Geometry, fn func(Position) Position) Geometry {
	out := Geometry{Type: g.Type}
	switch g.Type {
	case TypePoint:
		out.Point = fn(g.Point)
	case TypeMultiPoint, TypeLineString:
		out.Points = mapPositions(g.Points, fn)
	case TypeMultiLineString, TypePolygon:
		out.Lines = mapLines(g.Lines, fn)
	case TypeMultiPolygon:
		out.Polygons = make([][][]Position, len(g.Polygons))
		for i, rings := range g.Polygons {
			out.Polygons[i] = mapLines(rings, fn)
		}
	case TypeGeometryCollection:
		out.Geometries = make([]Geometry, len(g.Geometries))
		for i, sub := range g.Geometries {
			out.Geometries[i] = MapPositions(sub, fn)
		}
	}
	return out
}

func mapPositions(pts []Position, fn func(Position) Position) []Position {
	if pts == nil {
		return nil
	}
	out := make([]Position, len(pts))
	for i, p := range pts {
		out[i] = fn(p)
	}
	return out
}

func mapLines(lines [][]Position, fn func(Position) Position) [][]Position {
	if lines == nil {
		return nil
	}
	out := make([][]Position, len(lines))
	for i, ln := range lines {
		out[i] = mapPositions(ln, fn)
	}
	return out
}

// MapDocument applies MapPositions to every feature geometry and returns a
// new document. Property maps are shared with the input, never written to.
func MapDocument(d *Document, fn func(Position) Position) *Document {
	out := &Document{Kind: d.Kind, Features: make([]Feature, len(d.Features))}
	for i, f := range d.Features {
		nf := Feature{Properties: f.Properties, ID: f.ID}
		if f.Geometry != nil {
			g := MapPositions(*f.Geometry, fn)
			nf.Geometry = &g
		}
		out.Features[i] = nf
	}
	return out
}

// EachPosition visits every leaf position of g depth-first.
func EachPosition(g Geometry, visit func(Position)) {
	switch g.Type {
	case TypePoint:
		visit(g.Point)
	case TypeMultiPoint, TypeLineString:
		for _, p := range g.Points {
			visit(p)
		}
	case TypeMultiLineString, TypePolygon:
		for _, ln := range g.Lines {
			for _, p := range ln {
				visit(p)
			}
		}
	case TypeMultiPolygon:
		for _, rings := range g.Polygons {
			for _, ring := range rings {
				for _, p := range ring {
					visit(p)
				}
			}
		}
	case TypeGeometryCollection:
		for _, sub := range g.Geometries {
			EachPosition(sub, visit)
		}
	}
}
