package geom

import (
	"encoding/json"
	"errors"
	"fmt"
)

// GeometryType tags the variant stored in a Geometry.
type GeometryType string

const (
	TypePoint              GeometryType = "Point"
	TypeMultiPoint         GeometryType = "MultiPoint"
	TypeLineString         GeometryType = "LineString"
	TypeMultiLineString    GeometryType = "MultiLineString"
	TypePolygon            GeometryType = "Polygon"
	TypeMultiPolygon       GeometryType = "MultiPolygon"
	TypeGeometryCollection GeometryType = "GeometryCollection"
)

// Geometry is a tagged variant over the GeoJSON geometry kinds. Exactly one
// coordinate field is meaningful, selected by Type:
//
//	Point              -> Point
//	MultiPoint         -> Points
//	LineString         -> Points
//	MultiLineString    -> Lines
//	Polygon            -> Lines (rings: first outer, following holes)
//	MultiPolygon       -> Polygons
//	GeometryCollection -> Geometries
type Geometry struct {
	Type       GeometryType
	Point      Position
	Points     []Position
	Lines      [][]Position
	Polygons   [][][]Position
	Geometries []Geometry
}

// Feature pairs a geometry with its property bag. Geometry may be nil
// (GeoJSON allows null geometry); such features carry no coordinates.
type Feature struct {
	Geometry   *Geometry
	Properties map[string]any
	ID         any
}

// RootKind records which GeoJSON root form a Document was decoded from.
type RootKind int

const (
	RootFeatureCollection RootKind = iota
	RootFeature
	RootGeometry
)

// Document is a decoded GeoJSON root: a FeatureCollection, a single
// Feature, or a bare geometry (wrapped in an anonymous feature). Decoding
// always builds a fresh typed tree, so the source bytes and anything the
// caller parsed them into are never shared or mutated.
type Document struct {
	Kind     RootKind
	Features []Feature
}

// DecodeDocument parses GeoJSON text into a Document.
func DecodeDocument(data []byte) (*Document, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("geojson: %w", err)
	}
	t, _ := raw["type"].(string)
	switch t {
	case "":
		return nil, errors.New("geojson: missing type")
	case "FeatureCollection":
		d := &Document{Kind: RootFeatureCollection}
		fs, _ := raw["features"].([]any)
		for _, f := range fs {
			fm, ok := f.(map[string]any)
			if !ok {
				continue
			}
			d.Features = append(d.Features, featureFromAny(fm))
		}
		return d, nil
	case "Feature":
		return &Document{Kind: RootFeature, Features: []Feature{featureFromAny(raw)}}, nil
	default:
		g, ok := geometryFromAny(raw)
		if !ok {
			return nil, errors.New("geojson: unsupported type: " + t)
		}
		return &Document{Kind: RootGeometry, Features: []Feature{{Geometry: &g}}}, nil
	}
}

func featureFromAny(fm map[string]any) Feature {
	f := Feature{ID: fm["id"]}
	if pm, ok := fm["properties"].(map[string]any); ok {
		f.Properties = pm
	}
	if gm, ok := fm["geometry"].(map[string]any); ok {
		if g, ok := geometryFromAny(gm); ok {
			f.Geometry = &g
		}
	}
	return f
}

// geometryFromAny converts one decoded JSON geometry object into the typed
// variant. Malformed coordinate nodes are skipped rather than failing the
// whole document.
func geometryFromAny(gm map[string]any) (Geometry, bool) {
	gt, _ := gm["type"].(string)
	c := gm["coordinates"]
	switch GeometryType(gt) {
	case TypePoint:
		p, ok := positionFromAny(c)
		if !ok {
			return Geometry{}, false
		}
		return Geometry{Type: TypePoint, Point: p}, true
	case TypeMultiPoint:
		return Geometry{Type: TypeMultiPoint, Points: positionsFromAny(c)}, true
	case TypeLineString:
		return Geometry{Type: TypeLineString, Points: positionsFromAny(c)}, true
	case TypeMultiLineString:
		return Geometry{Type: TypeMultiLineString, Lines: linesFromAny(c)}, true
	case TypePolygon:
		return Geometry{Type: TypePolygon, Lines: linesFromAny(c)}, true
	case TypeMultiPolygon:
		return Geometry{Type: TypeMultiPolygon, Polygons: polygonsFromAny(c)}, true
	case TypeGeometryCollection:
		g := Geometry{Type: TypeGeometryCollection}
		gs, _ := gm["geometries"].([]any)
		for _, el := range gs {
			em, ok := el.(map[string]any)
			if !ok {
				continue
			}
			if sub, ok := geometryFromAny(em); ok {
				g.Geometries = append(g.Geometries, sub)
			}
		}
		return g, true
	}
	return Geometry{}, false
}

func positionFromAny(v any) (Position, bool) {
	a, ok := v.([]any)
	if !ok || len(a) < 2 {
		return Position{}, false
	}
	lon, lok := a[0].(float64)
	lat, aok := a[1].(float64)
	if !lok || !aok {
		return Position{}, false
	}
	p := Position{Lon: lon, Lat: lat}
	if len(a) >= 3 {
		if z, ok := a[2].(float64); ok {
			p.Z, p.HasZ = z, true
		}
	}
	return p, true
}

func positionsFromAny(v any) []Position {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []Position
	for _, el := range arr {
		if p, ok := positionFromAny(el); ok {
			out = append(out, p)
		}
	}
	return out
}

func linesFromAny(v any) [][]Position {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	var out [][]Position
	for _, el := range arr {
		if pts := positionsFromAny(el); pts != nil {
			out = append(out, pts)
		}
	}
	return out
}

func polygonsFromAny(v any) [][][]Position {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	var out [][][]Position
	for _, el := range arr {
		if rings := linesFromAny(el); rings != nil {
			out = append(out, rings)
		}
	}
	return out
}
