// Package scene holds what the renderer draws: an ordered collection of
// styled entities addressed by opaque handles, a camera, and the global
// presentation mode. It carries no rasterization logic; the TUI owns that.
package scene

import (
	"github.com/google/uuid"

	"globeview/internal/geom"
	"globeview/internal/style"
)

// Handle identifies one entity for later removal.
type Handle = uuid.UUID

// Kind discriminates entity variants.
type Kind int

const (
	KindPoint Kind = iota
	KindPolyline
	KindPolygon
)

// Entity is one drawable primitive. Reference marks graticule lines, which
// draw dim and beneath data.
type Entity struct {
	ID        Handle
	Kind      Kind
	Point     geom.Position
	Line      []geom.Position
	Rings     [][]geom.Position
	Style     style.Style
	Reference bool
}

// Scene owns all entities in insertion order. Not safe for concurrent use;
// all access happens on the event loop.
type Scene struct {
	order []Handle
	byID  map[Handle]*Entity

	Cam Camera

	// Surface presentation. GroundFarAlpha and DepthTest record what the
	// view mode asks of a distance-aware renderer; the terminal
	// rasterizer shades the whole canvas with GroundNearAlpha only.
	Mode            ViewMode
	GroundNearAlpha float64
	GroundFarAlpha  float64
	DepthTest       bool
}

func New() *Scene {
	return &Scene{
		byID: make(map[Handle]*Entity),
		Cam:  WorldCamera(),
		Mode: ViewSpace,
	}
}

func (s *Scene) add(e *Entity) Handle {
	e.ID = uuid.New()
	s.byID[e.ID] = e
	s.order = append(s.order, e.ID)
	return e.ID
}

// AddPoint adds a marker at p.
func (s *Scene) AddPoint(p geom.Position, st style.Style) Handle {
	return s.add(&Entity{Kind: KindPoint, Point: p, Style: st})
}

// AddPolyline adds a connected line through pts.
func (s *Scene) AddPolyline(pts []geom.Position, st style.Style) Handle {
	return s.add(&Entity{Kind: KindPolyline, Line: pts, Style: st})
}

// AddReferenceLine adds a graticule line drawn beneath data entities.
func (s *Scene) AddReferenceLine(pts []geom.Position, st style.Style) Handle {
	return s.add(&Entity{Kind: KindPolyline, Line: pts, Style: st, Reference: true})
}

// AddPolygon adds a filled polygon; rings[0] is the outer ring.
func (s *Scene) AddPolygon(rings [][]geom.Position, st style.Style) Handle {
	return s.add(&Entity{Kind: KindPolygon, Rings: rings, Style: st})
}

// Remove deletes one entity; unknown handles are a no-op.
func (s *Scene) Remove(h Handle) bool {
	if _, ok := s.byID[h]; !ok {
		return false
	}
	delete(s.byID, h)
	for i, id := range s.order {
		if id == h {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// RemoveAll deletes each handle individually; prior graticule lines must be
// torn down this way before a new set is added.
func (s *Scene) RemoveAll(hs []Handle) {
	for _, h := range hs {
		s.Remove(h)
	}
}

// Len reports the number of live entities.
func (s *Scene) Len() int { return len(s.order) }

// Entities returns the live entities in insertion order.
func (s *Scene) Entities() []*Entity {
	out := make([]*Entity, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}
