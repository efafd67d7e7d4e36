// Package viewer owns the load-and-render lifecycle: fetching and decoding
// GeoJSON, reprojecting its third coordinate into renderer height, scanning
// bounds, applying simplestyle, and populating the scene. The session's
// top-level state (dataset handles, graticule handles, bounds) is replaced
// wholesale on every load, never incrementally mutated.
package viewer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"

	"globeview/internal/apperr"
	"globeview/internal/geom"
	"globeview/internal/scene"
	"globeview/internal/style"
)

// Dataset is a decoded document plus everything derived once per load.
// Raw keeps the untransformed coordinates so the height transform can be
// re-applied when the Z-convention changes, without refetching.
type Dataset struct {
	Raw    *geom.Document
	Bounds geom.Bounds
	Name   string
}

// Session is the controller behind the UI. Overlapping loads are not
// guarded: the last one to complete wins.
type Session struct {
	Scene    *scene.Scene
	Settings Settings
	Bounds   geom.Bounds

	dataset     *Dataset
	dataHandles []scene.Handle
	gridHandles []scene.Handle

	client *http.Client
	logger *log.Logger
}

// NewSession builds a session with the given settings applied to a fresh
// scene. logger must not be nil; pass log.New(io.Discard) to silence it.
func NewSession(st Settings, logger *log.Logger) *Session {
	sc := scene.New()
	sc.SetViewMode(st.View, st.GroundAlpha)
	return &Session{
		Scene:    sc,
		Settings: st,
		Bounds:   geom.EmptyBounds(),
		client:   &http.Client{Timeout: 30 * time.Second},
		logger:   logger,
	}
}

// Dataset returns the currently installed dataset, or nil.
func (s *Session) Dataset() *Dataset { return s.dataset }

// SourceName returns a short display name for the current dataset.
func (s *Session) SourceName() string {
	if s.dataset == nil {
		return ""
	}
	return s.dataset.Name
}

// FetchDataset loads and decodes a GeoJSON source. http(s) URLs are fetched
// (a non-2xx response is an error, no retry); anything else is read as a
// local file. Safe to call off the event loop; it touches no session state.
func (s *Session) FetchDataset(ctx context.Context, source string) (*Dataset, error) {
	var (
		data []byte
		name string
		err  error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		data, err = s.fetchURL(ctx, source)
		name = filepath.Base(strings.TrimRight(source, "/"))
	} else {
		data, err = os.ReadFile(source)
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeFileNotFound, err, "read %s", source)
		}
		name = filepath.Base(source)
	}
	if err != nil {
		return nil, err
	}
	doc, err := geom.DecodeDocument(data)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInvalidGeoJSON, err, "parse %s", name)
	}
	b := geom.DocumentBounds(doc)
	s.logger.Debug("decoded dataset", "name", name, "features", len(doc.Features), "empty", b.Empty())
	return &Dataset{Raw: doc, Bounds: b, Name: name}, nil
}

func (s *Session) fetchURL(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeFetchFailed, err, "fetch %s", u)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeFetchFailed, err, "fetch %s", u)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperr.New(apperr.CodeFetchFailed, "fetch %s: %s", u, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// Install replaces the session's dataset: prior data entities and graticule
// lines are removed, the height transform for the current Z-convention is
// applied to a copy of the raw document, styled entities are added, and the
// graticule is rebuilt over the new bounds.
func (s *Session) Install(ds *Dataset) string {
	s.dataset = ds
	s.Bounds = ds.Bounds
	s.reinstall()
	s.RebuildGraticule()
	pts, lns, polys := s.counts()
	s.logger.Info("installed dataset", "name", ds.Name, "pts", pts, "ls", lns, "poly", polys)
	return fmt.Sprintf("loaded: %s  counts: pts=%d ls=%d poly=%d", ds.Name, pts, lns, polys)
}

// reinstall repopulates data entities from the raw document under the
// current Z-convention.
func (s *Session) reinstall() {
	s.Scene.RemoveAll(s.dataHandles)
	s.dataHandles = nil
	if s.dataset == nil {
		return
	}
	doc := geom.MapDocument(s.dataset.Raw, geom.HeightTransform(s.Settings.Z))
	for _, f := range doc.Features {
		if f.Geometry == nil {
			continue
		}
		st := style.Resolve(f.Properties)
		s.addGeometry(*f.Geometry, st)
	}
}

func (s *Session) addGeometry(g geom.Geometry, st style.Style) {
	switch g.Type {
	case geom.TypePoint:
		s.dataHandles = append(s.dataHandles, s.Scene.AddPoint(g.Point, st))
	case geom.TypeMultiPoint:
		for _, p := range g.Points {
			s.dataHandles = append(s.dataHandles, s.Scene.AddPoint(p, st))
		}
	case geom.TypeLineString:
		if len(g.Points) > 0 {
			s.dataHandles = append(s.dataHandles, s.Scene.AddPolyline(g.Points, st))
		}
	case geom.TypeMultiLineString:
		for _, ln := range g.Lines {
			s.dataHandles = append(s.dataHandles, s.Scene.AddPolyline(ln, st))
		}
	case geom.TypePolygon:
		if len(g.Lines) > 0 {
			s.dataHandles = append(s.dataHandles, s.Scene.AddPolygon(g.Lines, st))
		}
	case geom.TypeMultiPolygon:
		for _, rings := range g.Polygons {
			s.dataHandles = append(s.dataHandles, s.Scene.AddPolygon(rings, st))
		}
	case geom.TypeGeometryCollection:
		for _, sub := range g.Geometries {
			s.addGeometry(sub, st)
		}
	}
}

func (s *Session) counts() (pts, lines, polys int) {
	for _, e := range s.Scene.Entities() {
		if e.Reference {
			continue
		}
		switch e.Kind {
		case scene.KindPoint:
			pts++
		case scene.KindPolyline:
			lines++
		case scene.KindPolygon:
			polys++
		}
	}
	return
}

// graticuleStyle is the thin, semi-transparent uniform look of grid lines.
func graticuleStyle() style.Style {
	st := style.Default()
	st.Stroke = style.ParseColor("#6b7280")
	st.StrokeWidth = 1
	st.FillOpacity = 0.35
	return st
}

// RebuildGraticule regenerates grid lines over the current bounds. Prior
// lines are removed first; there is no garbage collection of old handles.
// Nothing is generated when the grid is off, the bounds are empty, or the
// spacing fails the generator's guard.
func (s *Session) RebuildGraticule() {
	s.Scene.RemoveAll(s.gridHandles)
	s.gridHandles = nil
	if !s.Settings.GridOn {
		return
	}
	st := graticuleStyle()
	for _, ln := range geom.Graticule(s.Bounds, s.Settings.GridDeg) {
		s.gridHandles = append(s.gridHandles, s.Scene.AddReferenceLine(ln, st))
	}
}

// GridHandles exposes the live graticule handles (for tests and debugging).
func (s *Session) GridHandles() []scene.Handle { return s.gridHandles }

// SetZConvention re-derives entity heights from the raw document.
func (s *Session) SetZConvention(c geom.ZConvention) {
	if s.Settings.Z == c {
		return
	}
	s.Settings.Z = c
	s.reinstall()
}

// CycleZConvention steps elevation_m -> depth_m -> depth_km -> elevation_m.
func (s *Session) CycleZConvention() geom.ZConvention {
	switch s.Settings.Z {
	case geom.ElevationMeters:
		s.SetZConvention(geom.DepthMeters)
	case geom.DepthMeters:
		s.SetZConvention(geom.DepthKilometers)
	default:
		s.SetZConvention(geom.ElevationMeters)
	}
	return s.Settings.Z
}

// SetViewMode applies a surface presentation; idempotent.
func (s *Session) SetViewMode(m scene.ViewMode) {
	s.Settings.View = m
	s.Scene.SetViewMode(m, s.Settings.GroundAlpha)
}

// ToggleViewMode flips between space and translucent.
func (s *Session) ToggleViewMode() scene.ViewMode {
	if s.Settings.View == scene.ViewSpace {
		s.SetViewMode(scene.ViewTranslucent)
	} else {
		s.SetViewMode(scene.ViewSpace)
	}
	return s.Settings.View
}

// SetGridOn toggles the graticule and rebuilds it.
func (s *Session) SetGridOn(on bool) {
	s.Settings.GridOn = on
	s.RebuildGraticule()
}

// SetGridSpacing changes the spacing and rebuilds. Non-positive or
// non-finite spacing simply yields no lines.
func (s *Session) SetGridSpacing(deg float64) {
	s.Settings.GridDeg = deg
	s.RebuildGraticule()
}

// CopyShareLink writes the current deep link to the system clipboard.
// Returns the link for display.
func (s *Session) CopyShareLink() (string, error) {
	link := s.Settings.ShareLink()
	if err := clipboard.WriteAll(link); err != nil {
		return link, apperr.Wrap(apperr.CodeClipboard, err, "copy share link")
	}
	return link, nil
}
