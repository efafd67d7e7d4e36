package tui

import (
	"math"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"globeview/internal/geom"
	"globeview/internal/scene"
	"globeview/internal/style"
)

// projectMicro maps lon/lat into the 2x4 microgrid through the camera.
// The scale is uniform in degrees per micro-pixel, keyed to the width.
func (m Model) projectMicro(p geom.Position, w, h int) (int, int, bool) {
	cam := m.session.Scene.Cam
	if cam.Span <= 0 || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	wMic, hMic := w*2, h*4
	scale := cam.Span / float64(wMic)
	mx := wMic/2 + int(math.Round((p.Lon-cam.Lon)/scale))
	my := hMic/2 - int(math.Round((p.Lat-cam.Lat)/scale))
	return mx, my, true
}

// cellToLonLat inverts projectMicro at the center of a map cell.
func (m Model) cellToLonLat(cx, cy, w, h int) (float64, float64, bool) {
	cam := m.session.Scene.Cam
	if cam.Span <= 0 || w <= 1 || h <= 1 {
		return 0, 0, false
	}
	wMic, hMic := w*2, h*4
	scale := cam.Span / float64(wMic)
	lon := cam.Lon + float64(cx*2+1-wMic/2)*scale
	lat := cam.Lat - float64(cy*4+2-hMic/2)*scale
	return lon, lat, true
}

// renderMap rasterizes the scene onto a braille canvas: reference lines
// first, then polygon fills and edges, data lines, and points on top.
func (m Model) renderMap(w, h int) string {
	br := newBrailleBuf(w, h)
	ents := m.session.Scene.Entities()

	for _, e := range ents {
		if e.Kind == scene.KindPolyline && e.Reference {
			m.drawPolyline(br, e, w, h, blendHex(e.Style.Stroke, e.Style.FillOpacity))
		}
	}
	for _, e := range ents {
		if e.Kind == scene.KindPolygon {
			m.drawPolygon(br, e, w, h)
		}
	}
	for _, e := range ents {
		if e.Kind == scene.KindPolyline && !e.Reference {
			m.drawPolyline(br, e, w, h, hexOf(e.Style.Stroke))
		}
	}
	for _, e := range ents {
		if e.Kind == scene.KindPoint {
			m.drawPoint(br, e, w, h)
		}
	}
	return strings.Join(br.toLines(), "\n")
}

func (m Model) drawPolyline(br *brailleBuf, e *scene.Entity, w, h int, col string) {
	thick := e.Style.StrokeWidth >= 3
	var prev *[2]int
	for _, p := range e.Line {
		mx, my, ok := m.projectMicro(p, w, h)
		if !ok {
			continue
		}
		if prev != nil {
			br.drawLineMicro(prev[0], prev[1], mx, my, col)
			if thick {
				br.drawLineMicro(prev[0], prev[1]+1, mx, my+1, col)
			}
		}
		prev = &[2]int{mx, my}
	}
}

func (m Model) drawPolygon(br *brailleBuf, e *scene.Entity, w, h int) {
	// project rings to micro coords
	var ringsMic [][][2]int
	for _, ring := range e.Rings {
		var sm [][2]int
		for _, p := range ring {
			mx, my, ok := m.projectMicro(p, w, h)
			if !ok {
				continue
			}
			sm = append(sm, [2]int{mx, my})
		}
		if len(sm) >= 3 {
			ringsMic = append(ringsMic, sm)
		}
	}
	if len(ringsMic) == 0 {
		return
	}
	// fill using even-odd rule per scanline on the outer ring (holes
	// ignored for now)
	fill := blendHex(e.Style.Fill, e.Style.FillOpacity)
	outer := ringsMic[0]
	hMic := h * 4
	for yMic := 0; yMic < hMic; yMic++ {
		var xs []int
		for i := 0; i < len(outer); i++ {
			a := outer[i]
			b := outer[(i+1)%len(outer)]
			if a[1] == b[1] { // horizontal edge: skip
				continue
			}
			y0, y1 := a[1], b[1]
			x0, x1 := a[0], b[0]
			if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
				t := float64(yMic-y0) / float64(y1-y0)
				xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			xstart, xend := xs[i], xs[i+1]
			if xstart > xend {
				xstart, xend = xend, xstart
			}
			for xMic := max(0, xstart); xMic <= xend; xMic++ {
				br.setPixel(xMic, yMic, fill)
			}
		}
	}
	// outline every ring in the stroke color
	stroke := hexOf(e.Style.Stroke)
	for _, r := range ringsMic {
		for i := 0; i < len(r); i++ {
			a := r[i]
			b := r[(i+1)%len(r)]
			br.drawLineMicro(a[0], a[1], b[0], b[1], stroke)
		}
	}
}

func (m Model) drawPoint(br *brailleBuf, e *scene.Entity, w, h int) {
	mx, my, ok := m.projectMicro(e.Point, w, h)
	if !ok {
		return
	}
	r := markerRadiusMicro(e.Style.MarkerSize)
	br.ring(mx, my, r+1, blendHex(style.PointOutline, style.PointOutlineAlpha))
	br.fillDisc(mx, my, r, hexOf(e.Style.Marker))
}

// markerRadiusMicro converts the simplestyle pixel size to micro-pixels
// (one micro-pixel is roughly 4 screen pixels in common terminal fonts).
func markerRadiusMicro(s style.MarkerSize) int {
	return s.Pixels() / 4
}

func hexOf(c colorful.Color) string {
	return c.Clamped().Hex()
}

// blendHex simulates alpha by blending toward the map background color.
func blendHex(c colorful.Color, alpha float64) string {
	if alpha >= 1 {
		return hexOf(c)
	}
	if alpha < 0 {
		alpha = 0
	}
	return canvasBg.BlendRgb(c.Clamped(), alpha).Clamped().Hex()
}
