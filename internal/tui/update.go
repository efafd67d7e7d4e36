package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"globeview/internal/apperr"
	"globeview/internal/geom"
	"globeview/internal/scene"
	"globeview/internal/viewer"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(28-2, m.height-1-2) // provisional; refined in View
		}
	case loadedMsg:
		m.loading = false
		m.status = m.session.Install(msg.ds)
		m.session.Settings.Data = msg.source
		m.hint = ""
		if m.session.Settings.Fly {
			m.flying = true
			m.flyT = 0
			m.flyFrom = m.session.Scene.Cam
			m.flyGoal = scene.FitBounds(msg.ds.Bounds)
			return m, flyTick()
		}
		m.session.Scene.Cam = scene.FitBounds(msg.ds.Bounds)
		return m, nil
	case loadErrMsg:
		m.loading = false
		m.status = "load error: " + msg.err.Error()
		return m, nil
	case flyTickMsg:
		if !m.flying {
			return m, nil
		}
		m.flyT += float64(1) / (flyDuration.Seconds() * flyFrameRate)
		if m.flyT >= 1 {
			m.flying = false
			m.session.Scene.Cam = m.flyGoal
			return m, nil
		}
		// smoothstep easing
		t := m.flyT * m.flyT * (3 - 2*m.flyT)
		m.session.Scene.Cam = scene.Lerp(m.flyFrom, m.flyGoal, t)
		return m, flyTick()
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.urlMode {
			return m.updateURLPrompt(msg)
		}
		nm, cmd := m.updateKeys(msg)
		// pass keys to the list when visible
		if nm.showSidebar {
			var lcmd tea.Cmd
			nm.l, lcmd = nm.l.Update(msg)
			return nm, tea.Batch(cmd, lcmd)
		}
		return nm, cmd
	case tea.MouseMsg:
		m.trackHover(msg)
	}
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.showAttrs {
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateURLPrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.urlMode = false
		m.urlInput.Blur()
		return m, nil
	case "enter":
		src := strings.TrimSpace(m.urlInput.Value())
		m.urlMode = false
		m.urlInput.Blur()
		if src == "" {
			m.status = "url: empty"
			return m, nil
		}
		// a pasted share link carries the full configuration
		if st, ok := viewer.ParseShareLink(src); ok {
			m.session.Settings = st
			m.session.Scene.SetViewMode(st.View, st.GroundAlpha)
			m.session.RebuildGraticule()
			if st.Data == "" {
				m.status = "applied shared settings (no data source)"
				return m, nil
			}
			src = st.Data
		}
		m.loading = true
		m.status = "loading " + src
		return m, m.loadCmd(src)
	}
	var cmd tea.Cmd
	m.urlInput, cmd = m.urlInput.Update(msg)
	return m, cmd
}

// Grid spacing bounds for the [ ] keys.
const (
	minGridDeg = 0.05
	maxGridDeg = 64.0
)

func (m Model) updateKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	cam := &m.session.Scene.Cam
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "+", "=":
		cam.ZoomIn()
		m.status = fmt.Sprintf("span: %.3f°", cam.Span)
	case "-", "_":
		cam.ZoomOut()
		m.status = fmt.Sprintf("span: %.3f°", cam.Span)
	case "up":
		cam.Pan(0, 0.04)
	case "down":
		cam.Pan(0, -0.04)
	case "left":
		cam.Pan(-0.04, 0)
	case "right":
		cam.Pan(0.04, 0)
	case "tab":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
			m.l.SetSize(28-2, m.height-1-2)
		}
	case "enter":
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				m.loading = true
				m.status = "loading " + it.title
				return m, m.loadCmd(it.path)
			}
		}
	case "u":
		m.urlMode = true
		m.urlInput.SetValue("")
		m.urlInput.Focus()
		m.status = "enter a source"
	case "r":
		if src := m.session.Settings.Data; src != "" {
			m.loading = true
			m.status = "reloading " + src
			return m, m.loadCmd(src)
		}
		m.status = "nothing to reload"
	case "g":
		m.session.SetGridOn(!m.session.Settings.GridOn)
		m.status = fmt.Sprintf("grid: %v", m.session.Settings.GridOn)
	case "[":
		if d := m.session.Settings.GridDeg / 2; d >= minGridDeg {
			m.session.SetGridSpacing(d)
		}
		m.status = fmt.Sprintf("grid spacing: %g°", m.session.Settings.GridDeg)
	case "]":
		if d := m.session.Settings.GridDeg * 2; d <= maxGridDeg {
			m.session.SetGridSpacing(d)
		}
		m.status = fmt.Sprintf("grid spacing: %g°", m.session.Settings.GridDeg)
	case "v":
		mode := m.session.ToggleViewMode()
		m.status = "view: " + string(mode)
	case "z":
		c := m.session.CycleZConvention()
		m.status = "z convention: " + string(c)
	case "c":
		link, err := m.session.CopyShareLink()
		if err != nil {
			if apperr.Is(err, apperr.CodeClipboard) {
				m.status = "clipboard unavailable: " + link
			} else {
				m.status = "copy error: " + err.Error()
			}
		} else {
			m.status = "copied share link"
		}
	case "a":
		m.showAttrs = !m.showAttrs
		if m.showAttrs {
			m.refreshAttrsFromCurrent()
		}
	case "i":
		m.inspect()
	case "h":
		m.helpVisible = !m.helpVisible
	case "esc":
		m.inspectPopup = ""
		m.showAttrs = false
	}
	return m, nil
}

// inspect finds the vertex nearest the viewport center and opens a popup
// with dataset metadata and the vertex's position and height.
func (m *Model) inspect() {
	p, ok := m.nearestVertex()
	if !ok {
		m.inspectPopup = "no feature nearby"
		m.status = m.inspectPopup
		return
	}
	b := m.session.Bounds
	name := m.session.SourceName()
	if name == "" {
		name = "<none>"
	}
	height := "n/a"
	if p.HasZ {
		height = fmt.Sprintf("%.1f m", p.Z)
	}
	meta := []string{
		fmt.Sprintf("name: %s", name),
		fmt.Sprintf("bounds: [%.5f, %.5f, %.5f, %.5f]", b.MinLon, b.MinLat, b.MaxLon, b.MaxLat),
		fmt.Sprintf("nearest: lon=%.6f lat=%.6f", p.Lon, p.Lat),
		fmt.Sprintf("height: %s", height),
		fmt.Sprintf("z convention: %s", m.session.Settings.Z),
	}
	m.inspectPopup = strings.Join(meta, "\n")
	m.status = "inspect popup"
}

// nearestVertex scans data entity vertices for the one closest to the
// camera center.
func (m Model) nearestVertex() (geom.Position, bool) {
	cam := m.session.Scene.Cam
	best := geom.Position{}
	bestD := -1.0
	consider := func(p geom.Position) {
		dx := p.Lon - cam.Lon
		dy := p.Lat - cam.Lat
		d := dx*dx + dy*dy
		if bestD < 0 || d < bestD {
			bestD = d
			best = p
		}
	}
	for _, e := range m.session.Scene.Entities() {
		if e.Reference {
			continue
		}
		switch e.Kind {
		case scene.KindPoint:
			consider(e.Point)
		case scene.KindPolyline:
			for _, p := range e.Line {
				consider(p)
			}
		case scene.KindPolygon:
			for _, ring := range e.Rings {
				for _, p := range ring {
					consider(p)
				}
			}
		}
	}
	return best, bestD >= 0
}

// trackHover records the lon/lat under the mouse when it is over the map.
func (m *Model) trackHover(msg tea.MouseMsg) {
	sidebarWidth := 0
	if m.showSidebar {
		sidebarWidth = 28
	}
	headerHeight := 1
	footerHeight := 2
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 4 {
		contentHeight = 4
	}
	contentWidth := max(10, m.width)
	mapWidth := contentWidth - sidebarWidth - 1
	if mapWidth < 10 {
		mapWidth = 10
	}
	mapOriginX := sidebarWidth
	if m.showSidebar {
		mapOriginX++
	}
	cx, cy := msg.X-mapOriginX, msg.Y-headerHeight
	if cx >= 0 && cx < mapWidth && cy >= 0 && cy < contentHeight {
		if lon, lat, ok := m.cellToLonLat(cx, cy, mapWidth, contentHeight); ok {
			m.hovering = true
			m.hoverLon, m.hoverLat = lon, lat
			return
		}
	}
	m.hovering = false
}
