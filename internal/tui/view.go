package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"globeview/internal/scene"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	// Layout sizes
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

	// Update list size with accurate content height when sidebar visible
	if m.showSidebar {
		m.l.SetSize(28-2, contentHeight-2)
	}

	// Header
	header := titleStyle.Render(" globeview ─ geojson depth viewer ")
	header = lipgloss.NewStyle().Width(contentWidth).Padding(0).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	// Map viewport
	mapWidth := contentWidth - sidebarWidth - 1
	if mapWidth < 10 {
		mapWidth = 10
	}
	mapHeight := max(4, contentHeight)

	var mapView string
	switch {
	case m.showAttrs:
		// attributes table centered in the map area
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		if colW == 0 {
			colW = min(60, contentWidth-6)
		}
		maxW := min(mapWidth, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(mapHeight-2, 20))
		attrsBox := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, attrsBox)
	case m.urlMode:
		prompt := boxStyle.Render("open source\n\n" + m.urlInput.View() + "\n\nEnter to load; Esc to cancel")
		mapView = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, prompt)
	default:
		ascii := m.renderMap(mapWidth, mapHeight)
		st := lipgloss.NewStyle().Width(mapWidth).Height(mapHeight)
		// translucent mode shows the globe surface as a shaded canvas
		if sc := m.session.Scene; sc.Mode == scene.ViewTranslucent && sc.GroundNearAlpha > 0 {
			bg := canvasBg.BlendRgb(groundColor, sc.GroundNearAlpha).Clamped().Hex()
			st = st.Background(lipgloss.Color(bg))
		}
		mapView = st.Render(ascii)
	}

	// inspect popup takes over the map column until dismissed
	if m.inspectPopup != "" && !m.showAttrs && !m.urlMode {
		maxPopupW := min(48, contentWidth/2)
		if maxPopupW < 20 {
			maxPopupW = 20
		}
		box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).MaxWidth(maxPopupW).Render(m.inspectPopup)
		mapView = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, box)
	}

	// Body row
	var body string
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	} else {
		body = mapView
	}

	// Footer: status + help on the left, settings and hover coords right
	help := m.renderHelp()
	statusText := m.status
	if m.loading {
		statusText += " …"
	}
	if m.hint != "" {
		statusText += "  ·  " + m.hint
	}
	status := dimStyle.Render(" " + statusText + " ")
	right := dimStyle.Render(m.renderIndicators())
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, help)
	spacerW := max(0, contentWidth-lipgloss.Width(left)-lipgloss.Width(right))
	footer := lipgloss.NewStyle().Width(contentWidth).Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, left, strings.Repeat(" ", spacerW), right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}

// renderIndicators summarizes the live configuration in the footer corner.
func (m Model) renderIndicators() string {
	s := m.session.Settings
	parts := []string{
		"z=" + string(s.Z),
		"view=" + string(s.View),
	}
	if s.GridOn {
		parts = append(parts, fmt.Sprintf("grid=%g°", s.GridDeg))
	} else {
		parts = append(parts, "grid=off")
	}
	if m.hovering {
		parts = append(parts, fmt.Sprintf("lon=%.5f lat=%.5f", m.hoverLon, m.hoverLat))
	}
	return strings.Join(parts, "  ") + " "
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→ pan",
		"+/- zoom",
		"Tab files",
		"u url",
		"g grid",
		"[ ] spacing",
		"v view",
		"z depth",
		"c copy link",
		"a attrs",
		"i inspect",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
