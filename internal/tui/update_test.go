package tui

import (
	"io"
	"testing"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"globeview/internal/viewer"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		nm, _ := m.Update(keyMsg(k))
		var ok bool
		m, ok = nm.(Model)
		require.True(t, ok)
	}
	return m
}

func sidebarModel(t *testing.T) Model {
	t.Helper()
	m := New(viewer.NewSession(viewer.DefaultSettings(), log.New(io.Discard)))
	m.width, m.height = 80, 24
	m.showSidebar = true
	m.l.SetSize(26, 20)
	m.l.SetItems([]list.Item{
		fileItem{title: "a.geojson", desc: ".geojson", path: "/tmp/a.geojson"},
		fileItem{title: "b.geojson", desc: ".geojson", path: "/tmp/b.geojson"},
		fileItem{title: "c.geojson", desc: ".geojson", path: "/tmp/c.geojson"},
	})
	return m
}

func TestSidebarKeysReachList(t *testing.T) {
	m := sidebarModel(t)
	require.Equal(t, 0, m.l.Index())

	m = press(t, m, "down")
	assert.Equal(t, 1, m.l.Index())
	m = press(t, m, "down")
	assert.Equal(t, 2, m.l.Index())

	it, ok := m.l.SelectedItem().(fileItem)
	require.True(t, ok)
	assert.Equal(t, "c.geojson", it.title)
}

func TestSidebarFiltering(t *testing.T) {
	m := sidebarModel(t)
	m = press(t, m, "/")
	require.Equal(t, list.Filtering, m.l.FilterState())

	// while filtering, keys go to the filter input, not global bindings
	span := m.session.Scene.Cam.Span
	m = press(t, m, "b")
	assert.Equal(t, span, m.session.Scene.Cam.Span)
	assert.Equal(t, "b", m.l.FilterInput.Value())
}

func TestSidebarHiddenKeepsListIdle(t *testing.T) {
	m := sidebarModel(t)
	m.showSidebar = false
	m = press(t, m, "down")
	assert.Equal(t, 0, m.l.Index())
}

func TestGridSpacingClamped(t *testing.T) {
	m := sidebarModel(t)
	m.showSidebar = false

	for i := 0; i < 20; i++ {
		m = press(t, m, "[")
	}
	assert.Equal(t, 0.0625, m.session.Settings.GridDeg)

	for i := 0; i < 20; i++ {
		m = press(t, m, "]")
	}
	assert.Equal(t, 64.0, m.session.Settings.GridDeg)
}
