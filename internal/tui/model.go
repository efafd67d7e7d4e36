package tui

import (
	"context"
	"os"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"globeview/internal/scene"
	"globeview/internal/viewer"
)

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	status string
	hint   string

	session *viewer.Session

	// File explorer
	cwd string
	l   list.Model

	// URL prompt
	urlMode  bool
	urlInput textinput.Model

	// attributes table
	showAttrs bool
	tbl       table.Model

	loading bool

	// fly-to animation
	flying  bool
	flyFrom scene.Camera
	flyGoal scene.Camera
	flyT    float64

	// hover state
	hovering bool
	hoverLon float64
	hoverLat float64

	// inspect popup
	inspectPopup string
}

// New wires a model around an existing session. The session's Data setting,
// if any, is loaded by Init.
func New(sess *viewer.Session) Model {
	m := Model{
		session:     sess,
		helpVisible: true,
		status:      "globeview ready",
		hint:        "press u to load a URL, tab for files",
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// url prompt setup
	m.urlInput = textinput.New()
	m.urlInput.Placeholder = "GeoJSON URL, file path, or globeview:?... share link"
	m.urlInput.CharLimit = 0
	m.urlInput.Width = 64
	// attributes table setup (columns inferred per dataset)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

func (m Model) Init() tea.Cmd {
	if src := m.session.Settings.Data; src != "" {
		return m.loadCmd(src)
	}
	return nil
}

// messages

type loadedMsg struct {
	ds     *viewer.Dataset
	source string
}

type loadErrMsg struct{ err error }

type flyTickMsg time.Time

const (
	flyFrameRate = 30
	flyDuration  = 700 * time.Millisecond
)

// loadCmd fetches and decodes off the event loop. Overlapping loads are not
// guarded; the last completion wins.
func (m Model) loadCmd(source string) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		ds, err := sess.FetchDataset(context.Background(), source)
		if err != nil {
			return loadErrMsg{err}
		}
		return loadedMsg{ds: ds, source: source}
	}
}

func flyTick() tea.Cmd {
	return tea.Tick(time.Second/flyFrameRate, func(t time.Time) tea.Msg { return flyTickMsg(t) })
}
