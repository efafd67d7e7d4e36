package tui

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"globeview/internal/geom"
	"globeview/internal/scene"
	"globeview/internal/style"
	"globeview/internal/viewer"
)

func testModel() Model {
	sess := viewer.NewSession(viewer.DefaultSettings(), log.New(io.Discard))
	sess.Scene.Cam = scene.Camera{Lon: 0, Lat: 0, Span: 4}
	return Model{session: sess}
}

func TestProjectMicroCenter(t *testing.T) {
	m := testModel()
	w, h := 80, 24
	mx, my, ok := m.projectMicro(geom.Position{Lon: 0, Lat: 0}, w, h)
	require.True(t, ok)
	assert.Equal(t, w*2/2, mx)
	assert.Equal(t, h*4/2, my)

	// east is +x, north is -y
	ex, _, _ := m.projectMicro(geom.Position{Lon: 1, Lat: 0}, w, h)
	assert.Greater(t, ex, mx)
	_, ny, _ := m.projectMicro(geom.Position{Lon: 0, Lat: 1}, w, h)
	assert.Less(t, ny, my)
}

func TestProjectMicroGuards(t *testing.T) {
	m := testModel()
	m.session.Scene.Cam.Span = 0
	_, _, ok := m.projectMicro(geom.Position{}, 80, 24)
	assert.False(t, ok)

	m = testModel()
	_, _, ok = m.projectMicro(geom.Position{}, 0, 24)
	assert.False(t, ok)
	_, _, ok = m.cellToLonLat(0, 0, 1, 24)
	assert.False(t, ok)
}

func TestCellToLonLatInvertsProjection(t *testing.T) {
	m := testModel()
	w, h := 80, 24
	for _, cell := range [][2]int{{0, 0}, {40, 12}, {79, 23}, {13, 7}} {
		lon, lat, ok := m.cellToLonLat(cell[0], cell[1], w, h)
		require.True(t, ok)
		mx, my, ok := m.projectMicro(geom.Position{Lon: lon, Lat: lat}, w, h)
		require.True(t, ok)
		assert.Equal(t, cell[0], mx/2, "cell x for %v", cell)
		assert.Equal(t, cell[1], my/4, "cell y for %v", cell)
	}
}

func TestBrailleBufPixels(t *testing.T) {
	b := newBrailleBuf(4, 2)
	b.setPixel(0, 0, "")
	assert.Equal(t, uint8(0x01), b.m[0][0])
	b.setPixel(1, 3, "")
	assert.Equal(t, uint8(0x01|0x80), b.m[0][0])

	// out of range is ignored
	b.setPixel(-1, 0, "")
	b.setPixel(8, 0, "")
	b.setPixel(0, 8, "")

	lines := b.toLines()
	require.Len(t, lines, 2)
	assert.Equal(t, string(rune(0x2800+0x81))+"   ", lines[0])
	assert.Equal(t, "    ", lines[1])
}

func TestBrailleBufColorRuns(t *testing.T) {
	b := newBrailleBuf(3, 1)
	b.setPixel(0, 0, "#ff0000")
	b.setPixel(2, 0, "#ff0000")
	b.setPixel(4, 0, "#00ff00")
	lines := b.toLines()
	require.Len(t, lines, 1)
	// same-color cells render as one run, the third cell as another
	assert.Contains(t, lines[0], string(rune(0x2801)))
}

func TestRenderMapDrawsEntities(t *testing.T) {
	m := testModel()
	st := style.Default()
	m.session.Scene.AddPoint(geom.Position{Lon: 0, Lat: 0, HasZ: true}, st)
	m.session.Scene.AddPolyline([]geom.Position{
		{Lon: -1, Lat: -1}, {Lon: 1, Lat: 1},
	}, st)

	out := m.renderMap(40, 12)
	rows := strings.Split(out, "\n")
	require.Len(t, rows, 12)
	drawn := strings.ContainsFunc(out, func(r rune) bool {
		return r >= 0x2800 && r <= 0x28ff
	})
	assert.True(t, drawn)
}

func TestMarkerRadiusMicro(t *testing.T) {
	assert.Equal(t, 1, markerRadiusMicro(style.MarkerSmall))
	assert.Equal(t, 2, markerRadiusMicro(style.MarkerMedium))
	assert.Equal(t, 3, markerRadiusMicro(style.MarkerLarge))
}
