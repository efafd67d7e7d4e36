package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// brailleBuf is a 2x4-per-cell micro-pixel canvas. Each cell keeps an 8-bit
// dot mask and a foreground color; the last writer to a cell wins its color.
type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
	c    [][]string
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	c := make([][]string, h)
	for i := range m {
		m[i] = make([]uint8, w)
		c[i] = make([]string, w)
	}
	return &brailleBuf{w: w, h: h, m: m, c: c}
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell) in the given
// hex color.
func (b *brailleBuf) setPixel(mx, my int, col string) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy < 0 || cy >= b.h || cx < 0 || cx >= b.w {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	b.m[cy][cx] |= bit
	b.c[cy][cx] = col
}

// drawLineMicro draws a line on the microgrid using Bresenham.
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int, col string) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// fillDisc fills a disc of radius r micro-pixels centered at (mx, my).
func (b *brailleBuf) fillDisc(mx, my, r int, col string) {
	if r <= 0 {
		b.setPixel(mx, my, col)
		return
	}
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				b.setPixel(mx+dx, my+dy, col)
			}
		}
	}
}

// ring draws the circle of radius r around (mx, my), skipping cells already
// set so an outline never overwrites the marker body.
func (b *brailleBuf) ring(mx, my, r int, col string) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			d := dx*dx + dy*dy
			if d > r*r || d < (r-1)*(r-1) {
				continue
			}
			b.setPixel(mx+dx, my+dy, col)
		}
	}
}

// toLines renders the buffer as styled terminal rows. Runs of same-colored
// cells share one ANSI sequence.
func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var sb strings.Builder
		x := 0
		for x < b.w {
			mask := b.m[y][x]
			if mask == 0 {
				start := x
				for x < b.w && b.m[y][x] == 0 {
					x++
				}
				sb.WriteString(strings.Repeat(" ", x-start))
				continue
			}
			col := b.c[y][x]
			var run strings.Builder
			for x < b.w && b.m[y][x] != 0 && b.c[y][x] == col {
				run.WriteRune(rune(0x2800 + int(b.m[y][x])))
				x++
			}
			if col == "" {
				sb.WriteString(run.String())
			} else {
				sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(col)).Render(run.String()))
			}
		}
		out[y] = sb.String()
	}
	return out
}
