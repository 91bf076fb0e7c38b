package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/deskfolio/internal/geom"
)

// canvas is a grid of terminal cells painted back to front. Each cell holds
// a rune and the index of its style.
type canvas struct {
	width, height int
	runes         [][]rune
	styles        [][]styleID
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: width, height: height}
	c.runes = make([][]rune, height)
	c.styles = make([][]styleID, height)
	for y := range c.runes {
		c.runes[y] = make([]rune, width)
		c.styles[y] = make([]styleID, width)
		for x := range c.runes[y] {
			c.runes[y][x] = ' '
		}
	}
	return c
}

func (c *canvas) set(x, y int, r rune, s styleID) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.runes[y][x] = r
	c.styles[y][x] = s
}

// fill paints every cell of r (in cells).
func (c *canvas) fill(r geom.Rect, ch rune, s styleID) {
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			c.set(x, y, ch, s)
		}
	}
}

// text writes s from (x, y), clipped to maxWidth cells. It returns the
// number of cells written.
func (c *canvas) text(x, y int, s string, st styleID, maxWidth int) int {
	n := 0
	for _, r := range s {
		if n >= maxWidth {
			break
		}
		c.set(x+n, y, r, st)
		n++
	}
	return n
}

// plain returns the canvas without styling.
func (c *canvas) plain() string {
	lines := make([]string, c.height)
	for y, row := range c.runes {
		lines[y] = string(row)
	}
	return strings.Join(lines, "\n")
}

// render joins runs of equally styled cells and renders each run once.
func (c *canvas) render(styles []lipgloss.Style) string {
	var b strings.Builder
	for y, row := range c.runes {
		if y > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && c.styles[y][x] == c.styles[y][start] {
				continue
			}
			b.WriteString(styles[c.styles[y][start]].Render(string(row[start:x])))
			start = x
		}
	}
	return b.String()
}
