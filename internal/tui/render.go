package tui

import (
	"strings"
	"time"

	"github.com/1broseidon/deskfolio/internal/geom"
	"github.com/1broseidon/deskfolio/internal/view"
	"github.com/1broseidon/deskfolio/internal/wm"
)

// grid converts between terminal cells and desktop pixels. A cell stands
// for its centre pixel, so a click on a cell hits exactly what the painter
// drew there.
type grid struct {
	cell geom.Size
}

func (g grid) center(col, row int) geom.Point {
	return geom.Point{
		X: col*g.cell.Width + g.cell.Width/2,
		Y: row*g.cell.Height + g.cell.Height/2,
	}
}

func (g grid) viewport(cols, rows int) geom.Size {
	return geom.Size{Width: cols * g.cell.Width, Height: rows * g.cell.Height}
}

// cells returns the cell span covering r.
func (g grid) cells(r geom.Rect) geom.Rect {
	x0 := floorDiv(r.X, g.cell.Width)
	y0 := floorDiv(r.Y, g.cell.Height)
	x1 := floorDiv(r.X+r.Width+g.cell.Width-1, g.cell.Width)
	y1 := floorDiv(r.Y+r.Height+g.cell.Height-1, g.cell.Height)
	return geom.Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// each calls fn for every cell whose centre lies inside r.
func (g grid) each(r geom.Rect, fn func(col, row int, p geom.Point)) {
	span := g.cells(r)
	for row := span.Y; row < span.Y+span.Height; row++ {
		for col := span.X; col < span.X+span.Width; col++ {
			if p := g.center(col, row); r.Contains(p) {
				fn(col, row, p)
			}
		}
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// painter draws one frame of the desktop.
type painter struct {
	grid    grid
	shell   *view.Shell
	content func(wm.ID) []string
	barH    int
}

func (pt painter) paint(sc view.Scene, cols, rows int, now time.Time) *canvas {
	c := newCanvas(cols, rows)
	c.fill(geom.Rect{Width: cols, Height: rows}, ' ', styleDesktop)
	pt.paintIcons(c, sc.Viewport)
	for _, w := range sc.Stack() {
		pt.paintWindow(c, w, sc)
	}
	pt.paintTopBar(c, sc, now)
	pt.paintDock(c, sc)
	return c
}

func (pt painter) paintIcons(c *canvas, vp geom.Size) {
	icons := pt.shell.Icons
	for i, r := range icons.Rects(vp) {
		icon := icons.Items[i]
		st := styleIcon
		if icon.Key == icons.Selected() {
			st = styleIconSelected
		}
		pt.grid.each(r, func(col, row int, _ geom.Point) {
			c.set(col, row, ' ', st)
		})
		span := pt.grid.cells(r)
		midRow := span.Y + span.Height/2 - 1
		centerText(c, span, midRow, icon.Glyph, st)
		centerText(c, span, midRow+1, icon.Label, st)
	}
}

func (pt painter) paintWindow(c *canvas, w wm.Window, sc view.Scene) {
	layout := pt.shell.Layout
	frame, ok := layout.Frame(w, sc.Viewport)
	if !ok {
		return
	}
	titleStyle := styleTitle
	if w.Z == sc.Top {
		titleStyle = styleTitleFocused
	}

	pt.grid.each(frame, func(col, row int, p geom.Point) {
		switch layout.PartAt(w, frame, p) {
		case view.PartTitleBar:
			c.set(col, row, ' ', titleStyle)
		case view.PartClose:
			c.set(col, row, '●', styleClose)
		case view.PartMinimize:
			c.set(col, row, '●', styleMinimize)
		case view.PartMaximize:
			c.set(col, row, '●', styleMaximize)
		case view.PartResizeHandle:
			c.set(col, row, '◢', styleResize)
		default:
			c.set(col, row, ' ', styleBody)
		}
	})

	bar := pt.grid.cells(layout.TitleBar(frame))
	buttons := pt.grid.cells(layout.Buttons(frame)[2])
	titleCol := buttons.X + buttons.Width + 1
	titleRow := bar.Y + bar.Height/2
	if bar.Height > 1 && bar.Height%2 == 0 {
		titleRow--
	}
	c.text(titleCol, titleRow, w.Title, titleStyle, bar.X+bar.Width-titleCol-1)

	if pt.content == nil {
		return
	}
	body := pt.grid.cells(frame)
	left := body.X + 2
	width := body.Width - 4
	row := bar.Y + bar.Height + 1
	bottom := body.Y + body.Height - 1
	for _, line := range pt.content(w.ID) {
		for _, wrapped := range wrap(line, width) {
			if row >= bottom {
				return
			}
			c.text(left, row, wrapped, styleBody, width)
			row++
		}
	}
}

func (pt painter) paintTopBar(c *canvas, sc view.Scene, now time.Time) {
	pt.grid.each(view.TopBar(pt.barH, sc.Viewport), func(col, row int, _ geom.Point) {
		c.set(col, row, ' ', styleTopBar)
	})
	rows := 0
	for pt.grid.center(0, rows).Y < pt.barH {
		rows++
	}
	row := max(rows-1, 0) / 2

	n := c.text(1, row, "deskfolio", styleTopBarClock, c.width)
	for _, w := range sc.Windows {
		if w.Visible() && w.Z == sc.Top {
			c.text(n+3, row, w.Title, styleTopBar, c.width-n-12)
			break
		}
	}
	clock := view.Clock(now)
	c.text(c.width-len(clock)-1, row, clock, styleTopBarClock, len(clock))
}

func (pt painter) paintDock(c *canvas, sc view.Scene) {
	dock := pt.shell.Dock
	pt.grid.each(dock.Bar(len(sc.Windows), sc.Viewport), func(col, row int, _ geom.Point) {
		c.set(col, row, ' ', styleDock)
	})
	for _, it := range dock.Items(sc.Windows, sc.Top, sc.Viewport) {
		st := styleDockItem
		if it.Focused {
			st = styleDockFocused
		}
		pt.grid.each(it.Rect, func(col, row int, _ geom.Point) {
			c.set(col, row, ' ', st)
		})
		span := pt.grid.cells(it.Rect)
		glyph := it.Glyph
		if glyph == "" && it.Label != "" {
			glyph = string([]rune(it.Label)[:1])
		}
		centerText(c, span, span.Y+span.Height/2, glyph, st)
		if it.Open {
			c.set(span.X+span.Width/2, span.Y+span.Height, '•', styleDockOpen)
		}
	}
}

func centerText(c *canvas, span geom.Rect, row int, s string, st styleID) {
	n := len([]rune(s))
	if n > span.Width {
		n = span.Width
	}
	c.text(span.X+(span.Width-n)/2, row, s, st, span.Width)
}

// wrap breaks s on spaces into lines of at most width runes.
func wrap(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	if s == "" {
		return []string{""}
	}
	var lines []string
	var line []rune
	for _, word := range strings.Fields(s) {
		r := []rune(word)
		if len(line) > 0 && len(line)+1+len(r) > width {
			lines = append(lines, string(line))
			line = line[:0]
		}
		for len(r) > width {
			lines = append(lines, string(r[:width]))
			r = r[width:]
		}
		if len(line) > 0 {
			line = append(line, ' ')
		}
		line = append(line, r...)
	}
	return append(lines, string(line))
}
