package view

import (
	"github.com/1broseidon/deskfolio/internal/geom"
	"github.com/1broseidon/deskfolio/internal/wm"
)

// Icon is a desktop shortcut. It either opens a window or a link.
type Icon struct {
	Key    string
	Label  string
	Glyph  string
	Window wm.ID
	URL    string
}

// IsLink reports whether the icon opens a URL instead of a window.
func (i Icon) IsLink() bool {
	return i.Window == "" && i.URL != ""
}

// IconMetrics places desktop icons in columns from the top-left corner.
type IconMetrics struct {
	Left   int `yaml:"left"`
	Top    int `yaml:"top"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Gap    int `yaml:"gap"`
	// Spacer separates window icons from link icons.
	Spacer int `yaml:"spacer"`
	// BottomReserve keeps icons clear of the dock when wrapping columns.
	BottomReserve int `yaml:"bottom_reserve"`
}

// DefaultIconMetrics returns the desktop icon grid.
func DefaultIconMetrics() IconMetrics {
	return IconMetrics{
		Left:          16,
		Top:           64,
		Width:         112,
		Height:        88,
		Gap:           24,
		Spacer:        16,
		BottomReserve: 96,
	}
}

// Icons is the desktop icon set plus its selection.
type Icons struct {
	Items    []Icon
	Metrics  IconMetrics
	selected string
}

// NewIcons creates an icon set with nothing selected.
func NewIcons(items []Icon, m IconMetrics) *Icons {
	return &Icons{Items: items, Metrics: m}
}

// Rects lays the icons out top to bottom, wrapping into a new column when
// the next icon would run into the bottom reserve.
func (ic *Icons) Rects(vp geom.Size) []geom.Rect {
	m := ic.Metrics
	limit := vp.Height - m.BottomReserve
	rects := make([]geom.Rect, len(ic.Items))
	x, y := m.Left, m.Top
	for i, it := range ic.Items {
		if i > 0 && it.IsLink() && !ic.Items[i-1].IsLink() {
			y += m.Spacer
		}
		if y+m.Height > limit && y != m.Top {
			x += m.Width + m.Gap
			y = m.Top
		}
		rects[i] = geom.Rect{X: x, Y: y, Width: m.Width, Height: m.Height}
		y += m.Height + m.Gap
	}
	return rects
}

// At returns the index of the icon under p.
func (ic *Icons) At(p geom.Point, vp geom.Size) (int, bool) {
	for i, r := range ic.Rects(vp) {
		if r.Contains(p) {
			return i, true
		}
	}
	return -1, false
}

// Select marks key as the selected icon.
func (ic *Icons) Select(key string) {
	ic.selected = key
}

// Selected returns the selected icon key, or "" when nothing is selected.
func (ic *Icons) Selected() string {
	return ic.selected
}

// ClearSelection deselects every icon.
func (ic *Icons) ClearSelection() {
	ic.selected = ""
}
