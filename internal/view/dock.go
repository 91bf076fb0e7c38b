package view

import (
	"github.com/1broseidon/deskfolio/internal/geom"
	"github.com/1broseidon/deskfolio/internal/wm"
)

// DockMetrics sizes the dock bar at the bottom of the viewport.
type DockMetrics struct {
	ItemSize     int `yaml:"item_size"`
	Gap          int `yaml:"gap"`
	Padding      int `yaml:"padding"`
	Height       int `yaml:"height"`
	BottomMargin int `yaml:"bottom_margin"`
}

// DefaultDockMetrics returns the resting (unmagnified) dock geometry.
func DefaultDockMetrics() DockMetrics {
	return DockMetrics{
		ItemSize:     40,
		Gap:          8,
		Padding:      16,
		Height:       64,
		BottomMargin: 16,
	}
}

// DockItem is one launcher in the dock.
type DockItem struct {
	ID      wm.ID
	Label   string
	Glyph   string
	Open    bool
	Focused bool
	Rect    geom.Rect
}

// Dock lays out one item per window identity.
type Dock struct {
	Metrics DockMetrics
	// Glyphs maps identities to the icon shown in the dock.
	Glyphs map[wm.ID]string
}

// Bar returns the dock background rect for n items.
func (d Dock) Bar(n int, vp geom.Size) geom.Rect {
	m := d.Metrics
	width := 2 * m.Padding
	if n > 0 {
		width += n*m.ItemSize + (n-1)*m.Gap
	}
	return geom.Rect{
		X:      (vp.Width - width) / 2,
		Y:      vp.Height - m.BottomMargin - m.Height,
		Width:  width,
		Height: m.Height,
	}
}

// Items builds the dock from windows in declaration order. top is the
// registry's z counter, used for the focus marker.
func (d Dock) Items(windows []wm.Window, top int, vp geom.Size) []DockItem {
	m := d.Metrics
	bar := d.Bar(len(windows), vp)
	y := bar.Y + (bar.Height-m.ItemSize)/2
	items := make([]DockItem, 0, len(windows))
	for i, w := range windows {
		items = append(items, DockItem{
			ID:      w.ID,
			Label:   w.Title,
			Glyph:   d.Glyphs[w.ID],
			Open:    w.Open,
			Focused: w.Visible() && w.Z == top,
			Rect: geom.Rect{
				X:      bar.X + m.Padding + i*(m.ItemSize+m.Gap),
				Y:      y,
				Width:  m.ItemSize,
				Height: m.ItemSize,
			},
		})
	}
	return items
}

// ItemAt returns the dock item under p.
func ItemAt(items []DockItem, p geom.Point) (wm.ID, bool) {
	for _, it := range items {
		if it.Rect.Contains(p) {
			return it.ID, true
		}
	}
	return "", false
}
