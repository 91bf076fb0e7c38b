package view

import (
	"github.com/1broseidon/deskfolio/internal/geom"
	"github.com/1broseidon/deskfolio/internal/wm"
)

// Insets reserves space around the maximized region.
type Insets struct {
	Top    int `yaml:"top"`
	Left   int `yaml:"left"`
	Right  int `yaml:"right"`
	Bottom int `yaml:"bottom"`
}

// DefaultMaximizeInsets keeps maximized windows below the top bar and above
// the dock.
func DefaultMaximizeInsets() Insets {
	return Insets{Top: 40, Left: 0, Right: 0, Bottom: 80}
}

// Chrome sizes the window decorations in pixels.
type Chrome struct {
	TitleBarHeight   int `yaml:"title_bar_height"`
	ButtonSize       int `yaml:"button_size"`
	ButtonGap        int `yaml:"button_gap"`
	ButtonInset      int `yaml:"button_inset"`
	ResizeHandleSize int `yaml:"resize_handle_size"`
}

// DefaultChrome matches the browser rendering: a 40px title bar with three
// 12px traffic-light buttons and a 16px corner handle.
func DefaultChrome() Chrome {
	return Chrome{
		TitleBarHeight:   40,
		ButtonSize:       12,
		ButtonGap:        8,
		ButtonInset:      16,
		ResizeHandleSize: 16,
	}
}

// Part identifies a region of a window frame.
type Part int

const (
	PartNone Part = iota
	PartBody
	PartTitleBar
	PartClose
	PartMinimize
	PartMaximize
	PartResizeHandle
)

// String returns the string representation of the part
func (p Part) String() string {
	switch p {
	case PartNone:
		return "none"
	case PartBody:
		return "body"
	case PartTitleBar:
		return "title_bar"
	case PartClose:
		return "close"
	case PartMinimize:
		return "minimize"
	case PartMaximize:
		return "maximize"
	case PartResizeHandle:
		return "resize_handle"
	default:
		return "unknown"
	}
}

// IsControl reports whether the part is one of the title-bar buttons.
func (p Part) IsControl() bool {
	return p == PartClose || p == PartMinimize || p == PartMaximize
}

// Layout computes frames and decoration regions.
type Layout struct {
	Chrome   Chrome
	Maximize Insets
}

// DefaultLayout returns the browser layout.
func DefaultLayout() Layout {
	return Layout{Chrome: DefaultChrome(), Maximize: DefaultMaximizeInsets()}
}

// Frame returns where w renders on a viewport of size vp. The second result
// is false for closed and minimized windows, which are not rendered.
func (l Layout) Frame(w wm.Window, vp geom.Size) (geom.Rect, bool) {
	if !w.Visible() {
		return geom.Rect{}, false
	}
	if w.Maximized {
		return geom.Rect{
			X:      l.Maximize.Left,
			Y:      l.Maximize.Top,
			Width:  geom.Floor(vp.Width-l.Maximize.Left-l.Maximize.Right, 0),
			Height: geom.Floor(vp.Height-l.Maximize.Top-l.Maximize.Bottom, 0),
		}, true
	}
	return w.Rect(), true
}

// TitleBar returns the title-bar strip of a frame.
func (l Layout) TitleBar(frame geom.Rect) geom.Rect {
	h := l.Chrome.TitleBarHeight
	if h > frame.Height {
		h = frame.Height
	}
	return geom.Rect{X: frame.X, Y: frame.Y, Width: frame.Width, Height: h}
}

// Buttons returns the close, minimize and maximize button rects, left to
// right, vertically centred in the title bar.
func (l Layout) Buttons(frame geom.Rect) [3]geom.Rect {
	c := l.Chrome
	y := frame.Y + (c.TitleBarHeight-c.ButtonSize)/2
	var out [3]geom.Rect
	for i := range out {
		out[i] = geom.Rect{
			X:      frame.X + c.ButtonInset + i*(c.ButtonSize+c.ButtonGap),
			Y:      y,
			Width:  c.ButtonSize,
			Height: c.ButtonSize,
		}
	}
	return out
}

// ResizeHandle returns the bottom-right corner handle of a frame.
func (l Layout) ResizeHandle(frame geom.Rect) geom.Rect {
	s := l.Chrome.ResizeHandleSize
	return geom.Rect{
		X:      frame.X + frame.Width - s,
		Y:      frame.Y + frame.Height - s,
		Width:  s,
		Height: s,
	}
}

// PartAt returns the part of w under p, given its rendered frame. The
// resize handle exists only while the window is not maximized.
func (l Layout) PartAt(w wm.Window, frame geom.Rect, p geom.Point) Part {
	if !frame.Contains(p) {
		return PartNone
	}
	if !w.Maximized && l.ResizeHandle(frame).Contains(p) {
		return PartResizeHandle
	}
	if l.TitleBar(frame).Contains(p) {
		buttons := l.Buttons(frame)
		parts := [3]Part{PartClose, PartMinimize, PartMaximize}
		for i, r := range buttons {
			if r.Contains(p) {
				return parts[i]
			}
		}
		return PartTitleBar
	}
	return PartBody
}

// Hit is the result of a window hit test.
type Hit struct {
	ID    wm.ID
	Part  Part
	Frame geom.Rect
}

// HitTest finds the top-most rendered window under p. stack must be ordered
// bottom to top (see wm.Registry.Stacking).
func (l Layout) HitTest(stack []wm.Window, vp geom.Size, p geom.Point) (Hit, bool) {
	for i := len(stack) - 1; i >= 0; i-- {
		w := stack[i]
		frame, ok := l.Frame(w, vp)
		if !ok {
			continue
		}
		if part := l.PartAt(w, frame, p); part != PartNone {
			return Hit{ID: w.ID, Part: part, Frame: frame}, true
		}
	}
	return Hit{}, false
}
