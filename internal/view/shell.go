package view

import (
	"sort"
	"time"

	"github.com/1broseidon/deskfolio/internal/geom"
	"github.com/1broseidon/deskfolio/internal/gesture"
	"github.com/1broseidon/deskfolio/internal/intent"
	"github.com/1broseidon/deskfolio/internal/wm"
)

// DefaultDoubleClick is the maximum gap between two presses that count as a
// double click.
const DefaultDoubleClick = 400 * time.Millisecond

// Scene is the window-manager state a Shell needs to route one event.
type Scene struct {
	Windows  []wm.Window
	Top      int
	Viewport geom.Size
}

// Stack returns the visible windows ordered bottom to top.
func (sc Scene) Stack() []wm.Window {
	var out []wm.Window
	for _, w := range sc.Windows {
		if w.Visible() {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Z < out[j].Z })
	return out
}

type zone int

const (
	zoneNone zone = iota
	zoneDock
	zoneControl
)

// press remembers where the primary button went down so a release over the
// same target completes a click.
type press struct {
	zone zone
	id   wm.ID
	part Part
}

type lastClick struct {
	key string
	at  time.Time
}

// Shell routes raw pointer events to the dock, the window chrome and the
// desktop icons, and emits the resulting intents. It keeps only click
// bookkeeping and icon selection; window state stays in the registry.
type Shell struct {
	Layout      Layout
	Dock        Dock
	Icons       *Icons
	DoubleClick time.Duration

	pressed    press
	lastTitle  lastClick
	lastIcon   lastClick
	pendingMax wm.ID
}

// NewShell creates a shell with the default double-click interval.
func NewShell(layout Layout, dock Dock, icons *Icons) *Shell {
	if icons == nil {
		icons = NewIcons(nil, DefaultIconMetrics())
	}
	return &Shell{
		Layout:      layout,
		Dock:        dock,
		Icons:       icons,
		DoubleClick: DefaultDoubleClick,
	}
}

func (s *Shell) isDouble(last *lastClick, key string, at time.Time) bool {
	if last.key == key && !last.at.IsZero() && at.Sub(last.at) <= s.DoubleClick {
		*last = lastClick{}
		return true
	}
	*last = lastClick{key: key, at: at}
	return false
}

// Press handles a pointer-down at p.
func (s *Shell) Press(sc Scene, p geom.Point, b gesture.Button, at time.Time) []intent.Intent {
	s.pressed = press{}

	items := s.Dock.Items(sc.Windows, sc.Top, sc.Viewport)
	if id, ok := ItemAt(items, p); ok {
		// The dock does not stop propagation, so the desktop deselects.
		s.Icons.ClearSelection()
		if b == gesture.ButtonPrimary {
			s.pressed = press{zone: zoneDock, id: id}
		}
		return nil
	}

	if hit, ok := s.Layout.HitTest(sc.Stack(), sc.Viewport, p); ok {
		return s.pressWindow(sc, hit, p, b, at)
	}

	if i, ok := s.Icons.At(p, sc.Viewport); ok {
		icon := s.Icons.Items[i]
		s.Icons.Select(icon.Key)
		if b == gesture.ButtonPrimary && s.isDouble(&s.lastIcon, icon.Key, at) {
			if icon.IsLink() {
				return []intent.Intent{{Kind: intent.OpenLink, URL: icon.URL}}
			}
			return []intent.Intent{intent.For(intent.Open, icon.Window)}
		}
		return nil
	}

	s.Icons.ClearSelection()
	return nil
}

func (s *Shell) pressWindow(sc Scene, hit Hit, p geom.Point, b gesture.Button, at time.Time) []intent.Intent {
	var w wm.Window
	for _, cand := range sc.Windows {
		if cand.ID == hit.ID {
			w = cand
			break
		}
	}

	switch {
	case hit.Part.IsControl():
		// Buttons swallow the press: no focus, no drag.
		if b == gesture.ButtonPrimary {
			s.pressed = press{zone: zoneControl, id: hit.ID, part: hit.Part}
		}
		return nil

	// A started gesture raises the window itself, so each press takes
	// exactly one z value.
	case hit.Part == PartResizeHandle && b == gesture.ButtonPrimary:
		return []intent.Intent{{Kind: intent.StartResize, Target: hit.ID, Point: p, Button: b}}

	case hit.Part == PartTitleBar && b == gesture.ButtonPrimary:
		var out []intent.Intent
		if w.Maximized {
			out = append(out, intent.For(intent.Focus, hit.ID))
		} else {
			out = append(out, intent.Intent{Kind: intent.StartDrag, Target: hit.ID, Point: p, Button: b})
		}
		if s.isDouble(&s.lastTitle, string(hit.ID), at) {
			s.pendingMax = hit.ID
		}
		return out

	default:
		return []intent.Intent{intent.For(intent.Focus, hit.ID)}
	}
}

// Move handles pointer motion anywhere in the viewport.
func (s *Shell) Move(p geom.Point) []intent.Intent {
	return []intent.Intent{{Kind: intent.PointerMove, Point: p}}
}

// Release handles a pointer-up at p. The gesture always ends first; clicks
// completed by this release follow.
func (s *Shell) Release(sc Scene, p geom.Point, at time.Time) []intent.Intent {
	out := []intent.Intent{{Kind: intent.PointerUp, Point: p}}
	pressed := s.pressed
	s.pressed = press{}

	switch pressed.zone {
	case zoneDock:
		items := s.Dock.Items(sc.Windows, sc.Top, sc.Viewport)
		if id, ok := ItemAt(items, p); ok && id == pressed.id {
			out = append(out, intent.For(intent.Toggle, id))
		}
	case zoneControl:
		hit, ok := s.Layout.HitTest(sc.Stack(), sc.Viewport, p)
		if ok && hit.ID == pressed.id && hit.Part == pressed.part {
			out = append(out, intent.For(controlIntent(pressed.part), pressed.id))
		}
	}

	if s.pendingMax != "" {
		out = append(out, intent.For(intent.ToggleMaximize, s.pendingMax))
		s.pendingMax = ""
	}
	return out
}

func controlIntent(p Part) intent.Kind {
	switch p {
	case PartClose:
		return intent.Close
	case PartMinimize:
		return intent.Minimize
	default:
		return intent.ToggleMaximize
	}
}
