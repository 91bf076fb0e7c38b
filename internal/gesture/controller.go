package gesture

import (
	"github.com/1broseidon/deskfolio/internal/geom"
	"github.com/1broseidon/deskfolio/internal/wm"
)

// Controller turns pointer presses, moves and releases into registry
// geometry updates for one window at a time.
type Controller struct {
	reg     *wm.Registry
	session Session
}

// NewController creates an idle controller bound to reg.
func NewController(reg *wm.Registry) *Controller {
	return &Controller{reg: reg}
}

// Session returns the current session.
func (c *Controller) Session() Session {
	return c.session
}

// StartDrag handles a press on the title bar of id. Only primary presses
// count; they focus the window and, unless it is maximized, start a drag.
// Any press, even one that starts nothing, ends the session still recorded.
func (c *Controller) StartDrag(id wm.ID, button Button, p geom.Point) bool {
	return c.start(KindDrag, id, button, p)
}

// StartResize handles a press on the resize handle of id.
func (c *Controller) StartResize(id wm.ID, button Button, p geom.Point) bool {
	return c.start(KindResize, id, button, p)
}

func (c *Controller) start(kind Kind, id wm.ID, button Button, p geom.Point) bool {
	c.session.Reset()
	if button != ButtonPrimary {
		return false
	}
	w := c.reg.BringToFront(id)
	if w.Maximized {
		return false
	}

	start := geom.Point{X: w.X, Y: w.Y}
	if kind == KindResize {
		start = geom.Point{X: w.Width, Y: w.Height}
	}
	c.session = Session{
		Kind:   kind,
		Target: id,
		Origin: p,
		Start:  start,
	}
	return true
}

// Move applies the pointer position to the active session. Geometry is
// recomputed from the start snapshot and the total delta, so dropped or
// replayed moves cannot accumulate error. It returns false when nothing
// was applied.
func (c *Controller) Move(p geom.Point) (wm.Window, bool) {
	s := c.session
	if !s.Active() {
		return wm.Window{}, false
	}
	w := c.reg.Window(s.Target)
	if !w.Open || w.Maximized {
		// Stale target: keep the session until release.
		return w, false
	}

	d := p.Sub(s.Origin)
	b := c.reg.Bounds()
	switch s.Kind {
	case KindDrag:
		return c.reg.SetGeometry(s.Target, wm.MoveTo(s.Start.X+d.X, s.Start.Y+d.Y)), true
	case KindResize:
		width := geom.Floor(s.Start.X+d.X, b.MinWidth)
		height := geom.Floor(s.Start.Y+d.Y, b.MinHeight)
		return c.reg.SetGeometry(s.Target, wm.ResizeTo(width, height)), true
	}
	return w, false
}

// Release ends any session, wherever the pointer is.
func (c *Controller) Release() Session {
	ended := c.session
	c.session.Reset()
	return ended
}
