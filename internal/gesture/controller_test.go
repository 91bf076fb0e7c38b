package gesture

import (
	"math/rand"
	"testing"

	"github.com/1broseidon/deskfolio/internal/geom"
	"github.com/1broseidon/deskfolio/internal/wm"
)

func newTestController(t *testing.T) (*Controller, *wm.Registry) {
	t.Helper()
	reg, err := wm.NewRegistry([]wm.Window{
		{ID: "about", Open: true, Z: 10, X: 100, Y: 80, Width: 800, Height: 600},
		{ID: "work", Open: true, Z: 10, X: 150, Y: 120, Width: 800, Height: 600},
	}, wm.Options{Viewport: geom.Size{Width: 1280, Height: 800}, ZTop: 20})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return NewController(reg), reg
}

func TestStartDrag_FocusesAndRecordsSnapshot(t *testing.T) {
	c, reg := newTestController(t)
	if !c.StartDrag("about", ButtonPrimary, geom.Point{X: 500, Y: 100}) {
		t.Fatalf("expected drag to start")
	}
	s := c.Session()
	if s.Kind != KindDrag || s.Target != "about" {
		t.Fatalf("unexpected session %+v", s)
	}
	if s.Origin != (geom.Point{X: 500, Y: 100}) || s.Start != (geom.Point{X: 100, Y: 80}) {
		t.Fatalf("unexpected snapshot %+v", s)
	}
	if !reg.IsFocused("about") {
		t.Fatalf("expected about focused after press")
	}
}

func TestSecondaryPressNeverStartsSession(t *testing.T) {
	c, reg := newTestController(t)
	top := reg.Top()
	for _, b := range []Button{ButtonSecondary, ButtonMiddle} {
		if c.StartDrag("about", b, geom.Point{}) || c.StartResize("about", b, geom.Point{}) {
			t.Fatalf("%s press started a session", b)
		}
	}
	if c.Session().Active() {
		t.Fatalf("expected idle")
	}
	if reg.Top() != top {
		t.Fatalf("non-primary press must not focus")
	}
}

func TestPressOnMaximizedFocusesWithoutSession(t *testing.T) {
	c, reg := newTestController(t)
	reg.ToggleMaximize("work")
	reg.BringToFront("about")

	if c.StartDrag("work", ButtonPrimary, geom.Point{}) {
		t.Fatalf("drag must not start on a maximized window")
	}
	if !reg.IsFocused("work") {
		t.Fatalf("press must still focus the maximized window")
	}
	if c.StartResize("work", ButtonPrimary, geom.Point{}) {
		t.Fatalf("resize must not start on a maximized window")
	}
}

func TestDragClampsToViewport(t *testing.T) {
	c, _ := newTestController(t)
	c.StartDrag("about", ButtonPrimary, geom.Point{X: 200, Y: 90})

	w, ok := c.Move(geom.Point{X: -5000, Y: -5000})
	if !ok || w.X != -400 || w.Y != 24 {
		t.Fatalf("expected (-400,24), got (%d,%d) ok=%v", w.X, w.Y, ok)
	}
	w, _ = c.Move(geom.Point{X: 9000, Y: 9000})
	if w.X != 1230 || w.Y != 750 {
		t.Fatalf("expected (1230,750), got (%d,%d)", w.X, w.Y)
	}
}

func TestResizeFloor(t *testing.T) {
	c, _ := newTestController(t)
	c.StartResize("about", ButtonPrimary, geom.Point{X: 900, Y: 680})
	w, ok := c.Move(geom.Point{X: 0, Y: -220})
	if !ok || w.Width != 300 || w.Height != 200 {
		t.Fatalf("expected 300x200, got %dx%d", w.Width, w.Height)
	}
	if w.X != 100 || w.Y != 80 {
		t.Fatalf("resize must not move the window, got (%d,%d)", w.X, w.Y)
	}
}

func TestMinimumSizeUnderRandomResizes(t *testing.T) {
	c, reg := newTestController(t)
	rng := rand.New(rand.NewSource(3))
	for round := 0; round < 50; round++ {
		origin := geom.Point{X: rng.Intn(1280), Y: rng.Intn(800)}
		c.StartResize("work", ButtonPrimary, origin)
		for i := 0; i < 20; i++ {
			c.Move(geom.Point{X: rng.Intn(4000) - 2000, Y: rng.Intn(4000) - 2000})
		}
		c.Release()
		if w := reg.Window("work"); w.Width < 300 || w.Height < 200 {
			t.Fatalf("round %d: size %dx%d below minimum", round, w.Width, w.Height)
		}
	}
}

func TestDragReplayIdempotence(t *testing.T) {
	final := geom.Point{X: 740, Y: -310}
	origin := geom.Point{X: 400, Y: 100}
	bounds := geom.DefaultBounds()
	vp := geom.Size{Width: 1280, Height: 800}
	want := bounds.ClampPosition(geom.Point{X: 100 + final.X - origin.X, Y: 80 + final.Y - origin.Y}, vp)

	for _, steps := range []int{0, 1, 5, 40} {
		c, _ := newTestController(t)
		c.StartDrag("about", ButtonPrimary, origin)
		rng := rand.New(rand.NewSource(int64(steps)))
		for i := 0; i < steps; i++ {
			c.Move(geom.Point{X: rng.Intn(3000) - 1500, Y: rng.Intn(3000) - 1500})
		}
		w, _ := c.Move(final)
		if w.X != want.X || w.Y != want.Y {
			t.Fatalf("steps=%d: got (%d,%d), want (%d,%d)", steps, w.X, w.Y, want.X, want.Y)
		}
	}
}

func TestReleaseAlwaysEndsSession(t *testing.T) {
	c, _ := newTestController(t)
	c.StartResize("about", ButtonPrimary, geom.Point{})
	ended := c.Release()
	if ended.Kind != KindResize || ended.Target != "about" {
		t.Fatalf("expected ended resize session, got %+v", ended)
	}
	if c.Session().Active() {
		t.Fatalf("expected idle after release")
	}
	if c.Release().Active() {
		t.Fatalf("release while idle must report an idle session")
	}
	if _, ok := c.Move(geom.Point{X: 10, Y: 10}); ok {
		t.Fatalf("move while idle must be a no-op")
	}
}

func TestMoveAgainstMaximizedOrClosedTargetKeepsSession(t *testing.T) {
	c, reg := newTestController(t)
	c.StartDrag("about", ButtonPrimary, geom.Point{X: 0, Y: 0})

	reg.ToggleMaximize("about")
	if _, ok := c.Move(geom.Point{X: 50, Y: 50}); ok {
		t.Fatalf("move on maximized target must be a no-op")
	}
	if !c.Session().Active() {
		t.Fatalf("session must stay active until release")
	}

	reg.ToggleMaximize("about")
	reg.Close("about")
	if _, ok := c.Move(geom.Point{X: 50, Y: 50}); ok {
		t.Fatalf("move on closed target must be a no-op")
	}
	if w := reg.Window("about"); w.X != 100 || w.Y != 80 {
		t.Fatalf("closed window moved to (%d,%d)", w.X, w.Y)
	}
}

func TestNewestPressOverwritesSession(t *testing.T) {
	c, _ := newTestController(t)
	c.StartDrag("about", ButtonPrimary, geom.Point{X: 1, Y: 1})
	c.StartResize("work", ButtonPrimary, geom.Point{X: 2, Y: 2})
	s := c.Session()
	if s.Kind != KindResize || s.Target != "work" || s.Start != (geom.Point{X: 800, Y: 600}) {
		t.Fatalf("expected resize on work, got %+v", s)
	}
}

func TestPressThatStartsNothingEndsStaleSession(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*wm.Registry)
		press func(*Controller) bool
	}{
		{
			name:  "secondary",
			press: func(c *Controller) bool { return c.StartDrag("about", ButtonSecondary, geom.Point{}) },
		},
		{
			name:  "maximized",
			setup: func(reg *wm.Registry) { reg.ToggleMaximize("about") },
			press: func(c *Controller) bool { return c.StartResize("about", ButtonPrimary, geom.Point{}) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, reg := newTestController(t)
			c.StartDrag("work", ButtonPrimary, geom.Point{X: 10, Y: 10})
			if tt.setup != nil {
				tt.setup(reg)
			}
			if tt.press(c) {
				t.Fatalf("press should not start a session")
			}
			if s := c.Session(); s.Active() {
				t.Fatalf("stale session survived the newer press: %+v", s)
			}
			if _, ok := c.Move(geom.Point{X: 60, Y: 60}); ok {
				t.Fatalf("move after the newer press should not touch work")
			}
			if w := reg.Window("work"); w.X != 150 || w.Y != 120 {
				t.Fatalf("work moved to (%d,%d)", w.X, w.Y)
			}
		})
	}
}
