package view

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/1broseidon/deskfolio/internal/geom"
	"github.com/1broseidon/deskfolio/internal/wm"
)

var testViewport = geom.Size{Width: 1280, Height: 800}

func testWindows() []wm.Window {
	return []wm.Window{
		{ID: "about", Title: "About Me", Open: true, Z: 10, X: 100, Y: 80, Width: 800, Height: 600},
		{ID: "work", Title: "Work", Z: 10, X: 150, Y: 120, Width: 800, Height: 600},
		{ID: "skills", Title: "Skills", Z: 10, X: 200, Y: 160, Width: 600, Height: 400},
		{ID: "contact", Title: "Contact", Z: 10, X: 250, Y: 200, Width: 600, Height: 400},
	}
}

func newTestRegistry(t *testing.T) *wm.Registry {
	t.Helper()
	reg, err := wm.NewRegistry(testWindows(), wm.Options{Viewport: testViewport, ZTop: 20})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return reg
}

func TestFrame(t *testing.T) {
	l := DefaultLayout()
	tests := []struct {
		name   string
		window wm.Window
		want   geom.Rect
		ok     bool
	}{
		{
			name:   "free",
			window: wm.Window{Open: true, X: 100, Y: 80, Width: 800, Height: 600},
			want:   geom.Rect{X: 100, Y: 80, Width: 800, Height: 600},
			ok:     true,
		},
		{
			name:   "maximized",
			window: wm.Window{Open: true, Maximized: true, X: 100, Y: 80, Width: 800, Height: 600},
			want:   geom.Rect{X: 0, Y: 40, Width: 1280, Height: 680},
			ok:     true,
		},
		{
			name:   "closed",
			window: wm.Window{X: 100, Y: 80, Width: 800, Height: 600},
		},
		{
			name:   "minimized",
			window: wm.Window{Open: true, Minimized: true, X: 100, Y: 80, Width: 800, Height: 600},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := l.Frame(tt.window, testViewport)
			if ok != tt.ok {
				t.Fatalf("Frame ok = %v, want %v", ok, tt.ok)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Frame mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPartAt(t *testing.T) {
	l := DefaultLayout()
	w := wm.Window{ID: "about", Open: true, X: 100, Y: 80, Width: 800, Height: 600}
	frame, _ := l.Frame(w, testViewport)

	tests := []struct {
		p    geom.Point
		want Part
	}{
		{geom.Point{X: 50, Y: 50}, PartNone},
		{geom.Point{X: 500, Y: 400}, PartBody},
		{geom.Point{X: 500, Y: 90}, PartTitleBar},
		{geom.Point{X: 120, Y: 98}, PartClose},
		{geom.Point{X: 140, Y: 98}, PartMinimize},
		{geom.Point{X: 160, Y: 98}, PartMaximize},
		{geom.Point{X: 130, Y: 98}, PartTitleBar},
		{geom.Point{X: 890, Y: 670}, PartResizeHandle},
	}
	for _, tt := range tests {
		if got := l.PartAt(w, frame, tt.p); got != tt.want {
			t.Errorf("PartAt(%v) = %s, want %s", tt.p, got, tt.want)
		}
	}

	w.Maximized = true
	frame, _ = l.Frame(w, testViewport)
	corner := geom.Point{X: frame.X + frame.Width - 2, Y: frame.Y + frame.Height - 2}
	if got := l.PartAt(w, frame, corner); got != PartBody {
		t.Fatalf("maximized corner = %s, want body", got)
	}
}

func TestHitTestPicksTopMost(t *testing.T) {
	reg := newTestRegistry(t)
	reg.Open("work")
	l := DefaultLayout()

	// (500,400) lies inside both about and work.
	hit, ok := l.HitTest(reg.Stacking(), reg.Viewport(), geom.Point{X: 500, Y: 400})
	if !ok || hit.ID != "work" {
		t.Fatalf("expected work on top, got %+v ok=%v", hit, ok)
	}

	reg.BringToFront("about")
	hit, ok = l.HitTest(reg.Stacking(), reg.Viewport(), geom.Point{X: 500, Y: 400})
	if !ok || hit.ID != "about" {
		t.Fatalf("expected about on top, got %+v ok=%v", hit, ok)
	}

	reg.Minimize("about")
	hit, ok = l.HitTest(reg.Stacking(), reg.Viewport(), geom.Point{X: 120, Y: 100})
	if ok {
		t.Fatalf("minimized window should not be hit, got %+v", hit)
	}
}
