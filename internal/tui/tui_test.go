package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/1broseidon/deskfolio/internal/config"
	"github.com/1broseidon/deskfolio/internal/desktop"
	"github.com/1broseidon/deskfolio/internal/geom"
	"github.com/1broseidon/deskfolio/internal/wm"
)

var testStart = time.Date(2024, 5, 1, 7, 5, 0, 0, time.UTC)

func newTestModel(t *testing.T, follow bool) (model, *desktop.Desktop, *time.Time) {
	t.Helper()
	cfg := config.DefaultConfig()
	vp := geom.Size{Width: 1280, Height: 800}
	desk, err := desktop.New(desktop.Config{
		Windows: cfg.InitialWindows(vp),
		Options: cfg.RegistryOptions(vp),
	})
	if err != nil {
		t.Fatalf("desktop.New: %v", err)
	}
	now := testStart
	m := newModel(Options{Config: cfg, Desktop: desk, FollowTerminal: follow})
	m.clock = func() time.Time { return now }
	m.now = testStart
	m.cols, m.rows = 160, 50
	return m, desk, &now
}

func mouse(m model, action tea.MouseAction, col, row int) model {
	next, _ := m.Update(tea.MouseMsg{X: col, Y: row, Action: action, Button: tea.MouseButtonLeft})
	return next.(model)
}

func click(m model, col, row int) model {
	m = mouse(m, tea.MouseActionPress, col, row)
	return mouse(m, tea.MouseActionRelease, col, row)
}

func window(t *testing.T, d *desktop.Desktop, id wm.ID) wm.Window {
	t.Helper()
	w, err := d.Window(id)
	if err != nil {
		t.Fatalf("Window(%s): %v", id, err)
	}
	return w
}

func TestGridCells(t *testing.T) {
	g := grid{cell: geom.Size{Width: 8, Height: 16}}

	got := g.cells(geom.Rect{X: 100, Y: 80, Width: 800, Height: 600})
	if diff := cmp.Diff(geom.Rect{X: 12, Y: 5, Width: 101, Height: 38}, got); diff != "" {
		t.Fatalf("cells mismatch (-want +got):\n%s", diff)
	}
	if got := g.center(14, 6); got != (geom.Point{X: 116, Y: 104}) {
		t.Fatalf("center(14,6) = %+v", got)
	}
	if floorDiv(-400, 8) != -50 || floorDiv(-401, 8) != -51 || floorDiv(7, 8) != 0 {
		t.Fatal("floorDiv rounds toward negative infinity")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  []string
	}{
		{"hello brave new world", 11, []string{"hello brave", "new world"}},
		{"abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"", 10, []string{""}},
		{"anything", 0, nil},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, wrap(tt.in, tt.width)); diff != "" {
			t.Errorf("wrap(%q, %d) mismatch (-want +got):\n%s", tt.in, tt.width, diff)
		}
	}
}

func TestPaintShowsDesktop(t *testing.T) {
	m, desk, _ := newTestModel(t, false)

	out := m.painter.paint(desk.Scene(), m.cols, m.rows, testStart).plain()
	lines := strings.Split(out, "\n")
	if len(lines) != 50 {
		t.Fatalf("got %d rows, want 50", len(lines))
	}
	if !strings.HasSuffix(lines[0], "07:05 ") || !strings.Contains(lines[0], "deskfolio") {
		t.Fatalf("top bar = %q", lines[0])
	}
	if !strings.Contains(lines[6], "About Me") {
		t.Fatalf("title bar row = %q", lines[6])
	}
	if got := []rune(lines[6])[14]; got != '●' {
		t.Fatalf("close button cell = %q, want ●", got)
	}
	if got := []rune(lines[47])[70]; got != '@' {
		t.Fatalf("dock glyph for about = %q, want @", got)
	}
}

func TestMouseDragMovesWindow(t *testing.T) {
	m, desk, _ := newTestModel(t, false)

	m = mouse(m, tea.MouseActionPress, 30, 6)
	m = mouse(m, tea.MouseActionMotion, 40, 10)
	mouse(m, tea.MouseActionRelease, 40, 10)

	w := window(t, desk, "about")
	if w.X != 180 || w.Y != 144 || w.Z != 21 {
		t.Fatalf("about = (%d,%d) z=%d, want (180,144) z=21", w.X, w.Y, w.Z)
	}
	if s := desk.Snapshot().Session; s.Kind != "idle" {
		t.Fatalf("session = %+v, want idle", s)
	}
}

func TestMouseCloseButton(t *testing.T) {
	m, desk, _ := newTestModel(t, false)

	click(m, 14, 6)
	if window(t, desk, "about").Open {
		t.Fatal("about still open after close click")
	}
}

func TestMouseDoubleClickTitleMaximizes(t *testing.T) {
	m, desk, now := newTestModel(t, false)

	m = click(m, 30, 6)
	*now = now.Add(150 * time.Millisecond)
	click(m, 30, 6)

	if !window(t, desk, "about").Maximized {
		t.Fatal("double click on title bar did not maximize")
	}
}

func TestMouseDockToggles(t *testing.T) {
	m, desk, _ := newTestModel(t, false)

	m = click(m, 69, 46)
	if w := window(t, desk, "about"); w.Z != 21 || w.Minimized {
		t.Fatalf("first dock click: z=%d minimized=%v", w.Z, w.Minimized)
	}
	click(m, 69, 46)
	if !window(t, desk, "about").Minimized {
		t.Fatal("second dock click did not minimize the focused window")
	}
}

func TestSecondaryPressFocusesWithoutGesture(t *testing.T) {
	m, desk, _ := newTestModel(t, false)

	next, _ := m.Update(tea.MouseMsg{X: 30, Y: 6, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	m = next.(model)
	if s := desk.Snapshot().Session; s.Kind != "idle" {
		t.Fatalf("secondary press started %+v", s)
	}
	m = mouse(m, tea.MouseActionMotion, 40, 10)
	mouse(m, tea.MouseActionRelease, 40, 10)

	w := window(t, desk, "about")
	if w.Z != 21 || w.X != 100 || w.Y != 80 {
		t.Fatalf("about = (%d,%d) z=%d, want (100,80) z=21", w.X, w.Y, w.Z)
	}
}

func TestWindowSizeFollowsTerminal(t *testing.T) {
	m, desk, _ := newTestModel(t, true)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(model)
	if m.cols != 100 || m.rows != 40 {
		t.Fatalf("size = %dx%d", m.cols, m.rows)
	}
	if got := desk.Snapshot().Viewport; got != (geom.Size{Width: 800, Height: 640}) {
		t.Fatalf("viewport = %+v, want 800x640", got)
	}
	// The layout is not re-run: about keeps its desktop geometry.
	if w := window(t, desk, "about"); w.X != 100 || w.Width != 800 {
		t.Fatalf("about geometry changed: %+v", w)
	}
}

func TestWindowSizeFixedViewport(t *testing.T) {
	m, desk, _ := newTestModel(t, false)

	_, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	if got := desk.Snapshot().Viewport; got != (geom.Size{Width: 1280, Height: 800}) {
		t.Fatalf("viewport = %+v, want unchanged", got)
	}
}

func TestTickAndQuit(t *testing.T) {
	m, _, _ := newTestModel(t, false)

	later := testStart.Add(time.Minute)
	next, cmd := m.Update(tickMsg(later))
	if !next.(model).now.Equal(later) || cmd == nil {
		t.Fatal("tick did not advance the clock and reschedule")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q did not quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q did not return tea.Quit")
	}
}

func TestWizardApply(t *testing.T) {
	w := NewWizard(nil)
	w.fSource = config.ViewportFixed
	w.fWidth = "1024"
	w.fHeight = " 768 "
	w.fLogActions = true
	w.fLinks[0] = "https://example.org/cv.pdf"

	if err := w.Apply(); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if w.cfg.Viewport != (config.ViewportConfig{Source: config.ViewportFixed, Width: 1024, Height: 768}) {
		t.Fatalf("viewport = %+v", w.cfg.Viewport)
	}
	if !w.cfg.Logging.Enabled || w.cfg.Links[0].URL != "https://example.org/cv.pdf" {
		t.Fatalf("logging=%v link=%q", w.cfg.Logging.Enabled, w.cfg.Links[0].URL)
	}

	w.fCellWidth = "wide"
	if err := w.Apply(); err == nil {
		t.Fatal("expected error for non-numeric cell width")
	}
}
