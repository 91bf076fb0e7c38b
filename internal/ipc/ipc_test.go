package ipc

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/1broseidon/deskfolio/internal/desktop"
	"github.com/1broseidon/deskfolio/internal/geom"
	"github.com/1broseidon/deskfolio/internal/gesture"
	"github.com/1broseidon/deskfolio/internal/intent"
	"github.com/1broseidon/deskfolio/internal/wm"
)

func newTestDesktop(t *testing.T) *desktop.Desktop {
	t.Helper()
	d, err := desktop.New(desktop.Config{
		Windows: []wm.Window{
			{ID: "about", Title: "About Me", Open: true, Z: 10, X: 100, Y: 80, Width: 800, Height: 600},
			{ID: "work", Title: "Work", Z: 10, X: 150, Y: 120, Width: 800, Height: 600},
		},
		Options: wm.Options{Viewport: geom.Size{Width: 1280, Height: 800}, ZTop: 20},
	})
	if err != nil {
		t.Fatalf("desktop.New: %v", err)
	}
	return d
}

// startServer runs a server on a short socket path; unix socket paths are
// limited to ~108 bytes, which t.TempDir can exceed.
func startServer(t *testing.T, d *desktop.Desktop) *Client {
	t.Helper()
	dir, err := os.MkdirTemp("", "dfipc")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	srv := NewServerAt(filepath.Join(dir, "s.sock"), d)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(srv.Stop)
	return NewClientAt(srv.SocketPath())
}

func TestClientServerLifecycle(t *testing.T) {
	c := startServer(t, newTestDesktop(t))

	res, err := c.Window(CommandOpen, "work")
	if err != nil {
		t.Fatalf("OPEN: %v", err)
	}
	if !res.Window.Open || res.Window.Z != 21 {
		t.Fatalf("OPEN result = %+v", res.Window)
	}

	res, err = c.Window(CommandToggle, "work")
	if err != nil {
		t.Fatalf("TOGGLE: %v", err)
	}
	if res.Action != "minimize" || !res.Window.Minimized {
		t.Fatalf("TOGGLE result = %+v", res)
	}

	snap, err := c.GetState()
	if err != nil {
		t.Fatalf("GET_STATE: %v", err)
	}
	if snap.Focused != "about" || snap.Top != 21 {
		t.Fatalf("snapshot focused=%q top=%d", snap.Focused, snap.Top)
	}

	status, err := c.GetStatus()
	if err != nil {
		t.Fatalf("GET_STATUS: %v", err)
	}
	want := StatusData{DaemonRunning: true, WindowCount: 2, OpenCount: 2, Focused: "about", Viewport: geom.Size{Width: 1280, Height: 800}}
	if diff := cmp.Diff(want, *status); diff != "" {
		t.Fatalf("status mismatch (-want +got):\n%s", diff)
	}
}

func TestClientUnknownWindow(t *testing.T) {
	c := startServer(t, newTestDesktop(t))

	_, err := c.Window(CommandClose, "blog")
	if err == nil || !strings.Contains(err.Error(), "Unknown window: blog") {
		t.Fatalf("expected unknown window error, got %v", err)
	}
	if _, err := c.Drag("blog", geom.Point{}); !errors.Is(err, wm.ErrUnknownWindow) {
		t.Fatalf("Drag: expected ErrUnknownWindow, got %v", err)
	}
}

func TestClientDragAndResize(t *testing.T) {
	d := newTestDesktop(t)
	c := startServer(t, d)

	res, err := c.Drag("about", geom.Point{X: 2000, Y: 0})
	if err != nil {
		t.Fatalf("Drag: %v", err)
	}
	if res.Window.X != 1230 || res.Window.Y != 24 {
		t.Fatalf("Drag clamped to (%d,%d), want (1230,24)", res.Window.X, res.Window.Y)
	}

	res, err = c.Resize("about", geom.Size{Width: 100, Height: 900})
	if err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if res.Window.Width != 300 || res.Window.Height != 900 {
		t.Fatalf("Resize = %dx%d, want 300x900", res.Window.Width, res.Window.Height)
	}

	if s := d.Snapshot().Session; s.Kind != gesture.KindIdle.String() {
		t.Fatalf("session left active: %+v", s)
	}
}

func TestClientDragRejectsHiddenOrMaximized(t *testing.T) {
	c := startServer(t, newTestDesktop(t))

	if _, err := c.Drag("work", geom.Point{X: 10, Y: 30}); err == nil {
		t.Fatal("expected error dragging a closed window")
	}
	if _, err := c.Window(CommandToggleMaximize, "about"); err != nil {
		t.Fatalf("TOGGLE_MAXIMIZE: %v", err)
	}
	if _, err := c.Resize("about", geom.Size{Width: 400, Height: 300}); err == nil {
		t.Fatal("expected error resizing a maximized window")
	}
}

func TestClientSetViewport(t *testing.T) {
	d := newTestDesktop(t)
	c := startServer(t, d)

	if err := c.SetViewport(geom.Size{Width: 640, Height: 480}); err != nil {
		t.Fatalf("SET_VIEWPORT: %v", err)
	}
	if got := d.Snapshot().Viewport; got != (geom.Size{Width: 640, Height: 480}) {
		t.Fatalf("viewport = %+v", got)
	}
	if err := c.SetViewport(geom.Size{}); err == nil {
		t.Fatal("expected error for empty viewport")
	}
}

func TestHandleCommand(t *testing.T) {
	s := NewServerAt(filepath.Join(t.TempDir(), "unused.sock"), newTestDesktop(t))

	tests := []struct {
		name    string
		req     Request
		wantErr string
	}{
		{name: "unknown command", req: Request{Command: "REBOOT"}, wantErr: "Unknown command: REBOOT"},
		{name: "missing id", req: Request{Command: CommandFocus, Payload: json.RawMessage(`{}`)}, wantErr: "id is required"},
		{name: "bad payload", req: Request{Command: CommandOpen, Payload: json.RawMessage(`[1]`)}, wantErr: "Invalid window payload"},
		{name: "bad button", req: Request{Command: CommandStartDrag, Payload: json.RawMessage(`{"id":"about","button":"thumb"}`)}, wantErr: "thumb"},
		{name: "press needs id", req: Request{Command: CommandStartResize, Payload: json.RawMessage(`{"x":1,"y":2}`)}, wantErr: "id is required"},
		{name: "move while idle", req: Request{Command: CommandPointerMove, Payload: json.RawMessage(`{"x":1,"y":2}`)}},
		{name: "release without payload", req: Request{Command: CommandPointerUp}},
		{name: "focus", req: Request{Command: CommandFocus, Payload: json.RawMessage(`{"id":"work"}`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := s.handleCommand(&tt.req)
			if tt.wantErr == "" {
				if resp.Status != "OK" {
					t.Fatalf("status = %s (%s), want OK", resp.Status, resp.Error)
				}
				return
			}
			if resp.Status != "ERROR" || !strings.Contains(resp.Error, tt.wantErr) {
				t.Fatalf("resp = %+v, want error containing %q", resp, tt.wantErr)
			}
		})
	}
}

func TestCommandIntentKind(t *testing.T) {
	if k, ok := CommandToggleMaximize.IntentKind(); !ok || k != intent.ToggleMaximize {
		t.Fatalf("TOGGLE_MAXIMIZE -> %q, %v", k, ok)
	}
	for _, c := range []CommandType{CommandGetState, CommandGetStatus, CommandSetViewport} {
		if _, ok := c.IntentKind(); ok {
			t.Fatalf("%s should not carry an intent", c)
		}
	}
}
