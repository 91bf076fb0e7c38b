package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/deskfolio/internal/desktop"
	"github.com/1broseidon/deskfolio/internal/geom"
	"github.com/1broseidon/deskfolio/internal/ipc"
	"github.com/1broseidon/deskfolio/internal/wm"
)

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	snap, err := s.desk.GetState()
	if err != nil {
		return nil, ListWindowsOutput{}, fmt.Errorf("failed to read window state: %w", err)
	}

	out := ListWindowsOutput{
		Windows: make([]WindowInfo, 0, len(snap.Windows)),
		Focused: snap.Focused,
		ZTop:    snap.Top,
		Width:   snap.Viewport.Width,
		Height:  snap.Viewport.Height,
	}
	for _, w := range snap.Windows {
		if args.VisibleOnly && !w.Visible() {
			continue
		}
		out.Windows = append(out.Windows, windowInfo(w, snap.Focused))
	}
	s.logger.Debug("list_windows", "count", len(out.Windows), "focused", snap.Focused)
	return nil, out, nil
}

// windowTool builds the handler for a single-window lifecycle command.
func (s *Server) windowTool(cmd ipc.CommandType) mcpsdk.ToolHandlerFor[WindowInput, WindowOutput] {
	return func(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
		if args.ID == "" {
			return nil, WindowOutput{}, fmt.Errorf("id is required")
		}
		res, err := s.desk.Window(cmd, wm.ID(args.ID))
		if err != nil {
			s.logger.Warn("window command failed", "command", cmd, "id", args.ID, "error", err)
			return nil, WindowOutput{}, err
		}
		return s.windowResult(res)
	}
}

func (s *Server) handleDragWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args DragWindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	if args.ID == "" {
		return nil, WindowOutput{}, fmt.Errorf("id is required")
	}
	res, err := s.desk.Drag(wm.ID(args.ID), geom.Point{X: args.X, Y: args.Y})
	if err != nil {
		return nil, WindowOutput{}, fmt.Errorf("drag_window %q: %w", args.ID, err)
	}
	return s.windowResult(res)
}

func (s *Server) handleResizeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args ResizeWindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	if args.ID == "" {
		return nil, WindowOutput{}, fmt.Errorf("id is required")
	}
	if args.Width <= 0 || args.Height <= 0 {
		return nil, WindowOutput{}, fmt.Errorf("width and height must be positive, got %dx%d", args.Width, args.Height)
	}
	res, err := s.desk.Resize(wm.ID(args.ID), geom.Size{Width: args.Width, Height: args.Height})
	if err != nil {
		return nil, WindowOutput{}, fmt.Errorf("resize_window %q: %w", args.ID, err)
	}
	return s.windowResult(res)
}

// windowResult reports the affected window. Focus is read back from a fresh
// snapshot because a result only carries the one window.
func (s *Server) windowResult(res *desktop.Result) (*mcpsdk.CallToolResult, WindowOutput, error) {
	if res == nil || res.Window == nil {
		return nil, WindowOutput{}, fmt.Errorf("daemon returned no window")
	}
	var focused wm.ID
	if snap, err := s.desk.GetState(); err == nil {
		focused = snap.Focused
	}
	s.logger.Info("window updated", "id", res.Window.ID, "state", windowState(*res.Window), "action", res.Action)
	return nil, WindowOutput{Window: windowInfo(*res.Window, focused), Action: res.Action}, nil
}

func windowInfo(w wm.Window, focused wm.ID) WindowInfo {
	return WindowInfo{
		ID:        w.ID,
		Title:     w.Title,
		State:     windowState(w),
		Focused:   focused != "" && w.ID == focused,
		Maximized: w.Maximized,
		Z:         w.Z,
		X:         w.X,
		Y:         w.Y,
		Width:     w.Width,
		Height:    w.Height,
	}
}

func windowState(w wm.Window) string {
	switch {
	case !w.Open:
		return "closed"
	case w.Minimized:
		return "minimized"
	default:
		return "open"
	}
}
