// Package mcp exposes the window manager as Model Context Protocol tools.
// Every tool goes through the daemon's IPC socket, so an MCP client sees
// the same desktop as the terminal UI.
package mcp

import (
	"context"
	"io"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/deskfolio/internal/desktop"
	"github.com/1broseidon/deskfolio/internal/geom"
	"github.com/1broseidon/deskfolio/internal/ipc"
	"github.com/1broseidon/deskfolio/internal/wm"
)

const (
	ServerName    = "deskfolio"
	ServerVersion = "0.1.0"
)

// Dispatcher sends window-manager commands to the daemon. *ipc.Client
// implements it.
type Dispatcher interface {
	GetState() (*desktop.Snapshot, error)
	Window(cmd ipc.CommandType, id wm.ID) (*desktop.Result, error)
	Drag(id wm.ID, to geom.Point) (*desktop.Result, error)
	Resize(id wm.ID, size geom.Size) (*desktop.Result, error)
}

var _ Dispatcher = (*ipc.Client)(nil)

// Server is the MCP server for deskfolio window management.
type Server struct {
	mcpServer *mcpsdk.Server
	desk      Dispatcher
	logger    *slog.Logger
}

// NewServer creates an MCP server that forwards tool calls to desk. A nil
// logger discards output.
func NewServer(desk Dispatcher, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		desk:   desk,
		logger: logger,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List every declared portfolio window with its lifecycle state (open, minimized, closed), focus, z-order and geometry.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "open_window",
		Description: "Open a window (or un-minimize it) and bring it to the front.",
	}, s.windowTool(ipc.CommandOpen))

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_window",
		Description: "Close a window. Its geometry is kept for the next open.",
	}, s.windowTool(ipc.CommandClose))

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "minimize_window",
		Description: "Minimize a window to the dock. Clears the maximized flag.",
	}, s.windowTool(ipc.CommandMinimize))

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "restore_window",
		Description: "Restore a minimized window and bring it to the front.",
	}, s.windowTool(ipc.CommandRestore))

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "toggle_window",
		Description: "Apply the dock toggle policy: minimize if focused, focus if open behind another window, restore if minimized, open if closed. Returns the action taken.",
	}, s.windowTool(ipc.CommandToggle))

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "toggle_maximize",
		Description: "Maximize a window to fill the desktop area, or return it to its free geometry.",
	}, s.windowTool(ipc.CommandToggleMaximize))

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_window",
		Description: "Bring a window to the front without changing its lifecycle state.",
	}, s.windowTool(ipc.CommandFocus))

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "drag_window",
		Description: "Move a visible, non-maximized window so its top-left corner lands at (x, y), subject to the same clamping as a title-bar drag.",
	}, s.handleDragWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "resize_window",
		Description: "Resize a visible, non-maximized window, subject to the minimum window size.",
	}, s.handleResizeWindow)
}
