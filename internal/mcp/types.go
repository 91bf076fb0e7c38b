package mcp

import "github.com/1broseidon/deskfolio/internal/wm"

// WindowInput names the target of a lifecycle tool.
type WindowInput struct {
	ID string `json:"id" jsonschema:"required,Window identity (e.g. about, work, skills, contact). Call list_windows for the declared set."`
}

// DragWindowInput is the input for the drag_window tool.
type DragWindowInput struct {
	ID string `json:"id" jsonschema:"required,Window identity to move"`
	X  int    `json:"x" jsonschema:"required,Target left edge in pixels. Clamped to the viewport like a pointer drag."`
	Y  int    `json:"y" jsonschema:"required,Target top edge in pixels. Clamped below the status bar."`
}

// ResizeWindowInput is the input for the resize_window tool.
type ResizeWindowInput struct {
	ID     string `json:"id" jsonschema:"required,Window identity to resize"`
	Width  int    `json:"width" jsonschema:"required,Target width in pixels (minimum 300 by default)"`
	Height int    `json:"height" jsonschema:"required,Target height in pixels (minimum 200 by default)"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct {
	VisibleOnly bool `json:"visible_only,omitempty" jsonschema:"When true, omit closed and minimized windows"`
}

// WindowInfo describes one window as reported to MCP clients.
type WindowInfo struct {
	ID        wm.ID  `json:"id"`
	Title     string `json:"title,omitempty"`
	State     string `json:"state"`
	Focused   bool   `json:"focused"`
	Maximized bool   `json:"maximized"`
	Z         int    `json:"z"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowInfo `json:"windows"`
	Focused wm.ID        `json:"focused,omitempty"`
	ZTop    int          `json:"z_top"`
	Width   int          `json:"viewport_width"`
	Height  int          `json:"viewport_height"`
}

// WindowOutput is the output of every tool that acts on one window.
type WindowOutput struct {
	Window WindowInfo `json:"window"`
	// Action is set by toggle_window: open, focus, minimize or restore.
	Action string `json:"action,omitempty"`
}
