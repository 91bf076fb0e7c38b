package wm

import (
	"errors"

	"github.com/1broseidon/deskfolio/internal/geom"
)

// ID names one content panel. The set of IDs is fixed per Registry.
type ID string

// Window is the state of a single window identity.
type Window struct {
	ID        ID     `json:"id"`
	Title     string `json:"title"`
	Open      bool   `json:"is_open"`
	Minimized bool   `json:"is_minimized"`
	Maximized bool   `json:"is_maximized"`
	Z         int    `json:"z"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// Visible reports whether the window takes part in rendering.
func (w Window) Visible() bool {
	return w.Open && !w.Minimized
}

// Rect returns the free-form geometry. It ignores Maximized; the maximized
// region is a render-time concern.
func (w Window) Rect() geom.Rect {
	return geom.Rect{X: w.X, Y: w.Y, Width: w.Width, Height: w.Height}
}

// GeometryUpdate carries optional geometry fields for SetGeometry. Nil
// fields are left unchanged.
type GeometryUpdate struct {
	X      *int
	Y      *int
	Width  *int
	Height *int
}

// MoveTo builds an update that sets the position only.
func MoveTo(x, y int) GeometryUpdate {
	return GeometryUpdate{X: &x, Y: &y}
}

// ResizeTo builds an update that sets the size only.
func ResizeTo(width, height int) GeometryUpdate {
	return GeometryUpdate{Width: &width, Height: &height}
}

// ErrUnknownWindow is returned by outer layers when an identity is not part
// of the registry.
var ErrUnknownWindow = errors.New("unknown window")

// ErrDuplicateWindow is returned when a declaration repeats an identity.
var ErrDuplicateWindow = errors.New("duplicate window id")

// ErrEmptyWindowID is returned when a declaration has a blank identity.
var ErrEmptyWindowID = errors.New("empty window id")

// ErrNoWindows is returned when a registry is declared without windows.
var ErrNoWindows = errors.New("no windows declared")
