package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/1broseidon/deskfolio/internal/geom"
)

// Monitor represents a physical display
type Monitor struct {
	ID     int
	Name   string
	Bounds geom.Rect
}

// GetMonitors retrieves all active monitors using XRandR
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		outputName := fmt.Sprintf("Monitor%d", i)
		outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			outputName = string(outputInfo.Name)
		}

		monitors = append(monitors, Monitor{
			ID:   i,
			Name: outputName,
			Bounds: geom.Rect{
				X:      int(crtcInfo.X),
				Y:      int(crtcInfo.Y),
				Width:  int(crtcInfo.Width),
				Height: int(crtcInfo.Height),
			},
		})
	}

	return monitors, nil
}

// GetActiveMonitor returns the monitor under the focused window, falling back
// to the pointer and then the first monitor. Its bounds are shrunk to the
// work area so panels and docks are excluded.
func (c *Connection) GetActiveMonitor() (*Monitor, error) {
	monitors, err := c.GetMonitors()
	if err != nil {
		return nil, err
	}
	if len(monitors) == 0 {
		return nil, fmt.Errorf("no monitors found")
	}

	var active *Monitor
	if activeWin, err := ewmh.ActiveWindowGet(c.XUtil); err == nil && activeWin != 0 {
		active = c.monitorForWindow(monitors, activeWin)
	}
	if active == nil {
		active = c.monitorForPointer(monitors)
	}
	if active == nil {
		active = &monitors[0]
	}

	if wa, ok := c.workArea(); ok {
		if isect := active.Bounds.Intersect(wa); !isect.Empty() {
			active.Bounds = isect
		}
	}
	return active, nil
}

// workArea returns _NET_WORKAREA for the current desktop.
func (c *Connection) workArea() (geom.Rect, bool) {
	workArea, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(workArea) == 0 {
		return geom.Rect{}, false
	}
	idx := 0
	if current, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(current) < len(workArea) {
		idx = int(current)
	}
	wa := workArea[idx]
	return geom.Rect{X: int(wa.X), Y: int(wa.Y), Width: int(wa.Width), Height: int(wa.Height)}, true
}

func (c *Connection) monitorForWindow(monitors []Monitor, windowID xproto.Window) *Monitor {
	g, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return nil
	}
	translate, err := xproto.TranslateCoordinates(c.XUtil.Conn(), windowID, c.Root, 0, 0).Reply()
	if err != nil {
		return nil
	}
	center := geom.Point{
		X: int(translate.DstX) + int(g.Width)/2,
		Y: int(translate.DstY) + int(g.Height)/2,
	}
	return monitorAt(monitors, center)
}

func (c *Connection) monitorForPointer(monitors []Monitor) *Monitor {
	pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil
	}
	return monitorAt(monitors, geom.Point{X: int(pointer.RootX), Y: int(pointer.RootY)})
}

func monitorAt(monitors []Monitor, p geom.Point) *Monitor {
	for i := range monitors {
		if monitors[i].Bounds.Contains(p) {
			return &monitors[i]
		}
	}
	return nil
}
