package wm

import (
	"fmt"
	"sort"

	"github.com/1broseidon/deskfolio/internal/geom"
)

// Options configures a Registry.
type Options struct {
	// Viewport bounds position clamping.
	Viewport geom.Size
	// Bounds defaults to geom.DefaultBounds when zero.
	Bounds geom.Bounds
	// ZTop is the initial focus counter. It is raised to the highest
	// declared Z when lower.
	ZTop int
}

// Registry owns the WindowState of every declared identity plus the
// process-wide z counter.
type Registry struct {
	order    []ID
	windows  map[ID]*Window
	zTop     int
	viewport geom.Size
	bounds   geom.Bounds
}

// NewRegistry declares the identity set. Initial geometry is normalised to
// the size floor and position bounds so the invariants hold from the start.
func NewRegistry(windows []Window, opts Options) (*Registry, error) {
	if len(windows) == 0 {
		return nil, ErrNoWindows
	}

	bounds := opts.Bounds
	if bounds == (geom.Bounds{}) {
		bounds = geom.DefaultBounds()
	}

	r := &Registry{
		order:    make([]ID, 0, len(windows)),
		windows:  make(map[ID]*Window, len(windows)),
		zTop:     opts.ZTop,
		viewport: opts.Viewport,
		bounds:   bounds,
	}

	for _, w := range windows {
		if w.ID == "" {
			return nil, ErrEmptyWindowID
		}
		if _, exists := r.windows[w.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateWindow, w.ID)
		}
		if w.Minimized && w.Maximized {
			w.Maximized = false
		}
		if w.Minimized {
			// A minimized window is by definition open.
			w.Open = true
		}
		size := bounds.ClampSize(geom.Size{Width: w.Width, Height: w.Height})
		pos := bounds.ClampPosition(geom.Point{X: w.X, Y: w.Y}, r.viewport)
		w.X, w.Y, w.Width, w.Height = pos.X, pos.Y, size.Width, size.Height

		win := w
		r.windows[w.ID] = &win
		r.order = append(r.order, w.ID)
		if w.Z > r.zTop {
			r.zTop = w.Z
		}
	}

	return r, nil
}

func (r *Registry) get(id ID) *Window {
	w, ok := r.windows[id]
	if !ok {
		panic(fmt.Sprintf("wm: unknown window %q", id))
	}
	return w
}

// Has reports whether id was declared.
func (r *Registry) Has(id ID) bool {
	_, ok := r.windows[id]
	return ok
}

// IDs returns identities in declaration order.
func (r *Registry) IDs() []ID {
	ids := make([]ID, len(r.order))
	copy(ids, r.order)
	return ids
}

// Window returns a copy of the state for id.
func (r *Registry) Window(id ID) Window {
	return *r.get(id)
}

// Windows returns copies of every window in declaration order.
func (r *Registry) Windows() []Window {
	out := make([]Window, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.windows[id])
	}
	return out
}

// Stacking returns the visible windows ordered bottom to top.
func (r *Registry) Stacking() []Window {
	var out []Window
	for _, id := range r.order {
		if w := r.windows[id]; w.Visible() {
			out = append(out, *w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Z < out[j].Z })
	return out
}

// Top returns the current value of the z counter.
func (r *Registry) Top() int {
	return r.zTop
}

// Focused returns the visible window with the highest z, if any.
func (r *Registry) Focused() (ID, bool) {
	stack := r.Stacking()
	if len(stack) == 0 {
		return "", false
	}
	return stack[len(stack)-1].ID, true
}

// IsFocused reports whether id is visible and holds the counter's value.
func (r *Registry) IsFocused(id ID) bool {
	w := r.get(id)
	return w.Visible() && w.Z == r.zTop
}

// Viewport returns the size used for position clamping.
func (r *Registry) Viewport() geom.Size {
	return r.viewport
}

// SetViewport changes the clamp bounds for later geometry updates. Existing
// geometry is left alone.
func (r *Registry) SetViewport(vp geom.Size) {
	r.viewport = vp
}

// Bounds returns the clamp configuration.
func (r *Registry) Bounds() geom.Bounds {
	return r.bounds
}

// BringToFront assigns a fresh counter value to id. Afterwards its z is
// strictly greater than every other window's.
func (r *Registry) BringToFront(id ID) Window {
	w := r.get(id)
	r.zTop++
	w.Z = r.zTop
	return *w
}

// Open shows id and focuses it. Opening a visible window refocuses it.
func (r *Registry) Open(id ID) Window {
	w := r.get(id)
	w.Open = true
	w.Minimized = false
	return r.BringToFront(id)
}

// Close hides id. Geometry and z are kept so reopening restores them.
func (r *Registry) Close(id ID) Window {
	w := r.get(id)
	w.Open = false
	w.Minimized = false
	w.Maximized = false
	return *w
}

// Minimize hides id without closing it and drops the maximized flag.
func (r *Registry) Minimize(id ID) Window {
	w := r.get(id)
	w.Minimized = true
	w.Maximized = false
	return *w
}

// Restore shows a minimized window again and focuses it.
func (r *Registry) Restore(id ID) Window {
	w := r.get(id)
	w.Open = true
	w.Minimized = false
	return r.BringToFront(id)
}

// ToggleMaximize flips the maximized flag and un-minimizes. Geometry is not
// touched. An open window ends up visible, so it is focused as well.
func (r *Registry) ToggleMaximize(id ID) Window {
	w := r.get(id)
	w.Maximized = !w.Maximized
	w.Minimized = false
	if w.Open {
		return r.BringToFront(id)
	}
	return *w
}

// SetGeometry applies the set fields of u, clamped to the bounds. It is a
// no-op while the window is maximized.
func (r *Registry) SetGeometry(id ID, u GeometryUpdate) Window {
	w := r.get(id)
	if w.Maximized {
		return *w
	}
	if u.X != nil {
		w.X = r.bounds.ClampX(*u.X, r.viewport)
	}
	if u.Y != nil {
		w.Y = r.bounds.ClampY(*u.Y, r.viewport)
	}
	if u.Width != nil {
		w.Width = geom.Floor(*u.Width, r.bounds.MinWidth)
	}
	if u.Height != nil {
		w.Height = geom.Floor(*u.Height, r.bounds.MinHeight)
	}
	return *w
}
