// Package desktop owns the window registry and the pointer controller and
// applies intents against them one at a time. Every host (terminal UI, IPC
// server, MCP tools) shares one Desktop instead of touching the registry
// directly.
package desktop

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/deskfolio/internal/actionlog"
	"github.com/1broseidon/deskfolio/internal/geom"
	"github.com/1broseidon/deskfolio/internal/gesture"
	"github.com/1broseidon/deskfolio/internal/intent"
	"github.com/1broseidon/deskfolio/internal/view"
	"github.com/1broseidon/deskfolio/internal/wm"
)

// ErrMissingURL is returned for an open_link intent without a URL.
var ErrMissingURL = errors.New("open_link requires a url")

// LinkOpener hands a URL to the host environment.
type LinkOpener func(url string) error

// Config holds the dependencies of a Desktop.
type Config struct {
	Windows []wm.Window
	Options wm.Options
	// Logger defaults to a discarding logger.
	Logger *slog.Logger
	// Actions may be nil.
	Actions *actionlog.Logger
	// OpenLink may be nil, in which case link intents are only logged.
	OpenLink LinkOpener
}

// Desktop serialises intents against a single registry.
type Desktop struct {
	mu       sync.Mutex
	reg      *wm.Registry
	ctl      *gesture.Controller
	logger   *slog.Logger
	actions  *actionlog.Logger
	openLink LinkOpener
	started  time.Time
}

// New builds the registry and controller.
func New(cfg Config) (*Desktop, error) {
	reg, err := wm.NewRegistry(cfg.Windows, cfg.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to declare windows: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Desktop{
		reg:      reg,
		ctl:      gesture.NewController(reg),
		logger:   logger,
		actions:  cfg.Actions,
		openLink: cfg.OpenLink,
		started:  time.Now(),
	}, nil
}

// Result describes what an intent did.
type Result struct {
	Intent intent.Intent `json:"-"`
	// Applied is false when the intent was accepted but changed nothing,
	// such as a secondary-button press or a move while idle.
	Applied bool `json:"applied"`
	// Window is the affected window after the intent, if any.
	Window *wm.Window `json:"window,omitempty"`
	// Action names the branch taken by a toggle.
	Action string `json:"action,omitempty"`
	// Session is the gesture state after the intent, or the ended session
	// for pointer_up.
	Session SessionState `json:"session"`
}

// SessionState is the wire form of a gesture session.
type SessionState struct {
	Kind   string     `json:"kind"`
	Target wm.ID      `json:"target,omitempty"`
	Origin geom.Point `json:"origin"`
}

func sessionState(s gesture.Session) SessionState {
	return SessionState{Kind: s.Kind.String(), Target: s.Target, Origin: s.Origin}
}

// Apply runs one intent. Targeted intents naming an identity outside the
// declared set fail with wm.ErrUnknownWindow and leave state untouched.
func (d *Desktop) Apply(in intent.Intent) (Result, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.apply(in)
}

// ApplyAll runs a batch of intents in order under one lock, stopping at the
// first error.
func (d *Desktop) ApplyAll(ins []intent.Intent) ([]Result, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	results := make([]Result, 0, len(ins))
	for _, in := range ins {
		res, err := d.apply(in)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (d *Desktop) apply(in intent.Intent) (Result, error) {
	if in.Kind.Targeted() && !d.reg.Has(in.Target) {
		err := fmt.Errorf("%w: %q", wm.ErrUnknownWindow, in.Target)
		d.reject(in, err)
		return Result{Intent: in}, err
	}

	res := Result{Intent: in, Applied: true}
	var w wm.Window
	switch in.Kind {
	case intent.Open:
		w = d.reg.Open(in.Target)
	case intent.Close:
		w = d.reg.Close(in.Target)
	case intent.Minimize:
		w = d.reg.Minimize(in.Target)
	case intent.Restore:
		w = d.reg.Restore(in.Target)
	case intent.ToggleMaximize:
		w = d.reg.ToggleMaximize(in.Target)
	case intent.Toggle:
		var action wm.Action
		action, w = d.reg.Toggle(in.Target)
		res.Action = action.String()
	case intent.Focus:
		w = d.reg.BringToFront(in.Target)
	case intent.StartDrag:
		res.Applied = d.ctl.StartDrag(in.Target, in.Button, in.Point)
		w = d.reg.Window(in.Target)
	case intent.StartResize:
		res.Applied = d.ctl.StartResize(in.Target, in.Button, in.Point)
		w = d.reg.Window(in.Target)
	case intent.PointerMove:
		var moved bool
		w, moved = d.ctl.Move(in.Point)
		res.Applied = moved
		if !moved {
			res.Session = sessionState(d.ctl.Session())
			d.record(in, nil)
			return res, nil
		}
	case intent.PointerUp:
		ended := d.ctl.Release()
		res.Applied = ended.Active()
		res.Session = sessionState(ended)
		if ended.Active() {
			d.logger.Debug("gesture ended", "kind", ended.Kind, "window", ended.Target)
		}
		d.record(in, nil)
		return res, nil
	case intent.OpenLink:
		if in.URL == "" {
			d.reject(in, ErrMissingURL)
			return Result{Intent: in}, ErrMissingURL
		}
		if d.openLink != nil {
			if err := d.openLink(in.URL); err != nil {
				err = fmt.Errorf("failed to open %s: %w", in.URL, err)
				d.reject(in, err)
				return Result{Intent: in}, err
			}
		}
		res.Session = sessionState(d.ctl.Session())
		d.record(in, nil)
		return res, nil
	default:
		err := fmt.Errorf("unsupported intent %q", in.Kind)
		d.reject(in, err)
		return Result{Intent: in}, err
	}

	res.Window = &w
	res.Session = sessionState(d.ctl.Session())
	d.record(in, &w)
	return res, nil
}

func (d *Desktop) record(in intent.Intent, w *wm.Window) {
	if in.Kind != intent.PointerMove {
		d.logger.Debug("intent applied", "intent", in.String())
	}
	d.actions.Intent(in, w)
}

func (d *Desktop) reject(in intent.Intent, err error) {
	d.logger.Warn("intent rejected", "intent", in.String(), "error", err)
	d.actions.Error(in, err)
}

// Snapshot is the outbound view of the whole window manager.
type Snapshot struct {
	Windows  []wm.Window  `json:"windows"`
	Top      int          `json:"z_top"`
	Focused  wm.ID        `json:"focused,omitempty"`
	Session  SessionState `json:"session"`
	Viewport geom.Size    `json:"viewport"`
}

// Snapshot copies the current state.
func (d *Desktop) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	focused, _ := d.reg.Focused()
	return Snapshot{
		Windows:  d.reg.Windows(),
		Top:      d.reg.Top(),
		Focused:  focused,
		Session:  sessionState(d.ctl.Session()),
		Viewport: d.reg.Viewport(),
	}
}

// Scene returns the state a view.Shell needs to route pointer events.
func (d *Desktop) Scene() view.Scene {
	d.mu.Lock()
	defer d.mu.Unlock()
	return view.Scene{Windows: d.reg.Windows(), Top: d.reg.Top(), Viewport: d.reg.Viewport()}
}

// Window returns one window, or wm.ErrUnknownWindow.
func (d *Desktop) Window(id wm.ID) (wm.Window, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.reg.Has(id) {
		return wm.Window{}, fmt.Errorf("%w: %q", wm.ErrUnknownWindow, id)
	}
	return d.reg.Window(id), nil
}

// IDs lists the declared identities in order.
func (d *Desktop) IDs() []wm.ID {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reg.IDs()
}

// SetViewport updates the bounds later geometry updates clamp against.
// Existing geometry and the initial layout are left as they are.
func (d *Desktop) SetViewport(vp geom.Size) error {
	if vp.Width <= 0 || vp.Height <= 0 {
		return fmt.Errorf("invalid viewport %dx%d", vp.Width, vp.Height)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reg.SetViewport(vp)
	d.logger.Info("viewport changed", "width", vp.Width, "height", vp.Height)
	return nil
}

// Uptime reports how long the desktop has existed.
func (d *Desktop) Uptime() time.Duration {
	return time.Since(d.started)
}
