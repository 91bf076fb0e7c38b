package intent

import (
	"fmt"

	"github.com/1broseidon/deskfolio/internal/geom"
	"github.com/1broseidon/deskfolio/internal/gesture"
	"github.com/1broseidon/deskfolio/internal/wm"
)

// Kind names an inbound request against the window manager.
type Kind string

const (
	Open           Kind = "open"
	Close          Kind = "close"
	Minimize       Kind = "minimize"
	Restore        Kind = "restore"
	ToggleMaximize Kind = "toggle_maximize"
	Toggle         Kind = "toggle"
	Focus          Kind = "focus"
	StartDrag      Kind = "start_drag"
	StartResize    Kind = "start_resize"
	PointerMove    Kind = "pointer_move"
	PointerUp      Kind = "pointer_up"
	OpenLink       Kind = "open_link"
)

// Kinds lists every kind in a stable order.
var Kinds = []Kind{
	Open, Close, Minimize, Restore, ToggleMaximize, Toggle, Focus,
	StartDrag, StartResize, PointerMove, PointerUp, OpenLink,
}

// Targeted reports whether the kind acts on a window identity.
func (k Kind) Targeted() bool {
	switch k {
	case PointerMove, PointerUp, OpenLink:
		return false
	default:
		return true
	}
}

// Parse validates a kind name.
func Parse(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown intent %q", s)
}

// Intent is one request emitted by a view, the dock, an icon or a remote
// client.
type Intent struct {
	Kind   Kind
	Target wm.ID
	Point  geom.Point
	Button gesture.Button
	URL    string
}

func (in Intent) String() string {
	switch in.Kind {
	case StartDrag, StartResize:
		return fmt.Sprintf("%s(%s @%d,%d %s)", in.Kind, in.Target, in.Point.X, in.Point.Y, in.Button)
	case PointerMove:
		return fmt.Sprintf("%s(%d,%d)", in.Kind, in.Point.X, in.Point.Y)
	case PointerUp:
		return string(in.Kind)
	case OpenLink:
		return fmt.Sprintf("%s(%s)", in.Kind, in.URL)
	default:
		return fmt.Sprintf("%s(%s)", in.Kind, in.Target)
	}
}

// For builds a lifecycle intent for id.
func For(kind Kind, id wm.ID) Intent {
	return Intent{Kind: kind, Target: id}
}
