package gesture

import (
	"fmt"

	"github.com/1broseidon/deskfolio/internal/geom"
	"github.com/1broseidon/deskfolio/internal/wm"
)

// Kind is the variant of the active interaction session.
type Kind int

const (
	// KindIdle means no gesture is in progress
	KindIdle Kind = iota
	// KindDrag means a title-bar press is moving a window
	KindDrag
	// KindResize means a resize-handle press is sizing a window
	KindResize
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindIdle:
		return "idle"
	case KindDrag:
		return "dragging"
	case KindResize:
		return "resizing"
	default:
		return "unknown"
	}
}

// Button identifies the pointer button of a press.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
)

// String returns the string representation of the button
func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonMiddle:
		return "middle"
	case ButtonSecondary:
		return "secondary"
	default:
		return "unknown"
	}
}

// ParseButton maps a button name to a Button. The empty string means
// primary.
func ParseButton(s string) (Button, error) {
	switch s {
	case "", "primary", "left":
		return ButtonPrimary, nil
	case "middle":
		return ButtonMiddle, nil
	case "secondary", "right":
		return ButtonSecondary, nil
	default:
		return ButtonPrimary, fmt.Errorf("unknown button %q", s)
	}
}

// Session is the single in-progress gesture.
type Session struct {
	Kind   Kind
	Target wm.ID
	// Origin is the pointer position at press time.
	Origin geom.Point
	// Start is the window position (drag) or size (resize) at press time.
	Start geom.Point
}

// Active reports whether a gesture is in progress.
func (s Session) Active() bool {
	return s.Kind != KindIdle
}

// Reset returns the session to idle.
func (s *Session) Reset() {
	*s = Session{}
}
