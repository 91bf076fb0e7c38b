package palette

import (
	"errors"
	"fmt"

	"github.com/1broseidon/deskfolio/internal/desktop"
	"github.com/1broseidon/deskfolio/internal/ipc"
	"github.com/1broseidon/deskfolio/internal/wm"
)

// Prompt is the palette title.
const Prompt = "Windows"

// Daemon is the part of ipc.Client the palette needs.
type Daemon interface {
	GetState() (*desktop.Snapshot, error)
	Window(cmd ipc.CommandType, id wm.ID) (*desktop.Result, error)
}

// WindowItems lists every declared window, marking the focused one.
func WindowItems(snap *desktop.Snapshot) []Item {
	items := make([]Item, 0, len(snap.Windows))
	for _, w := range snap.Windows {
		label := w.Title
		if label == "" {
			label = string(w.ID)
		}
		items = append(items, Item{
			Label:    label,
			Info:     string(w.ID),
			Detail:   describe(w),
			IsActive: w.ID == snap.Focused,
		})
	}
	return items
}

func describe(w wm.Window) string {
	switch {
	case !w.Open:
		return "closed"
	case w.Minimized:
		return "minimized"
	case w.Maximized:
		return "maximized"
	default:
		return fmt.Sprintf("%dx%d+%d+%d", w.Width, w.Height, w.X, w.Y)
	}
}

// Run shows the window list and toggles the chosen window. A cancelled
// palette returns (nil, nil).
func Run(d Daemon, b Backend) (*desktop.Result, error) {
	snap, err := d.GetState()
	if err != nil {
		return nil, err
	}
	chosen, err := b.Show(Prompt, WindowItems(snap))
	if errors.Is(err, ErrCancelled) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d.Window(ipc.CommandToggle, wm.ID(chosen.Info))
}
