// Package viewport decides the desktop size once at startup.
package viewport

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/1broseidon/deskfolio/internal/config"
	"github.com/1broseidon/deskfolio/internal/geom"
	"github.com/1broseidon/deskfolio/internal/x11"
)

// ErrNotTerminal is returned by the terminal probe when stdout is not a TTY.
var ErrNotTerminal = errors.New("stdout is not a terminal")

// Result is the probed size and where it came from.
type Result struct {
	Size   geom.Size
	Source string
}

// Probes are the size sources, replaceable in tests.
type Probes struct {
	X11      func(display string) (geom.Size, error)
	Terminal func() (cols, rows int, err error)
}

// DefaultProbes queries the X server and the controlling terminal.
func DefaultProbes() Probes {
	return Probes{X11: probeX11, Terminal: probeTerminal}
}

func probeX11(display string) (geom.Size, error) {
	conn, err := x11.NewConnection(display)
	if err != nil {
		return geom.Size{}, fmt.Errorf("failed to connect to X server: %w", err)
	}
	defer conn.Close()
	mon, err := conn.GetActiveMonitor()
	if err != nil {
		return geom.Size{}, err
	}
	return mon.Bounds.Size(), nil
}

func probeTerminal() (int, int, error) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0, 0, ErrNotTerminal
	}
	return term.GetSize(fd)
}

// FromCells converts a terminal size to desktop pixels.
func FromCells(cols, rows int, t config.TerminalConfig) geom.Size {
	return geom.Size{Width: cols * t.CellWidth, Height: rows * t.CellHeight}
}

// Probe picks the viewport according to cfg.Viewport.Source. The auto source
// tries X11, then the terminal, then the configured size. The explicit
// sources fall back to the configured size on failure and report the error.
func Probe(cfg *config.Config, p Probes) (Result, error) {
	fallback := Result{Size: cfg.Fallback(), Source: config.ViewportFixed}

	x11Size := func() (Result, error) {
		if p.X11 == nil {
			return fallback, errors.New("x11 probe unavailable")
		}
		size, err := p.X11(cfg.Display)
		if err != nil {
			return fallback, err
		}
		if size.Width <= 0 || size.Height <= 0 {
			return fallback, fmt.Errorf("x11 reported empty monitor %dx%d", size.Width, size.Height)
		}
		return Result{Size: size, Source: config.ViewportX11}, nil
	}
	termSize := func() (Result, error) {
		if p.Terminal == nil {
			return fallback, errors.New("terminal probe unavailable")
		}
		cols, rows, err := p.Terminal()
		if err != nil {
			return fallback, err
		}
		if cols <= 0 || rows <= 0 {
			return fallback, fmt.Errorf("terminal reported %dx%d cells", cols, rows)
		}
		return Result{Size: FromCells(cols, rows, cfg.Terminal), Source: config.ViewportTerminal}, nil
	}

	switch cfg.Viewport.Source {
	case config.ViewportFixed:
		return fallback, nil
	case config.ViewportX11:
		return x11Size()
	case config.ViewportTerminal:
		return termSize()
	default:
		if res, err := x11Size(); err == nil {
			return res, nil
		}
		if res, err := termSize(); err == nil {
			return res, nil
		}
		return fallback, nil
	}
}
