// Package tui renders the portfolio desktop in a terminal and drives it
// with the mouse. It also hosts the config wizard.
package tui

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/1broseidon/deskfolio/internal/config"
	"github.com/1broseidon/deskfolio/internal/desktop"
	"github.com/1broseidon/deskfolio/internal/geom"
	"github.com/1broseidon/deskfolio/internal/gesture"
	"github.com/1broseidon/deskfolio/internal/intent"
	"github.com/1broseidon/deskfolio/internal/view"
)

// Options configures the terminal desktop.
type Options struct {
	Config  *config.Config
	Desktop *desktop.Desktop
	Logger  *slog.Logger
	// FollowTerminal pushes terminal resizes to the desktop as viewport
	// changes. Leave it off when the viewport came from a fixed override.
	FollowTerminal bool
}

// Run starts the terminal desktop and blocks until the user quits.
func Run(opts Options) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}
	p := tea.NewProgram(newModel(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(view.ClockInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// model is the root bubbletea model for the desktop.
type model struct {
	desk    *desktop.Desktop
	shell   *view.Shell
	painter painter
	styles  []lipgloss.Style
	logger  *slog.Logger
	follow  bool
	clock   func() time.Time

	// Terminal dimensions
	cols int
	rows int
	now  time.Time
}

// NewShell builds the pointer router for cfg.
func NewShell(cfg *config.Config) *view.Shell {
	shell := view.NewShell(
		cfg.Layout(),
		view.Dock{Metrics: view.DefaultDockMetrics(), Glyphs: cfg.Glyphs()},
		view.NewIcons(cfg.Icons(), view.DefaultIconMetrics()),
	)
	shell.DoubleClick = cfg.DoubleClick()
	return shell
}

func newModel(opts Options) model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	shell := NewShell(cfg)
	return model{
		desk:  opts.Desktop,
		shell: shell,
		painter: painter{
			grid:    grid{cell: geom.Size{Width: cfg.Terminal.CellWidth, Height: cfg.Terminal.CellHeight}},
			shell:   shell,
			content: cfg.Content,
			barH:    cfg.Limits.MinY,
		},
		styles: defaultStyles(),
		logger: logger,
		follow: opts.FollowTerminal,
		clock:  time.Now,
		now:    time.Now(),
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.cols = msg.Width
		m.rows = msg.Height
		if m.follow {
			if err := m.desk.SetViewport(m.painter.grid.viewport(m.cols, m.rows)); err != nil {
				m.logger.Warn("ignoring terminal size", "error", err)
			}
		}
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tickMsg:
		m.now = time.Time(msg)
		return m, tick()
	}
	return m, nil
}

func (m model) handleMouse(msg tea.MouseMsg) {
	p := m.painter.grid.center(msg.X, msg.Y)
	at := m.clock()

	var ins []intent.Intent
	switch msg.Action {
	case tea.MouseActionPress:
		b, ok := mouseButton(msg.Button)
		if !ok {
			return
		}
		ins = m.shell.Press(m.desk.Scene(), p, b, at)
	case tea.MouseActionMotion:
		ins = m.shell.Move(p)
	case tea.MouseActionRelease:
		ins = m.shell.Release(m.desk.Scene(), p, at)
	}
	if len(ins) == 0 {
		return
	}
	if _, err := m.desk.ApplyAll(ins); err != nil {
		m.logger.Warn("pointer event rejected", "error", err)
	}
}

func mouseButton(b tea.MouseButton) (gesture.Button, bool) {
	switch b {
	case tea.MouseButtonLeft:
		return gesture.ButtonPrimary, true
	case tea.MouseButtonMiddle:
		return gesture.ButtonMiddle, true
	case tea.MouseButtonRight:
		return gesture.ButtonSecondary, true
	default:
		return gesture.ButtonPrimary, false
	}
}

// View implements tea.Model.
func (m model) View() string {
	if m.cols <= 0 || m.rows <= 0 {
		return ""
	}
	return m.painter.paint(m.desk.Scene(), m.cols, m.rows, m.now).render(m.styles)
}
