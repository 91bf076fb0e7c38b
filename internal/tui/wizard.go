package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/1broseidon/deskfolio/internal/config"
)

// Wizard collects the common settings for `config init`.
type Wizard struct {
	cfg  *config.Config
	form *huh.Form

	// Form-bound values (strings for huh, converted on apply)
	fSource      string
	fWidth       string
	fHeight      string
	fCellWidth   string
	fCellHeight  string
	fDoubleClick string
	fBreakpoint  string
	fLogLevel    string
	fLogActions  bool
	fLinks       []string
}

// NewWizard prepares a form seeded from cfg. A nil cfg starts from the
// defaults.
func NewWizard(cfg *config.Config) *Wizard {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	w := &Wizard{
		cfg:          cfg,
		fSource:      cfg.Viewport.Source,
		fWidth:       strconv.Itoa(cfg.Viewport.Width),
		fHeight:      strconv.Itoa(cfg.Viewport.Height),
		fCellWidth:   strconv.Itoa(cfg.Terminal.CellWidth),
		fCellHeight:  strconv.Itoa(cfg.Terminal.CellHeight),
		fDoubleClick: strconv.Itoa(cfg.Terminal.DoubleClickMS),
		fBreakpoint:  strconv.Itoa(cfg.Mobile.Breakpoint),
		fLogLevel:    cfg.LogLevel,
		fLogActions:  cfg.Logging.Enabled,
		fLinks:       make([]string, len(cfg.Links)),
	}
	for i, l := range cfg.Links {
		w.fLinks[i] = l.URL
	}
	w.form = w.build()
	return w
}

func (w *Wizard) build() *huh.Form {
	sourceOpts := []huh.Option[string]{
		huh.NewOption("auto (X11, then terminal, then fixed)", config.ViewportAuto),
		huh.NewOption("x11 active monitor", config.ViewportX11),
		huh.NewOption("terminal size", config.ViewportTerminal),
		huh.NewOption("fixed", config.ViewportFixed),
	}
	levelOpts := []huh.Option[string]{
		huh.NewOption("debug", "debug"),
		huh.NewOption("info", "info"),
		huh.NewOption("warning", "warning"),
		huh.NewOption("error", "error"),
	}

	links := make([]huh.Field, 0, len(w.cfg.Links))
	for i, l := range w.cfg.Links {
		links = append(links, huh.NewInput().
			Key("link_"+l.Key).
			Title(l.Label+" URL").
			Validate(nonEmpty).
			Value(&w.fLinks[i]))
	}

	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("viewport_source").
				Title("Viewport Source").
				Description("Where the desktop size comes from at startup").
				Options(sourceOpts...).
				Value(&w.fSource),
			huh.NewInput().
				Key("viewport_width").
				Title("Viewport Width").
				Description("Fixed size, and the fallback when probing fails").
				Validate(positiveInt).
				Value(&w.fWidth),
			huh.NewInput().
				Key("viewport_height").
				Title("Viewport Height").
				Validate(positiveInt).
				Value(&w.fHeight),
			huh.NewInput().
				Key("mobile_breakpoint").
				Title("Compact Layout Breakpoint").
				Description("Viewports narrower than this stack every window").
				Validate(nonNegativeInt).
				Value(&w.fBreakpoint),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("cell_width").
				Title("Terminal Cell Width").
				Description("Desktop pixels per terminal column").
				Validate(positiveInt).
				Value(&w.fCellWidth),
			huh.NewInput().
				Key("cell_height").
				Title("Terminal Cell Height").
				Validate(positiveInt).
				Value(&w.fCellHeight),
			huh.NewInput().
				Key("double_click_ms").
				Title("Double Click (ms)").
				Validate(nonNegativeInt).
				Value(&w.fDoubleClick),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("log_level").
				Title("Log Level").
				Options(levelOpts...).
				Value(&w.fLogLevel),
			huh.NewConfirm().
				Key("log_actions").
				Title("Log window actions to a file?").
				Value(&w.fLogActions),
		),
	}
	if len(links) > 0 {
		groups = append(groups, huh.NewGroup(links...).Title("Desktop Links"))
	}
	return huh.NewForm(groups...).WithShowHelp(true).WithShowErrors(true)
}

// Run shows the form and applies the answers to the config.
func (w *Wizard) Run() (*config.Config, error) {
	if err := w.form.Run(); err != nil {
		return nil, err
	}
	if err := w.Apply(); err != nil {
		return nil, err
	}
	return w.cfg, nil
}

// Apply copies the form values into the config and validates it.
func (w *Wizard) Apply() error {
	ints := []struct {
		name string
		src  string
		dst  *int
	}{
		{"viewport width", w.fWidth, &w.cfg.Viewport.Width},
		{"viewport height", w.fHeight, &w.cfg.Viewport.Height},
		{"cell width", w.fCellWidth, &w.cfg.Terminal.CellWidth},
		{"cell height", w.fCellHeight, &w.cfg.Terminal.CellHeight},
		{"double click", w.fDoubleClick, &w.cfg.Terminal.DoubleClickMS},
		{"breakpoint", w.fBreakpoint, &w.cfg.Mobile.Breakpoint},
	}
	for _, f := range ints {
		v, err := strconv.Atoi(strings.TrimSpace(f.src))
		if err != nil {
			return fmt.Errorf("%s: %q is not a number", f.name, f.src)
		}
		*f.dst = v
	}
	w.cfg.Viewport.Source = w.fSource
	w.cfg.LogLevel = w.fLogLevel
	w.cfg.Logging.Enabled = w.fLogActions
	for i := range w.cfg.Links {
		w.cfg.Links[i].URL = strings.TrimSpace(w.fLinks[i])
	}
	return w.cfg.Validate()
}

func nonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func positiveInt(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

func nonNegativeInt(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return fmt.Errorf("must be zero or a positive number")
	}
	return nil
}
