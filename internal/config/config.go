package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/deskfolio/internal/geom"
	"github.com/1broseidon/deskfolio/internal/view"
)

// WindowConfig declares one window identity and its initial state.
type WindowConfig struct {
	ID     string `yaml:"id"`
	Title  string `yaml:"title"`
	Glyph  string `yaml:"glyph,omitempty"`
	Open   bool   `yaml:"open,omitempty"`
	Z      int    `yaml:"z"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	// Content is the static text shown inside the window body.
	Content []string `yaml:"content,omitempty"`
}

// LinkConfig declares a desktop icon that opens a URL.
type LinkConfig struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label"`
	Glyph string `yaml:"glyph,omitempty"`
	URL   string `yaml:"url"`
}

// MobileConfig is the compact layout applied once at startup on narrow
// viewports.
type MobileConfig struct {
	// Breakpoint is the viewport width below which the compact layout is used.
	Breakpoint int `yaml:"breakpoint"`
	X          int `yaml:"x"`
	Y          int `yaml:"y"`
	// WidthMargin is subtracted from the viewport width.
	WidthMargin int `yaml:"width_margin"`
	// HeightMargin is subtracted from the viewport height, leaving room for
	// the top bar and the dock.
	HeightMargin int `yaml:"height_margin"`
}

// Viewport sources.
const (
	ViewportAuto     = "auto"
	ViewportX11      = "x11"
	ViewportTerminal = "terminal"
	ViewportFixed    = "fixed"
)

// ViewportConfig selects how the viewport is probed.
type ViewportConfig struct {
	// Source is one of: auto, x11, terminal, fixed.
	Source string `yaml:"source"`
	// Width and Height are used by the fixed source and as the last fallback.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TerminalConfig maps terminal cells to desktop pixels.
type TerminalConfig struct {
	CellWidth     int `yaml:"cell_width"`
	CellHeight    int `yaml:"cell_height"`
	DoubleClickMS int `yaml:"double_click_ms"`
}

// LoggingConfig configures intent action logging.
type LoggingConfig struct {
	// Enabled turns on the action log (default: false)
	Enabled bool `yaml:"enabled"`
	// Level is the minimum level written: debug, info, warning, error (default: info)
	Level string `yaml:"level,omitempty"`
	// File is the log path (default: ~/.local/share/deskfolio/actions.log)
	File string `yaml:"file,omitempty"`
	// MaxSizeMB is the maximum log file size before rotation (default: 10)
	MaxSizeMB int `yaml:"max_size_mb,omitempty"`
	// MaxFiles is the number of rotated files kept (default: 3)
	MaxFiles int `yaml:"max_files,omitempty"`
}

type Config struct {
	Windows        []WindowConfig `yaml:"windows"`
	ZTop           int            `yaml:"z_top"`
	Limits         geom.Bounds    `yaml:"limits"`
	MaximizeInsets view.Insets    `yaml:"maximize_insets"`
	Mobile         MobileConfig   `yaml:"mobile"`
	Chrome         view.Chrome    `yaml:"chrome"`
	Links          []LinkConfig   `yaml:"links"`
	Viewport       ViewportConfig `yaml:"viewport"`
	Terminal       TerminalConfig `yaml:"terminal"`
	Display        string         `yaml:"display,omitempty"`
	LogLevel       string         `yaml:"log_level"`
	Logging        LoggingConfig  `yaml:"logging,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Windows: []WindowConfig{
			{
				ID: "about", Title: "About Me", Glyph: "@", Open: true,
				Z: 10, X: 100, Y: 80, Width: 800, Height: 600,
				Content: []string{
					"Hi, welcome to my desktop.",
					"",
					"I build backend systems and enjoy making them",
					"simpler, faster and easier to deploy.",
				},
			},
			{
				ID: "work", Title: "Work", Glyph: "W",
				Z: 10, X: 150, Y: 120, Width: 800, Height: 600,
				Content: []string{"Experience", "", "Add your roles under windows[].content."},
			},
			{
				ID: "skills", Title: "Skills", Glyph: "S",
				Z: 10, X: 200, Y: 160, Width: 600, Height: 400,
				Content: []string{"Languages, platforms and tools."},
			},
			{
				ID: "contact", Title: "Contact", Glyph: "C",
				Z: 10, X: 250, Y: 200, Width: 600, Height: 400,
				Content: []string{"Reach me through the links on the desktop."},
			},
		},
		ZTop:           20,
		Limits:         geom.DefaultBounds(),
		MaximizeInsets: view.DefaultMaximizeInsets(),
		Mobile: MobileConfig{
			Breakpoint:   768,
			X:            16,
			Y:            60,
			WidthMargin:  32,
			HeightMargin: 200,
		},
		Chrome: view.DefaultChrome(),
		Links: []LinkConfig{
			{Key: "resume", Label: "Resume", Glyph: "R", URL: "https://example.com/resume.pdf"},
			{Key: "github", Label: "GitHub", Glyph: "G", URL: "https://github.com/"},
			{Key: "linkedin", Label: "LinkedIn", Glyph: "in", URL: "https://www.linkedin.com/"},
		},
		Viewport: ViewportConfig{
			Source: ViewportAuto,
			Width:  1280,
			Height: 800,
		},
		Terminal: TerminalConfig{
			CellWidth:     8,
			CellHeight:    16,
			DoubleClickMS: 400,
		},
		LogLevel: "info",
	}
}

// DoubleClick returns the double-click interval.
func (c *Config) DoubleClick() time.Duration {
	if c == nil || c.Terminal.DoubleClickMS <= 0 {
		return view.DefaultDoubleClick
	}
	return time.Duration(c.Terminal.DoubleClickMS) * time.Millisecond
}

// GetLoggingConfig returns the logging configuration with defaults applied.
func (c *Config) GetLoggingConfig() LoggingConfig {
	if c == nil {
		return LoggingConfig{}
	}
	cfg := c.Logging
	if cfg.File == "" {
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			home = os.Getenv("HOME")
		}
		if home == "" {
			home = "."
		}
		cfg.File = filepath.Join(home, ".local/share/deskfolio/actions.log")
	}
	if cfg.MaxSizeMB == 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxFiles == 0 {
		cfg.MaxFiles = 3
	}
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	return cfg
}

// Save writes the configuration to the standard location.
//
// Note: this marshals the effective config and will not preserve comments or
// include structure from the source YAML.
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo validates and writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if len(c.Windows) == 0 {
		return &ValidationError{Path: "windows", Err: fmt.Errorf("at least one window is required")}
	}
	seen := make(map[string]struct{}, len(c.Windows)+len(c.Links))
	for i, w := range c.Windows {
		path := fmt.Sprintf("windows.%d", i)
		if strings.TrimSpace(w.ID) == "" {
			return &ValidationError{Path: path + ".id", Err: fmt.Errorf("id is required")}
		}
		if _, dup := seen[w.ID]; dup {
			return &ValidationError{Path: path + ".id", Err: fmt.Errorf("duplicate id %q", w.ID)}
		}
		seen[w.ID] = struct{}{}
		if w.Width <= 0 || w.Height <= 0 {
			return &ValidationError{Path: path, Err: fmt.Errorf("width and height must be > 0")}
		}
		if w.Z < 0 {
			return &ValidationError{Path: path + ".z", Err: fmt.Errorf("z must be >= 0")}
		}
	}
	for i, l := range c.Links {
		path := fmt.Sprintf("links.%d", i)
		if strings.TrimSpace(l.Key) == "" {
			return &ValidationError{Path: path + ".key", Err: fmt.Errorf("key is required")}
		}
		if _, dup := seen[l.Key]; dup {
			return &ValidationError{Path: path + ".key", Err: fmt.Errorf("key %q collides with another desktop item", l.Key)}
		}
		seen[l.Key] = struct{}{}
		if strings.TrimSpace(l.URL) == "" {
			return &ValidationError{Path: path + ".url", Err: fmt.Errorf("url is required")}
		}
	}
	if c.ZTop < 0 {
		return &ValidationError{Path: "z_top", Err: fmt.Errorf("z_top must be >= 0")}
	}
	if c.Limits.MinWidth <= 0 || c.Limits.MinHeight <= 0 {
		return &ValidationError{Path: "limits", Err: fmt.Errorf("min_width and min_height must be > 0")}
	}
	if c.Limits.RightMargin < 0 || c.Limits.BottomMargin < 0 {
		return &ValidationError{Path: "limits", Err: fmt.Errorf("right_margin and bottom_margin must be >= 0")}
	}
	if c.Limits.MinY < 0 {
		return &ValidationError{Path: "limits.min_y", Err: fmt.Errorf("min_y must be >= 0")}
	}
	in := c.MaximizeInsets
	if in.Top < 0 || in.Left < 0 || in.Right < 0 || in.Bottom < 0 {
		return &ValidationError{Path: "maximize_insets", Err: fmt.Errorf("maximize_insets values must be >= 0")}
	}
	if c.Mobile.Breakpoint < 0 {
		return &ValidationError{Path: "mobile.breakpoint", Err: fmt.Errorf("breakpoint must be >= 0")}
	}
	if c.Chrome.TitleBarHeight <= 0 {
		return &ValidationError{Path: "chrome.title_bar_height", Err: fmt.Errorf("title_bar_height must be > 0")}
	}
	if c.Chrome.ButtonSize <= 0 || c.Chrome.ButtonSize > c.Chrome.TitleBarHeight {
		return &ValidationError{Path: "chrome.button_size", Err: fmt.Errorf("button_size must be between 1 and title_bar_height")}
	}
	if c.Chrome.ButtonGap < 0 || c.Chrome.ButtonInset < 0 || c.Chrome.ResizeHandleSize < 0 {
		return &ValidationError{Path: "chrome", Err: fmt.Errorf("chrome sizes must be >= 0")}
	}
	switch c.Viewport.Source {
	case ViewportAuto, ViewportX11, ViewportTerminal, ViewportFixed:
	default:
		return &ValidationError{Path: "viewport.source", Err: fmt.Errorf("source must be one of: auto, x11, terminal, fixed")}
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return &ValidationError{Path: "viewport", Err: fmt.Errorf("width and height must be > 0")}
	}
	if c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0 {
		return &ValidationError{Path: "terminal", Err: fmt.Errorf("cell_width and cell_height must be > 0")}
	}
	if c.Terminal.DoubleClickMS < 0 {
		return &ValidationError{Path: "terminal.double_click_ms", Err: fmt.Errorf("double_click_ms must be >= 0")}
	}
	if !validLevel(c.LogLevel) {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	if c.Logging.Level != "" && !validLevel(c.Logging.Level) {
		return &ValidationError{Path: "logging.level", Err: fmt.Errorf("level must be one of: debug, info, warning, error")}
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxFiles < 0 {
		return &ValidationError{Path: "logging", Err: fmt.Errorf("max_size_mb and max_files must be >= 0")}
	}

	for _, w := range c.validationWarnings() {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
	return nil
}

func validLevel(s string) bool {
	switch s {
	case "debug", "info", "warning", "error":
		return true
	}
	return false
}

func (c *Config) validationWarnings() []string {
	var warnings []string
	for _, w := range c.Windows {
		if w.Width < c.Limits.MinWidth || w.Height < c.Limits.MinHeight {
			warnings = append(warnings, fmt.Sprintf("window %q is smaller than %dx%d and will be enlarged", w.ID, c.Limits.MinWidth, c.Limits.MinHeight))
		}
		if w.Z > c.ZTop {
			warnings = append(warnings, fmt.Sprintf("window %q has z %d above z_top %d; z_top is raised", w.ID, w.Z, c.ZTop))
		}
	}
	return warnings
}
