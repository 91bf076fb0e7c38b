package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawLimits struct {
	MinX         *int `yaml:"min_x"`
	RightMargin  *int `yaml:"right_margin"`
	MinY         *int `yaml:"min_y"`
	BottomMargin *int `yaml:"bottom_margin"`
	MinWidth     *int `yaml:"min_width"`
	MinHeight    *int `yaml:"min_height"`
}

type RawInsets struct {
	Top    *int `yaml:"top"`
	Left   *int `yaml:"left"`
	Right  *int `yaml:"right"`
	Bottom *int `yaml:"bottom"`
}

type RawMobileConfig struct {
	Breakpoint   *int `yaml:"breakpoint"`
	X            *int `yaml:"x"`
	Y            *int `yaml:"y"`
	WidthMargin  *int `yaml:"width_margin"`
	HeightMargin *int `yaml:"height_margin"`
}

type RawChrome struct {
	TitleBarHeight   *int `yaml:"title_bar_height"`
	ButtonSize       *int `yaml:"button_size"`
	ButtonGap        *int `yaml:"button_gap"`
	ButtonInset      *int `yaml:"button_inset"`
	ResizeHandleSize *int `yaml:"resize_handle_size"`
}

type RawViewportConfig struct {
	Source *string `yaml:"source"`
	Width  *int    `yaml:"width"`
	Height *int    `yaml:"height"`
}

type RawTerminalConfig struct {
	CellWidth     *int `yaml:"cell_width"`
	CellHeight    *int `yaml:"cell_height"`
	DoubleClickMS *int `yaml:"double_click_ms"`
}

type RawLoggingConfig struct {
	Enabled   *bool   `yaml:"enabled"`
	Level     *string `yaml:"level"`
	File      *string `yaml:"file"`
	MaxSizeMB *int    `yaml:"max_size_mb"`
	MaxFiles  *int    `yaml:"max_files"`
}

// RawConfig is one YAML file as written. Nil fields were not set and fall
// through to included files and then to defaults. Lists replace wholesale.
type RawConfig struct {
	Include        IncludeList        `yaml:"include"`
	Windows        []WindowConfig     `yaml:"windows"`
	ZTop           *int               `yaml:"z_top"`
	Limits         *RawLimits         `yaml:"limits"`
	MaximizeInsets *RawInsets         `yaml:"maximize_insets"`
	Mobile         *RawMobileConfig   `yaml:"mobile"`
	Chrome         *RawChrome         `yaml:"chrome"`
	Links          []LinkConfig       `yaml:"links"`
	Viewport       *RawViewportConfig `yaml:"viewport"`
	Terminal       *RawTerminalConfig `yaml:"terminal"`
	Display        *string            `yaml:"display"`
	LogLevel       *string            `yaml:"log_level"`
	Logging        *RawLoggingConfig  `yaml:"logging"`
}

func setInt(dst **int, src *int) {
	if src != nil {
		*dst = src
	}
}

func setString(dst **string, src *string) {
	if src != nil {
		*dst = src
	}
}

// merge returns r with every field set in overlay replaced.
func (r RawConfig) merge(overlay RawConfig) RawConfig {
	out := r
	out.Include = nil

	if overlay.Windows != nil {
		out.Windows = overlay.Windows
	}
	setInt(&out.ZTop, overlay.ZTop)

	if overlay.Limits != nil {
		l := RawLimits{}
		if out.Limits != nil {
			l = *out.Limits
		}
		setInt(&l.MinX, overlay.Limits.MinX)
		setInt(&l.RightMargin, overlay.Limits.RightMargin)
		setInt(&l.MinY, overlay.Limits.MinY)
		setInt(&l.BottomMargin, overlay.Limits.BottomMargin)
		setInt(&l.MinWidth, overlay.Limits.MinWidth)
		setInt(&l.MinHeight, overlay.Limits.MinHeight)
		out.Limits = &l
	}

	if overlay.MaximizeInsets != nil {
		in := RawInsets{}
		if out.MaximizeInsets != nil {
			in = *out.MaximizeInsets
		}
		setInt(&in.Top, overlay.MaximizeInsets.Top)
		setInt(&in.Left, overlay.MaximizeInsets.Left)
		setInt(&in.Right, overlay.MaximizeInsets.Right)
		setInt(&in.Bottom, overlay.MaximizeInsets.Bottom)
		out.MaximizeInsets = &in
	}

	if overlay.Mobile != nil {
		m := RawMobileConfig{}
		if out.Mobile != nil {
			m = *out.Mobile
		}
		setInt(&m.Breakpoint, overlay.Mobile.Breakpoint)
		setInt(&m.X, overlay.Mobile.X)
		setInt(&m.Y, overlay.Mobile.Y)
		setInt(&m.WidthMargin, overlay.Mobile.WidthMargin)
		setInt(&m.HeightMargin, overlay.Mobile.HeightMargin)
		out.Mobile = &m
	}

	if overlay.Chrome != nil {
		c := RawChrome{}
		if out.Chrome != nil {
			c = *out.Chrome
		}
		setInt(&c.TitleBarHeight, overlay.Chrome.TitleBarHeight)
		setInt(&c.ButtonSize, overlay.Chrome.ButtonSize)
		setInt(&c.ButtonGap, overlay.Chrome.ButtonGap)
		setInt(&c.ButtonInset, overlay.Chrome.ButtonInset)
		setInt(&c.ResizeHandleSize, overlay.Chrome.ResizeHandleSize)
		out.Chrome = &c
	}

	if overlay.Links != nil {
		out.Links = overlay.Links
	}

	if overlay.Viewport != nil {
		v := RawViewportConfig{}
		if out.Viewport != nil {
			v = *out.Viewport
		}
		setString(&v.Source, overlay.Viewport.Source)
		setInt(&v.Width, overlay.Viewport.Width)
		setInt(&v.Height, overlay.Viewport.Height)
		out.Viewport = &v
	}

	if overlay.Terminal != nil {
		t := RawTerminalConfig{}
		if out.Terminal != nil {
			t = *out.Terminal
		}
		setInt(&t.CellWidth, overlay.Terminal.CellWidth)
		setInt(&t.CellHeight, overlay.Terminal.CellHeight)
		setInt(&t.DoubleClickMS, overlay.Terminal.DoubleClickMS)
		out.Terminal = &t
	}

	setString(&out.Display, overlay.Display)
	setString(&out.LogLevel, overlay.LogLevel)

	if overlay.Logging != nil {
		l := RawLoggingConfig{}
		if out.Logging != nil {
			l = *out.Logging
		}
		if overlay.Logging.Enabled != nil {
			l.Enabled = overlay.Logging.Enabled
		}
		setString(&l.Level, overlay.Logging.Level)
		setString(&l.File, overlay.Logging.File)
		setInt(&l.MaxSizeMB, overlay.Logging.MaxSizeMB)
		setInt(&l.MaxFiles, overlay.Logging.MaxFiles)
		out.Logging = &l
	}

	return out
}
