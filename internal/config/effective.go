package config

import (
	"fmt"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func applyInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

// BuildEffectiveConfig applies a merged raw config over the defaults.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.Windows != nil {
		cfg.Windows = raw.Windows
	}
	applyInt(&cfg.ZTop, raw.ZTop)

	if l := raw.Limits; l != nil {
		applyInt(&cfg.Limits.MinX, l.MinX)
		applyInt(&cfg.Limits.RightMargin, l.RightMargin)
		applyInt(&cfg.Limits.MinY, l.MinY)
		applyInt(&cfg.Limits.BottomMargin, l.BottomMargin)
		applyInt(&cfg.Limits.MinWidth, l.MinWidth)
		applyInt(&cfg.Limits.MinHeight, l.MinHeight)
	}
	if in := raw.MaximizeInsets; in != nil {
		applyInt(&cfg.MaximizeInsets.Top, in.Top)
		applyInt(&cfg.MaximizeInsets.Left, in.Left)
		applyInt(&cfg.MaximizeInsets.Right, in.Right)
		applyInt(&cfg.MaximizeInsets.Bottom, in.Bottom)
	}
	if m := raw.Mobile; m != nil {
		applyInt(&cfg.Mobile.Breakpoint, m.Breakpoint)
		applyInt(&cfg.Mobile.X, m.X)
		applyInt(&cfg.Mobile.Y, m.Y)
		applyInt(&cfg.Mobile.WidthMargin, m.WidthMargin)
		applyInt(&cfg.Mobile.HeightMargin, m.HeightMargin)
	}
	if c := raw.Chrome; c != nil {
		applyInt(&cfg.Chrome.TitleBarHeight, c.TitleBarHeight)
		applyInt(&cfg.Chrome.ButtonSize, c.ButtonSize)
		applyInt(&cfg.Chrome.ButtonGap, c.ButtonGap)
		applyInt(&cfg.Chrome.ButtonInset, c.ButtonInset)
		applyInt(&cfg.Chrome.ResizeHandleSize, c.ResizeHandleSize)
	}
	if raw.Links != nil {
		cfg.Links = raw.Links
	}
	if v := raw.Viewport; v != nil {
		if v.Source != nil {
			cfg.Viewport.Source = *v.Source
		}
		applyInt(&cfg.Viewport.Width, v.Width)
		applyInt(&cfg.Viewport.Height, v.Height)
	}
	if t := raw.Terminal; t != nil {
		applyInt(&cfg.Terminal.CellWidth, t.CellWidth)
		applyInt(&cfg.Terminal.CellHeight, t.CellHeight)
		applyInt(&cfg.Terminal.DoubleClickMS, t.DoubleClickMS)
	}
	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if l := raw.Logging; l != nil {
		if l.Enabled != nil {
			cfg.Logging.Enabled = *l.Enabled
		}
		if l.Level != nil {
			cfg.Logging.Level = *l.Level
		}
		if l.File != nil {
			cfg.Logging.File = *l.File
		}
		applyInt(&cfg.Logging.MaxSizeMB, l.MaxSizeMB)
		applyInt(&cfg.Logging.MaxFiles, l.MaxFiles)
	}

	return cfg, nil
}
