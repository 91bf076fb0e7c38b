package config

import (
	"github.com/1broseidon/deskfolio/internal/geom"
	"github.com/1broseidon/deskfolio/internal/view"
	"github.com/1broseidon/deskfolio/internal/wm"
)

// IsCompact reports whether vp falls under the mobile breakpoint.
func (c *Config) IsCompact(vp geom.Size) bool {
	return vp.Width < c.Mobile.Breakpoint
}

// InitialWindows returns the window declarations for a viewport probed at
// startup. Narrow viewports stack every window at the same compact
// geometry; the registry then floors it to the minimum size. This runs
// once; later viewport changes never re-run it.
func (c *Config) InitialWindows(vp geom.Size) []wm.Window {
	compact := c.IsCompact(vp)
	out := make([]wm.Window, 0, len(c.Windows))
	for _, wc := range c.Windows {
		w := wm.Window{
			ID:     wm.ID(wc.ID),
			Title:  wc.Title,
			Open:   wc.Open,
			Z:      wc.Z,
			X:      wc.X,
			Y:      wc.Y,
			Width:  wc.Width,
			Height: wc.Height,
		}
		if compact {
			w.X = c.Mobile.X
			w.Y = c.Mobile.Y
			w.Width = vp.Width - c.Mobile.WidthMargin
			w.Height = vp.Height - c.Mobile.HeightMargin
		}
		out = append(out, w)
	}
	return out
}

// RegistryOptions returns the registry options for vp.
func (c *Config) RegistryOptions(vp geom.Size) wm.Options {
	return wm.Options{Viewport: vp, Bounds: c.Limits, ZTop: c.ZTop}
}

// Layout returns the frame layout.
func (c *Config) Layout() view.Layout {
	return view.Layout{Chrome: c.Chrome, Maximize: c.MaximizeInsets}
}

// Icons returns the desktop icons: one per window, then the links.
func (c *Config) Icons() []view.Icon {
	out := make([]view.Icon, 0, len(c.Windows)+len(c.Links))
	for _, w := range c.Windows {
		out = append(out, view.Icon{Key: w.ID, Label: w.Title, Glyph: w.Glyph, Window: wm.ID(w.ID)})
	}
	for _, l := range c.Links {
		out = append(out, view.Icon{Key: l.Key, Label: l.Label, Glyph: l.Glyph, URL: l.URL})
	}
	return out
}

// Glyphs maps window identities to their dock glyph.
func (c *Config) Glyphs() map[wm.ID]string {
	out := make(map[wm.ID]string, len(c.Windows))
	for _, w := range c.Windows {
		out[wm.ID(w.ID)] = w.Glyph
	}
	return out
}

// Content returns the body text of a window.
func (c *Config) Content(id wm.ID) []string {
	for _, w := range c.Windows {
		if wm.ID(w.ID) == id {
			return w.Content
		}
	}
	return nil
}

// Fallback returns the configured viewport size.
func (c *Config) Fallback() geom.Size {
	return geom.Size{Width: c.Viewport.Width, Height: c.Viewport.Height}
}
