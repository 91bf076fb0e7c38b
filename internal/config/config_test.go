package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/1broseidon/deskfolio/internal/geom"
	"github.com/1broseidon/deskfolio/internal/wm"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if len(cfg.Windows) != 4 || cfg.ZTop != 20 {
		t.Fatalf("unexpected defaults: %d windows, z_top %d", len(cfg.Windows), cfg.ZTop)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), res.Config); diff != "" {
		t.Fatalf("expected defaults (-want +got):\n%s", diff)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no files, got %v", res.Files)
	}
}

func TestLoadFromPath_PartialOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, strings.Join([]string{
		"z_top: 50",
		"limits:",
		"  min_width: 320",
		"maximize_insets:",
		"  bottom: 96",
		"terminal:",
		"  double_click_ms: 250",
		"logging:",
		"  enabled: true",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.ZTop != 50 || cfg.Limits.MinWidth != 320 || cfg.Limits.MinHeight != 200 {
		t.Fatalf("unexpected limits/z_top: %+v z_top=%d", cfg.Limits, cfg.ZTop)
	}
	if cfg.MaximizeInsets.Bottom != 96 || cfg.MaximizeInsets.Top != 40 {
		t.Fatalf("unexpected insets: %+v", cfg.MaximizeInsets)
	}
	if cfg.DoubleClick().Milliseconds() != 250 {
		t.Fatalf("unexpected double click %v", cfg.DoubleClick())
	}
	if !cfg.Logging.Enabled {
		t.Fatal("expected logging enabled")
	}
	if len(cfg.Windows) != 4 {
		t.Fatalf("windows should keep defaults, got %d", len(cfg.Windows))
	}
}

func TestLoadFromPath_UnknownKeyRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "z_tpo: 3\n")
	if _, err := LoadFromPath(path); err == nil {
		t.Fatal("expected strict decoding to reject unknown key")
	}
}

func TestLoadFromPath_ValidationErrorCarriesPosition(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, strings.Join([]string{
		"windows:",
		"  - id: about",
		"    title: About",
		"    width: 800",
		"    height: 600",
		"  - id: about",
		"    title: Again",
		"    width: 800",
		"    height: 600",
		"",
	}, "\n"))

	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Path != "windows.1.id" {
		t.Fatalf("unexpected path %q", verr.Path)
	}
	if verr.Source.Kind != SourceFile || verr.Source.Line != 6 || verr.Source.Column != 9 {
		t.Fatalf("unexpected source %+v", verr.Source)
	}
	if !strings.Contains(err.Error(), ":6:9: windows.1.id: duplicate id") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestLoadFromPath_IncludesMergeInOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "conf.d", "10-links.yaml"), strings.Join([]string{
		"links:",
		"  - key: blog",
		"    label: Blog",
		"    url: https://example.com/blog",
		"z_top: 30",
		"",
	}, "\n"))
	writeFile(t, filepath.Join(dir, "conf.d", "20-z.yaml"), "z_top: 40\n")
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "include: conf.d\nlog_level: debug\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.ZTop != 40 {
		t.Fatalf("later include should win, got z_top %d", res.Config.ZTop)
	}
	if len(res.Config.Links) != 1 || res.Config.Links[0].Key != "blog" {
		t.Fatalf("links should be replaced, got %+v", res.Config.Links)
	}
	if res.Config.LogLevel != "debug" {
		t.Fatalf("expected log_level debug, got %q", res.Config.LogLevel)
	}
	if len(res.Files) != 3 {
		t.Fatalf("expected 3 files, got %v", res.Files)
	}
}

func TestLoadFromPath_IncludeCycle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.yaml"), "include: b.yaml\n")
	writeFile(t, filepath.Join(dir, "b.yaml"), "include: a.yaml\n")
	_, err := LoadFromPath(filepath.Join(dir, "a.yaml"))
	if err == nil || !strings.Contains(err.Error(), "include cycle") {
		t.Fatalf("expected include cycle error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"no windows", func(c *Config) { c.Windows = nil }, "windows"},
		{"empty id", func(c *Config) { c.Windows[0].ID = " " }, "windows.0.id"},
		{"zero size", func(c *Config) { c.Windows[2].Width = 0 }, "windows.2"},
		{"link collides", func(c *Config) { c.Links[0].Key = "about" }, "links.0.key"},
		{"link url", func(c *Config) { c.Links[1].URL = "" }, "links.1.url"},
		{"limits", func(c *Config) { c.Limits.MinHeight = 0 }, "limits"},
		{"insets", func(c *Config) { c.MaximizeInsets.Top = -1 }, "maximize_insets"},
		{"button", func(c *Config) { c.Chrome.ButtonSize = 100 }, "chrome.button_size"},
		{"source", func(c *Config) { c.Viewport.Source = "wayland" }, "viewport.source"},
		{"cells", func(c *Config) { c.Terminal.CellWidth = 0 }, "terminal"},
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("path = %q, want %q", verr.Path, tt.path)
			}
		})
	}
}

func TestInitialWindows(t *testing.T) {
	cfg := DefaultConfig()

	desktop := cfg.InitialWindows(geom.Size{Width: 1280, Height: 800})
	if desktop[1].X != 150 || desktop[1].Width != 800 {
		t.Fatalf("desktop layout should keep declared geometry, got %+v", desktop[1])
	}

	mobile := cfg.InitialWindows(geom.Size{Width: 390, Height: 844})
	for _, w := range mobile {
		if w.X != 16 || w.Y != 60 || w.Width != 358 || w.Height != 644 {
			t.Fatalf("unexpected compact geometry %+v", w)
		}
	}

	reg, err := wm.NewRegistry(cfg.InitialWindows(geom.Size{Width: 320, Height: 480}), cfg.RegistryOptions(geom.Size{Width: 320, Height: 480}))
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if w := reg.Window("about"); w.Width != 300 || w.Height != 280 {
		t.Fatalf("compact width should be floored to 300, got %dx%d", w.Width, w.Height)
	}
}

func TestIconsWindowsThenLinks(t *testing.T) {
	icons := DefaultConfig().Icons()
	var keys []string
	for _, ic := range icons {
		keys = append(keys, ic.Key)
	}
	want := []string{"about", "work", "skills", "contact", "resume", "github", "linkedin"}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Fatalf("icon order (-want +got):\n%s", diff)
	}
	if !icons[4].IsLink() || icons[0].IsLink() {
		t.Fatal("link classification wrong")
	}
}

func TestExplain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "limits:\n  min_width: 320\n")
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	val, src, err := Explain(res, "limits.min_width")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != 320 || src.Kind != SourceFile || src.Line != 2 {
		t.Fatalf("unexpected explain result %v %+v", val, src)
	}

	val, src, err = Explain(res, "windows.0.title")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != "About Me" || src.Kind != SourceDefault {
		t.Fatalf("unexpected explain result %v %+v", val, src)
	}

	if _, _, err := Explain(res, "windows.9.title"); err == nil {
		t.Fatal("expected unknown path error")
	}
}

func TestSaveToRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "config.yaml")
	cfg := DefaultConfig()
	cfg.ZTop = 33
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(cfg, res.Config); diff != "" {
		t.Fatalf("round trip (-want +got):\n%s", diff)
	}
}

func TestLoadFromPath_IncluderSourceWins(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.yaml")
	writeFile(t, base, "z_top: 30\nlog_level: debug\n")
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "include: base.yaml\nz_top: 50\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.ZTop != 50 || res.Config.LogLevel != "debug" {
		t.Fatalf("z_top=%d log_level=%q, want 50 debug", res.Config.ZTop, res.Config.LogLevel)
	}
	if src := res.Sources["z_top"]; filepath.Base(src.File) != "config.yaml" || src.Line != 2 {
		t.Fatalf("z_top source = %+v, want config.yaml:2", src)
	}
	if src := res.Sources["log_level"]; filepath.Base(src.File) != "base.yaml" {
		t.Fatalf("log_level source = %+v, want base.yaml", src)
	}
	if len(res.Files) != 2 || filepath.Base(res.Files[0]) != "base.yaml" {
		t.Fatalf("files = %v, want base.yaml first", res.Files)
	}
}
