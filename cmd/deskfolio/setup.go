package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/1broseidon/deskfolio/internal/actionlog"
	"github.com/1broseidon/deskfolio/internal/config"
	"github.com/1broseidon/deskfolio/internal/desktop"
	"github.com/1broseidon/deskfolio/internal/viewport"
)

func loadConfig(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(path)
}

func slogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slogLevel(cfg.LogLevel),
	}))
}

// newActionLogger opens the intent log. Failures are reported and logging
// continues without it.
func newActionLogger(cfg *config.Config) *actionlog.Logger {
	logCfg := cfg.GetLoggingConfig()
	if !logCfg.Enabled {
		return nil
	}
	logger, err := actionlog.NewLogger(actionlog.LogConfig{
		Enabled:   logCfg.Enabled,
		Level:     actionlog.ParseLogLevel(logCfg.Level),
		FilePath:  logCfg.File,
		MaxSizeMB: logCfg.MaxSizeMB,
		MaxFiles:  logCfg.MaxFiles,
	})
	if err != nil {
		log.Printf("Warning: failed to initialize action logger: %v", err)
		return nil
	}
	return logger
}

// openLink hands a URL to the desktop environment.
func openLink(url string) error {
	opener := "xdg-open"
	if _, err := exec.LookPath(opener); err != nil {
		return fmt.Errorf("%s not found in PATH", opener)
	}
	cmd := exec.Command(opener, url)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}

// session is a desktop built from config with its viewport probed once.
type session struct {
	desk     *desktop.Desktop
	viewport viewport.Result
	actions  *actionlog.Logger
	logger   *slog.Logger
}

func (s *session) Close() {
	if s.actions != nil {
		s.actions.Close()
	}
}

func newSession(cfg *config.Config, probes viewport.Probes) (*session, error) {
	logger := newLogger(cfg)

	vp, err := viewport.Probe(cfg, probes)
	if err != nil {
		logger.Warn("viewport probe failed, using configured size", "source", cfg.Viewport.Source, "error", err)
	}
	logger.Info("viewport", "source", vp.Source, "width", vp.Size.Width, "height", vp.Size.Height, "compact", cfg.IsCompact(vp.Size))

	actions := newActionLogger(cfg)
	desk, err := desktop.New(desktop.Config{
		Windows:  cfg.InitialWindows(vp.Size),
		Options:  cfg.RegistryOptions(vp.Size),
		Logger:   logger,
		Actions:  actions,
		OpenLink: openLink,
	})
	if err != nil {
		if actions != nil {
			actions.Close()
		}
		return nil, err
	}
	return &session{desk: desk, viewport: vp, actions: actions, logger: logger}, nil
}
