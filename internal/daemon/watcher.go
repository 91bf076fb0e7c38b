// Package daemon holds the background loops of the headless daemon.
package daemon

import (
	"context"
	"log/slog"
	"time"

	"github.com/1broseidon/deskfolio/internal/geom"
)

// ViewportProbe returns the current desktop size.
type ViewportProbe func() (geom.Size, error)

// ViewportSink receives viewport changes. *desktop.Desktop implements it.
type ViewportSink interface {
	SetViewport(vp geom.Size) error
}

// WatcherConfig holds configuration for the viewport watcher.
type WatcherConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Watcher periodically re-probes the viewport and forwards changes. Only the
// clamp bounds follow; window geometry and the initial layout are not
// touched.
type Watcher struct {
	interval time.Duration
	probe    ViewportProbe
	sink     ViewportSink
	logger   *slog.Logger
	last     geom.Size
}

// NewWatcher creates a watcher that starts from the initial viewport.
func NewWatcher(cfg WatcherConfig, probe ViewportProbe, sink ViewportSink, initial geom.Size) *Watcher {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		interval: interval,
		probe:    probe,
		sink:     sink,
		logger:   logger,
		last:     initial,
	}
}

// Run starts the watch loop. Blocks until context is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("viewport watcher started", "interval", w.interval)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("viewport watcher stopped")
			return
		case <-ticker.C:
			w.check()
		}
	}
}

// CheckNow runs one probe immediately and reports whether the viewport
// changed.
func (w *Watcher) CheckNow() bool {
	return w.check()
}

func (w *Watcher) check() (changed bool) {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			w.logger.Error("viewport watcher panic recovered", "error", err)
			changed = false
		}
	}()

	size, err := w.probe()
	if err != nil {
		w.logger.Warn("viewport probe failed", "error", err)
		return false
	}
	if size == w.last {
		return false
	}
	if err := w.sink.SetViewport(size); err != nil {
		w.logger.Warn("viewport rejected", "width", size.Width, "height", size.Height, "error", err)
		return false
	}
	w.logger.Info("viewport changed",
		"from", w.last,
		"to", size)
	w.last = size
	return true
}
