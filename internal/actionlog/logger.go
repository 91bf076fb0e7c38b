// Package actionlog records applied window-manager intents to a rotating
// log file.
package actionlog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/1broseidon/deskfolio/internal/intent"
	"github.com/1broseidon/deskfolio/internal/wm"
)

// LogLevel defines the logging verbosity.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// kindLevel returns the log level for an intent kind. Pointer traffic is
// chatty and stays at debug.
func kindLevel(k intent.Kind) LogLevel {
	switch k {
	case intent.PointerMove, intent.PointerUp, intent.StartDrag, intent.StartResize:
		return LevelDebug
	default:
		return LevelInfo
	}
}

// LogConfig holds configuration for the action logger.
type LogConfig struct {
	Enabled   bool
	Level     LogLevel
	FilePath  string
	MaxSizeMB int
	MaxFiles  int
}

// Logger writes one line per applied intent with size-based rotation.
type Logger struct {
	mu          sync.Mutex
	file        *os.File
	config      LogConfig
	currentSize int64
	maxBytes    int64
	now         func() time.Time
}

// NewLogger creates a new logger with the given configuration. A disabled
// config yields a logger that drops every entry.
func NewLogger(cfg LogConfig) (*Logger, error) {
	l := &Logger{
		config:   cfg,
		maxBytes: int64(cfg.MaxSizeMB) * 1024 * 1024,
		now:      time.Now,
	}
	if !cfg.Enabled {
		return l, nil
	}

	dir := filepath.Dir(cfg.FilePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", cfg.FilePath, err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat log file: %w", err)
	}

	l.file = f
	l.currentSize = stat.Size()
	return l, nil
}

// Intent records an applied intent and the resulting window state.
func (l *Logger) Intent(in intent.Intent, w *wm.Window) {
	details := map[string]interface{}{}
	switch in.Kind {
	case intent.StartDrag, intent.StartResize, intent.PointerMove, intent.PointerUp:
		details["x"] = in.Point.X
		details["y"] = in.Point.Y
	case intent.OpenLink:
		details["url"] = in.URL
	}
	if in.Kind == intent.StartDrag || in.Kind == intent.StartResize {
		details["button"] = in.Button.String()
	}
	if w != nil {
		details["z"] = w.Z
		details["geometry"] = fmt.Sprintf("%dx%d+%d+%d", w.Width, w.Height, w.X, w.Y)
	}
	l.write(kindLevel(in.Kind), strings.ToUpper(string(in.Kind)), in.Target, details)
}

// Error records a rejected intent.
func (l *Logger) Error(in intent.Intent, err error) {
	l.write(LevelError, strings.ToUpper(string(in.Kind)), in.Target, map[string]interface{}{
		"error": err.Error(),
	})
}

func (l *Logger) write(level LogLevel, tag string, target wm.ID, details map[string]interface{}) {
	if l == nil || !l.config.Enabled {
		return
	}
	if level < l.config.Level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return
	}

	if l.maxBytes > 0 && l.currentSize >= l.maxBytes {
		if err := l.rotate(); err != nil {
			fmt.Fprintf(os.Stderr, "log rotation failed: %v\n", err)
		}
		if l.file == nil {
			return
		}
	}

	var sb strings.Builder
	sb.WriteString(l.now().Format("2006-01-02 15:04:05"))
	sb.WriteString(" [")
	sb.WriteString(tag)
	sb.WriteString("]")
	if target != "" {
		sb.WriteString(" window=")
		sb.WriteString(string(target))
	}

	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch val := details[k].(type) {
		case string:
			sb.WriteString(fmt.Sprintf(" %s=%q", k, val))
		default:
			sb.WriteString(fmt.Sprintf(" %s=%v", k, val))
		}
	}
	sb.WriteString("\n")

	n, err := l.file.WriteString(sb.String())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to write log entry: %v\n", err)
		return
	}
	l.currentSize += int64(n)
}

// Close closes the logger and releases resources.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// rotate shifts actions.log to actions.log.1, .1 to .2 and so on, keeping
// MaxFiles rotated files.
func (l *Logger) rotate() error {
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}

	basePath := l.config.FilePath
	for i := l.config.MaxFiles; i >= 1; i-- {
		oldPath := fmt.Sprintf("%s.%d", basePath, i)
		if i == l.config.MaxFiles {
			os.Remove(oldPath)
			continue
		}
		os.Rename(oldPath, fmt.Sprintf("%s.%d", basePath, i+1))
	}

	if l.config.MaxFiles > 0 {
		if err := os.Rename(basePath, basePath+".1"); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to rotate log file: %w", err)
		}
	} else if err := os.Remove(basePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to truncate log file: %w", err)
	}

	f, err := os.OpenFile(basePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open new log file: %w", err)
	}

	l.file = f
	l.currentSize = 0
	return nil
}

// ParseLogLevel converts a string to LogLevel. Unknown names map to info.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}
