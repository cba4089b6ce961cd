package log

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Logger wraps slog.Logger with a component tag. The TUI owns stdout, so the
// default sink is a log file under the state directory.
type Logger struct {
	*slog.Logger
	component string
	closer    io.Closer
}

// Config holds logger configuration.
type Config struct {
	Level     slog.Level
	Component string
	Writer    io.Writer
}

// New creates a logger writing structured text lines to w.
func New(cfg Config) *Logger {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.Level})
	component := cfg.Component
	if component == "" {
		component = "maglo"
	}
	return &Logger{
		Logger:    slog.New(handler).With("component", component),
		component: component,
	}
}

// NewFile creates a logger appending to path, creating parent directories as
// needed. Falls back to a discard logger when the file cannot be opened; a
// broken log sink must never take the UI down.
func NewFile(path, component string, level slog.Level) *Logger {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return Discard(component)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return Discard(component)
	}
	l := New(Config{Level: level, Component: component, Writer: f})
	l.closer = f
	return l
}

// Discard returns a logger that drops everything.
func Discard(component string) *Logger {
	return New(Config{Component: component, Writer: io.Discard})
}

// WithComponent returns a logger tagged with a different component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger:    l.Logger.With("component", component),
		component: component,
		closer:    nil, // only the root logger owns the file
	}
}

// Component returns the logger's component name.
func (l *Logger) Component() string {
	return l.component
}

// Close releases the underlying file, if any.
func (l *Logger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}
