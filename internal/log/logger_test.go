package log

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesComponentTag(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Component: "query", Writer: &buf})
	l.Info("fetch settled", "resource", "wallets")

	out := buf.String()
	if !strings.Contains(out, "component=query") {
		t.Errorf("output missing component tag: %s", out)
	}
	if !strings.Contains(out, "fetch settled") || !strings.Contains(out, "resource=wallets") {
		t.Errorf("output missing message or attrs: %s", out)
	}
}

func TestNewLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelWarn, Writer: &buf})
	l.Info("quiet")
	l.Warn("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Errorf("info line should be filtered: %s", out)
	}
	if !strings.Contains(out, "loud") {
		t.Errorf("warn line should pass: %s", out)
	}
}

func TestNewFileCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "maglo.log")
	l := NewFile(path, "tui", slog.LevelInfo)
	l.Info("hello")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file missing entry: %s", data)
	}
}

func TestNewFileFallsBackToDiscard(t *testing.T) {
	// A directory path cannot be opened as a file; logging must still work.
	l := NewFile(t.TempDir(), "tui", slog.LevelInfo)
	l.Info("dropped")
	if err := l.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	root := New(Config{Component: "maglo", Writer: &buf})
	child := root.WithComponent("session")

	if child.Component() != "session" {
		t.Errorf("Component() = %q, want %q", child.Component(), "session")
	}
	child.Info("tagged")
	if !strings.Contains(buf.String(), "component=session") {
		t.Errorf("child output missing new tag: %s", buf.String())
	}
}
