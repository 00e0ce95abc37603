package oasedit

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	// Must not panic and With must return a usable logger.
	l.Debug("debug", "k", "v")
	l.Info("info")
	l.Warn("warn")
	l.Error("error")
	l2 := l.With("component", "test")
	l2.Debug("still fine")
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	l := NewSlogAdapter(slog.New(handler))

	l.Debug("debug message", "ref", "#/components/schemas/Pet")
	if !strings.Contains(buf.String(), "debug message") {
		t.Errorf("expected debug message in output, got: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "#/components/schemas/Pet") {
		t.Errorf("expected attribute value in output, got: %s", buf.String())
	}

	buf.Reset()
	l2 := l.With("component", "resolver")
	l2.Info("resolved")
	if !strings.Contains(buf.String(), "component=resolver") {
		t.Errorf("expected With attribute in output, got: %s", buf.String())
	}
}

func TestNewSlogAdapterNilDefaults(t *testing.T) {
	l := NewSlogAdapter(nil)
	if l == nil {
		t.Fatal("NewSlogAdapter(nil) returned nil")
	}
	// Uses slog.Default(); must not panic.
	l.Info("hello")
}
