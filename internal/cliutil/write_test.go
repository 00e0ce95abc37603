package cliutil

import (
	"bytes"
	"errors"
	"testing"
)

func TestWritef(t *testing.T) {
	var buf bytes.Buffer
	Writef(&buf, "listed %d %s", 3, "paths")
	if got := buf.String(); got != "listed 3 paths" {
		t.Errorf("Writef() = %q, want %q", got, "listed 3 paths")
	}
}

// errorWriter always fails, to exercise the stderr fallback.
type errorWriter struct{}

func (errorWriter) Write([]byte) (int, error) {
	return 0, errors.New("simulated write error")
}

func TestWritefWriteError(t *testing.T) {
	// Must not panic; the failure is reported on stderr.
	Writef(errorWriter{}, "this will fail")
}
