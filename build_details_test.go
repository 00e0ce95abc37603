package oasedit

import "testing"

func TestVersion(t *testing.T) {
	if Version() == "" {
		t.Error("Version() returned empty string")
	}
}
