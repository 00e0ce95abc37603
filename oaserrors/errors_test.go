package oaserrors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestParseError(t *testing.T) {
	t.Run("syntax with location", func(t *testing.T) {
		err := &ParseError{
			Source:  "api.yaml",
			Kind:    ParseSyntax,
			Line:    12,
			Column:  3,
			Message: "did not find expected key",
		}
		msg := err.Error()
		for _, want := range []string{"parse error", "api.yaml", "line 12", "column 3", "did not find expected key"} {
			if !strings.Contains(msg, want) {
				t.Errorf("Error() = %q, missing %q", msg, want)
			}
		}
		if !errors.Is(err, ErrParse) {
			t.Error("expected errors.Is(err, ErrParse)")
		}
		if errors.Is(err, ErrDuplicateKey) {
			t.Error("syntax error must not match ErrDuplicateKey")
		}
	})

	t.Run("duplicate key", func(t *testing.T) {
		err := &ParseError{Kind: ParseDuplicateKey, Key: "petId", Line: 4}
		if !errors.Is(err, ErrParse) {
			t.Error("expected errors.Is(err, ErrParse)")
		}
		if !errors.Is(err, ErrDuplicateKey) {
			t.Error("expected errors.Is(err, ErrDuplicateKey)")
		}
		if !strings.Contains(err.Error(), `"petId"`) {
			t.Errorf("Error() = %q, missing key", err.Error())
		}
	})

	t.Run("unwrap", func(t *testing.T) {
		cause := errors.New("boom")
		err := &ParseError{Kind: ParseSyntax, Cause: cause}
		if !errors.Is(err, cause) {
			t.Error("expected cause to be found in chain")
		}
	})
}

func TestParseErrorKindString(t *testing.T) {
	if ParseSyntax.String() != "syntax" {
		t.Errorf("ParseSyntax.String() = %q", ParseSyntax.String())
	}
	if ParseDuplicateKey.String() != "duplicate-key" {
		t.Errorf("ParseDuplicateKey.String() = %q", ParseDuplicateKey.String())
	}
	if got := ParseErrorKind(42).String(); !strings.Contains(got, "42") {
		t.Errorf("unknown kind String() = %q", got)
	}
}

func TestReferenceError(t *testing.T) {
	err := &ReferenceError{Ref: "#/components/~2bad", Message: "invalid escape sequence"}
	if !errors.Is(err, ErrMalformedRef) {
		t.Error("expected errors.Is(err, ErrMalformedRef)")
	}
	if !strings.Contains(err.Error(), "#/components/~2bad") {
		t.Errorf("Error() = %q, missing ref", err.Error())
	}

	var refErr *ReferenceError
	var wrapped error = fmt.Errorf("resolving: %w", err)
	if !errors.As(wrapped, &refErr) {
		t.Fatal("errors.As failed through wrapping")
	}
	if refErr.Ref != "#/components/~2bad" {
		t.Errorf("Ref = %q", refErr.Ref)
	}
}

func TestViewError(t *testing.T) {
	err := &ViewError{
		Entity:  "operation get /pets",
		Path:    "/paths/~1pets/get",
		Line:    10,
		Message: "operation entry is not a mapping",
	}
	if !errors.Is(err, ErrView) {
		t.Error("expected errors.Is(err, ErrView)")
	}
	msg := err.Error()
	if !strings.Contains(msg, "operation get /pets") || !strings.Contains(msg, "line 10") {
		t.Errorf("Error() = %q", msg)
	}
}

func TestDuplicateError(t *testing.T) {
	tests := []struct {
		name         string
		err          *DuplicateError
		wantID       string
		wantSentinel error
		notSentinels []error
	}{
		{
			name:         "path",
			err:          &DuplicateError{Kind: EntryPath, Template: "/pets"},
			wantID:       "/pets",
			wantSentinel: ErrDuplicatePath,
			notSentinels: []error{ErrDuplicateOperation, ErrDuplicateType, ErrNotFound},
		},
		{
			name:         "operation",
			err:          &DuplicateError{Kind: EntryOperation, Template: "/pets", Method: "get"},
			wantID:       "get /pets",
			wantSentinel: ErrDuplicateOperation,
			notSentinels: []error{ErrDuplicatePath, ErrDuplicateType},
		},
		{
			name:         "type",
			err:          &DuplicateError{Kind: EntryType, Name: "Pet"},
			wantID:       "Pet",
			wantSentinel: ErrDuplicateType,
			notSentinels: []error{ErrDuplicatePath, ErrDuplicateOperation},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Identifier(); got != tt.wantID {
				t.Errorf("Identifier() = %q, want %q", got, tt.wantID)
			}
			if !errors.Is(tt.err, ErrDuplicate) {
				t.Error("expected errors.Is(err, ErrDuplicate)")
			}
			if !errors.Is(tt.err, tt.wantSentinel) {
				t.Errorf("expected errors.Is(err, %v)", tt.wantSentinel)
			}
			for _, s := range tt.notSentinels {
				if errors.Is(tt.err, s) {
					t.Errorf("unexpected match for %v", s)
				}
			}
		})
	}
}

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Kind: EntryOperation, Template: "/pets/{id}", Method: "delete"}
	if !errors.Is(err, ErrNotFound) {
		t.Error("expected errors.Is(err, ErrNotFound)")
	}
	if errors.Is(err, ErrDuplicate) {
		t.Error("NotFoundError must not match ErrDuplicate")
	}
	if !strings.Contains(err.Error(), "delete /pets/{id}") {
		t.Errorf("Error() = %q", err.Error())
	}
}
