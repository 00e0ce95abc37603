package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrParse indicates a parsing failure occurred.
	ErrParse = errors.New("parse error")

	// ErrDuplicateKey indicates a mapping declared the same key twice.
	ErrDuplicateKey = errors.New("duplicate mapping key")

	// ErrMalformedRef indicates a $ref string with invalid pointer syntax.
	// This is distinct from a dangling reference, which is not an error.
	ErrMalformedRef = errors.New("malformed reference")

	// ErrView indicates a malformed entity was found while building a view.
	ErrView = errors.New("view error")

	// ErrDuplicate indicates an insert collided with an existing entry.
	ErrDuplicate = errors.New("duplicate entry")

	// ErrDuplicatePath indicates an insert collided with an existing path template.
	ErrDuplicatePath = errors.New("duplicate path")

	// ErrDuplicateOperation indicates an insert collided with an existing
	// (path, method) pair.
	ErrDuplicateOperation = errors.New("duplicate operation")

	// ErrDuplicateType indicates an insert collided with an existing schema name.
	ErrDuplicateType = errors.New("duplicate type")

	// ErrNotFound indicates the target of a removal or lookup does not exist.
	ErrNotFound = errors.New("entry not found")
)

// ParseErrorKind classifies load-time parse failures.
type ParseErrorKind int

const (
	// ParseSyntax indicates the input text was not well-formed YAML/JSON.
	ParseSyntax ParseErrorKind = iota
	// ParseDuplicateKey indicates a mapping declared the same key twice.
	ParseDuplicateKey
)

// String returns a string representation of the kind.
func (k ParseErrorKind) String() string {
	switch k {
	case ParseSyntax:
		return "syntax"
	case ParseDuplicateKey:
		return "duplicate-key"
	default:
		return fmt.Sprintf("ParseErrorKind(%d)", int(k))
	}
}

// ParseError represents a failure to parse a document.
// Parse errors are fatal to the session: no Document is produced.
type ParseError struct {
	// Source is the file path or source identifier (may be empty)
	Source string
	// Kind classifies the failure
	Kind ParseErrorKind
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Key is the offending mapping key for ParseDuplicateKey errors
	Key string
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Kind == ParseDuplicateKey {
		msg = "duplicate mapping key"
		if e.Key != "" {
			msg += fmt.Sprintf(" %q", e.Key)
		}
	}
	if e.Source != "" {
		msg += " in " + e.Source
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	if target == ErrParse {
		return true
	}
	return target == ErrDuplicateKey && e.Kind == ParseDuplicateKey
}

// ReferenceError represents a $ref string whose pointer syntax is invalid.
//
// Only malformed syntax is an error. A syntactically valid reference whose
// target is missing resolves to a dangling result, and a self-revisiting
// chain resolves to a cyclic result; neither produces a ReferenceError.
type ReferenceError struct {
	// Ref is the reference string that failed to parse
	Ref string
	// Message provides additional context about the failure
	Message string
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := fmt.Sprintf("malformed reference %q", e.Ref)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ReferenceError) Is(target error) bool {
	return target == ErrMalformedRef
}

// ViewError represents one malformed entity encountered while building a
// view over the document. View errors are collected, not fatal: one bad
// operation entry does not prevent listing the rest of the document.
type ViewError struct {
	// Entity identifies what was malformed (e.g. "operation get /pets")
	Entity string
	// Path is the document location in pointer form (e.g. "/paths/~1pets/get")
	Path string
	// Line is the line number of the entity (0 if unknown)
	Line int
	// Column is the column number of the entity (0 if unknown)
	Column int
	// Message describes what was wrong with the entity
	Message string
}

// Error returns a human-readable error message.
func (e *ViewError) Error() string {
	msg := "view error"
	if e.Entity != "" {
		msg += ": " + e.Entity
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ViewError) Is(target error) bool {
	return target == ErrView
}

// EntryKind identifies the kind of document entry a mutation targets.
type EntryKind string

const (
	// EntryPath is a path template entry under the document's paths mapping.
	EntryPath EntryKind = "path"
	// EntryOperation is a (path, method) operation entry.
	EntryOperation EntryKind = "operation"
	// EntryType is a named schema definition.
	EntryType EntryKind = "type"
)

// DuplicateError represents an insert that would collide with an existing
// entry. The document is left unchanged when this error is returned.
type DuplicateError struct {
	// Kind identifies the entry kind (path, operation, or type)
	Kind EntryKind
	// Template is the path template (for paths and operations)
	Template string
	// Method is the HTTP method (for operations)
	Method string
	// Name is the schema name (for types)
	Name string
}

// Identifier returns the colliding entry's identifier, e.g. "GET /pets".
func (e *DuplicateError) Identifier() string {
	switch e.Kind {
	case EntryOperation:
		return fmt.Sprintf("%s %s", e.Method, e.Template)
	case EntryType:
		return e.Name
	default:
		return e.Template
	}
}

// Error returns a human-readable error message.
func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate %s: %s already exists", e.Kind, e.Identifier())
}

// Is reports whether target matches this error type.
func (e *DuplicateError) Is(target error) bool {
	if target == ErrDuplicate {
		return true
	}
	switch e.Kind {
	case EntryPath:
		return target == ErrDuplicatePath
	case EntryOperation:
		return target == ErrDuplicateOperation
	case EntryType:
		return target == ErrDuplicateType
	}
	return false
}

// NotFoundError represents a removal or lookup whose target does not exist.
// The document is left unchanged when this error is returned.
type NotFoundError struct {
	// Kind identifies the entry kind (path, operation, or type)
	Kind EntryKind
	// Template is the path template (for paths and operations)
	Template string
	// Method is the HTTP method (for operations)
	Method string
	// Name is the schema name (for types)
	Name string
}

// Identifier returns the missing entry's identifier: "get /pets" for an
// operation addressed by path and method, the operationId for one addressed
// by id, the schema name for a type.
func (e *NotFoundError) Identifier() string {
	switch e.Kind {
	case EntryOperation:
		if e.Method == "" {
			return e.Name
		}
		return fmt.Sprintf("%s %s", e.Method, e.Template)
	case EntryType:
		return e.Name
	default:
		return e.Template
	}
}

// Error returns a human-readable error message.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Identifier())
}

// Is reports whether target matches this error type.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
