package node

import (
	"sync/atomic"

	"go.yaml.in/yaml/v4"
)

// Format identifies the on-disk representation of a document.
type Format string

const (
	// FormatYAML is the indentation-based structured-text representation.
	FormatYAML Format = "yaml"
	// FormatJSON is the JSON representation.
	FormatJSON Format = "json"
	// FormatAuto asks Parse to detect the format from the content.
	FormatAuto Format = "auto"
)

// Document is a parsed OpenAPI document: the root mapping, the format it was
// loaded from, and a generation counter.
//
// A Document is owned by a single logical session with one mutator at a
// time. Read-only queries are pure functions of (Document, generation) and
// may run in parallel within one generation; the counter, advanced by
// [Document.Commit], is the synchronization token derived caches key on.
type Document struct {
	doc    *yaml.Node // DocumentNode backing the whole file
	format Format
	source string
	gen    atomic.Uint64
}

// Root returns the document's root mapping.
func (d *Document) Root() *Node {
	return wrap(d.doc.Content[0])
}

// Format returns the source format recorded at load time. Serialize writes
// the document back out in this format.
func (d *Document) Format() Format {
	return d.format
}

// Source returns the source identifier given at parse time (may be empty).
func (d *Document) Source() string {
	return d.source
}

// Generation returns the document's current generation. Readers snapshot
// this before resolving and treat any derived state stamped with an older
// generation as stale.
func (d *Document) Generation() uint64 {
	return d.gen.Load()
}

// Commit advances the generation counter and returns the new value.
//
// This is the mutation engine's half of the consistency contract: every
// successful mutation calls Commit exactly once, after the replacement
// subtree has been swapped in. Callers performing reads never call Commit.
func (d *Document) Commit() uint64 {
	return d.gen.Add(1)
}
