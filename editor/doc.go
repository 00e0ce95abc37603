// Package editor applies structural mutations to a document.
//
// Import path: github.com/erraggy/oasedit/editor
//
// An [Editor] wraps one [node.Document] and exposes the write half of the
// session: inserting and removing paths, operations, and named schemas, and
// sorting each of those collections in place. Every mutation is validated
// before any content is touched, applied as a single splice of the backing
// tree, and committed by advancing the document generation exactly once. A
// failed mutation (duplicate entry, missing target, malformed container)
// leaves the document byte-for-byte untouched and the generation unchanged.
//
// Sorting takes a [query.SortKey] and mirrors the query engine's orderings:
// after a sort with a key, listing in document order reproduces what a
// listing with that key returned before it. Sorting is idempotent: a sort
// that would not change any ordering returns nil without advancing the
// generation, so derived views and resolver memos stay valid.
//
// The editor performs no locking of its own. A document is owned by one
// logical session with a single mutator; concurrent readers synchronize on
// the generation counter, not on the editor.
package editor
