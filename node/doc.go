// Package node provides an order-preserving in-memory model for OpenAPI
// documents.
//
// Import path: github.com/erraggy/oasedit/node
//
// The model is a tagged node tree with four kinds: mappings (ordered,
// unique-key pairs), sequences, scalars (original lexical form preserved),
// and references (a mapping carrying a $ref pointer string). Each node is
// backed by the yaml.Node it was parsed from, which carries the provenance
// needed to reproduce untouched content unchanged: key order, scalar
// formatting, comments, and unknown vendor extensions all survive a
// load-edit-save round trip.
//
// Cross-references between parts of the document are represented as symbolic
// pointer strings, never as shared node ownership. Resolution of those
// pointers lives in the refs package; this package only models and edits the
// tree.
//
// # Documents and Generations
//
// [Parse] produces a [Document]: the root mapping, the source format (YAML or
// JSON), and a generation counter. The counter advances exactly once per
// successful mutation (the editor package calls [Document.Commit]) and is the
// sole invalidation signal for derived state such as resolver memos and spec
// views.
//
// # Errors
//
// Parse fails with an [oaserrors.ParseError]: kind ParseSyntax for malformed
// input, kind ParseDuplicateKey when a mapping declares the same key twice.
// Duplicate keys are rejected at load time rather than silently overwritten.
package node
