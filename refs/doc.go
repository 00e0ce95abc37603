// Package refs resolves $ref pointer strings within a parsed document.
//
// Import path: github.com/erraggy/oasedit/refs
//
// The document format is a graph disguised as a tree: entries refer to each
// other through symbolic pointers that may be mutually recursive or point at
// nothing. The [Resolver] walks a pointer's tokens from the document root,
// following any reference node it lands on, and classifies every reference
// as one of three first-class results:
//
//   - Resolved: the target exists; the result carries its node and canonical path
//   - Dangling: the target path does not exist (cross-document refs are
//     always dangling — they are reported, never fetched)
//   - Cyclic: the resolution chain revisited a reference it already
//     followed; the result carries the full chain
//
// Dangling and Cyclic are results, not errors: a recursive schema is
// legitimate and a listing should report dangling refs rather than die on
// them. The only error [Resolver.Resolve] returns is an
// [oaserrors.ReferenceError] for syntactically malformed pointer strings.
//
// Results are memoized per document generation and invalidated wholesale
// when the generation advances. Resolve is safe to call concurrently for
// read-only queries within one generation.
package refs
