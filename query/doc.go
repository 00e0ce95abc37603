// Package query answers read-only questions over a spec view.
//
// Import path: github.com/erraggy/oasedit/query
//
// Listings ([ListPaths], [ListOperations], [ListTypes]) return copies of the
// view's entry slices ordered by a [SortKey]: document order as parsed, or
// lexicographic with canonical method precedence within a path. Sorting a
// listing never touches the document; the mutating counterpart lives in the
// editor package.
//
// [RelatedTypes] computes the transitive closure of named schemas reachable
// from one operation by chasing references through the refs package. Queries
// are pure reads and safe to run concurrently against one document
// generation.
package query
