// Package skeleton builds minimal well-formed subtrees for insertion.
//
// Import path: github.com/erraggy/oasedit/skeleton
//
// The editor package inserts whatever subtree it is handed; skeleton supplies
// sensible starting points: an operation with a derived operationId and a
// placeholder response, a path item populated with skeleton operations, and
// an empty object schema. Skeletons are plain [node.Node] values, so callers
// can extend them with node primitives before inserting.
package skeleton
