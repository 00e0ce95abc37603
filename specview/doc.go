// Package specview projects domain entities over the node model.
//
// Import path: github.com/erraggy/oasedit/specview
//
// A [View] is a typed, read-only projection of one document generation: the
// paths, their operations, and the named schema definitions. Entities are
// handles (an identifier plus the node they project), never copies of
// document content, so building a view allocates only the entry slices.
//
// [Build] is a pure read over the node model. Structural problems — an
// operation entry that is not shaped like a mapping, a paths value that is a
// scalar — are collected as [oaserrors.ViewError] values on the view rather
// than aborting the build: one malformed operation does not prevent listing
// the rest.
//
// After a mutation advances the document's generation, the view is stale;
// [View.Refresh] recomputes the projections against the new generation.
// Entity identity is logical (a path's template string, an operation's
// method, a schema's name), so identifiers obtained from the old view remain
// valid lookups into the refreshed one.
package specview
