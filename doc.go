// Package oasedit provides structural query and mutation tools for OpenAPI
// Specification (OAS) documents.
//
// Unlike schema-driven parsers, oasedit models the document as an ordered,
// provenance-carrying node tree: every mapping keeps its original key order,
// every scalar keeps its original lexical form, and comments and unknown
// vendor extensions survive a load-edit-save round trip untouched.
//
// # Overview
//
// The library consists of six primary packages:
//
//   - node: order-preserving document model (parse, serialize, structural edits)
//   - refs: $ref resolution with dangling and cycle classification
//   - specview: typed projection of paths, operations, and schemas over the node model
//   - query: read-only listing, sorting, and transitive type-closure queries
//   - editor: insert, remove, and reorder entries with all-or-nothing semantics
//   - skeleton: pre-rendered node subtrees for newly inserted entries
//
// # Quick Start
//
// Load a document and list its paths:
//
//	doc, err := node.Parse(data, node.FormatAuto)
//	if err != nil {
//		log.Fatal(err)
//	}
//	view := specview.Build(doc)
//	for _, p := range query.ListPaths(view, query.Lexicographic) {
//		fmt.Println(p.Template)
//	}
//
// Insert an operation and write the document back out:
//
//	ed := editor.New(doc)
//	if err := ed.InsertOperation("/pets", "post", skeleton.Operation("post", "/pets")); err != nil {
//		log.Fatal(err)
//	}
//	out, err := node.Serialize(doc)
//
// # Consistency Model
//
// A Document carries a generation counter that advances exactly once per
// successful mutation. Views and resolver memos are valid for the generation
// they were built against; after a mutation, call specview's Refresh (or
// resolve again) to pick up the new generation. Queries are pure reads and may
// run concurrently with each other within one generation, but not with a
// mutation.
//
// # Reference Semantics
//
// References are symbolic pointer strings resolved on demand, never live
// links. A reference whose target is missing resolves to a dangling result; a
// reference whose resolution chain revisits itself resolves to a cyclic
// result. Both are first-class answers rather than errors, so callers decide
// how to treat them per operation. Cross-document references are out of scope
// and always classified as dangling.
//
// # Command-Line Interface
//
// The cmd/oasedit command exposes the library over subcommands:
//
//	# List paths, operations, or schemas
//	oasedit path list openapi.yaml
//	oasedit operation list openapi.yaml
//	oasedit schema list openapi.yaml
//
//	# Add entries from generated skeletons
//	oasedit operation add openapi.yaml /pets post
//
//	# Sort entries in place
//	oasedit path sort -o sorted.yaml openapi.yaml
//
//	# Report every $ref with its resolution state
//	oasedit refs list openapi.yaml
//
// Install the CLI:
//
//	go install github.com/erraggy/oasedit/cmd/oasedit@latest
package oasedit
