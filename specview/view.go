package specview

import (
	"fmt"

	"github.com/erraggy/oasedit/node"
	"github.com/erraggy/oasedit/oaserrors"
)

// PathEntry is a handle on one path template and its operations.
type PathEntry struct {
	// Template is the path template string (e.g. "/pets/{id}")
	Template string
	// Ptr is the entry's pointer location (e.g. "/paths/~1pets~1{id}")
	Ptr string
	// Location is the entry's position in the source
	Location node.Location
	// Node is the path item mapping
	Node *node.Node
	// Operations are the entry's operations in document order
	Operations []OperationEntry
}

// OperationEntry is a handle on one (path, method) operation.
type OperationEntry struct {
	// Template is the owning path template
	Template string
	// Method is the lowercase HTTP method key
	Method string
	// ID is the operationId, or "" if the operation has none
	ID string
	// Ptr is the operation's pointer location
	Ptr string
	// Location is the operation's position in the source
	Location node.Location
	// Node is the operation mapping
	Node *node.Node
}

// TypeEntry is a handle on one named schema definition.
type TypeEntry struct {
	// Name is the schema name
	Name string
	// Ptr is the definition's pointer location
	Ptr string
	// Location is the definition's position in the source
	Location node.Location
	// Node is the definition node
	Node *node.Node
}

// View is a typed projection of one document generation.
type View struct {
	doc *node.Document
	gen uint64

	// Paths holds the document's path entries in document order.
	Paths []PathEntry
	// Types holds the document's named schema definitions in document order.
	Types []TypeEntry
	// Errors collects the structural problems found during the build.
	// A non-empty Errors does not mean the view is unusable: every
	// well-formed entity is still projected.
	Errors []*oaserrors.ViewError

	typesPtr string
}

// Build projects a view over the document's current generation.
func Build(doc *node.Document) *View {
	v := &View{doc: doc, gen: doc.Generation()}
	v.buildPaths()
	v.buildTypes()
	return v
}

// Refresh recomputes the projections against the document's current
// generation. The receiver is left untouched; callers swap to the returned
// view and may keep using identifiers (templates, methods, names) obtained
// from the old one.
func (v *View) Refresh() *View {
	return Build(v.doc)
}

// Document returns the document the view was built over.
func (v *View) Document() *node.Document {
	return v.doc
}

// Generation returns the generation the view was built against.
func (v *View) Generation() uint64 {
	return v.gen
}

// Stale returns true if the document has been mutated since the view was
// built. A stale view's handles may point at replaced content; Refresh
// before trusting them.
func (v *View) Stale() bool {
	return v.gen != v.doc.Generation()
}

// TypesPtr returns the pointer of the mapping that holds named schema
// definitions: "/components/schemas" for OAS 3.x documents, "/definitions"
// for OAS 2.0 ones.
func (v *View) TypesPtr() string {
	return v.typesPtr
}

// Path returns the entry for a path template.
func (v *View) Path(template string) (PathEntry, bool) {
	for _, p := range v.Paths {
		if p.Template == template {
			return p, true
		}
	}
	return PathEntry{}, false
}

// Operation returns the first operation with the given operationId.
func (v *View) Operation(id string) (OperationEntry, bool) {
	for _, p := range v.Paths {
		for _, op := range p.Operations {
			if op.ID == id && id != "" {
				return op, true
			}
		}
	}
	return OperationEntry{}, false
}

// OperationAt returns the operation at (template, method).
func (v *View) OperationAt(template, method string) (OperationEntry, bool) {
	p, ok := v.Path(template)
	if !ok {
		return OperationEntry{}, false
	}
	for _, op := range p.Operations {
		if op.Method == method {
			return op, true
		}
	}
	return OperationEntry{}, false
}

// Type returns the entry for a schema name.
func (v *View) Type(name string) (TypeEntry, bool) {
	for _, t := range v.Types {
		if t.Name == name {
			return t, true
		}
	}
	return TypeEntry{}, false
}

func (v *View) addError(entity, ptr string, loc node.Location, msg string) {
	v.Errors = append(v.Errors, &oaserrors.ViewError{
		Entity:  entity,
		Path:    ptr,
		Line:    loc.Line,
		Column:  loc.Column,
		Message: msg,
	})
}

func (v *View) buildPaths() {
	paths, ok := v.doc.Root().Get("paths")
	if !ok {
		return
	}
	if paths.Kind() != node.KindMapping {
		v.addError("paths", "/paths", paths.Location(), "paths entry is not a mapping")
		return
	}

	for i := 0; i < paths.Len(); i++ {
		template := paths.KeyAt(i)
		item := paths.ValueAt(i)
		ptr := "/paths/" + node.EscapeToken(template)

		entry := PathEntry{
			Template: template,
			Ptr:      ptr,
			Location: paths.KeyLocationAt(i),
			Node:     item,
		}

		switch item.Kind() {
		case node.KindMapping:
			entry.Operations = v.buildOperations(template, ptr, item)
		case node.KindReference:
			// A referenced path item is projected as-is; callers chase
			// the pointer through the refs package if they need its
			// operations.
		default:
			v.addError(fmt.Sprintf("path %s", template), ptr, item.Location(), "path item is not a mapping")
		}

		v.Paths = append(v.Paths, entry)
	}
}

func (v *View) buildOperations(template, pathPtr string, item *node.Node) []OperationEntry {
	var ops []OperationEntry
	for i := 0; i < item.Len(); i++ {
		method := item.KeyAt(i)
		if !IsMethod(method) {
			continue
		}
		opNode := item.ValueAt(i)
		ptr := pathPtr + "/" + node.EscapeToken(method)

		if opNode.Kind() != node.KindMapping && opNode.Kind() != node.KindReference {
			v.addError(
				fmt.Sprintf("operation %s %s", method, template),
				ptr, opNode.Location(),
				"operation entry is not a mapping",
			)
			continue
		}

		entry := OperationEntry{
			Template: template,
			Method:   method,
			Ptr:      ptr,
			Location: item.KeyLocationAt(i),
			Node:     opNode,
		}
		if id, ok := opNode.Get("operationId"); ok && id.Kind() == node.KindScalar {
			entry.ID = id.Value()
		}
		ops = append(ops, entry)
	}
	return ops
}

func (v *View) buildTypes() {
	container, ptr := v.typesContainer()
	v.typesPtr = ptr
	if container == nil {
		return
	}
	if container.Kind() != node.KindMapping {
		v.addError("schemas", ptr, container.Location(), "schema container is not a mapping")
		return
	}

	for i := 0; i < container.Len(); i++ {
		name := container.KeyAt(i)
		v.Types = append(v.Types, TypeEntry{
			Name:     name,
			Ptr:      ptr + "/" + node.EscapeToken(name),
			Location: container.KeyLocationAt(i),
			Node:     container.ValueAt(i),
		})
	}
}

// typesContainer locates the named-schema mapping for the document's OAS
// flavor: components/schemas for 3.x, definitions for 2.0.
func (v *View) typesContainer() (*node.Node, string) {
	root := v.doc.Root()
	if root.Has("swagger") {
		if defs, ok := root.Get("definitions"); ok {
			return defs, "/definitions"
		}
		return nil, "/definitions"
	}
	if components, ok := root.Get("components"); ok && components.Kind() == node.KindMapping {
		if schemas, ok := components.Get("schemas"); ok {
			return schemas, "/components/schemas"
		}
	}
	return nil, "/components/schemas"
}
