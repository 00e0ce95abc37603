package editor

import (
	"fmt"

	"github.com/erraggy/oasedit"
	"github.com/erraggy/oasedit/node"
	"github.com/erraggy/oasedit/oaserrors"
	"github.com/erraggy/oasedit/specview"
)

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets a structured logger for mutation debug output.
func WithLogger(logger oasedit.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Editor applies structural mutations to one document.
type Editor struct {
	doc    *node.Document
	logger oasedit.Logger
}

// New creates an Editor for doc.
func New(doc *node.Document, opts ...Option) *Editor {
	e := &Editor{doc: doc, logger: oasedit.NopLogger{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Document returns the document the editor mutates.
func (e *Editor) Document() *node.Document {
	return e.doc
}

// InsertPath adds a path entry. item must be a mapping (a path item) or a
// reference node. The entry is appended after the existing paths; the paths
// container is created when the document has none.
func (e *Editor) InsertPath(template string, item *node.Node) error {
	if template == "" {
		return fmt.Errorf("editor: path template must not be empty")
	}
	if k := item.Kind(); k != node.KindMapping && k != node.KindReference {
		return fmt.Errorf("editor: path item must be a mapping, got %s", k)
	}
	paths, err := e.pathsContainer(true)
	if err != nil {
		return err
	}
	if paths.Has(template) {
		return &oaserrors.DuplicateError{Kind: oaserrors.EntryPath, Template: template}
	}
	paths.Set(template, item)
	gen := e.doc.Commit()
	e.logger.Debug("inserted path", "template", template, "generation", gen)
	return nil
}

// InsertOperation adds an operation under an existing path. The entry is
// placed among the path item's method keys at its canonical precedence
// position; non-method keys (summary, parameters) keep their places.
func (e *Editor) InsertOperation(template, method string, op *node.Node) error {
	if !specview.IsMethod(method) {
		return fmt.Errorf("editor: unrecognized method %q", method)
	}
	if k := op.Kind(); k != node.KindMapping && k != node.KindReference {
		return fmt.Errorf("editor: operation must be a mapping, got %s", k)
	}
	item, err := e.pathItem(template)
	if err != nil {
		return err
	}
	if item.Has(method) {
		return &oaserrors.DuplicateError{Kind: oaserrors.EntryOperation, Template: template, Method: method}
	}

	at := item.Len()
	for i := 0; i < item.Len(); i++ {
		key := item.KeyAt(i)
		if !specview.IsMethod(key) {
			continue
		}
		if specview.MethodRank(key) > specview.MethodRank(method) {
			at = i
			break
		}
		at = i + 1
	}
	item.InsertPair(at, method, op)
	gen := e.doc.Commit()
	e.logger.Debug("inserted operation", "template", template, "method", method, "generation", gen)
	return nil
}

// InsertType adds a named schema definition. The container (components/schemas
// for OAS 3.x, definitions for OAS 2.0) is created when absent. The entry is
// appended after the existing definitions.
func (e *Editor) InsertType(name string, schema *node.Node) error {
	if name == "" {
		return fmt.Errorf("editor: type name must not be empty")
	}
	container, err := e.typesContainer(true)
	if err != nil {
		return err
	}
	if container.Has(name) {
		return &oaserrors.DuplicateError{Kind: oaserrors.EntryType, Name: name}
	}
	container.Set(name, schema)
	gen := e.doc.Commit()
	e.logger.Debug("inserted type", "name", name, "generation", gen)
	return nil
}

// RemovePath deletes a path entry and every operation under it.
func (e *Editor) RemovePath(template string) error {
	paths, err := e.pathsContainer(false)
	if err != nil {
		return err
	}
	if paths == nil || !paths.Remove(template) {
		return &oaserrors.NotFoundError{Kind: oaserrors.EntryPath, Template: template}
	}
	gen := e.doc.Commit()
	e.logger.Debug("removed path", "template", template, "generation", gen)
	return nil
}

// RemoveOperation deletes one (path, method) operation. The path entry itself
// stays, even when the removal leaves it without operations.
func (e *Editor) RemoveOperation(template, method string) error {
	item, err := e.pathItem(template)
	if err != nil {
		return err
	}
	if !specview.IsMethod(method) || !item.Remove(method) {
		return &oaserrors.NotFoundError{Kind: oaserrors.EntryOperation, Template: template, Method: method}
	}
	gen := e.doc.Commit()
	e.logger.Debug("removed operation", "template", template, "method", method, "generation", gen)
	return nil
}

// RemoveType deletes a named schema definition. References to the removed
// definition are not rewritten; they become dangling, which the resolver
// reports as such.
func (e *Editor) RemoveType(name string) error {
	container, err := e.typesContainer(false)
	if err != nil {
		return err
	}
	if container == nil || !container.Remove(name) {
		return &oaserrors.NotFoundError{Kind: oaserrors.EntryType, Name: name}
	}
	gen := e.doc.Commit()
	e.logger.Debug("removed type", "name", name, "generation", gen)
	return nil
}

// pathsContainer returns the document's paths mapping. With create set, a
// missing container is added (before components, when present).
func (e *Editor) pathsContainer(create bool) (*node.Node, error) {
	root := e.doc.Root()
	if paths, ok := root.Get("paths"); ok {
		if paths.Kind() != node.KindMapping {
			return nil, fmt.Errorf("editor: paths entry is not a mapping")
		}
		return paths, nil
	}
	if !create {
		return nil, nil
	}
	paths := node.NewMapping()
	if i := root.IndexOf("components"); i >= 0 {
		root.InsertPair(i, "paths", paths)
	} else {
		root.Set("paths", paths)
	}
	return paths, nil
}

// pathItem returns the mapping for an existing path template. Referenced path
// items cannot be edited in place; the target of the reference is the place
// to mutate.
func (e *Editor) pathItem(template string) (*node.Node, error) {
	paths, err := e.pathsContainer(false)
	if err != nil {
		return nil, err
	}
	if paths == nil {
		return nil, &oaserrors.NotFoundError{Kind: oaserrors.EntryPath, Template: template}
	}
	item, ok := paths.Get(template)
	if !ok {
		return nil, &oaserrors.NotFoundError{Kind: oaserrors.EntryPath, Template: template}
	}
	if item.Kind() == node.KindReference {
		return nil, fmt.Errorf("editor: path %s is a reference to %s; edit the target instead", template, item.Ref())
	}
	if item.Kind() != node.KindMapping {
		return nil, fmt.Errorf("editor: path item for %s is not a mapping", template)
	}
	return item, nil
}

// typesContainer returns the named-schema mapping for the document's OAS
// flavor. With create set, missing containers are added.
func (e *Editor) typesContainer(create bool) (*node.Node, error) {
	root := e.doc.Root()
	if root.Has("swagger") {
		defs, ok := root.Get("definitions")
		if !ok {
			if !create {
				return nil, nil
			}
			defs = node.NewMapping()
			root.Set("definitions", defs)
			return defs, nil
		}
		if defs.Kind() != node.KindMapping {
			return nil, fmt.Errorf("editor: definitions entry is not a mapping")
		}
		return defs, nil
	}

	components, ok := root.Get("components")
	if !ok {
		if !create {
			return nil, nil
		}
		components = node.NewMapping()
		root.Set("components", components)
	} else if components.Kind() != node.KindMapping {
		return nil, fmt.Errorf("editor: components entry is not a mapping")
	}

	schemas, ok := components.Get("schemas")
	if !ok {
		if !create {
			return nil, nil
		}
		schemas = node.NewMapping()
		components.Set("schemas", schemas)
	} else if schemas.Kind() != node.KindMapping {
		return nil, fmt.Errorf("editor: components/schemas entry is not a mapping")
	}
	return schemas, nil
}
