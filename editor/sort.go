package editor

import (
	"slices"

	"github.com/erraggy/oasedit/node"
	"github.com/erraggy/oasedit/oaserrors"
	"github.com/erraggy/oasedit/query"
	"github.com/erraggy/oasedit/specview"
)

// SortPaths reorders the paths mapping into the query engine's ordering for
// key, so that a document-order listing afterwards matches a listing with
// key beforehand. DocumentOrder is the identity; a sort that changes nothing
// returns nil without advancing the generation.
func (e *Editor) SortPaths(key query.SortKey) error {
	paths, err := e.pathsContainer(false)
	if err != nil {
		return err
	}
	if paths == nil || key == query.DocumentOrder {
		return nil
	}
	keys := paths.Keys()
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	if slices.Equal(keys, sorted) {
		return nil
	}
	if err := paths.Reorder(sorted); err != nil {
		return err
	}
	gen := e.doc.Commit()
	e.logger.Debug("sorted paths", "count", len(sorted), "generation", gen)
	return nil
}

// SortOperations reorders operations into the query engine's ordering for
// key. A lexicographic sort over the whole document (template "") moves the
// path entries into template order and each path item's method keys into
// canonical precedence, the same two-level comparator ListOperations uses,
// so a document-order listing afterwards matches a lexicographic listing
// beforehand. With a template only that item's method keys move. Non-method
// keys (summary, parameters) keep their positions; only the method keys
// move, among themselves. DocumentOrder is the identity. Everything moves
// under a single commit, and a sort that changes nothing returns nil without
// advancing the generation.
func (e *Editor) SortOperations(template string, key query.SortKey) error {
	paths, err := e.pathsContainer(false)
	if err != nil {
		return err
	}
	if paths == nil {
		if template == "" {
			return nil
		}
		return &oaserrors.NotFoundError{Kind: oaserrors.EntryPath, Template: template}
	}

	var items []*node.Node
	if template == "" {
		for i := 0; i < paths.Len(); i++ {
			if item := paths.ValueAt(i); item.Kind() == node.KindMapping {
				items = append(items, item)
			}
		}
	} else {
		item, err := e.pathItem(template)
		if err != nil {
			return err
		}
		items = append(items, item)
	}
	if key == query.DocumentOrder {
		return nil
	}

	changed := false
	if template == "" {
		keys := paths.Keys()
		sorted := slices.Clone(keys)
		slices.Sort(sorted)
		if !slices.Equal(keys, sorted) {
			if err := paths.Reorder(sorted); err != nil {
				return err
			}
			changed = true
		}
	}
	for _, item := range items {
		reordered, err := sortMethodKeys(item)
		if err != nil {
			return err
		}
		changed = changed || reordered
	}
	if !changed {
		return nil
	}
	gen := e.doc.Commit()
	e.logger.Debug("sorted operations", "template", template, "generation", gen)
	return nil
}

// sortMethodKeys rearranges one path item's method keys into canonical order,
// reporting whether anything moved.
func sortMethodKeys(item *node.Node) (bool, error) {
	keys := item.Keys()
	methods := make([]string, 0, len(keys))
	for _, key := range keys {
		if specview.IsMethod(key) {
			methods = append(methods, key)
		}
	}
	slices.SortFunc(methods, func(a, b string) int {
		return specview.MethodRank(a) - specview.MethodRank(b)
	})

	next := 0
	target := make([]string, len(keys))
	for i, key := range keys {
		if specview.IsMethod(key) {
			target[i] = methods[next]
			next++
		} else {
			target[i] = key
		}
	}
	if slices.Equal(keys, target) {
		return false, nil
	}
	if err := item.Reorder(target); err != nil {
		return false, err
	}
	return true, nil
}

// SortTypes reorders the named schema definitions into the query engine's
// ordering for key. DocumentOrder is the identity; a sort that changes
// nothing returns nil without advancing the generation.
func (e *Editor) SortTypes(key query.SortKey) error {
	container, err := e.typesContainer(false)
	if err != nil {
		return err
	}
	if container == nil || key == query.DocumentOrder {
		return nil
	}
	keys := container.Keys()
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	if slices.Equal(keys, sorted) {
		return nil
	}
	if err := container.Reorder(sorted); err != nil {
		return err
	}
	gen := e.doc.Commit()
	e.logger.Debug("sorted types", "count", len(sorted), "generation", gen)
	return nil
}
