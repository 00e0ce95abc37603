package query

import (
	"slices"
	"strings"

	"github.com/erraggy/oasedit/specview"
)

// ListPaths returns the view's path entries ordered by key. The returned
// slice is a copy; sorting it never reorders the document.
func ListPaths(v *specview.View, key SortKey) []specview.PathEntry {
	out := slices.Clone(v.Paths)
	if key == Lexicographic {
		slices.SortStableFunc(out, func(a, b specview.PathEntry) int {
			return strings.Compare(a.Template, b.Template)
		})
	}
	return out
}

// ListOperations returns operations across the document, optionally limited
// to one path template. A pathFilter of "" matches every path. Under
// Lexicographic ordering, operations sort by path template first and by
// canonical method precedence within a path.
func ListOperations(v *specview.View, pathFilter string, key SortKey) []specview.OperationEntry {
	var out []specview.OperationEntry
	for _, p := range v.Paths {
		if pathFilter != "" && p.Template != pathFilter {
			continue
		}
		out = append(out, p.Operations...)
	}
	if key == Lexicographic {
		slices.SortStableFunc(out, func(a, b specview.OperationEntry) int {
			if c := strings.Compare(a.Template, b.Template); c != 0 {
				return c
			}
			return specview.MethodRank(a.Method) - specview.MethodRank(b.Method)
		})
	}
	return out
}

// ListTypes returns the view's named schema entries ordered by key.
func ListTypes(v *specview.View, key SortKey) []specview.TypeEntry {
	out := slices.Clone(v.Types)
	if key == Lexicographic {
		slices.SortStableFunc(out, func(a, b specview.TypeEntry) int {
			return strings.Compare(a.Name, b.Name)
		})
	}
	return out
}
