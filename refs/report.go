package refs

import (
	"github.com/erraggy/oasedit/node"
)

// Entry is one $ref occurrence found in the document, with its resolution
// result. Malformed references carry the error instead of a result.
type Entry struct {
	// Ptr is the pointer to the mapping that carries the $ref
	Ptr string
	// Ref is the reference string as written
	Ref string
	// Location is the reference's position in the source
	Location node.Location
	// Result is the resolution outcome (zero value when Err is set)
	Result ResolvedRef
	// Err is set for references with malformed pointer syntax
	Err error
}

// Report enumerates every reference in the document in document order and
// resolves each one. Dangling and cyclic references appear with their
// states; this is the "list all refs" answer, so nothing is skipped or
// fatal.
func (r *Resolver) Report() []Entry {
	var entries []Entry
	node.Walk(r.doc.Root(), func(ptr string, n *node.Node) bool {
		if !n.IsReference() {
			return true
		}
		entry := Entry{
			Ptr:      ptr,
			Ref:      n.Ref(),
			Location: n.Location(),
		}
		res, err := r.Resolve(entry.Ref)
		if err != nil {
			entry.Err = err
		} else {
			entry.Result = res
		}
		entries = append(entries, entry)
		return true
	})
	return entries
}
