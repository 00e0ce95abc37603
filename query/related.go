package query

import (
	"strings"

	"github.com/erraggy/oasedit/node"
	"github.com/erraggy/oasedit/oaserrors"
	"github.com/erraggy/oasedit/refs"
	"github.com/erraggy/oasedit/specview"
)

// Related is the answer to a transitive schema-closure query.
type Related struct {
	// Types are the named schemas reachable from the operation, each exactly
	// once, in first-encounter order.
	Types []specview.TypeEntry
	// Unresolved are the reference strings whose targets could not be located
	// in the document: dangling pointers, cross-document references, and
	// malformed pointer syntax. Each appears exactly once, in first-encounter
	// order. A non-empty Unresolved does not invalidate Types.
	Unresolved []string
}

// RelatedTypes computes the transitive closure of named schemas reachable
// from the operation with the given operationId.
//
// The closure chases every reference in the operation's subtree, then every
// reference in each resolved target, until no unvisited reference remains.
// Resolved targets that are named schema definitions contribute a Types
// entry; targets elsewhere in the document (parameters, responses) are
// traversed without contributing one. Cyclic chains contribute each schema
// named in the chain once and are not followed further.
func RelatedTypes(v *specview.View, r *refs.Resolver, operationID string) (*Related, error) {
	op, ok := v.Operation(operationID)
	if !ok {
		return nil, &oaserrors.NotFoundError{Kind: oaserrors.EntryOperation, Name: operationID}
	}
	c := &closure{
		view:     v,
		resolver: r,
		visited:  make(map[string]bool),
		seen:     make(map[string]bool),
		out:      &Related{},
	}
	c.run(op.Node)
	return c.out, nil
}

type closure struct {
	view     *specview.View
	resolver *refs.Resolver
	visited  map[string]bool // reference strings already followed
	seen     map[string]bool // type names already emitted
	queue    []*node.Node    // resolved targets awaiting a reference scan
	out      *Related
}

func (c *closure) run(root *node.Node) {
	c.queue = append(c.queue, root)
	for len(c.queue) > 0 {
		n := c.queue[0]
		c.queue = c.queue[1:]
		node.Walk(n, func(_ string, child *node.Node) bool {
			if child.IsReference() {
				c.follow(child.Ref())
			}
			return true
		})
	}
}

func (c *closure) follow(ref string) {
	if c.visited[ref] {
		return
	}
	c.visited[ref] = true

	res, err := c.resolver.Resolve(ref)
	if err != nil {
		// Malformed pointer syntax: the target cannot be located, which is
		// all the closure needs to know.
		c.out.Unresolved = append(c.out.Unresolved, ref)
		return
	}
	switch res.State {
	case refs.StateResolved:
		c.emit(res.Path)
		c.queue = append(c.queue, res.Target)
	case refs.StateDangling:
		c.out.Unresolved = append(c.out.Unresolved, ref)
	case refs.StateCyclic:
		// Every schema named in the chain participates in the cycle; emit
		// each once and do not follow the chain further.
		for _, link := range res.Chain {
			c.visited[link] = true
			if strings.HasPrefix(link, "#") {
				c.emit(link[1:])
			}
		}
	}
}

// emit records ptr's schema when ptr designates a named definition, i.e. a
// direct child of the view's type container.
func (c *closure) emit(ptr string) {
	prefix := c.view.TypesPtr() + "/"
	if !strings.HasPrefix(ptr, prefix) {
		return
	}
	rest := strings.TrimPrefix(ptr, prefix)
	if strings.Contains(rest, "/") {
		return
	}
	name, err := node.UnescapeToken(rest)
	if err != nil {
		return
	}
	t, ok := c.view.Type(name)
	if !ok || c.seen[name] {
		return
	}
	c.seen[name] = true
	c.out.Types = append(c.out.Types, t)
}
