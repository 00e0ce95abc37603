package node

import "strconv"

// WalkFunc is called for each node visited by Walk with the node's pointer
// path relative to the walk root. Returning false stops the walk.
type WalkFunc func(ptr string, n *Node) bool

// Walk visits n and its descendants depth-first in document order.
//
// Reference nodes are visited but not followed: their children (the $ref
// entry and any sibling keys) are still walked as plain content, and the
// caller decides whether to chase the pointer through the refs package.
func Walk(n *Node, fn WalkFunc) {
	walk(n, "", fn)
}

func walk(n *Node, ptr string, fn WalkFunc) bool {
	if !fn(ptr, n) {
		return false
	}
	switch n.Kind() {
	case KindMapping, KindReference:
		for i := 0; i < n.Len(); i++ {
			childPtr := ptr + "/" + EscapeToken(n.KeyAt(i))
			if !walk(n.ValueAt(i), childPtr, fn) {
				return false
			}
		}
	case KindSequence:
		for i := 0; i < n.Len(); i++ {
			childPtr := ptr + "/" + strconv.Itoa(i)
			if !walk(n.ItemAt(i), childPtr, fn) {
				return false
			}
		}
	}
	return true
}
