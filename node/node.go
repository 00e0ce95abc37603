package node

import (
	"fmt"
	"strconv"

	"go.yaml.in/yaml/v4"
)

// RefKey is the mapping key that marks a node as a reference.
const RefKey = "$ref"

// Kind identifies the variant of a Node.
type Kind int

const (
	// KindMapping is an ordered sequence of unique (key, node) pairs.
	KindMapping Kind = iota
	// KindSequence is an ordered list of nodes.
	KindSequence
	// KindScalar is a string, number, boolean, or null with its original
	// lexical form preserved.
	KindScalar
	// KindReference is a mapping whose $ref entry designates another
	// location in the same document.
	KindReference
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	case KindScalar:
		return "scalar"
	case KindReference:
		return "reference"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Location is a position in the source document.
// Line and Column are 1-based (matching editor conventions).
// A zero Line value indicates the location is unknown, which is the case
// for nodes constructed in memory rather than parsed.
type Location struct {
	// Line is the 1-based line number (0 if unknown)
	Line int
	// Column is the 1-based column number (0 if unknown)
	Column int
}

// IsKnown returns true if this location has valid line information.
func (l Location) IsKnown() bool {
	return l.Line > 0
}

// String returns a human-readable location string.
func (l Location) String() string {
	if !l.IsKnown() {
		return "<unknown>"
	}
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Node is the universal document unit: a handle over one position in the
// backing yaml tree. Nodes are cheap to create and compare by backing
// identity; they are never copies of document content.
type Node struct {
	yn *yaml.Node
}

// wrap creates a Node handle, dereferencing YAML aliases so callers always
// see the anchored content.
func wrap(yn *yaml.Node) *Node {
	if yn == nil {
		return nil
	}
	for yn.Kind == yaml.AliasNode && yn.Alias != nil {
		yn = yn.Alias
	}
	return &Node{yn: yn}
}

// Kind returns the node's variant. A mapping that carries a scalar $ref
// entry is classified as KindReference.
func (n *Node) Kind() Kind {
	switch n.yn.Kind {
	case yaml.MappingNode:
		if n.refValue() != nil {
			return KindReference
		}
		return KindMapping
	case yaml.SequenceNode:
		return KindSequence
	default:
		return KindScalar
	}
}

// refValue returns the backing scalar node of the $ref entry, or nil.
func (n *Node) refValue() *yaml.Node {
	if n.yn.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.yn.Content); i += 2 {
		k, v := n.yn.Content[i], n.yn.Content[i+1]
		if k.Kind == yaml.ScalarNode && k.Value == RefKey && v.Kind == yaml.ScalarNode {
			return v
		}
	}
	return nil
}

// IsReference returns true if the node carries a $ref pointer string.
func (n *Node) IsReference() bool {
	return n.refValue() != nil
}

// Ref returns the node's $ref pointer string, or "" if the node is not a
// reference.
func (n *Node) Ref() string {
	if v := n.refValue(); v != nil {
		return v.Value
	}
	return ""
}

// Location returns the node's position in the source document.
func (n *Node) Location() Location {
	return Location{Line: n.yn.Line, Column: n.yn.Column}
}

// Len returns the number of pairs in a mapping or items in a sequence,
// and 0 for scalars.
func (n *Node) Len() int {
	switch n.yn.Kind {
	case yaml.MappingNode:
		return len(n.yn.Content) / 2
	case yaml.SequenceNode:
		return len(n.yn.Content)
	default:
		return 0
	}
}

// KeyAt returns the i-th mapping key. It panics if the node is not a
// mapping or i is out of range, mirroring slice indexing.
func (n *Node) KeyAt(i int) string {
	if n.yn.Kind != yaml.MappingNode {
		panic(fmt.Sprintf("node: KeyAt on %s node", n.Kind()))
	}
	return n.yn.Content[2*i].Value
}

// KeyLocationAt returns the source position of the i-th mapping key.
func (n *Node) KeyLocationAt(i int) Location {
	if n.yn.Kind != yaml.MappingNode {
		return Location{}
	}
	k := n.yn.Content[2*i]
	return Location{Line: k.Line, Column: k.Column}
}

// ValueAt returns the i-th mapping value. It panics if the node is not a
// mapping or i is out of range.
func (n *Node) ValueAt(i int) *Node {
	if n.yn.Kind != yaml.MappingNode {
		panic(fmt.Sprintf("node: ValueAt on %s node", n.Kind()))
	}
	return wrap(n.yn.Content[2*i+1])
}

// ItemAt returns the i-th sequence item. It panics if the node is not a
// sequence or i is out of range.
func (n *Node) ItemAt(i int) *Node {
	if n.yn.Kind != yaml.SequenceNode {
		panic(fmt.Sprintf("node: ItemAt on %s node", n.Kind()))
	}
	return wrap(n.yn.Content[i])
}

// IndexOf returns the pair index of key within a mapping, or -1.
func (n *Node) IndexOf(key string) int {
	if n.yn.Kind != yaml.MappingNode {
		return -1
	}
	for i := 0; i+1 < len(n.yn.Content); i += 2 {
		if n.yn.Content[i].Value == key {
			return i / 2
		}
	}
	return -1
}

// Get returns the value for key in a mapping, reporting whether it exists.
func (n *Node) Get(key string) (*Node, bool) {
	i := n.IndexOf(key)
	if i < 0 {
		return nil, false
	}
	return n.ValueAt(i), true
}

// Has returns true if the mapping contains key.
func (n *Node) Has(key string) bool {
	return n.IndexOf(key) >= 0
}

// Keys returns the mapping's keys in document order.
func (n *Node) Keys() []string {
	if n.yn.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(n.yn.Content)/2)
	for i := 0; i+1 < len(n.yn.Content); i += 2 {
		keys = append(keys, n.yn.Content[i].Value)
	}
	return keys
}

// Value returns a scalar's decoded value text (quotes removed, escapes
// applied). For non-scalars it returns "".
func (n *Node) Value() string {
	if n.yn.Kind != yaml.ScalarNode {
		return ""
	}
	return n.yn.Value
}

// Tag returns the node's resolved YAML tag (e.g. "!!str", "!!int").
func (n *Node) Tag() string {
	return n.yn.Tag
}

// IsNull returns true for an explicit null scalar.
func (n *Node) IsNull() bool {
	return n.yn.Kind == yaml.ScalarNode && n.yn.Tag == "!!null"
}

// Mutation primitives. These operate on the backing tree directly; the
// editor package layers duplicate checks, canonical ordering, and generation
// accounting on top. Each primitive is a single swap or splice of the
// Content slice so no partially written pair is ever observable.

// Set replaces the value for key, or appends a new pair if key is absent.
func (n *Node) Set(key string, v *Node) {
	n.mustMapping("Set")
	if i := n.IndexOf(key); i >= 0 {
		n.yn.Content[2*i+1] = v.yn
		return
	}
	n.yn.Content = append(n.yn.Content, keyScalar(key), v.yn)
}

// InsertPair inserts (key, v) at pair index i, shifting later pairs right.
// An i greater than or equal to Len() appends.
func (n *Node) InsertPair(i int, key string, v *Node) {
	n.mustMapping("InsertPair")
	if i < 0 {
		i = 0
	}
	if i >= n.Len() {
		n.yn.Content = append(n.yn.Content, keyScalar(key), v.yn)
		return
	}
	at := 2 * i
	content := make([]*yaml.Node, 0, len(n.yn.Content)+2)
	content = append(content, n.yn.Content[:at]...)
	content = append(content, keyScalar(key), v.yn)
	content = append(content, n.yn.Content[at:]...)
	n.yn.Content = content
}

// Remove deletes the pair for key, reporting whether it existed.
func (n *Node) Remove(key string) bool {
	n.mustMapping("Remove")
	i := n.IndexOf(key)
	if i < 0 {
		return false
	}
	at := 2 * i
	n.yn.Content = append(n.yn.Content[:at:at], n.yn.Content[at+2:]...)
	return true
}

// Reorder rearranges the mapping's pairs to match keys, which must be a
// permutation of the current key set. The replacement content is built fully
// before it is swapped in.
func (n *Node) Reorder(keys []string) error {
	n.mustMapping("Reorder")
	if len(keys) != n.Len() {
		return fmt.Errorf("node: reorder key count %d does not match mapping size %d", len(keys), n.Len())
	}
	content := make([]*yaml.Node, 0, len(n.yn.Content))
	for _, key := range keys {
		i := n.IndexOf(key)
		if i < 0 {
			return fmt.Errorf("node: reorder key %q not present in mapping", key)
		}
		content = append(content, n.yn.Content[2*i], n.yn.Content[2*i+1])
	}
	n.yn.Content = content
	return nil
}

// Append adds an item to the end of a sequence.
func (n *Node) Append(item *Node) {
	if n.yn.Kind != yaml.SequenceNode {
		panic(fmt.Sprintf("node: Append on %s node", n.Kind()))
	}
	n.yn.Content = append(n.yn.Content, item.yn)
}

func (n *Node) mustMapping(op string) {
	if n.yn.Kind != yaml.MappingNode {
		panic(fmt.Sprintf("node: %s on %s node", op, n.Kind()))
	}
}

func keyScalar(key string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
}

// Constructors for building subtrees in memory (skeletons, test fixtures).
// Constructed nodes carry no source location and serialize in the emitter's
// default style.

// NewMapping creates an empty mapping node.
func NewMapping() *Node {
	return wrap(&yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"})
}

// NewSequence creates a sequence node with the given items.
func NewSequence(items ...*Node) *Node {
	yn := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, item := range items {
		yn.Content = append(yn.Content, item.yn)
	}
	return wrap(yn)
}

// NewString creates a string scalar node.
func NewString(s string) *Node {
	return wrap(&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s})
}

// NewInt creates an integer scalar node.
func NewInt(i int64) *Node {
	return wrap(&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(i, 10)})
}

// NewBool creates a boolean scalar node.
func NewBool(b bool) *Node {
	return wrap(&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)})
}

// NewNull creates a null scalar node.
func NewNull() *Node {
	return wrap(&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"})
}

// NewReference creates a reference node: a mapping with a single $ref entry.
func NewReference(ref string) *Node {
	m := NewMapping()
	m.Set(RefKey, NewString(ref))
	return m
}

// FromYAML parses a standalone YAML fragment into a Node. It is intended
// for building skeleton subtrees from literals; unlike Parse it performs no
// duplicate-key checking and produces no Document.
func FromYAML(data []byte) (*Node, error) {
	var yn yaml.Node
	if err := yaml.Unmarshal(data, &yn); err != nil {
		return nil, fmt.Errorf("node: parsing fragment: %w", err)
	}
	if yn.Kind == yaml.DocumentNode && len(yn.Content) > 0 {
		return wrap(yn.Content[0]), nil
	}
	return wrap(&yn), nil
}
