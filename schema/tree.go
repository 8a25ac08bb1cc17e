package schema

import (
	"iter"
	"slices"
)

// Tree is an insertion-ordered mapping of field name to Node.
type Tree struct {
	names  []string
	nodes  map[string]Node
	frozen bool
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{nodes: make(map[string]Node)}
}

// Set stores node under name. An existing name keeps its position and gets
// the new node; replaced reports whether that happened.
// Set panics on a frozen tree.
func (t *Tree) Set(name string, node Node) (replaced bool) {
	if t.frozen {
		panic("schema: Set on frozen tree " + name)
	}

	if t.nodes == nil {
		t.nodes = make(map[string]Node)
	}

	if _, replaced = t.nodes[name]; !replaced {
		t.names = append(t.names, name)
	}

	t.nodes[name] = node

	return replaced
}

// Get returns the node stored under name.
func (t *Tree) Get(name string) (Node, bool) {
	if t == nil {
		return Node{}, false
	}

	n, ok := t.nodes[name]

	return n, ok
}

// Has reports whether name is present.
func (t *Tree) Has(name string) bool {
	_, ok := t.Get(name)
	return ok
}

// Len returns the number of fields. A nil tree is empty.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}

	return len(t.names)
}

// Names returns the field names in insertion order.
func (t *Tree) Names() []string {
	if t == nil {
		return nil
	}

	return slices.Clone(t.names)
}

// All iterates over fields in insertion order.
func (t *Tree) All() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		if t == nil {
			return
		}

		for _, name := range t.names {
			if !yield(name, t.nodes[name]) {
				return
			}
		}
	}
}

// Freeze makes the tree and every nested tree read-only.
func (t *Tree) Freeze() {
	if t == nil || t.frozen {
		return
	}

	t.frozen = true
	for _, n := range t.nodes {
		n.Properties.Freeze()
	}
}

// Clone returns an unfrozen deep copy of the tree. A nil tree clones to nil.
func (t *Tree) Clone() *Tree {
	if t == nil {
		return nil
	}

	c := &Tree{
		names: slices.Clone(t.names),
		nodes: make(map[string]Node, len(t.nodes)),
	}

	for name, n := range t.nodes {
		c.nodes[name] = n.Clone()
	}

	return c
}

// Frozen reports whether Freeze was called.
func (t *Tree) Frozen() bool {
	return t != nil && t.frozen
}

// Equal reports whether both trees hold the same names in the same order
// with equal nodes. Two nil trees are equal; a nil tree is not equal to an
// empty one.
func (t *Tree) Equal(other *Tree) bool {
	if t == nil || other == nil {
		return t == nil && other == nil
	}

	if !slices.Equal(t.names, other.names) {
		return false
	}

	for _, name := range t.names {
		if !t.nodes[name].Equal(other.nodes[name]) {
			return false
		}
	}

	return true
}
