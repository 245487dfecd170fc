package tree

import (
	"github.com/oakwood-commons/jvx/pkg/selector"
	"github.com/oakwood-commons/jvx/pkg/value"
)

// Node is one display-ready tree node. Within its sibling group it is
// identified by its Selector, not its position, so identity survives any
// reordering a renderer might apply. Nodes are built once per Build call and
// never mutated; a changed document gets a fresh tree.
type Node struct {
	// Selector is the step that reaches this node from its parent.
	Selector selector.Selector
	// Label is the display text: the selector text for containers, or
	// "<selector>: <value>" for leaves.
	Label string
	// Children holds the node's sub-nodes in source order. Empty for leaf
	// values and for empty containers.
	Children []*Node
}

// Build converts root into its top-level node collection. Objects and arrays
// yield one node per member or element; a scalar root yields a single leaf
// under the root-sentinel selector, labeled with the scalar's canonical
// text; an empty container root yields no nodes at all — the container
// itself has no representation at the top level.
//
// Construction is total: any well-formed value produces a tree, and building
// twice from the same document produces structurally identical output.
func Build(root *value.Value) []*Node {
	switch root.Kind() {
	case value.Object:
		return fromObject(root)
	case value.Array:
		return fromArray(root)
	default:
		return []*Node{{Selector: selector.None(), Label: root.String()}}
	}
}

// build creates the node for one (selector, value) pair below the root.
// Unlike the root case, an empty container here keeps its node: it is an
// addressable member of its parent, just one with nothing underneath.
func build(sel selector.Selector, v *value.Value) *Node {
	switch v.Kind() {
	case value.Object:
		return &Node{Selector: sel, Label: sel.String(), Children: fromObject(v)}
	case value.Array:
		return &Node{Selector: sel, Label: sel.String(), Children: fromArray(v)}
	default:
		return &Node{Selector: sel, Label: sel.String() + ": " + v.String()}
	}
}

func fromObject(v *value.Value) []*Node {
	fields := v.Fields()
	nodes := make([]*Node, 0, len(fields))
	for i := range fields {
		nodes = append(nodes, build(selector.ObjectKey(fields[i].Key), fields[i].Value))
	}
	return nodes
}

func fromArray(v *value.Value) []*Node {
	elems := v.Elems()
	nodes := make([]*Node, 0, len(elems))
	for i, e := range elems {
		nodes = append(nodes, build(selector.ArrayIndex(i), e))
	}
	return nodes
}
