package ast

import (
	"github.com/exprtools/borrowcheck/file"
	"github.com/exprtools/borrowcheck/ltype"
	"github.com/exprtools/borrowcheck/typecheck"
)

// NoIndex marks an absent node reference (an optional index field that
// has not been resolved, or the root node's absent parent).
const NoIndex = -1

// Node is the flat record described in spec.md §3. Every cross
// reference (Parent, Children, Declaration) is an index into the
// owning Tree's Nodes slice, never a pointer: the arena has no owning
// cycles (spec.md §5, §9).
type Node struct {
	Kind Kind

	// Op is set only on KindAssign nodes.
	Op *Op

	// Parent is NoIndex for the root node.
	Parent int

	// Children is the ordered list of child indices; semantics vary by
	// Kind (see kind.go doc comments).
	Children []int

	// Names holds every name attached to this node; Name() returns the
	// last (primary) one. Function and Call nodes get a second,
	// mutability-decorated entry appended by mutability.go when any of
	// their arguments/call-arguments are mutable.
	Names []string

	// Mutable is set by the parser on Arg/CallArg nodes flagged mut.
	Mutable bool

	// Lifetime is the declared lifetime on an Arg node: another
	// argument's name, or the literal "return".
	Lifetime *string

	// Declaration is filled in by the resolver: for Item nodes it
	// points at the declaring local/loop/argument; for Call nodes at
	// the callee Fn node (absent for intrinsic calls, which populate
	// Lts instead).
	Declaration int

	// Ids counts indexing/field-selector (KindId) ancestors attached to
	// an assignment's left-hand item; zero means the lvalue is a bare
	// local (spec.md §3).
	Ids int

	// Lts holds one lifetime tag per call-argument, populated only for
	// calls resolved to an intrinsic (spec.md §4.6).
	Lts []ltype.Tag

	// Ty is written by the type-check bridge (spec.md §4.10).
	Ty *typecheck.Type

	// Source is this node's byte range, used to attribute errors.
	Source file.Location
}

// Name returns the node's primary name, or "" if it has none.
func (n *Node) Name() string {
	if len(n.Names) == 0 {
		return ""
	}
	return n.Names[len(n.Names)-1]
}

// HasLifetime reports whether this node's kind ever produces a value
// with an observable lifetime. Matches the original's conservative
// `has_lifetime` guard used to decide whether a single-child Expr node
// is an end-of-block tail expression worth checking (spec.md §4.2).
func (n *Node) HasLifetime() bool {
	switch n.Kind {
	case KindItem, KindCall, KindAssign, KindId, KindAdd, KindMul, KindPow, KindExpr, KindBlock:
		return true
	default:
		return false
	}
}

// NewNode returns a zero Node with Parent/Declaration defaulted to
// NoIndex, ready to have its Kind and other fields set by a builder.
func NewNode(kind Kind, source file.Location) Node {
	return Node{
		Kind:        kind,
		Parent:      NoIndex,
		Declaration: NoIndex,
		Source:      source,
	}
}

// Tree is the arena produced by the parser adapter: a flat, indexable
// slice of Node plus the raw source text errors are sliced from.
type Tree struct {
	Nodes  []Node
	Source string
}

func (t *Tree) Node(i int) *Node {
	return &t.Nodes[i]
}

// Root returns 0, the first node in the arena. Trees built by
// internal/builder (and so by internal/sexpr) are assembled bottom-up,
// so there node 0 is a leaf and every Fn node has Parent NoIndex.
func (t *Tree) Root() int {
	return 0
}
