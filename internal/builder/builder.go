// Package builder is a small arena-construction helper used by check's
// test suite (and by the CLI's trivial s-expression loader) to build
// ast.Tree values without hand-indexing ast.Node literals, mirroring
// the teacher's preference for small typed constructors over bare
// struct literals scattered through tests.
//
// Nodes are built bottom-up: leaves first, then each composite node is
// given its already-built children, which fixes up their Parent field.
// A node's own Parent stays ast.NoIndex until it, in turn, is passed as
// a child to an enclosing Compose call.
package builder

import (
	"github.com/exprtools/borrowcheck/ast"
	"github.com/exprtools/borrowcheck/file"
)

// Builder accumulates Nodes for a single ast.Tree.
type Builder struct {
	nodes  []ast.Node
	source string
}

// New starts a Builder. source is only used to size Location snippets
// in error messages; it need not be syntactically meaningful.
func New(source string) *Builder {
	return &Builder{source: source}
}

func (b *Builder) add(n ast.Node) int {
	i := len(b.nodes)
	b.nodes = append(b.nodes, n)
	return i
}

// Compose appends a node of kind with the given already-built children,
// reparenting each child to point at the new node.
func (b *Builder) Compose(kind ast.Kind, children ...int) int {
	n := ast.NewNode(kind, file.Location{})
	n.Children = children
	i := b.add(n)
	for _, c := range children {
		b.nodes[c].Parent = i
	}
	return i
}

// Assign builds a KindAssign node with the given operator over
// [lhs, rhs].
func (b *Builder) Assign(op ast.Op, lhs, rhs int) int {
	i := b.Compose(ast.KindAssign, lhs, rhs)
	b.nodes[i].Op = &op
	return i
}

// Item appends a leaf KindItem node with the given name.
func (b *Builder) Item(name string) int {
	n := ast.NewNode(ast.KindItem, file.Location{})
	n.Names = []string{name}
	return b.add(n)
}

// Arg appends a leaf KindArg node; lifetime == "" means no declared
// lifetime.
func (b *Builder) Arg(name string, mutable bool, lifetime string) int {
	n := ast.NewNode(ast.KindArg, file.Location{})
	n.Names = []string{name}
	n.Mutable = mutable
	if lifetime != "" {
		lt := lifetime
		n.Lifetime = &lt
	}
	return b.add(n)
}

// CallArg composes a KindCallArg node wrapping a single expression
// child, optionally flagged mutable.
func (b *Builder) CallArg(expr int, mutable bool) int {
	i := b.Compose(ast.KindCallArg, expr)
	b.nodes[i].Mutable = mutable
	return i
}

// Call composes a KindCall node with the given name and call-arg
// children (already built via CallArg).
func (b *Builder) Call(name string, callArgs ...int) int {
	i := b.Compose(ast.KindCall, callArgs...)
	b.nodes[i].Names = []string{name}
	return i
}

// Fn composes a KindFn node: the given already-built Arg nodes followed
// by a single Block body, under the given name.
func (b *Builder) Fn(name string, block int, args ...int) int {
	children := append(append([]int(nil), args...), block)
	i := b.Compose(ast.KindFn, children...)
	b.nodes[i].Names = []string{name}
	return i
}

// Tree freezes the accumulated nodes into an ast.Tree.
func (b *Builder) Tree() *ast.Tree {
	return &ast.Tree{Nodes: b.nodes, Source: b.source}
}
