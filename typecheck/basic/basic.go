// Package basic is a minimal reference type checker, grounded on the
// teacher's checker.go node-dispatch style (a switch over node kind
// building up a type bottom-up) but stripped to the handful of shapes
// this pass's ast package defines. It lives in its own package, rather
// than in typecheck itself, because it needs ast.Tree and typecheck
// must stay a leaf package ast can import without a cycle.
package basic

import (
	"github.com/exprtools/borrowcheck/ast"
	"github.com/exprtools/borrowcheck/prelude"
	"github.com/exprtools/borrowcheck/typecheck"
)

// Checker satisfies check.TypeChecker structurally; neither this
// package nor typecheck ever imports check.
type Checker struct{}

// Check infers and writes a Ty for every Fn node in tree, by walking
// each function's return statements. It is deliberately conservative:
// anything it cannot derive narrows to typecheck.Any rather than
// guessing.
func (Checker) Check(tree *ast.Tree, pre *prelude.Prelude) error {
	for i := range tree.Nodes {
		n := tree.Node(i)
		if n.Kind != ast.KindFn {
			continue
		}
		n.Ty = inferFn(tree, pre, i)
	}
	return nil
}

func inferFn(tree *ast.Tree, pre *prelude.Prelude, fn int) *typecheck.Type {
	f := tree.Node(fn)
	if len(f.Children) == 0 {
		return typecheck.Void
	}
	body := f.Children[len(f.Children)-1]
	if tree.Node(body).Kind != ast.KindBlock {
		return typecheck.Any
	}

	var result *typecheck.Type
	walkReturns(tree, body, func(r int) {
		ret := tree.Node(r)
		if len(ret.Children) == 0 {
			result = mergeTypes(result, typecheck.Void)
			return
		}
		result = mergeTypes(result, inferExpr(tree, pre, ret.Children[0]))
	})

	if result == nil {
		return typecheck.Void
	}
	return result
}

func walkReturns(tree *ast.Tree, n int, visit func(int)) {
	node := tree.Node(n)
	if node.Kind == ast.KindReturn {
		visit(n)
	}
	// Return statements never nest inside nested Fn bodies in this
	// grammar, so an unconditional descent into every child is safe.
	for _, c := range node.Children {
		walkReturns(tree, c, visit)
	}
}

func inferExpr(tree *ast.Tree, pre *prelude.Prelude, n int) *typecheck.Type {
	node := tree.Node(n)

	switch node.Kind {
	case ast.KindExpr, ast.KindCallArg:
		if len(node.Children) == 0 {
			return typecheck.Any
		}
		return inferExpr(tree, pre, node.Children[0])

	case ast.KindItem, ast.KindId:
		return typecheck.Any

	case ast.KindAdd, ast.KindMul, ast.KindPow:
		var t *typecheck.Type
		for _, c := range node.Children {
			t = mergeTypes(t, inferExpr(tree, pre, c))
		}
		if t == nil {
			return typecheck.Any
		}
		return t

	case ast.KindCall:
		if fn, ok := pre.Lookup(node.Name()); ok {
			return byName(fn.Signature.Return)
		}
		if node.Declaration != ast.NoIndex {
			return tree.Node(node.Declaration).Ty
		}
		return typecheck.Any

	default:
		return typecheck.Any
	}
}

// mergeTypes keeps the narrower of two types, widening to typecheck.Any
// the moment they disagree; a nil left operand means "no information
// yet".
func mergeTypes(have, next *typecheck.Type) *typecheck.Type {
	if have == nil {
		return next
	}
	if next == nil {
		return have
	}
	if have.Equal(next) {
		return have
	}
	return typecheck.Any
}

func byName(name string) *typecheck.Type {
	switch name {
	case "int":
		return typecheck.Int
	case "f64":
		return typecheck.Float
	case "bool":
		return typecheck.Bool
	case "str":
		return typecheck.Str
	case "void":
		return typecheck.Void
	case "object":
		return typecheck.Object
	default:
		return typecheck.Any
	}
}
