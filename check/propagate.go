package check

import (
	"github.com/exprtools/borrowcheck/ast"
	"github.com/exprtools/borrowcheck/ltype"
)

// lifetimeOf computes the lifetime of node n on demand (spec.md §4.7).
// It depends only on the subtree below n plus the signature registry,
// both immutable during checking, so there is no need to memoise it.
func lifetimeOf(tree *ast.Tree, sig *Signatures, n int) *ltype.Lifetime {
	node := tree.Node(n)

	switch node.Kind {
	case ast.KindItem:
		if node.Name() == "return" {
			return ltype.NewReturn()
		}
		decl := tree.Node(node.Declaration)
		if decl.Kind == ast.KindArg {
			return ltype.NewArgumentIn(decl.Parent, decl.Name())
		}
		return ltype.NewLocal(enclosingScope(tree, node.Declaration))

	case ast.KindExpr, ast.KindCallArg:
		if len(node.Children) == 1 {
			return lifetimeOf(tree, sig, node.Children[0])
		}
		return shortestOf(tree, sig, node.Children)

	case ast.KindId:
		if len(node.Children) == 0 {
			return nil
		}
		return lifetimeOf(tree, sig, node.Children[0])

	case ast.KindAdd, ast.KindMul, ast.KindPow:
		return shortestOf(tree, sig, node.Children)

	case ast.KindGo:
		if len(node.Children) == 0 {
			return nil
		}
		return lifetimeOf(tree, sig, node.Children[0])

	case ast.KindCall:
		return propagateCall(tree, sig, n)

	default:
		return nil
	}
}

// shortestOf returns the shortest (most restrictive) lifetime among
// children, skipping any child whose own lifetime is unconstrained
// (nil, treated as maximal so it never narrows the result).
//
// compare(tree, sig, left, right) succeeds when right outlives left
// (spec.md §4.8). Testing compare(lt, shortest) == nil therefore asks
// "does the running candidate outlive the new one?" — if so, lt is the
// tighter bound and replaces it.
func shortestOf(tree *ast.Tree, sig *Signatures, children []int) *ltype.Lifetime {
	var shortest *ltype.Lifetime
	for _, c := range children {
		child := tree.Node(c)
		if child.Kind != ast.KindCallArg && !child.HasLifetime() {
			continue
		}
		lt := lifetimeOf(tree, sig, c)
		if lt == nil {
			continue
		}
		if shortest == nil {
			shortest = lt
			continue
		}
		if err := compare(tree, sig, lt, shortest); err == nil {
			shortest = lt
		}
	}
	return shortest
}

// propagateCall computes the lifetime a call expression produces,
// i.e. what its value aliases once the call returns. Only arguments
// whose declared lifetime is the sink "return" (or, for intrinsics,
// tagged ltype.TagReturn) contribute: everything else is a fresh value
// untied to any input and therefore unconstrained (spec.md §4.7, §9
// Design Note (c)).
func propagateCall(tree *ast.Tree, sig *Signatures, c int) *ltype.Lifetime {
	call := tree.Node(c)

	var callArgs []int
	for _, ch := range call.Children {
		if tree.Node(ch).Kind == ast.KindCallArg {
			callArgs = append(callArgs, ch)
		}
	}

	var tied []int
	if call.Declaration != ast.NoIndex {
		fn := tree.Node(call.Declaration)
		ordinal := 0
		for _, a := range fn.Children {
			if tree.Node(a).Kind != ast.KindArg {
				continue
			}
			arg := tree.Node(a)
			if arg.Lifetime != nil && *arg.Lifetime == "return" && ordinal < len(callArgs) {
				tied = append(tied, callArgs[ordinal])
			}
			ordinal++
		}
	} else {
		for i, tag := range call.Lts {
			if tag.Kind == ltype.TagReturn && i < len(callArgs) {
				tied = append(tied, callArgs[i])
			}
		}
	}

	if len(tied) == 0 {
		return nil
	}

	shortest := shortestOf(tree, sig, tied)
	if shortest == nil {
		return ltype.NewReturn()
	}
	if shortest.Kind == ltype.Argument {
		return ltype.NewArgumentIn(shortest.Node, shortest.Path...)
	}
	return ltype.NewReturn()
}
