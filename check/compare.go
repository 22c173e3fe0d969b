package check

import (
	"fmt"

	"github.com/exprtools/borrowcheck/ast"
	"github.com/exprtools/borrowcheck/ltype"
)

// compare implements spec.md §4.8's compare_lifetimes: it succeeds
// (returns nil) exactly when right outlives left, i.e. right's value
// may stand in anywhere left's is required. It lives in check, not
// ltype, because the Local and Argument rules need the node arena's
// parent chain and the function's declared-lifetime graph, both of
// which only check has in scope.
func compare(tree *ast.Tree, sig *Signatures, left, right *ltype.Lifetime) error {
	// An absent lifetime is treated as maximal (spec.md §4.8): a
	// constant or other unconstrained value borrows nothing, so it
	// satisfies any requirement, and an absent requirement accepts
	// anything.
	if left == nil || right == nil {
		return nil
	}

	switch left.Kind {
	case ltype.Return:
		switch right.Kind {
		case ltype.Return:
			if pathOutlives(left.Path, right.Path) {
				return nil
			}
		case ltype.Argument:
			// An argument declared `lifetime 'return` satisfies a
			// Return requirement directly (spec.md §4.8: "arguments
			// tagged return satisfy this").
			if argTaggedReturn(tree, sig, right) {
				return nil
			}
		}
		return fmt.Errorf("%s does not outlive %s", right.String(), left.String())

	case ltype.Argument:
		switch right.Kind {
		case ltype.Return:
			// A bare Return lifetime never satisfies an Argument
			// requirement (spec.md §4.8 grants no such case).
			return fmt.Errorf("%s does not outlive %s", right.String(), left.String())
		case ltype.Argument:
			if argumentOutlives(tree, sig, left, right) {
				return nil
			}
			return fmt.Errorf("%s does not outlive %s", right.String(), left.String())
		case ltype.Local:
			// Arguments always outlive locals of the same call
			// (spec.md §4.8 mixed cases).
			return nil
		}

	case ltype.Local:
		switch right.Kind {
		case ltype.Return:
			return fmt.Errorf("%s does not outlive %s", right.String(), left.String())
		case ltype.Argument:
			return nil
		case ltype.Local:
			// right outlives left when right's scope encloses left's:
			// walk left's parent chain looking for right.
			if localOutlives(tree, right.Node, left.Node) {
				return nil
			}
			return fmt.Errorf("%s does not outlive %s", right.String(), left.String())
		}
	}

	return fmt.Errorf("%s does not outlive %s", right.String(), left.String())
}

// pathOutlives reports whether a Return(given) target is reached by, or
// is, a Return(want) target: want's path must be a prefix of given's,
// i.e. given is at least as constrained (spec.md §4.8 "compatible or
// shorter path").
func pathOutlives(want, given []string) bool {
	if len(given) < len(want) {
		return false
	}
	for i, w := range want {
		if given[i] != w {
			return false
		}
	}
	return true
}

// argumentOutlives reports whether right outlives left: an argument
// declaring `lifetime lt` is understood to outlive lt (the declaring
// argument is guaranteed valid at least as long as its target, e.g. an
// argument stored into another must outlive it). So right outlives
// left exactly when left's name is reachable by walking forward from
// right's own declared-lifetime chain (spec.md §4.8's "q follows p in
// the argument graph", read with p = right, q = left).
//
// Only the first path element is consulted: paths accumulate past a
// named-argument boundary during propagation (spec.md §4.7), but the
// graph this pass validates is always local to a single function's
// declared arguments, so deeper path segments describe positions
// inside a nested call's own frame and do not participate in this
// function-local comparison.
func argumentOutlives(tree *ast.Tree, sig *Signatures, left, right *ltype.Lifetime) bool {
	if len(left.Path) == 0 || len(right.Path) == 0 {
		return false
	}
	if left.Node != right.Node {
		// Different owning functions: this pass never needs to compare
		// arguments across function boundaries directly, only through
		// Local/Return mediation.
		return false
	}

	to, from := left.Path[0], right.Path[0]
	if from == to {
		return true
	}

	fn := right.Node
	cur := from
	seen := map[string]bool{cur: true}
	for {
		info, ok := sig.ArgByName[ArgKey{Fn: fn, Name: cur}]
		if !ok {
			return false
		}
		argNode := tree.Node(info.Node)
		if argNode.Lifetime == nil {
			return false
		}
		next := *argNode.Lifetime
		if next == "return" {
			return false
		}
		if next == to {
			return true
		}
		if seen[next] {
			return false
		}
		seen[next] = true
		cur = next
	}
}

// argTaggedReturn reports whether right, an Argument lifetime, names an
// argument whose own declared lifetime is the sink "return".
func argTaggedReturn(tree *ast.Tree, sig *Signatures, right *ltype.Lifetime) bool {
	if len(right.Path) == 0 {
		return false
	}
	info, ok := sig.ArgByName[ArgKey{Fn: right.Node, Name: right.Path[0]}]
	if !ok {
		return false
	}
	arg := tree.Node(info.Node)
	return arg.Lifetime != nil && *arg.Lifetime == "return"
}

// localOutlives reports whether the local declared at node a encloses
// the scope of the local declared at node b, found by walking b's
// parent chain until a is reached (or the root).
func localOutlives(tree *ast.Tree, a, b int) bool {
	if a == b {
		return true
	}
	cur := b
	for cur != ast.NoIndex {
		if cur == a {
			return true
		}
		cur = tree.Node(cur).Parent
	}
	return false
}

// enclosingScope returns the nearest Block or declarator-loop ancestor
// of n (or n itself, if it already is one) — the node this pass uses
// as the anchor for a Local lifetime. Anchoring on the scope owner
// rather than on a leaf item or a call site is what makes the
// parent-chain containment walk in localOutlives meaningful: every use
// nested inside a scope has that scope's owner as a genuine ancestor,
// where a sibling statement's leaf nodes would not.
func enclosingScope(tree *ast.Tree, n int) int {
	cur := n
	for cur != ast.NoIndex {
		k := tree.Node(cur).Kind
		if k == ast.KindBlock || k.IsDeclLoop() {
			return cur
		}
		cur = tree.Node(cur).Parent
	}
	return n
}
