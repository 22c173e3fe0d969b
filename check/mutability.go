package check

import (
	"strings"

	"github.com/exprtools/borrowcheck/ast"
)

// decorateMutability rewrites the primary name of every Fn and Call
// node that has at least one mutable Arg/CallArg child into
// `base(tag1,tag2,...)`, tag being "mut" or "_" (spec.md §4.1). The
// decorated name is appended to Names so Name() picks it up while the
// original base name stays available to callers that still need it.
func decorateMutability(tree *ast.Tree) {
	for i := range tree.Nodes {
		n := tree.Node(i)
		if n.Kind != ast.KindFn && n.Kind != ast.KindCall {
			continue
		}

		var tags []string
		mutableArgs := false
		for _, c := range n.Children {
			child := tree.Node(c)
			if child.Kind != ast.KindArg && child.Kind != ast.KindCallArg {
				continue
			}
			if child.Mutable {
				tags = append(tags, "mut")
				mutableArgs = true
			} else {
				tags = append(tags, "_")
			}
		}

		if !mutableArgs {
			continue
		}

		decorated := n.Name() + "(" + strings.Join(tags, ",") + ")"
		n.Names = append(n.Names, decorated)
	}
}
