package check

import "github.com/exprtools/borrowcheck/ast"

// LocalPair names an assignment and the item node on its left-hand
// side, the shape spec.md §4.2 stores for both `locals` and
// `mutated_locals`.
type LocalPair struct {
	Assign int
	Item   int
}

// Index is the set of working indices a single scan over the arena
// produces (spec.md §4.2). Order within each slice follows structural
// source order, i.e. the order nodes appear in the arena.
type Index struct {
	Functions    []int
	Calls        []int
	Returns      []int
	EndOfBlocks  []int
	Locals       []LocalPair
	MutatedLocals []LocalPair
	Items        []int
	Inferred     []int
}

func findChildByKind(tree *ast.Tree, parent int, kind ast.Kind) (int, bool) {
	for _, c := range tree.Node(parent).Children {
		if tree.Node(c).Kind == kind {
			return c, true
		}
	}
	return 0, false
}

// buildIndex performs the single scan described in spec.md §4.2.
func buildIndex(tree *ast.Tree) *Index {
	idx := &Index{}

	declaredLocals := make(map[int]bool)

	for i := range tree.Nodes {
		n := tree.Node(i)

		switch n.Kind {
		case ast.KindFn:
			idx.Functions = append(idx.Functions, i)
		case ast.KindCall:
			idx.Calls = append(idx.Calls, i)
		case ast.KindReturn:
			idx.Returns = append(idx.Returns, i)
		}

		if n.Kind == ast.KindExpr && len(n.Children) == 1 {
			child := tree.Node(n.Children[0])
			if child.HasLifetime() && n.Parent != ast.NoIndex {
				parent := tree.Node(n.Parent)
				if parent.Kind.IsBlock() && len(parent.Children) > 0 &&
					parent.Children[len(parent.Children)-1] == i {
					idx.EndOfBlocks = append(idx.EndOfBlocks, i)
				}
			}
		}

		if n.Op != nil && len(n.Children) > 0 {
			lhs := tree.Node(n.Children[0])
			if len(lhs.Children) > 0 {
				item := lhs.Children[0]
				switch *n.Op {
				case ast.OpDeclare:
					if tree.Node(item).Ids == 0 {
						idx.Locals = append(idx.Locals, LocalPair{Assign: i, Item: item})
						declaredLocals[item] = true
					}
				case ast.OpMutate:
					idx.MutatedLocals = append(idx.MutatedLocals, LocalPair{Assign: i, Item: item})
				}
			}
		}
	}

	for i := range tree.Nodes {
		n := tree.Node(i)
		if n.Kind != ast.KindItem {
			continue
		}
		if declaredLocals[i] {
			continue
		}
		idx.Items = append(idx.Items, i)
	}

	for i := range tree.Nodes {
		n := tree.Node(i)
		if !n.Kind.IsDeclLoop() {
			continue
		}
		if _, ok := findChildByKind(tree, i, ast.KindEnd); !ok {
			idx.Inferred = append(idx.Inferred, i)
		}
	}

	return idx
}
