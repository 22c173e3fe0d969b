package check

import (
	"github.com/exprtools/borrowcheck/ast"
	"github.com/exprtools/borrowcheck/file"
)

// resolveItems links every free item to its declaration: a local
// declarator, an enclosing loop range, or a function argument
// (spec.md §4.3). Lookup is lexical, strictly before use within a
// block and outward through enclosing scopes.
func resolveItems(tree *ast.Tree, idx *Index) *file.Error {
	for _, i := range idx.Items {
		item := tree.Node(i)
		if item.Name() == "return" {
			continue
		}

		child := i
		parent := item.Parent
		declaration := ast.NoIndex

	search:
		for parent != ast.NoIndex {
			parentNode := tree.Node(parent)

			if parentNode.Kind.IsDeclLoop() {
				for _, name := range parentNode.Names {
					if name == item.Name() {
						declaration = parent
						break search
					}
				}
			}

			me := indexOf(parentNode.Children, child)
			for _, j := range parentNode.Children[:me] {
				stmt := tree.Node(j)
				if len(stmt.Children) == 0 {
					continue
				}
				inner := tree.Node(stmt.Children[0])
				if inner.Kind != ast.KindAssign || inner.Op == nil || *inner.Op != ast.OpDeclare {
					continue
				}
				left := tree.Node(inner.Children[0])
				if len(left.Children) == 0 {
					continue
				}
				candidate := left.Children[0]
				if tree.Node(candidate).Name() == item.Name() {
					declaration = candidate
					break search
				}
			}

			if parentNode.Parent == ast.NoIndex {
				break
			}
			child = parent
			parent = parentNode.Parent
		}

		if declaration != ast.NoIndex {
			item.Declaration = declaration
			continue
		}

		fn := tree.Node(parent)
		if fn.Kind != ast.KindFn {
			return file.NewError(item.Source, "internal error: top parent is not a function")
		}

		found := ast.NoIndex
		for _, a := range fn.Children {
			arg := tree.Node(a)
			if arg.Kind != ast.KindArg {
				continue
			}
			if arg.Name() == item.Name() {
				found = a
			}
		}
		if found == ast.NoIndex {
			return file.NewError(item.Source, "Could not find declaration of %s", item.Name())
		}
		item.Declaration = found
	}

	return nil
}

func indexOf(children []int, target int) int {
	for pos, c := range children {
		if c == target {
			return pos
		}
	}
	return len(children)
}

// checkInferable validates that every declarator-loop with no explicit
// range end has its iteration bound observable from the body via a
// pure `list[i]` indexing use (spec.md §4.4).
func checkInferable(tree *ast.Tree, idx *Index) *file.Error {
	for _, inf := range idx.Inferred {
		loop := tree.Node(inf)
		for _, name := range loop.Names {
			found := false

			for _, i := range idx.Items {
				item := tree.Node(i)
				if item.Declaration != inf || item.Name() != name {
					continue
				}

				ch := i
				disqualified := false
				matchedID := false
				for {
					p := tree.Node(ch).Parent
					if p == ast.NoIndex {
						break
					}
					switch tree.Node(p).Kind {
					case ast.KindPow:
						disqualified = true
					case ast.KindMul:
						disqualified = len(tree.Node(p).Children) > 1
					case ast.KindAdd:
						disqualified = len(tree.Node(p).Children) > 1
					case ast.KindId:
						matchedID = true
					}
					if disqualified || matchedID {
						break
					}
					ch = p
				}

				if disqualified || !matchedID {
					continue
				}
				found = true
				break
			}

			if !found {
				return file.NewError(loop.Source, "Can not infer range from body, use list[i] syntax")
			}
		}
	}
	return nil
}
