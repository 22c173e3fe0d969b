package check

import (
	"github.com/exprtools/borrowcheck/ast"
	"github.com/exprtools/borrowcheck/file"
	"github.com/exprtools/borrowcheck/ltype"
	"github.com/exprtools/borrowcheck/prelude"
)

// referenceDepthArg is the fixed descent used by the inter-argument
// reference requirement (spec.md §4.9.7): up to four descents
// (call-arg/add/mul/val), so an Item is accepted at depths 0 through 4.
// Preserved exactly per spec.md §9 Open Question (a) rather than made
// unbounded, matching the original's observable behaviour.
const referenceDepthArg = 4

// referenceDepthMut is the fixed descent used by the mutable
// call-argument check (spec.md §4.9.9): call-arg/item. The original's
// `reference` closure only ever examines the call-arg node itself and
// one descent, with no trailing check beyond that (unlike the
// argument-lifetime probe below), so this checks exactly two
// positions: depths 0 and 1.
const referenceDepthMut = 1

// checkConstraints runs the nine ordered checks of spec.md §4.9,
// fail-fast: the first violation is returned wrapped with its source
// range, exactly as the original's try!-chained checks.
func checkConstraints(tree *ast.Tree, idx *Index, sig *Signatures, pre *prelude.Prelude) *file.Error {
	if err := checkMutatedLocals(tree, idx, sig); err != nil {
		return err
	}
	if err := checkDeclaredLocals(tree, idx, sig); err != nil {
		return err
	}
	if err := checkReturns(tree, idx, sig); err != nil {
		return err
	}
	if err := checkBlockTails(tree, idx, sig); err != nil {
		return err
	}
	if err := checkCallArgsOutliveCall(tree, idx, sig); err != nil {
		return err
	}
	if err := checkGoPurity(tree, idx, pre); err != nil {
		return err
	}
	if err := checkInterArgumentLifetimes(tree, idx, sig, pre); err != nil {
		return err
	}
	if err := checkMutatedLocalMutability(tree, idx); err != nil {
		return err
	}
	if err := checkMutableCallArgs(tree, idx); err != nil {
		return err
	}
	return nil
}

// 1. Mutated locals (spec.md §4.9.1).
func checkMutatedLocals(tree *ast.Tree, idx *Index, sig *Signatures) *file.Error {
	for _, p := range idx.MutatedLocals {
		assign := tree.Node(p.Assign)
		rhs := assign.Children[1]
		left := lifetimeOf(tree, sig, p.Item)
		right := lifetimeOf(tree, sig, rhs)
		if err := compare(tree, sig, left, right); err != nil {
			return file.NewError(tree.Node(p.Item).Source, "%s", err.Error())
		}
	}
	return nil
}

// 2. Declared locals (spec.md §4.9.2).
func checkDeclaredLocals(tree *ast.Tree, idx *Index, sig *Signatures) *file.Error {
	for _, p := range idx.Locals {
		assign := tree.Node(p.Assign)
		rhs := assign.Children[1]
		left := ltype.NewLocal(enclosingScope(tree, p.Item))
		right := lifetimeOf(tree, sig, rhs)
		if err := compare(tree, sig, left, right); err != nil {
			return file.NewError(tree.Node(p.Item).Source, "%s", err.Error())
		}
	}
	return nil
}

// 3. Returns (spec.md §4.9.3).
func checkReturns(tree *ast.Tree, idx *Index, sig *Signatures) *file.Error {
	for _, r := range idx.Returns {
		ret := tree.Node(r)
		if len(ret.Children) == 0 {
			continue
		}
		child := ret.Children[0]
		left := ltype.NewReturn()
		right := lifetimeOf(tree, sig, child)
		if err := compare(tree, sig, left, right); err != nil {
			return file.NewError(ret.Source, "%s", err.Error())
		}
	}
	return nil
}

// 4. Block tails (spec.md §4.9.4).
func checkBlockTails(tree *ast.Tree, idx *Index, sig *Signatures) *file.Error {
	for _, i := range idx.EndOfBlocks {
		node := tree.Node(i)
		left := ltype.NewLocal(node.Parent)
		right := lifetimeOf(tree, sig, i)
		if err := compare(tree, sig, left, right); err != nil {
			return file.NewError(node.Source, "%s", err.Error())
		}
	}
	return nil
}

// 5. Call arguments outlive the call (spec.md §4.9.5).
func checkCallArgsOutliveCall(tree *ast.Tree, idx *Index, sig *Signatures) *file.Error {
	for _, c := range idx.Calls {
		call := tree.Node(c)
		left := ltype.NewLocal(enclosingScope(tree, c))
		for _, a := range call.Children {
			if tree.Node(a).Kind != ast.KindCallArg {
				continue
			}
			right := lifetimeOf(tree, sig, a)
			if err := compare(tree, sig, left, right); err != nil {
				return file.NewError(tree.Node(a).Source, "%s", err.Error())
			}
		}
	}
	return nil
}

// 6. Go purity (spec.md §4.9.6): a call launched concurrently may not
// carry any argument with a lifetime relationship, user function or
// intrinsic, since the callee may outlive the caller's stack frame.
func checkGoPurity(tree *ast.Tree, idx *Index, pre *prelude.Prelude) *file.Error {
	for _, c := range idx.Calls {
		call := tree.Node(c)
		if call.Parent == ast.NoIndex || tree.Node(call.Parent).Kind != ast.KindGo {
			continue
		}

		if call.Declaration != ast.NoIndex {
			fn := tree.Node(call.Declaration)
			for _, a := range fn.Children {
				arg := tree.Node(a)
				if arg.Kind == ast.KindArg && arg.Lifetime != nil {
					return file.NewError(call.Source, "Can not use go because this argument has a lifetime constraint")
				}
			}
			continue
		}

		for _, tag := range call.Lts {
			if tag.Kind != ltype.TagDefault {
				return file.NewError(call.Source, "Can not use go because this argument has a lifetime constraint")
			}
		}
	}
	return nil
}

// 7. Inter-argument lifetimes at calls (spec.md §4.9.7).
func checkInterArgumentLifetimes(tree *ast.Tree, idx *Index, sig *Signatures, pre *prelude.Prelude) *file.Error {
	for _, c := range idx.Calls {
		call := tree.Node(c)

		var callArgs []int
		for _, a := range call.Children {
			if tree.Node(a).Kind == ast.KindCallArg {
				callArgs = append(callArgs, a)
			}
		}

		if call.Declaration != ast.NoIndex {
			fn := tree.Node(call.Declaration)
			ordinal := 0
			for _, a := range fn.Children {
				arg := tree.Node(a)
				if arg.Kind != ast.KindArg {
					continue
				}
				i := ordinal
				ordinal++
				if arg.Lifetime == nil {
					continue
				}
				if i >= len(callArgs) {
					continue
				}
				callArg := callArgs[i]
				if _, ok := descendToItem(tree, callArg, referenceDepthArg); !ok {
					return file.NewError(tree.Node(callArg).Source, "Requires reference to variable")
				}
				lt := *arg.Lifetime
				if lt == "return" {
					continue
				}
				info, ok := sig.ArgByName[ArgKey{Fn: call.Declaration, Name: lt}]
				if !ok || info.Ordinal >= len(callArgs) {
					continue
				}
				left := lifetimeOf(tree, sig, callArgs[info.Ordinal])
				right := lifetimeOf(tree, sig, callArg)
				if err := compare(tree, sig, left, right); err != nil {
					return file.NewError(tree.Node(callArg).Source, "%s", err.Error())
				}
			}
			continue
		}

		for i, tag := range call.Lts {
			if i >= len(callArgs) {
				break
			}
			callArg := callArgs[i]
			switch tag.Kind {
			case ltype.TagReturn:
				if _, ok := descendToItem(tree, callArg, referenceDepthArg); !ok {
					return file.NewError(tree.Node(callArg).Source, "Requires reference to variable")
				}
			case ltype.TagArg:
				if _, ok := descendToItem(tree, callArg, referenceDepthArg); !ok {
					return file.NewError(tree.Node(callArg).Source, "Requires reference to variable")
				}
				if tag.Arg >= len(callArgs) {
					continue
				}
				left := lifetimeOf(tree, sig, callArgs[tag.Arg])
				right := lifetimeOf(tree, sig, callArg)
				if err := compare(tree, sig, left, right); err != nil {
					return file.NewError(tree.Node(callArg).Source, "%s", err.Error())
				}
			}
		}
	}
	return nil
}

// 8. Mutability of mutated locals (spec.md §4.9.8).
func checkMutatedLocalMutability(tree *ast.Tree, idx *Index) *file.Error {
	for _, p := range idx.MutatedLocals {
		item := tree.Node(p.Item)
		decl := tree.Node(item.Declaration)
		if decl.Kind != ast.KindArg {
			continue
		}
		if !decl.Mutable {
			return file.NewError(item.Source, "Requires mut %s", item.Name())
		}
	}
	return nil
}

// 9. Mutability of call mutable args (spec.md §4.9.9).
func checkMutableCallArgs(tree *ast.Tree, idx *Index) *file.Error {
	for _, c := range idx.Calls {
		call := tree.Node(c)
		for _, a := range call.Children {
			callArg := tree.Node(a)
			if callArg.Kind != ast.KindCallArg || !callArg.Mutable {
				continue
			}
			item, ok := descendToItem(tree, a, referenceDepthMut)
			if !ok {
				continue
			}
			decl := tree.Node(tree.Node(item).Declaration)
			if decl.Kind != ast.KindArg {
				continue
			}
			if !decl.Mutable {
				return file.NewError(callArg.Source, "Requires mut %s", tree.Node(item).Name())
			}
		}
	}
	return nil
}

// descendToItem walks the first child starting at n, up to maxDepth
// steps, and reports the Item node it bottoms out at, if any. This is
// the "is_reference"/"reference" probe of spec.md §4.9.7/§4.9.9 and §9
// Open Question (a): the depth is fixed, not unbounded, so a legal
// reference buried deeper than maxDepth is rejected — preserved
// intentionally to match observable behaviour. It only bails early when
// a node has no children at all; with two or more children it still
// always takes children[0], same as the original.
func descendToItem(tree *ast.Tree, n, maxDepth int) (int, bool) {
	cur := n
	for depth := 0; depth <= maxDepth; depth++ {
		node := tree.Node(cur)
		if node.Kind == ast.KindItem {
			return cur, true
		}
		if len(node.Children) == 0 {
			return 0, false
		}
		cur = node.Children[0]
	}
	return 0, false
}
