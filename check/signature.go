package check

import (
	"github.com/exprtools/borrowcheck/ast"
	"github.com/exprtools/borrowcheck/file"
)

// ArgKey identifies an argument by its owning function node and name.
type ArgKey struct {
	Fn   int
	Name string
}

// ArgInfo locates an argument: its node index and its ordinal position
// among the function's Arg children.
type ArgInfo struct {
	Node    int
	Ordinal int
}

// Signatures is the registry built in spec.md §4.5: function lookup by
// (possibly mutability-decorated) name, per-function arity, and the
// (function, argument name) -> argument table lifetime well-formedness
// is validated against.
type Signatures struct {
	ByName    map[string]int // decorated name -> Fn node index
	Arity     map[int]int    // Fn node index -> declared arity
	ArgByName map[ArgKey]ArgInfo
}

// buildSignatures constructs the registry and validates the
// well-formedness rules of spec.md §4.5: unique argument names, unique
// function names, every non-`return` declared lifetime resolving to a
// sibling argument, and no cycle in the argument-outlives-argument
// graph.
func buildSignatures(tree *ast.Tree, idx *Index) (*Signatures, *file.Error) {
	sig := &Signatures{
		ByName:    make(map[string]int, len(idx.Functions)),
		Arity:     make(map[int]int, len(idx.Functions)),
		ArgByName: make(map[ArgKey]ArgInfo),
	}

	for _, f := range idx.Functions {
		fn := tree.Node(f)

		seen := make(map[string]bool)
		ordinal := 0
		for _, a := range fn.Children {
			arg := tree.Node(a)
			if arg.Kind != ast.KindArg {
				continue
			}
			name := arg.Name()
			if seen[name] {
				return nil, file.NewError(arg.Source, "Duplicate argument %s", name)
			}
			seen[name] = true
			sig.ArgByName[ArgKey{Fn: f, Name: name}] = ArgInfo{Node: a, Ordinal: ordinal}
			ordinal++
		}
		sig.Arity[f] = ordinal

		name := fn.Name()
		if _, dup := sig.ByName[name]; dup {
			return nil, file.NewError(fn.Source, "Duplicate function %s", name)
		}
		sig.ByName[name] = f
	}

	for _, f := range idx.Functions {
		if err := checkLifetimeWellFormed(tree, sig, f); err != nil {
			return nil, err
		}
	}

	return sig, nil
}

func checkLifetimeWellFormed(tree *ast.Tree, sig *Signatures, f int) *file.Error {
	fn := tree.Node(f)

	var args []int
	for _, a := range fn.Children {
		if tree.Node(a).Kind == ast.KindArg {
			args = append(args, a)
		}
	}

	for _, a := range args {
		arg := tree.Node(a)
		if arg.Lifetime == nil {
			continue
		}
		lt := *arg.Lifetime
		if lt == "return" {
			continue
		}
		if _, ok := sig.ArgByName[ArgKey{Fn: f, Name: lt}]; !ok {
			return file.NewError(arg.Source, "Could not find argument %s", lt)
		}
	}

	arity := sig.Arity[f]
	for _, a := range args {
		arg := tree.Node(a)
		if arg.Lifetime == nil {
			continue
		}
		lt := *arg.Lifetime
		if lt == "return" {
			continue
		}

		visited := make([]bool, arity)
		info := sig.ArgByName[ArgKey{Fn: f, Name: lt}]
		cur, ind := info.Node, info.Ordinal

		for {
			if visited[ind] {
				return file.NewError(tree.Node(cur).Source, "Cyclic lifetime for %s", lt)
			}
			visited[ind] = true

			curArg := tree.Node(cur)
			if curArg.Lifetime == nil {
				break
			}
			nextName := *curArg.Lifetime
			if nextName == "return" {
				break
			}
			next := sig.ArgByName[ArgKey{Fn: f, Name: nextName}]
			cur, ind = next.Node, next.Ordinal
		}
	}

	return nil
}
