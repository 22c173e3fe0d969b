package check

import (
	"github.com/exprtools/borrowcheck/ast"
	"github.com/exprtools/borrowcheck/file"
	"github.com/exprtools/borrowcheck/prelude"
	"github.com/exprtools/borrowcheck/typecheck"
)

// Check runs the full pass described in spec.md §2-§4 over tree: name
// resolution, signature registry construction, call linking, the nine
// ordered lifetime constraint checks, and finally the external
// type-check bridge. It is the single entry point the embedding
// toolchain calls between parsing and code generation.
//
// On success it returns the refined return type of every function that
// has one, keyed by the function's primary (possibly mutability
// decorated) name. On failure it returns the first violation found,
// wrapped with the offending node's source range — the pass never
// partially recovers.
func Check(tree *ast.Tree, pre *prelude.Prelude, config *Config) (map[string]*typecheck.Type, error) {
	log := config.logger()

	decorateMutability(tree)
	log.Debug("mutability decoration complete")

	idx := buildIndex(tree)
	log.Debug("index built",
		"functions", len(idx.Functions),
		"calls", len(idx.Calls),
		"items", len(idx.Items))

	if err := resolveItems(tree, idx); err != nil {
		return nil, err.Bind(tree.Source)
	}
	log.Debug("name resolution complete")

	if err := checkInferable(tree, idx); err != nil {
		return nil, err.Bind(tree.Source)
	}
	log.Debug("range inferability complete")

	sig, err := buildSignatures(tree, idx)
	if err != nil {
		return nil, err.Bind(tree.Source)
	}
	log.Debug("signature registry built", "functions", len(sig.ByName))

	if err := linkCalls(tree, idx, sig, pre); err != nil {
		return nil, err.Bind(tree.Source)
	}
	log.Debug("call linking complete")

	if err := checkConstraints(tree, idx, sig, pre); err != nil {
		return nil, err.Bind(tree.Source)
	}
	log.Debug("constraint checking complete")

	if err := config.typeChecker().Check(tree, pre); err != nil {
		if fe, ok := err.(*file.Error); ok {
			return nil, fe.Bind(tree.Source)
		}
		return nil, err
	}
	log.Debug("type-check bridge complete")

	types := make(map[string]*typecheck.Type, len(idx.Functions))
	for _, f := range idx.Functions {
		fn := tree.Node(f)
		if fn.Ty != nil {
			types[fn.Name()] = fn.Ty
		}
	}

	return types, nil
}
