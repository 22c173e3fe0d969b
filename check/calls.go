package check

import (
	"sort"
	"strings"

	"github.com/exprtools/borrowcheck/ast"
	"github.com/exprtools/borrowcheck/file"
	"github.com/exprtools/borrowcheck/prelude"
)

// linkCalls resolves every Call node to either a user function
// (spec.md §4.6) or a prelude intrinsic, validating arity either way.
func linkCalls(tree *ast.Tree, idx *Index, sig *Signatures, pre *prelude.Prelude) *file.Error {
	for _, c := range idx.Calls {
		call := tree.Node(c)
		name := call.Name()

		n := 0
		for _, a := range call.Children {
			if tree.Node(a).Kind == ast.KindCallArg {
				n++
			}
		}

		if f, ok := sig.ByName[name]; ok {
			arity := sig.Arity[f]
			if arity != n {
				return file.NewError(call.Source, "%s: Expected %d arguments, found %d%s",
					name, arity, n, suggest(name, sig, pre))
			}
			call.Declaration = f
			continue
		}

		if fn, ok := pre.Lookup(name); ok {
			call.Lts = fn.Lts
			if len(call.Lts) != n {
				return file.NewError(call.Source, "%s: Expected %d arguments, found %d",
					name, len(call.Lts), n)
			}
			continue
		}

		return file.NewError(call.Source, "Could not find function %s%s", name, suggest(name, sig, pre))
	}
	return nil
}

// suggest builds the "Did you mean" suffix spec.md §4.6/§7 describes:
// every name in either the user function table or the prelude whose
// base (the part before any mutability-decoration paren) has name's
// base as a prefix. Returns "" when nothing matches, so the message
// never claims to have suggestions it doesn't have.
func suggest(name string, sig *Signatures, pre *prelude.Prelude) string {
	base := name
	if i := strings.IndexByte(name, '('); i >= 0 {
		base = name[:i]
	}

	var found []string
	for candidate := range sig.ByName {
		if strings.HasPrefix(candidate, base) {
			found = append(found, candidate)
		}
	}
	for _, candidate := range pre.Names() {
		if strings.HasPrefix(candidate, base) {
			found = append(found, candidate)
		}
	}

	if len(found) == 0 {
		return ""
	}
	sort.Strings(found)

	var b strings.Builder
	b.WriteString("\n\nDid you mean:\n")
	for _, f := range found {
		b.WriteString("- ")
		b.WriteString(f)
		b.WriteByte('\n')
	}
	return b.String()
}
