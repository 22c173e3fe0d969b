// Package std is a concrete prelude catalogue grounded on the teacher's
// builtin/lib.go function inventory, re-expressed with the lifetime
// tags spec.md §4.6/§6 requires of every intrinsic. Most intrinsics
// take their arguments by value (ltype.Default); a handful alias into
// their argument and are tagged accordingly so the constraint checker
// (spec.md §4.9.7) enforces the same discipline on them as on
// user-declared functions with a `'return`-tagged argument.
package std

import (
	"github.com/exprtools/borrowcheck/ltype"
	"github.com/exprtools/borrowcheck/prelude"
)

// New returns the reference prelude used by the CLI and by check's own
// test suite when no caller-supplied prelude is given.
func New() *prelude.Prelude {
	return prelude.New(
		prelude.Function{
			Name:      "len",
			Lts:       []ltype.Tag{ltype.Default},
			Signature: prelude.Signature{Params: []string{"any"}, Return: "int"},
		},
		prelude.Function{
			Name:      "sqrt",
			Lts:       []ltype.Tag{ltype.Default},
			Signature: prelude.Signature{Params: []string{"f64"}, Return: "f64"},
		},
		prelude.Function{
			Name:      "abs",
			Lts:       []ltype.Tag{ltype.Default},
			Signature: prelude.Signature{Params: []string{"any"}, Return: "any"},
		},
		prelude.Function{
			Name:      "min",
			Lts:       []ltype.Tag{ltype.Default, ltype.Default},
			Signature: prelude.Signature{Params: []string{"any", "any"}, Return: "any"},
		},
		prelude.Function{
			Name:      "max",
			Lts:       []ltype.Tag{ltype.Default, ltype.Default},
			Signature: prelude.Signature{Params: []string{"any", "any"}, Return: "any"},
		},
		prelude.Function{
			Name:      "print",
			Lts:       []ltype.Tag{ltype.Default},
			Signature: prelude.Signature{Params: []string{"any"}, Return: "void"},
		},
		// push(mut list, item) mutates its first argument in place; the
		// item is stored by value so it carries no lifetime tag.
		prelude.Function{
			Name:      "push(mut,_)",
			Lts:       []ltype.Tag{ltype.Default, ltype.Default},
			Signature: prelude.Signature{Params: []string{"array", "any"}, Return: "void"},
		},
		// head(list) aliases into the list's first element: the caller
		// must pass a reference, and the result cannot outlive the
		// borrowed argument.
		prelude.Function{
			Name:      "head",
			Lts:       []ltype.Tag{ltype.ReturnTag},
			Signature: prelude.Signature{Params: []string{"array"}, Return: "any"},
		},
		// swap(mut a, mut b) exchanges two mutable places in place.
		prelude.Function{
			Name:      "swap(mut,mut)",
			Lts:       []ltype.Tag{ltype.Default, ltype.Default},
			Signature: prelude.Signature{Params: []string{"any", "any"}, Return: "void"},
		},
	)
}
