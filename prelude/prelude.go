// Package prelude models the read-only dictionary of intrinsic
// function signatures described in spec.md §1/§6: a name (including its
// mutability-decorated form, see check/mutability.go) maps to an ordered
// lifetime-tag vector and a type signature. The prelude is supplied by
// the embedding toolchain; this package only fixes its shape and offers
// a small builder. A concrete catalogue lives in prelude/std.
package prelude

import "github.com/exprtools/borrowcheck/ltype"

// Function is one prelude entry.
type Function struct {
	Name string
	// Lts holds one lifetime tag per declared argument (spec.md §4.6).
	Lts []ltype.Tag
	// Signature is the intrinsic's static type, consulted by the
	// type-check bridge.
	Signature Signature
}

// Signature is a minimal function shape: parameter type names (the tag
// vector's length is the source of truth for arity) and a return
// type name, kept as a string so this package stays free of any
// particular type-representation dependency.
type Signature struct {
	Params []string
	Return string
}

// Prelude is the read-only function table. Lookups are by name,
// including any mutability-decorated suffix a caller has already
// applied (check/mutability.go decorates Call names the same way before
// consulting this table).
type Prelude struct {
	functions map[string]Function
}

// New builds a Prelude from a list of functions, keyed by Name.
func New(fns ...Function) *Prelude {
	p := &Prelude{functions: make(map[string]Function, len(fns))}
	for _, fn := range fns {
		p.functions[fn.Name] = fn
	}
	return p
}

// Lookup returns the function registered under name, if any.
func (p *Prelude) Lookup(name string) (Function, bool) {
	if p == nil {
		return Function{}, false
	}
	fn, ok := p.functions[name]
	return fn, ok
}

// Names returns every registered function name, used to build call-site
// suggestions (spec.md §4.6, §7).
func (p *Prelude) Names() []string {
	if p == nil {
		return nil
	}
	names := make([]string, 0, len(p.functions))
	for name := range p.functions {
		names = append(names, name)
	}
	return names
}
