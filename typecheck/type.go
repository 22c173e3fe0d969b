// Package typecheck defines the value type the external type-inference
// engine writes onto the node tree (spec.md §3 Node.ty, §6). The engine
// itself is an out-of-scope external collaborator; this package only
// fixes the shape of its output so ast, prelude and check can all refer
// to it without depending on any particular inference implementation.
package typecheck

import "fmt"

// Type is a refined type produced by the external type checker for a
// function, or declared up front for a prelude intrinsic's signature.
type Type struct {
	Name string // "int", "f64", "bool", "str", "array", "object", "any", "void"
	Elem *Type  // element type, meaningful when Name == "array"
}

func (t *Type) String() string {
	if t == nil {
		return "any"
	}
	if t.Name == "array" && t.Elem != nil {
		return fmt.Sprintf("[%s]", t.Elem)
	}
	return t.Name
}

// Equal reports whether two types describe the same shape. nil is
// treated as "any" and is equal to everything, matching the checker's
// convention that an absent Nature/Type stands for the unknown type.
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return true
	}
	if t.Name != other.Name {
		return false
	}
	if t.Name == "array" {
		return t.Elem.Equal(other.Elem)
	}
	return true
}

var (
	Any    = &Type{Name: "any"}
	Int    = &Type{Name: "int"}
	Float  = &Type{Name: "f64"}
	Bool   = &Type{Name: "bool"}
	Str    = &Type{Name: "str"}
	Void   = &Type{Name: "void"}
	Object = &Type{Name: "object"}
)

// Array builds an array-of-elem type.
func Array(elem *Type) *Type {
	return &Type{Name: "array", Elem: elem}
}
