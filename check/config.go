// Package check implements the lifetime-constraint resolver and type-
// check bridge described in spec.md: name resolution, a symbolic
// lifetime lattice, propagation of lifetimes through expressions, and
// the ordered constraint checks at every assignment, return, block-tail
// and call boundary (spec.md §2, components 4-9).
package check

import (
	"log/slog"

	"github.com/exprtools/borrowcheck/ast"
	"github.com/exprtools/borrowcheck/prelude"
)

// TypeChecker is the external type-inference collaborator (spec.md
// §4.10, §6): given the annotated tree and the prelude, it populates
// Node.Ty and reports any type error it finds. Check invokes it only
// after every lifetime constraint has passed.
type TypeChecker interface {
	Check(tree *ast.Tree, prelude *prelude.Prelude) error
}

// Config carries the pass's optional collaborators. A zero Config is
// valid: Logger defaults to slog.Default() and TypeChecker defaults to
// a no-op (the pass then reports no refined return types).
type Config struct {
	Logger      *slog.Logger
	TypeChecker TypeChecker
}

func (c *Config) logger() *slog.Logger {
	if c == nil || c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

func (c *Config) typeChecker() TypeChecker {
	if c == nil || c.TypeChecker == nil {
		return noopTypeChecker{}
	}
	return c.TypeChecker
}

type noopTypeChecker struct{}

func (noopTypeChecker) Check(*ast.Tree, *prelude.Prelude) error { return nil }
