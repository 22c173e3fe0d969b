// Package sexpr is a trivial loader for a parenthesised stand-in
// syntax, letting cmd/dyonlt exercise the pass without a real parser
// front end (spec.md §1 treats the parser as an external collaborator,
// out of scope for the pass itself). It understands a small, literal
// subset of forms and builds an ast.Tree with internal/builder:
//
//	(fn NAME (arg NAME [mut] [lifetime]) ... BLOCK)
//	BLOCK  := (block STMT...)
//	STMT   := (expr EXPR) | (return [EXPR])
//	EXPR   := (item NAME) | (go CALL) | CALL | ASSIGN | (add EXPR...) | (mul EXPR...)
//	CALL   := (call NAME CALLARG...)
//	CALLARG:= (callarg EXPR [mut])
//	ASSIGN := (declare ITEM EXPR) | (mutate ITEM EXPR)
//	ITEM   := (item NAME)
//
// This is deliberately small, not a general-purpose language front end:
// it has no forms for declarator loops (KindFor/KindEnd), indexing
// (KindId) or Pow, and no literal constants.
package sexpr

import (
	"fmt"
	"strings"

	"github.com/exprtools/borrowcheck/ast"
	"github.com/exprtools/borrowcheck/internal/builder"
)

// node is a parsed s-expression: either an atom (len(items) == 0, text
// set) or a list of sub-nodes.
type node struct {
	text  string
	items []node
}

// Parse tokenises and builds an ast.Tree from source, which must contain
// exactly one top-level form per function declaration.
func Parse(source string) (*ast.Tree, error) {
	toks := tokenize(source)
	pos := 0

	b := builder.New(source)
	for pos < len(toks) {
		form, next, err := parseForm(toks, pos)
		if err != nil {
			return nil, err
		}
		pos = next
		if _, err := build(b, form); err != nil {
			return nil, err
		}
	}
	return b.Tree(), nil
}

func tokenize(source string) []string {
	var toks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	for _, r := range source {
		switch {
		case r == '(' || r == ')':
			flush()
			toks = append(toks, string(r))
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return toks
}

func parseForm(toks []string, pos int) (node, int, error) {
	if pos >= len(toks) {
		return node{}, pos, fmt.Errorf("sexpr: unexpected end of input")
	}
	if toks[pos] != "(" {
		return node{text: toks[pos]}, pos + 1, nil
	}
	pos++
	var n node
	for {
		if pos >= len(toks) {
			return node{}, pos, fmt.Errorf("sexpr: unclosed form")
		}
		if toks[pos] == ")" {
			return n, pos + 1, nil
		}
		child, next, err := parseForm(toks, pos)
		if err != nil {
			return node{}, pos, err
		}
		n.items = append(n.items, child)
		pos = next
	}
}

func head(n node) string {
	if len(n.items) == 0 {
		return ""
	}
	return n.items[0].text
}

// build dispatches on the form's head symbol, returning the node index
// the form was compiled to.
func build(b *builder.Builder, n node) (int, error) {
	switch head(n) {
	case "fn":
		return buildFn(b, n)
	case "item":
		return b.Item(n.items[1].text), nil
	case "expr":
		if len(n.items) == 1 {
			return b.Compose(ast.KindExpr), nil
		}
		child, err := build(b, n.items[1])
		if err != nil {
			return 0, err
		}
		return b.Compose(ast.KindExpr, child), nil
	case "return":
		if len(n.items) == 1 {
			return b.Compose(ast.KindReturn), nil
		}
		child, err := build(b, n.items[1])
		if err != nil {
			return 0, err
		}
		return b.Compose(ast.KindReturn, child), nil
	case "call":
		return buildCall(b, n)
	case "callarg":
		return buildCallArg(b, n)
	case "go":
		call, err := build(b, n.items[1])
		if err != nil {
			return 0, err
		}
		return b.Compose(ast.KindGo, call), nil
	case "declare", "mutate":
		return buildAssign(b, n)
	case "add", "mul":
		var kids []int
		for _, c := range n.items[1:] {
			k, err := build(b, c)
			if err != nil {
				return 0, err
			}
			kids = append(kids, k)
		}
		kind := ast.KindAdd
		if head(n) == "mul" {
			kind = ast.KindMul
		}
		return b.Compose(kind, kids...), nil
	default:
		return 0, fmt.Errorf("sexpr: unknown form %q", head(n))
	}
}

func buildFn(b *builder.Builder, n node) (int, error) {
	name := n.items[1].text
	var args []int
	var blockIdx = -1
	for _, c := range n.items[2:] {
		if head(c) == "arg" {
			a, err := buildArg(b, c)
			if err != nil {
				return 0, err
			}
			args = append(args, a)
			continue
		}
		if head(c) == "block" {
			blk, err := buildBlock(b, c)
			if err != nil {
				return 0, err
			}
			blockIdx = blk
		}
	}
	if blockIdx == -1 {
		blockIdx = b.Compose(ast.KindBlock)
	}
	return b.Fn(name, blockIdx, args...), nil
}

func buildArg(b *builder.Builder, n node) (int, error) {
	name := n.items[1].text
	mutable := false
	lifetime := ""
	for _, c := range n.items[2:] {
		if c.text == "mut" {
			mutable = true
			continue
		}
		if c.text != "" {
			lifetime = c.text
		}
	}
	return b.Arg(name, mutable, lifetime), nil
}

func buildBlock(b *builder.Builder, n node) (int, error) {
	var stmts []int
	for _, c := range n.items[1:] {
		s, err := build(b, c)
		if err != nil {
			return 0, err
		}
		stmts = append(stmts, s)
	}
	return b.Compose(ast.KindBlock, stmts...), nil
}

func buildCall(b *builder.Builder, n node) (int, error) {
	name := n.items[1].text
	var callArgs []int
	for _, c := range n.items[2:] {
		a, err := build(b, c)
		if err != nil {
			return 0, err
		}
		callArgs = append(callArgs, a)
	}
	return b.Call(name, callArgs...), nil
}

func buildCallArg(b *builder.Builder, n node) (int, error) {
	expr, err := build(b, n.items[1])
	if err != nil {
		return 0, err
	}
	mutable := len(n.items) > 2 && n.items[2].text == "mut"
	return b.CallArg(expr, mutable), nil
}

func buildAssign(b *builder.Builder, n node) (int, error) {
	op := ast.OpDeclare
	if head(n) == "mutate" {
		op = ast.OpMutate
	}
	item, err := build(b, n.items[1])
	if err != nil {
		return 0, err
	}
	lhs := b.Compose(ast.KindExpr, item)
	rhs, err := build(b, n.items[2])
	if err != nil {
		return 0, err
	}
	rhsExpr := b.Compose(ast.KindExpr, rhs)
	return b.Assign(op, lhs, rhsExpr), nil
}
