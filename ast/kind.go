package ast

// Kind is the closed enumeration of node kinds the pass understands.
// It mirrors the grammar produced by the parser adapter (spec.md §2.2);
// the parser itself is an external collaborator and out of scope here.
type Kind int

const (
	KindInvalid Kind = iota

	// KindFn is a function declaration. Its children are its KindArg
	// nodes in declaration order followed by a single KindBlock body.
	KindFn

	// KindArg is a function argument declarator.
	KindArg

	// KindCall is a call site. Its children are KindCallArg nodes.
	KindCall

	// KindCallArg wraps the expression passed at a call site.
	KindCallArg

	// KindItem is a leaf node denoting a variable use.
	KindItem

	// KindAssign is `x := expr` (OpDeclare) or `x = expr` (OpMutate).
	// Children are [lhs, rhs]; lhs is a KindExpr wrapping a KindItem
	// optionally followed by KindId indexing/selectors.
	KindAssign

	// KindReturn wraps the returned expression as its single child.
	KindReturn

	// KindExpr wraps a single value-producing child; used both as a
	// statement wrapper and, as the last child of a KindBlock, as the
	// block's tail expression.
	KindExpr

	// KindBlock is an ordered sequence of statements.
	KindBlock

	// Arithmetic combinators. Add and Mul may have more than two
	// children (an n-ary sum/product); Pow is always binary.
	KindAdd
	KindMul
	KindPow

	// KindId is an indexing or field-selector node: `base[index]` or
	// `base.field`. Each KindId increases the `Ids` count on the
	// left-hand-side item it is attached to (spec.md §3 Node.ids).
	KindId

	// KindFor is a declarator-loop: it introduces one or more bound
	// names (Names) and optionally ends with a KindEnd child giving the
	// range's upper bound. Absence of a KindEnd child makes the loop an
	// "inferred" range (spec.md §4.4).
	KindFor

	// KindEnd is the range-end child of a KindFor node.
	KindEnd

	// KindGo wraps a single KindCall child launched concurrently.
	KindGo
)

var kindNames = map[Kind]string{
	KindInvalid: "Invalid",
	KindFn:      "Fn",
	KindArg:     "Arg",
	KindCall:    "Call",
	KindCallArg: "CallArg",
	KindItem:    "Item",
	KindAssign:  "Assign",
	KindReturn:  "Return",
	KindExpr:    "Expr",
	KindBlock:   "Block",
	KindAdd:     "Add",
	KindMul:     "Mul",
	KindPow:     "Pow",
	KindId:      "Id",
	KindFor:     "For",
	KindEnd:     "End",
	KindGo:      "Go",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsBlock reports whether a node of this kind can be the parent of an
// end-of-block expression (spec.md §4.2 end_of_blocks).
func (k Kind) IsBlock() bool {
	return k == KindBlock
}

// IsDeclLoop reports whether a node of this kind introduces bound
// names the way a KindFor declarator-loop does.
func (k Kind) IsDeclLoop() bool {
	return k == KindFor
}

// Op is the assignment operator carried by a KindAssign node.
type Op int

const (
	// OpDeclare introduces a new local (`:=`).
	OpDeclare Op = iota
	// OpMutate assigns to an existing place (`=`).
	OpMutate
)

func (op Op) String() string {
	switch op {
	case OpDeclare:
		return "Declare"
	case OpMutate:
		return "Mutate"
	default:
		return "Unknown"
	}
}
