package syntax

import "strings"

// OperTable records the binary operator precedences in effect during parsing.
// User operator definitions extend it, so it is shared by every parser
// belonging to one compilation or REPL session rather than owned by any
// single parser.
type OperTable struct {
	precs map[rune]int
}

// builtinPrecs is the precedence seeding for a new operator table.  Operators
// bind more tightly the higher their precedence; assignment binds loosest of
// all and is the only right associative operator.
var builtinPrecs = map[rune]int{
	'=': 2,
	'<': 10,
	'>': 10,
	'+': 20,
	'-': 20,
	'*': 40,
	'/': 40,
}

// builtinOpers is the set of binary operators with built-in lowerings.  Their
// definitions cannot be overridden: a user `binary+` would parse but never be
// called.
const builtinOpers = "=+-*<"

// NewOperTable creates a new operator table seeded with the built-in
// operators.
func NewOperTable() *OperTable {
	ot := &OperTable{precs: make(map[rune]int)}
	for op, prec := range builtinPrecs {
		ot.precs[op] = prec
	}

	return ot
}

// Precedence returns the binary precedence of the given operator character.
// It returns -1 if the character is not a known binary operator.
func (ot *OperTable) Precedence(op rune) int {
	if prec, ok := ot.precs[op]; ok {
		return prec
	}

	return -1
}

// Define sets the binary precedence of the given operator character.  It
// returns the previous precedence and whether the operator was already
// defined.
func (ot *OperTable) Define(op rune, prec int) (int, bool) {
	prev, ok := ot.precs[op]
	ot.precs[op] = prec

	return prev, ok
}

// isBuiltinOper returns whether the given operator character has a built-in
// lowering.
func isBuiltinOper(op rune) bool {
	return strings.ContainsRune(builtinOpers, op)
}
