package ast

import "brio/report"

// Expr represents an expression, simple or complex.  All expression nodes
// implement the `Expr` interface.  The set of expression nodes is closed:
// the lowering engine dispatches exhaustively over it and treats any other
// node as an internal error.
type Expr interface {
	ASTNode

	// exprNode marks the closed set of expression nodes.
	exprNode()
}

// ExprBase is the base struct for all expression nodes.
type ExprBase struct {
	ASTBase
}

func (eb ExprBase) exprNode() {}

// NewExprBaseOn creates a new expression base with the given span.
func NewExprBaseOn(span *report.TextSpan) ExprBase {
	return ExprBase{ASTBase: NewASTBaseOn(span)}
}

// NewExprBaseOver creates a new expression base spanning over two spans.
func NewExprBaseOver(start, end *report.TextSpan) ExprBase {
	return ExprBase{ASTBase: NewASTBaseOver(start, end)}
}

// -----------------------------------------------------------------------------

// NumberLit represents a numeric literal.  Every brio value is a float64.
type NumberLit struct {
	ExprBase

	Value float64
}

// Identifier represents a named value.
type Identifier struct {
	ExprBase

	Name string
}

// -----------------------------------------------------------------------------

// UnaryOp represents a unary operator application.  There are no built-in
// unary operators: every application calls a user-defined operator function.
type UnaryOp struct {
	ExprBase

	Op      rune
	Operand Expr
}

// BinaryOp represents a binary operator application.  The operators
// `+ - * <` are built in; `=` is assignment, in which case Lhs must be an
// *Identifier; any other operator calls a user-defined operator function.
type BinaryOp struct {
	ExprBase

	Op       rune
	Lhs, Rhs Expr
}

// Call is a function call expression.
type Call struct {
	ExprBase

	Callee string
	Args   []Expr
}

// -----------------------------------------------------------------------------

// IfExpr represents a conditional expression.  Both branches are mandatory:
// the expression's value is that of whichever branch runs.
type IfExpr struct {
	ExprBase

	Cond, Then, Else Expr
}

// ForExpr represents a counting loop expression.  The condition is tested
// after the body and step run, so the body always executes at least once.
// Step may be nil, in which case the induction variable advances by 1.  The
// expression's value is always 0.
type ForExpr struct {
	ExprBase

	VarName string

	Init, Cond, Step, Body Expr
}

// LetExpr represents a sequence of local bindings scoped over a body
// expression.  The expression's value is that of the body.
type LetExpr struct {
	ExprBase

	Bindings []LetBinding
	Body     Expr
}

// LetBinding is a single name/initializer pair in a LetExpr.  Init may be
// nil, in which case the binding starts at 0.  The initializer is evaluated
// before the name becomes visible, so it may refer to an outer binding of
// the same name.
type LetBinding struct {
	Name string
	Init Expr
}
