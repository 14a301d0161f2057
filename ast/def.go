package ast

import (
	"brio/report"
	"strings"
)

// Def represents a top level definition in user source code.
type Def interface {
	ASTNode

	// Name returns the global name this definition defines.
	Name() string
}

// -----------------------------------------------------------------------------

// Prototype describes a function's interface: its global name and its
// ordered parameter names.  Every parameter and the return value are
// float64, so the prototype carries no type information.  Parameter names
// must be unique within the prototype.
type Prototype struct {
	ASTBase

	Name   string
	Params []string
}

// FuncDef is an AST node for a function definition.
type FuncDef struct {
	ASTBase

	Proto *Prototype
	Body  Expr
}

func (fd *FuncDef) Name() string {
	return fd.Proto.Name
}

// Extern is an AST node for an external function declaration: a prototype
// with no body, resolved at link time.
type Extern struct {
	ASTBase

	Proto *Prototype
}

func (ed *Extern) Name() string {
	return ed.Proto.Name
}

// -----------------------------------------------------------------------------

// AnonFuncPrefix is the name prefix given to functions wrapping bare
// top-level expressions.
const AnonFuncPrefix = "__anon_expr"

// Anonymous returns whether this definition wraps a bare top-level
// expression.
func (fd *FuncDef) Anonymous() bool {
	return strings.HasPrefix(fd.Proto.Name, AnonFuncPrefix)
}

// -----------------------------------------------------------------------------

// UnaryName returns the callee name encoding a user-defined unary operator.
func UnaryName(op rune) string {
	return "unary" + string(op)
}

// BinaryName returns the callee name encoding a user-defined binary
// operator.
func BinaryName(op rune) string {
	return "binary" + string(op)
}

// NewUnaryProto returns the prototype of a user-defined unary operator
// definition.  This is sugar over the general prototype: the result is an
// ordinary one-parameter prototype named by UnaryName.
func NewUnaryProto(span *report.TextSpan, op rune, operand string) *Prototype {
	return &Prototype{
		ASTBase: NewASTBaseOn(span),
		Name:    UnaryName(op),
		Params:  []string{operand},
	}
}

// NewBinaryProto returns the prototype of a user-defined binary operator
// definition.  This is sugar over the general prototype: the result is an
// ordinary two-parameter prototype named by BinaryName.
func NewBinaryProto(span *report.TextSpan, op rune, lhs, rhs string) *Prototype {
	return &Prototype{
		ASTBase: NewASTBaseOn(span),
		Name:    BinaryName(op),
		Params:  []string{lhs, rhs},
	}
}
