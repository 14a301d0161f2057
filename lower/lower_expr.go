package lower

import (
	"brio/ast"
	"brio/report"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// lowerExpr lowers a single expression into the current block, returning
// the value the expression yields.  The node set is closed: any node kind
// outside it is a bug in whatever built the AST.
func (l *lowerer) lowerExpr(expr ast.Expr) (value.Value, error) {
	switch v := expr.(type) {
	case *ast.NumberLit:
		return constant.NewFloat(types.Double, v.Value), nil
	case *ast.Identifier:
		return l.lowerIdentifier(v)
	case *ast.UnaryOp:
		return l.lowerUnaryOp(v)
	case *ast.BinaryOp:
		return l.lowerBinaryOp(v)
	case *ast.Call:
		return l.lowerCall(v)
	case *ast.IfExpr:
		return l.lowerIfExpr(v)
	case *ast.ForExpr:
		return l.lowerForExpr(v)
	case *ast.LetExpr:
		return l.lowerLetExpr(v)
	default:
		report.ICE("lowering not implemented for expression node %T", expr)
		return nil, nil
	}
}

// lowerIdentifier lowers a variable reference: a load from the storage cell
// the innermost binding of the name points at.
func (l *lowerer) lowerIdentifier(id *ast.Identifier) (value.Value, error) {
	cell, ok := l.sess.scopes.Lookup(id.Name)
	if !ok {
		return nil, &Error{Kind: UnboundIdentifier, Name: id.Name, Span: id.Span()}
	}

	return l.block.NewLoad(types.Double, cell), nil
}

// lowerUnaryOp lowers a unary operator application.  There are no built-in
// unary operators: the operand lowers first, then the application dispatches
// to the matching operator function.
func (l *lowerer) lowerUnaryOp(uop *ast.UnaryOp) (value.Value, error) {
	operand, err := l.lowerExpr(uop.Operand)
	if err != nil {
		return nil, err
	}

	callee, ok := l.sess.funcs[ast.UnaryName(uop.Op)]
	if !ok {
		return nil, &Error{Kind: UnknownOperator, Name: string(uop.Op), Span: uop.Span()}
	}

	return l.block.NewCall(callee, operand), nil
}

// lowerBinaryOp lowers a binary operator application.  Assignment is
// special-cased; the four primitive operators lower to instructions; any
// other operator lowers both operands and dispatches to the matching
// operator function.
func (l *lowerer) lowerBinaryOp(bop *ast.BinaryOp) (value.Value, error) {
	if bop.Op == '=' {
		return l.lowerAssign(bop)
	}

	lhs, err := l.lowerExpr(bop.Lhs)
	if err != nil {
		return nil, err
	}

	rhs, err := l.lowerExpr(bop.Rhs)
	if err != nil {
		return nil, err
	}

	switch bop.Op {
	case '+':
		return l.block.NewFAdd(lhs, rhs), nil
	case '-':
		return l.block.NewFSub(lhs, rhs), nil
	case '*':
		return l.block.NewFMul(lhs, rhs), nil
	case '<':
		// Compare, then widen the i1 back out to 0.0 or 1.0.
		cmp := l.block.NewFCmp(enum.FPredULT, lhs, rhs)
		return l.block.NewUIToFP(cmp, types.Double), nil
	}

	callee, ok := l.sess.funcs[ast.BinaryName(bop.Op)]
	if !ok {
		return nil, &Error{Kind: UnknownOperator, Name: string(bop.Op), Span: bop.Span()}
	}

	return l.block.NewCall(callee, lhs, rhs), nil
}

// lowerAssign lowers an assignment.  The destination must syntactically be
// an identifier; the parser guarantees that, so anything else here is a bug
// in the caller.  The assigned value computes first, stores into the
// destination's cell, and is the expression's value, which is what lets
// assignments chain.
func (l *lowerer) lowerAssign(bop *ast.BinaryOp) (value.Value, error) {
	dest, ok := bop.Lhs.(*ast.Identifier)
	if !ok {
		report.ICE("assignment destination must be an identifier, not %T", bop.Lhs)
	}

	rhs, err := l.lowerExpr(bop.Rhs)
	if err != nil {
		return nil, err
	}

	cell, ok := l.sess.scopes.Lookup(dest.Name)
	if !ok {
		return nil, &Error{Kind: UnboundIdentifier, Name: dest.Name, Span: dest.Span()}
	}

	l.block.NewStore(rhs, cell)
	return rhs, nil
}

// lowerCall lowers a function call.  The callee must already be declared
// and the argument count must match its parameter count before any argument
// lowers; arguments then lower left to right.
func (l *lowerer) lowerCall(call *ast.Call) (value.Value, error) {
	callee, ok := l.sess.funcs[call.Callee]
	if !ok {
		return nil, &Error{Kind: UnknownFunction, Name: call.Callee, Span: call.Span()}
	}

	if len(call.Args) != len(callee.Params) {
		return nil, &Error{
			Kind: ArityMismatch,
			Name: call.Callee,
			Span: call.Span(),
			Got:  len(call.Args),
			Want: len(callee.Params),
		}
	}

	args := make([]value.Value, len(call.Args))
	for i, argExpr := range call.Args {
		arg, err := l.lowerExpr(argExpr)
		if err != nil {
			return nil, err
		}

		args[i] = arg
	}

	return l.block.NewCall(callee, args...), nil
}
